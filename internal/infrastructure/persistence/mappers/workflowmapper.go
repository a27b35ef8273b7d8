package mappers

import (
	"fixdesk/internal/domain/workflow"
	"fixdesk/internal/infrastructure/persistence/models"
)

// WorkflowMapper converts catalog persistence models to domain types. The
// catalog is read-only at runtime so there is no model direction.
type WorkflowMapper interface {
	ProcessToDomain(model *models.ProcessModel) *workflow.Process
	TaskToDomain(model *models.TaskModel) *workflow.Task
	ResultToDomain(model *models.ResultModel) *workflow.Result
	SubtypeToDomain(model *models.SubtypeModel) *workflow.Subtype
}

type WorkflowMapperImpl struct{}

func NewWorkflowMapper() WorkflowMapper {
	return &WorkflowMapperImpl{}
}

func (m *WorkflowMapperImpl) ProcessToDomain(model *models.ProcessModel) *workflow.Process {
	return &workflow.Process{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Multitower:  model.Multitower,
		TowerID:     model.TowerID,
		FloorID:     model.FloorID,
		CostExempt:  model.CostExempt,
	}
}

func (m *WorkflowMapperImpl) TaskToDomain(model *models.TaskModel) *workflow.Task {
	kind := workflow.TaskKind(model.Kind)
	if !kind.IsValid() {
		kind = workflow.DeriveTaskKind(model.Name)
	}
	return &workflow.Task{
		ID:           model.ID,
		Name:         model.Name,
		Description:  model.Description,
		ProcessID:    model.ProcessID,
		DisplayOrder: model.DisplayOrder,
		Kind:         kind,
	}
}

func (m *WorkflowMapperImpl) ResultToDomain(model *models.ResultModel) *workflow.Result {
	return &workflow.Result{
		ID:           model.ID,
		Name:         model.Name,
		Description:  model.Description,
		SourceTaskID: model.SourceTaskID,
		DestTaskID:   model.DestTaskID,
	}
}

func (m *WorkflowMapperImpl) SubtypeToDomain(model *models.SubtypeModel) *workflow.Subtype {
	return &workflow.Subtype{
		ID:           model.ID,
		Name:         model.Name,
		TicketTypeID: model.TicketTypeID,
		ProcessID:    model.ProcessID,
		SLAHours:     model.SLAHours,
		Priority:     model.Priority,
	}
}
