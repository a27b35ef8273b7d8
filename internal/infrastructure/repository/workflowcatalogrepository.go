package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fixdesk/internal/domain/workflow"
	"fixdesk/internal/infrastructure/persistence/mappers"
	"fixdesk/internal/infrastructure/persistence/models"
	"fixdesk/internal/shared/db"
	"fixdesk/internal/shared/errors"
)

// WorkflowCatalogRepository serves the read-only process/task/result
// catalog.
type WorkflowCatalogRepository struct {
	db     *gorm.DB
	mapper mappers.WorkflowMapper
}

func NewWorkflowCatalogRepository(db *gorm.DB) *WorkflowCatalogRepository {
	return &WorkflowCatalogRepository{
		db:     db,
		mapper: mappers.NewWorkflowMapper(),
	}
}

func (r *WorkflowCatalogRepository) ProcessByID(ctx context.Context, processID uint) (*workflow.Process, error) {
	var model models.ProcessModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, processID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("process not found")
		}
		return nil, fmt.Errorf("failed to find process: %w", err)
	}

	return r.mapper.ProcessToDomain(&model), nil
}

func (r *WorkflowCatalogRepository) TaskByID(ctx context.Context, taskID uint) (*workflow.Task, error) {
	var model models.TaskModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return r.mapper.TaskToDomain(&model), nil
}

// InitialTask returns the process's first task: lowest display order,
// ties broken by lowest id.
func (r *WorkflowCatalogRepository) InitialTask(ctx context.Context, processID uint) (*workflow.Task, error) {
	var model models.TaskModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("process_id = ?", processID).
		Order("display_order ASC, id ASC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("process has no tasks")
		}
		return nil, fmt.Errorf("failed to find initial task: %w", err)
	}

	return r.mapper.TaskToDomain(&model), nil
}

func (r *WorkflowCatalogRepository) ResultByID(ctx context.Context, resultID uint) (*workflow.Result, error) {
	var model models.ResultModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, resultID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("result not found")
		}
		return nil, fmt.Errorf("failed to find result: %w", err)
	}

	return r.mapper.ResultToDomain(&model), nil
}

// ResultsForTask lists a task's outgoing results ordered by destination
// task id. The ordering matters downstream; the action gate scans rows
// in this order.
func (r *WorkflowCatalogRepository) ResultsForTask(ctx context.Context, taskID uint) ([]*workflow.Result, error) {
	var rows []models.ResultModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("source_task_id = ?", taskID).
		Order("dest_task_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	results := make([]*workflow.Result, 0, len(rows))
	for i := range rows {
		results = append(results, r.mapper.ResultToDomain(&rows[i]))
	}

	return results, nil
}

func (r *WorkflowCatalogRepository) SubtypeByID(ctx context.Context, subtypeID uint) (*workflow.Subtype, error) {
	var model models.SubtypeModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, subtypeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("subtype not found")
		}
		return nil, fmt.Errorf("failed to find subtype: %w", err)
	}

	return r.mapper.SubtypeToDomain(&model), nil
}

// DynamicFieldsFor lists a subtype's declared fields in form order with
// options loaded for select fields.
func (r *WorkflowCatalogRepository) DynamicFieldsFor(ctx context.Context, subtypeID uint) ([]*workflow.DynamicField, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	type fieldRow struct {
		FieldID      uint
		SubtypeID    uint
		DisplayOrder int
		DictionaryID uint
		Name         string
		Label        string
		Kind         int
	}

	var rows []fieldRow
	err := tx.
		Table("subtype_fields").
		Select("subtype_fields.field_id, subtype_fields.subtype_id, subtype_fields.display_order, subtype_fields.dictionary_id, fields.name, fields.label, fields.kind").
		Joins("JOIN fields ON fields.id = subtype_fields.field_id").
		Where("subtype_fields.subtype_id = ?", subtypeID).
		Order("subtype_fields.display_order ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subtype fields: %w", err)
	}

	fields := make([]*workflow.DynamicField, 0, len(rows))
	for _, row := range rows {
		field := &workflow.DynamicField{
			FieldID:      row.FieldID,
			SubtypeID:    row.SubtypeID,
			Order:        row.DisplayOrder,
			DictionaryID: row.DictionaryID,
			Name:         row.Name,
			Label:        row.Label,
			Kind:         workflow.FieldKind(row.Kind),
		}

		if field.Kind == workflow.FieldKindSelect && row.DictionaryID != 0 {
			options, err := r.optionsFor(ctx, row.DictionaryID)
			if err != nil {
				return nil, err
			}
			field.Options = options
		}

		fields = append(fields, field)
	}

	return fields, nil
}

func (r *WorkflowCatalogRepository) optionsFor(ctx context.Context, dictionaryID uint) ([]workflow.FieldOption, error) {
	var rows []models.FieldOptionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("dictionary_id = ?", dictionaryID).Order("value ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list field options: %w", err)
	}

	options := make([]workflow.FieldOption, 0, len(rows))
	for _, row := range rows {
		options = append(options, workflow.FieldOption{ID: row.ID, Value: row.Value})
	}

	return options, nil
}
