package mappers

import (
	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	LogEntryToModel(e *ticket.LogEntry) *models.LogEntryModel
	LogEntryToDomain(model *models.LogEntryModel) (*ticket.LogEntry, error)

	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:             t.ID(),
		Description:    t.Description(),
		CreatedAt:      t.CreatedAt(),
		EstimatedAt:    t.EstimatedAt(),
		CompletedAt:    t.CompletedAt(),
		Rating:         t.Rating(),
		Closed:         t.Closed(),
		CurrentTaskID:  t.CurrentTaskID(),
		SubtypeID:      t.SubtypeID(),
		Priority:       t.Priority(),
		CreatorID:      t.CreatorID(),
		Billed:         t.Billing().Billed,
		Currency:       t.Billing().Currency,
		Amount:         t.Billing().Amount,
		TowerID:        t.Location().TowerID,
		FloorID:        t.Location().FloorID,
		LocationDetail: t.Location().Detail,
		Version:        t.Version(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	return ticket.ReconstructTicket(
		model.ID,
		model.Description,
		model.CreatedAt,
		model.EstimatedAt,
		model.CompletedAt,
		model.Rating,
		model.Closed,
		model.CurrentTaskID,
		model.SubtypeID,
		model.Priority,
		model.CreatorID,
		ticket.Billing{Billed: model.Billed, Currency: model.Currency, Amount: model.Amount},
		ticket.Location{TowerID: model.TowerID, FloorID: model.FloorID, Detail: model.LocationDetail},
		model.Version,
	)
}

func (m *TicketMapperImpl) LogEntryToModel(e *ticket.LogEntry) *models.LogEntryModel {
	return &models.LogEntryModel{
		ID:            e.ID(),
		OccurredAt:    e.OccurredAt(),
		Description:   e.Description(),
		TicketID:      e.TicketID(),
		TaskToPerform: e.TaskToPerform(),
		TaskAtEntry:   e.TaskAtEntry(),
		ResultID:      e.ResultID(),
		Kind:          int(e.Kind()),
		Comment:       e.Comment(),
		UserID:        e.UserID(),
		ResponsibleID: e.ResponsibleID(),
		Sent:          e.Sent(),
	}
}

func (m *TicketMapperImpl) LogEntryToDomain(model *models.LogEntryModel) (*ticket.LogEntry, error) {
	return ticket.ReconstructLogEntry(
		model.ID,
		model.OccurredAt,
		model.Description,
		model.TicketID,
		model.TaskToPerform,
		model.TaskAtEntry,
		model.ResultID,
		ticket.EntryKind(model.Kind),
		model.Comment,
		model.UserID,
		model.ResponsibleID,
		model.Sent,
	)
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:         a.ID(),
		Name:       a.Name(),
		PathRef:    a.PathRef(),
		Size:       a.Size(),
		MimeType:   a.MimeType(),
		LogEntryID: a.LogEntryID(),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.Name,
		model.PathRef,
		model.Size,
		model.MimeType,
		model.LogEntryID,
	)
}
