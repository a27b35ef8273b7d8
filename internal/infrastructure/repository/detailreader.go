package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fixdesk/internal/application/ticket/dto"
	"fixdesk/internal/application/ticket/usecases"
	"fixdesk/internal/domain/workflow"
	"fixdesk/internal/shared/db"
	"fixdesk/internal/shared/errors"
)

// DetailReader assembles the denormalized ticket projections the detail
// view is built from. It reads across the ticket, catalog and user
// tables directly; the write side never goes through it.
type DetailReader struct {
	db *gorm.DB
}

func NewDetailReader(db *gorm.DB) *DetailReader {
	return &DetailReader{db: db}
}

func (r *DetailReader) TicketView(ctx context.Context, ticketID uint) (*dto.TicketView, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var view dto.TicketView
	result := tx.
		Table("tickets").
		Select(`tickets.id,
			tickets.description,
			tickets.priority,
			tickets.rating,
			tickets.closed,
			tickets.created_at,
			tickets.estimated_at,
			tickets.completed_at,
			tickets.billed,
			tickets.currency,
			tickets.amount,
			tickets.tower_id,
			tickets.floor_id,
			tickets.location_detail,
			tickets.subtype_id,
			tickets.creator_id,
			tasks.id AS task_id,
			tasks.name AS task_name,
			processes.id AS process_id,
			processes.name AS process_name,
			subtypes.name AS subtype_name,
			ticket_types.name AS type_name,
			users.name AS creator_name,
			users.account AS creator_account,
			towers.name AS tower_name,
			floors.name AS floor_name`).
		Joins("JOIN tasks ON tasks.id = tickets.current_task_id").
		Joins("JOIN processes ON processes.id = tasks.process_id").
		Joins("JOIN subtypes ON subtypes.id = tickets.subtype_id").
		Joins("JOIN ticket_types ON ticket_types.id = subtypes.ticket_type_id").
		Joins("LEFT JOIN users ON users.id = tickets.creator_id").
		Joins("LEFT JOIN towers ON towers.id = tickets.tower_id").
		Joins("LEFT JOIN floors ON floors.id = tickets.floor_id").
		Where("tickets.id = ?", ticketID).
		Scan(&view)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to load ticket view: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	view.ID = ticketID
	return &view, nil
}

func (r *DetailReader) LogEntries(ctx context.Context, ticketID uint, limit int) ([]dto.LogEntryView, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []dto.LogEntryView
	query := tx.
		Table("ticket_log").
		Select(`ticket_log.id,
			ticket_log.occurred_at,
			ticket_log.description,
			ticket_log.kind,
			ticket_log.task_at_entry,
			ticket_log.task_to_perform,
			ticket_log.result_id,
			ticket_log.comment,
			ticket_log.user_id,
			ticket_log.responsible_id,
			users.name AS responsible_name,
			users.account AS responsible_account`).
		Joins("LEFT JOIN users ON users.id = ticket_log.responsible_id").
		Where("ticket_log.ticket_id = ?", ticketID).
		Order("ticket_log.occurred_at DESC, ticket_log.id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load log entries: %w", err)
	}

	return rows, nil
}

// ActionRows returns the task's outgoing results in destination-task
// order. HasRole reflects the caller's role scope on each result's
// destination task; the gating attributes come from the destination task
// and its owning process.
func (r *DetailReader) ActionRows(ctx context.Context, userID, taskID uint) ([]usecases.ActionRowView, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	type actionRow struct {
		ResultID     uint
		Name         string
		SourceTaskID uint
		DestTaskID   uint
		TaskName     string
		TaskKind     string
		ProcessName  string
		CostExempt   bool
		HasRole      bool
	}

	var rows []actionRow
	err := tx.
		Table("results").
		Select(`results.id AS result_id,
			results.name,
			results.source_task_id,
			results.dest_task_id,
			tasks.name AS task_name,
			tasks.kind AS task_kind,
			processes.name AS process_name,
			processes.cost_exempt,
			EXISTS (
				SELECT 1 FROM role_task_scopes
				JOIN user_roles ON user_roles.role_task_id = role_task_scopes.role_task_id
				WHERE user_roles.user_id = ? AND role_task_scopes.task_id = results.dest_task_id
			) AS has_role`, userID).
		Joins("JOIN tasks ON tasks.id = results.dest_task_id").
		Joins("JOIN processes ON processes.id = tasks.process_id").
		Where("results.source_task_id = ?", taskID).
		Order("results.dest_task_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load action rows: %w", err)
	}

	views := make([]usecases.ActionRowView, 0, len(rows))
	for _, row := range rows {
		kind := workflow.TaskKind(row.TaskKind)
		if !kind.IsValid() {
			kind = workflow.DeriveTaskKind(row.TaskName)
		}
		views = append(views, usecases.ActionRowView{
			Result: dto.AvailableResult{
				ResultID:     row.ResultID,
				Name:         row.Name,
				SourceTaskID: row.SourceTaskID,
				DestTaskID:   row.DestTaskID,
				TaskName:     row.TaskName,
				ProcessName:  row.ProcessName,
				HasRole:      row.HasRole,
			},
			TaskKind:   kind,
			CostExempt: row.CostExempt,
		})
	}

	return views, nil
}

func (r *DetailReader) Attachments(ctx context.Context, ticketID uint) ([]dto.AttachmentView, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	type attachmentRow struct {
		ID         uint
		Name       string
		PathRef    string
		Size       int64
		MimeType   string
		LogEntryID uint
		OccurredAt time.Time
	}

	var rows []attachmentRow
	err := tx.
		Table("ticket_files").
		Select(`ticket_files.id,
			ticket_files.name,
			ticket_files.path_ref,
			ticket_files.size,
			ticket_files.mime_type,
			ticket_files.log_entry_id,
			ticket_log.occurred_at`).
		Joins("JOIN ticket_log ON ticket_log.id = ticket_files.log_entry_id").
		Where("ticket_log.ticket_id = ?", ticketID).
		Order("ticket_log.occurred_at DESC, ticket_files.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}

	views := make([]dto.AttachmentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, dto.AttachmentView{
			ID:         row.ID,
			Name:       row.Name,
			PathRef:    row.PathRef,
			Size:       row.Size,
			MimeType:   row.MimeType,
			LogEntryID: row.LogEntryID,
			OccurredAt: row.OccurredAt,
		})
	}

	return views, nil
}

func (r *DetailReader) FieldValues(ctx context.Context, ticketID uint) ([]dto.FieldValueView, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []dto.FieldValueView
	err := tx.
		Table("ticket_field_values").
		Select(`ticket_field_values.id AS value_id,
			ticket_field_values.field_id,
			ticket_field_values.value,
			fields.label,
			fields.kind,
			subtype_fields.display_order AS "order"`).
		Joins("JOIN fields ON fields.id = ticket_field_values.field_id").
		Joins("JOIN tickets ON tickets.id = ticket_field_values.ticket_id").
		Joins("LEFT JOIN subtype_fields ON subtype_fields.field_id = ticket_field_values.field_id AND subtype_fields.subtype_id = tickets.subtype_id").
		Where("ticket_field_values.ticket_id = ?", ticketID).
		Order("subtype_fields.display_order ASC, ticket_field_values.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load field values: %w", err)
	}

	return rows, nil
}
