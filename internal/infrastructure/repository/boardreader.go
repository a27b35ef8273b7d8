package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fixdesk/internal/application/ticket/dto"
	"fixdesk/internal/shared/config"
	"fixdesk/internal/shared/db"
)

// boardCutoffLayout parses the configured board cutoff date.
const boardCutoffLayout = "2006-01-02"

// BoardReader serves the Kanban board queries. A ticket is visible when
// the user owns it, when it was created by someone in the user's
// department, or when the user holds a helpdesk role for the ticket's
// process. Ancient, rated and voided tickets are filtered out, as are
// tickets parked on the configured excluded tasks.
type BoardReader struct {
	db       *gorm.DB
	cutoff   time.Time
	excluded []uint
}

func NewBoardReader(gdb *gorm.DB, cfg *config.BoardConfig) (*BoardReader, error) {
	cutoff, err := time.Parse(boardCutoffLayout, cfg.CutoffDate)
	if err != nil {
		return nil, fmt.Errorf("invalid board cutoff date %q: %w", cfg.CutoffDate, err)
	}

	return &BoardReader{
		db:       gdb,
		cutoff:   cutoff,
		excluded: cfg.ExcludedTaskIDs,
	}, nil
}

func (r *BoardReader) VisibleTickets(ctx context.Context, userID uint) ([]dto.BoardTicket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []dto.BoardTicket
	query := r.visibilityScope(tx, userID).
		Select(`tickets.id,
			tickets.description,
			tickets.current_task_id AS task_id,
			tickets.priority,
			tickets.created_at,
			tickets.estimated_at,
			processes.id AS process_id,
			processes.name AS process_name`).
		Order("tickets.created_at ASC, tickets.id ASC")

	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list board tickets: %w", err)
	}

	return rows, nil
}

func (r *BoardReader) CountByTask(ctx context.Context, userID, taskID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := r.visibilityScope(tx, userID).
		Where("tickets.current_task_id = ?", taskID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count board tickets: %w", err)
	}

	return count, nil
}

// ColumnsFor lists the task columns of every process the user holds a
// role in, in kanban display order.
func (r *BoardReader) ColumnsFor(ctx context.Context, userID uint) ([]dto.BoardColumn, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var columns []dto.BoardColumn
	query := tx.
		Table("tasks").
		Select(`tasks.id AS task_id,
			tasks.name AS task_name,
			tasks.display_order,
			processes.id AS process_id,
			processes.name AS process_name`).
		Joins("JOIN processes ON processes.id = tasks.process_id").
		Where(`processes.id IN (
			SELECT role_tasks.process_id FROM role_tasks
			JOIN user_roles ON user_roles.role_task_id = role_tasks.id
			WHERE user_roles.user_id = ?
		)`, userID).
		Order("processes.id ASC, tasks.display_order ASC, tasks.id ASC")

	if len(r.excluded) > 0 {
		query = query.Where("tasks.id NOT IN ?", r.excluded)
	}

	if err := query.Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("failed to list board columns: %w", err)
	}

	return columns, nil
}

// visibilityScope applies the shared board filters. VisibleTickets and
// CountByTask both build on it so their answers always agree.
func (r *BoardReader) visibilityScope(tx *gorm.DB, userID uint) *gorm.DB {
	query := tx.
		Table("tickets").
		Joins("JOIN tasks ON tasks.id = tickets.current_task_id").
		Joins("JOIN processes ON processes.id = tasks.process_id").
		Where("tickets.rating = ?", 0).
		Where("tickets.closed <> ?", -1).
		Where("tickets.created_at >= ?", r.cutoff).
		Where(`(
			tickets.id IN (
				SELECT ticket_owners.ticket_id FROM ticket_owners WHERE ticket_owners.user_id = ?
			)
			OR tickets.creator_id IN (
				SELECT peers.id FROM users peers
				JOIN users self ON self.department_id = peers.department_id
				WHERE self.id = ?
			)
			OR processes.id IN (
				SELECT role_tasks.process_id FROM role_tasks
				JOIN user_roles ON user_roles.role_task_id = role_tasks.id
				WHERE user_roles.user_id = ? AND role_tasks.helpdesk = ?
			)
		)`, userID, userID, userID, true)

	if len(r.excluded) > 0 {
		query = query.Where("tickets.current_task_id NOT IN ?", r.excluded)
	}

	return query
}
