package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/infrastructure/persistence/mappers"
	"fixdesk/internal/infrastructure/persistence/models"
	"fixdesk/internal/shared/db"
	"fixdesk/internal/shared/errors"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

// Update persists the ticket guarded by an optimistic version check. The
// write only lands when the stored row still carries the version the
// entity was loaded at.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket, loadedVersion int) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ? AND version = ?", model.ID, loadedVersion).
		Updates(map[string]interface{}{
			"current_task_id": model.CurrentTaskID,
			"completed_at":    model.CompletedAt,
			"rating":          model.Rating,
			"closed":          model.Closed,
			"billed":          model.Billed,
			"currency":        model.Currency,
			"amount":          model.Amount,
			"version":         model.Version,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("ticket was modified concurrently")
	}

	return nil
}

func (r *TicketRepository) FindByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) BindOwner(ctx context.Context, ticketID, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	owner := &models.TicketOwnerModel{TicketID: ticketID, UserID: userID}
	if err := tx.Create(owner).Error; err != nil {
		return fmt.Errorf("failed to bind ticket owner: %w", err)
	}

	return nil
}
