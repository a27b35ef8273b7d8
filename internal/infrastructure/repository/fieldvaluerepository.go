package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/infrastructure/persistence/models"
	"fixdesk/internal/shared/db"
)

type FieldValueRepository struct {
	db *gorm.DB
}

func NewFieldValueRepository(db *gorm.DB) *FieldValueRepository {
	return &FieldValueRepository{db: db}
}

func (r *FieldValueRepository) Save(ctx context.Context, v *ticket.FieldValue) error {
	model := &models.FieldValueModel{
		ID:       v.ID,
		FieldID:  v.FieldID,
		TicketID: v.TicketID,
		Value:    v.Value,
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save field value: %w", err)
	}

	v.ID = model.ID
	return nil
}

func (r *FieldValueRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.FieldValue, error) {
	var rows []models.FieldValueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list field values: %w", err)
	}

	values := make([]*ticket.FieldValue, 0, len(rows))
	for i := range rows {
		values = append(values, &ticket.FieldValue{
			ID:       rows[i].ID,
			FieldID:  rows[i].FieldID,
			TicketID: rows[i].TicketID,
			Value:    rows[i].Value,
		})
	}

	return values, nil
}
