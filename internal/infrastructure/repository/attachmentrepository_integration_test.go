package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/infrastructure/persistence/models"
	"fixdesk/internal/shared/errors"
)

func TestAttachmentRepository_FindByTicket(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	when := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.LogEntryModel{
		ID: 1, OccurredAt: when, Description: "adjunto", TicketID: 100,
		TaskToPerform: 10, TaskAtEntry: 10, Kind: 1, UserID: 7, ResponsibleID: 7,
	}).Error)
	require.NoError(t, db.Create(&models.LogEntryModel{
		ID: 2, OccurredAt: when, Description: "adjunto", TicketID: 200,
		TaskToPerform: 10, TaskAtEntry: 10, Kind: 1, UserID: 7, ResponsibleID: 7,
	}).Error)

	require.NoError(t, db.Create(&models.AttachmentModel{
		ID: 5, Name: "factura.pdf", PathRef: "tickets/100/pdfs/factura_123.pdf",
		Size: 2048, MimeType: "application/pdf", LogEntryID: 1,
	}).Error)
	require.NoError(t, db.Create(&models.AttachmentModel{
		ID: 6, Name: "ajeno.png", PathRef: "tickets/200/images/ajeno_456.png",
		Size: 1024, MimeType: "image/png", LogEntryID: 2,
	}).Error)

	t.Run("returns the attachment scoped to its ticket", func(t *testing.T) {
		att, err := repo.FindByTicket(ctx, 100, 5)
		require.NoError(t, err)
		assert.Equal(t, "factura.pdf", att.Name())
		assert.Equal(t, "tickets/100/pdfs/factura_123.pdf", att.PathRef())
		assert.Equal(t, uint(1), att.LogEntryID())
	})

	t.Run("attachment on another ticket reads as absent", func(t *testing.T) {
		_, err := repo.FindByTicket(ctx, 100, 6)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("unknown id reads as absent", func(t *testing.T) {
		_, err := repo.FindByTicket(ctx, 100, 999)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestAttachmentRepository_SaveAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	early := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.LogEntryModel{
		ID: 1, OccurredAt: early, Description: "adjunto", TicketID: 100,
		TaskToPerform: 10, TaskAtEntry: 10, Kind: 1, UserID: 7, ResponsibleID: 7,
	}).Error)
	require.NoError(t, db.Create(&models.LogEntryModel{
		ID: 2, OccurredAt: early.Add(time.Hour), Description: "adjunto", TicketID: 100,
		TaskToPerform: 10, TaskAtEntry: 10, Kind: 1, UserID: 7, ResponsibleID: 7,
	}).Error)

	first, err := ticket.NewAttachment("a.txt", "tickets/100/text/a_1.txt", 3, "text/plain", 1)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))
	assert.NotZero(t, first.ID())

	second, err := ticket.NewAttachment("b.txt", "tickets/100/text/b_2.txt", 3, "text/plain", 2)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	list, err := repo.ListByTicket(ctx, 100)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b.txt", list[0].Name())
	assert.Equal(t, "a.txt", list[1].Name())
}
