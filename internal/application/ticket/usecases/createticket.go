package usecases

import (
	"context"
	"io"
	"time"
	"unicode/utf8"

	"fixdesk/internal/domain/access"
	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/domain/workflow"
	"fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
	"fixdesk/internal/shared/sanitize"
)

// DynamicValueInput is one submitted dynamic field value. Entries with a
// zero field id are skipped, matching the legacy form behavior.
type DynamicValueInput struct {
	FieldID uint
	Value   string
}

// AttachmentUpload is one file submitted at creation time.
type AttachmentUpload struct {
	Name   string
	Reader io.Reader
}

type CreateTicketCommand struct {
	CreatorID      uint
	ProcessID      uint
	SubtypeID      uint
	TowerID        uint
	FloorID        uint
	LocationDetail string
	Description    string
	DynamicValues  []DynamicValueInput
	Attachments    []AttachmentUpload
}

type CreateTicketResult struct {
	TicketID    uint
	TaskID      uint
	Priority    int
	CreatedAt   time.Time
	EstimatedAt time.Time
}

// CreateTicketUseCase creates a ticket bound to its process's initial
// task, seeds the audit log and persists dynamic values and attachments
// in one transaction. Files stored before a rollback are deleted again.
type CreateTicketUseCase struct {
	resolver   access.Resolver
	catalog    workflow.Catalog
	ticketRepo ticket.Repository
	logRepo    ticket.LogRepository
	attachRepo ticket.AttachmentRepository
	fieldRepo  ticket.FieldValueRepository
	files      FileStore
	tx         TxManager
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	resolver access.Resolver,
	catalog workflow.Catalog,
	ticketRepo ticket.Repository,
	logRepo ticket.LogRepository,
	attachRepo ticket.AttachmentRepository,
	fieldRepo ticket.FieldValueRepository,
	files FileStore,
	tx TxManager,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		resolver:   resolver,
		catalog:    catalog,
		ticketRepo: ticketRepo,
		logRepo:    logRepo,
		attachRepo: attachRepo,
		fieldRepo:  fieldRepo,
		files:      files,
		tx:         tx,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	allowed, err := uc.resolver.CanCreateInProcess(ctx, cmd.CreatorID, cmd.ProcessID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errors.NewPermissionError("no role grants ticket creation in this process")
	}

	subtype, err := uc.catalog.SubtypeByID(ctx, cmd.SubtypeID)
	if err != nil {
		return nil, err
	}
	if subtype.ProcessID != cmd.ProcessID {
		return nil, errors.NewValidationError("subtype does not belong to the requested process")
	}

	initialTask, err := uc.catalog.InitialTask(ctx, cmd.ProcessID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError("no initial task", "process has no tasks configured")
		}
		return nil, err
	}

	values, err := uc.resolveFieldValues(ctx, cmd)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newTicket, err := ticket.NewTicket(
		sanitize.Text(cmd.Description),
		initialTask.ID,
		cmd.SubtypeID,
		subtype.EffectivePriority(),
		subtype.EffectiveSLAHours(),
		ticket.Location{TowerID: cmd.TowerID, FloorID: cmd.FloorID, Detail: cmd.LocationDetail},
		cmd.CreatorID,
		now,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	// Files written before a failed commit have no owning rows left;
	// compensate by removing them again.
	var storedPaths []string
	txErr := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Save(txCtx, newTicket); err != nil {
			return err
		}
		if err := uc.ticketRepo.BindOwner(txCtx, newTicket.ID(), cmd.CreatorID); err != nil {
			return err
		}
		if err := uc.files.EnsureLayout(newTicket.ID()); err != nil {
			return err
		}

		created, err := ticket.NewCreationEntry(newTicket.ID(), initialTask.ID, cmd.CreatorID, newTicket.Description(), now)
		if err != nil {
			return err
		}
		if err := uc.logRepo.Append(txCtx, created); err != nil {
			return err
		}

		for _, v := range values {
			fv := &ticket.FieldValue{FieldID: v.FieldID, TicketID: newTicket.ID(), Value: v.Value}
			if err := uc.fieldRepo.Save(txCtx, fv); err != nil {
				return err
			}
		}

		for _, upload := range cmd.Attachments {
			stored, err := uc.files.Store(newTicket.ID(), upload.Name, upload.Reader)
			if err != nil {
				return err
			}
			storedPaths = append(storedPaths, stored.PathRef)

			if err := uc.appendAttachment(txCtx, newTicket.ID(), initialTask.ID, cmd.CreatorID, upload.Name, stored, now); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		uc.cleanupStoredFiles(storedPaths)
		uc.logger.Errorw("ticket creation rolled back", "error", txErr, "creator_id", cmd.CreatorID)
		return nil, txErr
	}

	uc.logger.Infow("ticket created",
		"ticket_id", newTicket.ID(),
		"process_id", cmd.ProcessID,
		"task_id", initialTask.ID,
		"creator_id", cmd.CreatorID)

	return &CreateTicketResult{
		TicketID:    newTicket.ID(),
		TaskID:      initialTask.ID,
		Priority:    newTicket.Priority(),
		CreatedAt:   newTicket.CreatedAt(),
		EstimatedAt: newTicket.EstimatedAt(),
	}, nil
}

func (uc *CreateTicketUseCase) appendAttachment(ctx context.Context, ticketID, taskID, userID uint, name string, stored *StoredFile, now time.Time) error {
	entry, err := ticket.NewEventEntry(ticketID, taskID, userID, "Attachment: "+name, now)
	if err != nil {
		return err
	}
	if err := uc.logRepo.Append(ctx, entry); err != nil {
		return err
	}

	att, err := ticket.NewAttachment(name, stored.PathRef, stored.Size, stored.MimeType, entry.ID())
	if err != nil {
		return err
	}
	return uc.attachRepo.Save(ctx, att)
}

// resolveFieldValues drops empty field ids and rejects fields that do not
// belong to the ticket's subtype.
func (uc *CreateTicketUseCase) resolveFieldValues(ctx context.Context, cmd CreateTicketCommand) ([]DynamicValueInput, error) {
	var submitted []DynamicValueInput
	for _, v := range cmd.DynamicValues {
		if v.FieldID == 0 {
			continue
		}
		submitted = append(submitted, v)
	}
	if len(submitted) == 0 {
		return nil, nil
	}

	fields, err := uc.catalog.DynamicFieldsFor(ctx, cmd.SubtypeID)
	if err != nil {
		return nil, err
	}
	declared := make(map[uint]bool, len(fields))
	for _, f := range fields {
		declared[f.FieldID] = true
	}

	for _, v := range submitted {
		if !declared[v.FieldID] {
			return nil, errors.NewValidationError("dynamic field does not belong to the ticket subtype")
		}
	}
	return submitted, nil
}

func (uc *CreateTicketUseCase) cleanupStoredFiles(paths []string) {
	for _, p := range paths {
		if err := uc.files.Delete(p); err != nil {
			uc.logger.Warnw("failed to remove orphaned stored file", "path", p, "error", err)
		}
	}
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	if cmd.CreatorID == 0 {
		return errors.NewValidationError("creator ID is required")
	}
	if cmd.ProcessID == 0 {
		return errors.NewValidationError("process ID is required")
	}
	if cmd.SubtypeID == 0 {
		return errors.NewValidationError("subtype ID is required")
	}
	if cmd.TowerID == 0 {
		return errors.NewValidationError("tower ID is required")
	}
	if cmd.FloorID == 0 {
		return errors.NewValidationError("floor ID is required")
	}
	if len(cmd.Description) == 0 {
		return errors.NewValidationError("description is required")
	}
	if utf8.RuneCountInString(cmd.Description) > ticket.MaxDescriptionLen {
		return errors.NewValidationError("description exceeds maximum length")
	}
	for _, upload := range cmd.Attachments {
		if upload.Name == "" || upload.Reader == nil {
			return errors.NewValidationError("attachment upload is incomplete")
		}
	}
	return nil
}
