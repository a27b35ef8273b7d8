package ticket

import "context"

// Repository persists tickets. Save and Append honor a transaction placed
// in the context by the transaction manager.
type Repository interface {
	Save(ctx context.Context, t *Ticket) error

	// Update persists the ticket with an optimistic version check against
	// the version the entity was loaded at. A concurrent transition makes
	// the check fail with a conflict error and no rows written.
	Update(ctx context.Context, t *Ticket, loadedVersion int) error

	FindByID(ctx context.Context, ticketID uint) (*Ticket, error)

	// BindOwner records the creator in the ticket ownership join used for
	// department visibility.
	BindOwner(ctx context.Context, ticketID, userID uint) error
}

// LogRepository appends and reads the audit trail.
type LogRepository interface {
	Append(ctx context.Context, entry *LogEntry) error

	// ListByTicket returns entries newest first, capped at limit
	// (0 means no cap).
	ListByTicket(ctx context.Context, ticketID uint, limit int) ([]*LogEntry, error)
}

// AttachmentRepository persists attachment rows and reads them through
// the owning log entries.
type AttachmentRepository interface {
	Save(ctx context.Context, att *Attachment) error

	// ListByTicket returns attachments reachable via the ticket's log
	// entries, newest entry first.
	ListByTicket(ctx context.Context, ticketID uint) ([]*Attachment, error)

	// FindByTicket returns the attachment only when it is reachable via
	// the given ticket's log entries.
	FindByTicket(ctx context.Context, ticketID, attachmentID uint) (*Attachment, error)
}

// FieldValueRepository persists dynamic field values.
type FieldValueRepository interface {
	Save(ctx context.Context, v *FieldValue) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*FieldValue, error)
}
