package usecases

import (
	"context"
	"io"
	"time"

	"fixdesk/internal/application/ticket/dto"
	"fixdesk/internal/domain/workflow"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type ExecuteResultExecutor interface {
	Execute(ctx context.Context, cmd ExecuteResultCommand) error
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error)
}

type AddAttachmentExecutor interface {
	Execute(ctx context.Context, cmd AddAttachmentCommand) (*AddAttachmentResult, error)
}

type GetTicketDetailExecutor interface {
	Execute(ctx context.Context, query GetTicketDetailQuery) (*dto.TicketDetailView, error)
}

type ListBoardExecutor interface {
	Execute(ctx context.Context, query ListBoardQuery) (*dto.BoardView, error)
}

type DownloadAttachmentExecutor interface {
	Execute(ctx context.Context, query DownloadAttachmentQuery) (*AttachmentDownload, error)
}

type ListCreationCatalogExecutor interface {
	Execute(ctx context.Context, query ListCreationCatalogQuery) (*dto.CreationCatalogView, error)
}

type ListSubtypeFieldsExecutor interface {
	Execute(ctx context.Context, query ListSubtypeFieldsQuery) ([]dto.DynamicFieldView, error)
}

// TxManager runs a function inside a database transaction exposed
// through the context.
type TxManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// StoredFile describes a file placed in the ticket repository.
type StoredFile struct {
	PathRef  string
	Size     int64
	MimeType string
	StoredAt time.Time
}

// FileStore is the external file-storage collaborator. Files are placed
// under a per-ticket layout with type-derived subdirectories.
type FileStore interface {
	EnsureLayout(ticketID uint) error
	Store(ticketID uint, originalName string, r io.Reader) (*StoredFile, error)
	Open(pathRef string) (io.ReadCloser, error)
	Delete(pathRef string) error
	List(ticketID uint) ([]string, error)
}

// DetailReader serves the denormalized read side of the detail view.
type DetailReader interface {
	// TicketView returns the joined projection, or a not-found error.
	TicketView(ctx context.Context, ticketID uint) (*dto.TicketView, error)

	// LogEntries returns entries newest first capped at limit.
	LogEntries(ctx context.Context, ticketID uint, limit int) ([]dto.LogEntryView, error)

	// ActionRows returns the current task's results ordered by
	// destination task id, annotated with the caller's destination-task
	// role and the gating attributes of the joined task and process.
	ActionRows(ctx context.Context, userID, taskID uint) ([]ActionRowView, error)

	Attachments(ctx context.Context, ticketID uint) ([]dto.AttachmentView, error)

	FieldValues(ctx context.Context, ticketID uint) ([]dto.FieldValueView, error)
}

// ActionRowView pairs the presentation fields of an available result with
// the attributes the resolution gate scans.
type ActionRowView struct {
	Result     dto.AvailableResult
	TaskKind   workflow.TaskKind
	CostExempt bool
}

// BoardReader serves the board read side. Implementations must keep
// VisibleTickets and CountByTask in agreement: the count for a task
// equals the number of visible tickets currently at that task.
type BoardReader interface {
	VisibleTickets(ctx context.Context, userID uint) ([]dto.BoardTicket, error)
	CountByTask(ctx context.Context, userID, taskID uint) (int64, error)
	ColumnsFor(ctx context.Context, userID uint) ([]dto.BoardColumn, error)
}

// CatalogOptionsReader serves the creation form selectors. Processes are
// restricted to those where the user holds a role with the create
// capability; types and subtypes come nested under their process. Towers
// are the active ones reachable through those processes, each carrying
// its active floors.
type CatalogOptionsReader interface {
	CreatableProcesses(ctx context.Context, userID uint) ([]dto.ProcessOption, error)
	Towers(ctx context.Context, userID uint) ([]dto.TowerOption, error)
}

// DetailCache invalidates the cached per-ticket detail snapshot after a
// write. A stale current task must never be served after a transition.
type DetailCache interface {
	InvalidateTicket(ctx context.Context, ticketID uint) error
}
