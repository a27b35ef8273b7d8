package usecases

import (
	"context"
	"io"
	"strings"

	"fixdesk/internal/application/ticket/dto"
	"fixdesk/internal/domain/access"
	"fixdesk/internal/domain/ticket"
	"fixdesk/internal/domain/workflow"
	"fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
)

type mockResolver struct {
	roleTasksForFunc       func(ctx context.Context, userID uint) ([]*access.RoleTask, error)
	canActOnTaskFunc       func(ctx context.Context, userID, taskID uint) (bool, error)
	isHelpdeskFunc         func(ctx context.Context, userID uint) (bool, error)
	canCreateInProcessFunc func(ctx context.Context, userID, processID uint) (bool, error)
	canAddCostFunc         func(ctx context.Context, userID, taskID uint) (bool, error)
	hasPrivilegeFunc       func(ctx context.Context, userID, privilegeID uint) (bool, error)
}

func (m *mockResolver) RoleTasksFor(ctx context.Context, userID uint) ([]*access.RoleTask, error) {
	if m.roleTasksForFunc != nil {
		return m.roleTasksForFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockResolver) CanActOnTask(ctx context.Context, userID, taskID uint) (bool, error) {
	if m.canActOnTaskFunc != nil {
		return m.canActOnTaskFunc(ctx, userID, taskID)
	}
	return false, nil
}

func (m *mockResolver) IsHelpdesk(ctx context.Context, userID uint) (bool, error) {
	if m.isHelpdeskFunc != nil {
		return m.isHelpdeskFunc(ctx, userID)
	}
	return false, nil
}

func (m *mockResolver) CanCreateInProcess(ctx context.Context, userID, processID uint) (bool, error) {
	if m.canCreateInProcessFunc != nil {
		return m.canCreateInProcessFunc(ctx, userID, processID)
	}
	return false, nil
}

func (m *mockResolver) CanAddCost(ctx context.Context, userID, taskID uint) (bool, error) {
	if m.canAddCostFunc != nil {
		return m.canAddCostFunc(ctx, userID, taskID)
	}
	return false, nil
}

func (m *mockResolver) HasPrivilege(ctx context.Context, userID, privilegeID uint) (bool, error) {
	if m.hasPrivilegeFunc != nil {
		return m.hasPrivilegeFunc(ctx, userID, privilegeID)
	}
	return false, nil
}

type mockCatalog struct {
	processByIDFunc      func(ctx context.Context, processID uint) (*workflow.Process, error)
	taskByIDFunc         func(ctx context.Context, taskID uint) (*workflow.Task, error)
	initialTaskFunc      func(ctx context.Context, processID uint) (*workflow.Task, error)
	resultByIDFunc       func(ctx context.Context, resultID uint) (*workflow.Result, error)
	resultsForTaskFunc   func(ctx context.Context, taskID uint) ([]*workflow.Result, error)
	subtypeByIDFunc      func(ctx context.Context, subtypeID uint) (*workflow.Subtype, error)
	dynamicFieldsForFunc func(ctx context.Context, subtypeID uint) ([]*workflow.DynamicField, error)
}

func (m *mockCatalog) ProcessByID(ctx context.Context, processID uint) (*workflow.Process, error) {
	return m.processByIDFunc(ctx, processID)
}

func (m *mockCatalog) TaskByID(ctx context.Context, taskID uint) (*workflow.Task, error) {
	return m.taskByIDFunc(ctx, taskID)
}

func (m *mockCatalog) InitialTask(ctx context.Context, processID uint) (*workflow.Task, error) {
	return m.initialTaskFunc(ctx, processID)
}

func (m *mockCatalog) ResultByID(ctx context.Context, resultID uint) (*workflow.Result, error) {
	return m.resultByIDFunc(ctx, resultID)
}

func (m *mockCatalog) ResultsForTask(ctx context.Context, taskID uint) ([]*workflow.Result, error) {
	return m.resultsForTaskFunc(ctx, taskID)
}

func (m *mockCatalog) SubtypeByID(ctx context.Context, subtypeID uint) (*workflow.Subtype, error) {
	return m.subtypeByIDFunc(ctx, subtypeID)
}

func (m *mockCatalog) DynamicFieldsFor(ctx context.Context, subtypeID uint) ([]*workflow.DynamicField, error) {
	if m.dynamicFieldsForFunc != nil {
		return m.dynamicFieldsForFunc(ctx, subtypeID)
	}
	return nil, nil
}

type mockTicketRepository struct {
	saveFunc      func(ctx context.Context, t *ticket.Ticket) error
	updateFunc    func(ctx context.Context, t *ticket.Ticket, loadedVersion int) error
	findByIDFunc  func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	bindOwnerFunc func(ctx context.Context, ticketID, userID uint) error
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket, loadedVersion int) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, t, loadedVersion)
	}
	return nil
}

func (m *mockTicketRepository) FindByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	return m.findByIDFunc(ctx, ticketID)
}

func (m *mockTicketRepository) BindOwner(ctx context.Context, ticketID, userID uint) error {
	if m.bindOwnerFunc != nil {
		return m.bindOwnerFunc(ctx, ticketID, userID)
	}
	return nil
}

type mockLogRepository struct {
	appendFunc       func(ctx context.Context, entry *ticket.LogEntry) error
	listByTicketFunc func(ctx context.Context, ticketID uint, limit int) ([]*ticket.LogEntry, error)

	appended []*ticket.LogEntry
}

func (m *mockLogRepository) Append(ctx context.Context, entry *ticket.LogEntry) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, entry)
	}
	if entry.ID() == 0 {
		if err := entry.SetID(uint(len(m.appended) + 1)); err != nil {
			return err
		}
	}
	m.appended = append(m.appended, entry)
	return nil
}

func (m *mockLogRepository) ListByTicket(ctx context.Context, ticketID uint, limit int) ([]*ticket.LogEntry, error) {
	if m.listByTicketFunc != nil {
		return m.listByTicketFunc(ctx, ticketID, limit)
	}
	return nil, nil
}

type mockAttachmentRepository struct {
	saveFunc         func(ctx context.Context, att *ticket.Attachment) error
	findByTicketFunc func(ctx context.Context, ticketID, attachmentID uint) (*ticket.Attachment, error)

	saved []*ticket.Attachment
}

func (m *mockAttachmentRepository) Save(ctx context.Context, att *ticket.Attachment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, att)
	}
	m.saved = append(m.saved, att)
	return nil
}

func (m *mockAttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	return m.saved, nil
}

func (m *mockAttachmentRepository) FindByTicket(ctx context.Context, ticketID, attachmentID uint) (*ticket.Attachment, error) {
	if m.findByTicketFunc != nil {
		return m.findByTicketFunc(ctx, ticketID, attachmentID)
	}
	return nil, errors.NewNotFoundError("attachment not found")
}

type mockFieldValueRepository struct {
	saveFunc func(ctx context.Context, v *ticket.FieldValue) error

	saved []*ticket.FieldValue
}

func (m *mockFieldValueRepository) Save(ctx context.Context, v *ticket.FieldValue) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, v)
	}
	m.saved = append(m.saved, v)
	return nil
}

func (m *mockFieldValueRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.FieldValue, error) {
	return m.saved, nil
}

type mockFileStore struct {
	ensureLayoutFunc func(ticketID uint) error
	storeFunc        func(ticketID uint, originalName string, r io.Reader) (*StoredFile, error)
	openFunc         func(pathRef string) (io.ReadCloser, error)
	deleteFunc       func(pathRef string) error

	deleted []string
}

func (m *mockFileStore) EnsureLayout(ticketID uint) error {
	if m.ensureLayoutFunc != nil {
		return m.ensureLayoutFunc(ticketID)
	}
	return nil
}

func (m *mockFileStore) Store(ticketID uint, originalName string, r io.Reader) (*StoredFile, error) {
	if m.storeFunc != nil {
		return m.storeFunc(ticketID, originalName, r)
	}
	return &StoredFile{PathRef: "tickets/1/other/" + originalName, Size: 3, MimeType: "application/octet-stream"}, nil
}

func (m *mockFileStore) Open(pathRef string) (io.ReadCloser, error) {
	if m.openFunc != nil {
		return m.openFunc(pathRef)
	}
	return io.NopCloser(strings.NewReader("content")), nil
}

func (m *mockFileStore) Delete(pathRef string) error {
	m.deleted = append(m.deleted, pathRef)
	if m.deleteFunc != nil {
		return m.deleteFunc(pathRef)
	}
	return nil
}

func (m *mockFileStore) List(ticketID uint) ([]string, error) {
	return nil, nil
}

type mockDetailReader struct {
	ticketViewFunc  func(ctx context.Context, ticketID uint) (*dto.TicketView, error)
	logEntriesFunc  func(ctx context.Context, ticketID uint, limit int) ([]dto.LogEntryView, error)
	actionRowsFunc  func(ctx context.Context, userID, taskID uint) ([]ActionRowView, error)
	attachmentsFunc func(ctx context.Context, ticketID uint) ([]dto.AttachmentView, error)
	fieldValuesFunc func(ctx context.Context, ticketID uint) ([]dto.FieldValueView, error)
}

func (m *mockDetailReader) TicketView(ctx context.Context, ticketID uint) (*dto.TicketView, error) {
	return m.ticketViewFunc(ctx, ticketID)
}

func (m *mockDetailReader) LogEntries(ctx context.Context, ticketID uint, limit int) ([]dto.LogEntryView, error) {
	if m.logEntriesFunc != nil {
		return m.logEntriesFunc(ctx, ticketID, limit)
	}
	return nil, nil
}

func (m *mockDetailReader) ActionRows(ctx context.Context, userID, taskID uint) ([]ActionRowView, error) {
	if m.actionRowsFunc != nil {
		return m.actionRowsFunc(ctx, userID, taskID)
	}
	return nil, nil
}

func (m *mockDetailReader) Attachments(ctx context.Context, ticketID uint) ([]dto.AttachmentView, error) {
	if m.attachmentsFunc != nil {
		return m.attachmentsFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockDetailReader) FieldValues(ctx context.Context, ticketID uint) ([]dto.FieldValueView, error) {
	if m.fieldValuesFunc != nil {
		return m.fieldValuesFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockBoardReader struct {
	visibleTicketsFunc func(ctx context.Context, userID uint) ([]dto.BoardTicket, error)
	countByTaskFunc    func(ctx context.Context, userID, taskID uint) (int64, error)
	columnsForFunc     func(ctx context.Context, userID uint) ([]dto.BoardColumn, error)
}

func (m *mockBoardReader) VisibleTickets(ctx context.Context, userID uint) ([]dto.BoardTicket, error) {
	return m.visibleTicketsFunc(ctx, userID)
}

func (m *mockBoardReader) CountByTask(ctx context.Context, userID, taskID uint) (int64, error) {
	if m.countByTaskFunc != nil {
		return m.countByTaskFunc(ctx, userID, taskID)
	}
	return 0, nil
}

func (m *mockBoardReader) ColumnsFor(ctx context.Context, userID uint) ([]dto.BoardColumn, error) {
	return m.columnsForFunc(ctx, userID)
}

type mockDetailCache struct {
	invalidateFunc func(ctx context.Context, ticketID uint) error

	invalidated []uint
}

func (m *mockDetailCache) InvalidateTicket(ctx context.Context, ticketID uint) error {
	m.invalidated = append(m.invalidated, ticketID)
	if m.invalidateFunc != nil {
		return m.invalidateFunc(ctx, ticketID)
	}
	return nil
}

type mockCatalogOptionsReader struct {
	creatableProcessesFunc func(ctx context.Context, userID uint) ([]dto.ProcessOption, error)
	towersFunc             func(ctx context.Context, userID uint) ([]dto.TowerOption, error)
}

func (m *mockCatalogOptionsReader) CreatableProcesses(ctx context.Context, userID uint) ([]dto.ProcessOption, error) {
	if m.creatableProcessesFunc != nil {
		return m.creatableProcessesFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockCatalogOptionsReader) Towers(ctx context.Context, userID uint) ([]dto.TowerOption, error) {
	if m.towersFunc != nil {
		return m.towersFunc(ctx, userID)
	}
	return nil, nil
}

// mockTxManager runs the function directly. A non-nil err makes the
// "transaction" fail after the function ran, exercising compensation.
type mockTxManager struct {
	err error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.err
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)                   {}
func (noopLogger) Info(msg string, args ...any)                    {}
func (noopLogger) Warn(msg string, args ...any)                    {}
func (noopLogger) Error(msg string, args ...any)                   {}
func (noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (noopLogger) With(args ...interface{}) logger.Interface       { return noopLogger{} }
func (noopLogger) Named(name string) logger.Interface              { return noopLogger{} }
