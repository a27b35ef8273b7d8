package ticket

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// EntryKind tags the event recorded by a log entry. The numeric values
// are part of the stored data contract.
type EntryKind int

const (
	// EntryEvent covers attachments and other point events.
	EntryEvent EntryKind = 1
	// EntryTransition records a result execution moving the ticket.
	EntryTransition EntryKind = 2
	// EntryCreation is written once when the ticket is created.
	EntryCreation EntryKind = 3
	// EntryComment is a free-text comment.
	EntryComment EntryKind = 4
)

// MaxCommentLen bounds free-text comments, measured in characters.
const MaxCommentLen = 2000

// LogEntry is one immutable record in a ticket's audit trail. TaskAtEntry
// and TaskToPerform snapshot the before/after of a transition; for
// non-transition entries both equal the ticket's task at write time. The
// log is the only source of historical task positions.
type LogEntry struct {
	id            uint
	occurredAt    time.Time
	description   string
	ticketID      uint
	taskToPerform uint
	taskAtEntry   uint
	resultID      uint
	kind          EntryKind
	comment       string
	userID        uint
	responsibleID uint
	sent          bool
}

// NewCreationEntry records the ticket's creation at its initial task.
func NewCreationEntry(ticketID, initialTaskID, userID uint, comment string, now time.Time) (*LogEntry, error) {
	return newEntry(ticketID, "Ticket created", initialTaskID, initialTaskID, 0, EntryCreation, comment, userID, now)
}

// NewTransitionEntry records a result execution. The description is the
// result's display name.
func NewTransitionEntry(ticketID, fromTaskID, toTaskID, resultID uint, resultName, comment string, userID uint, now time.Time) (*LogEntry, error) {
	if resultID == 0 {
		return nil, fmt.Errorf("result ID is required for a transition entry")
	}
	if fromTaskID == toTaskID {
		return nil, fmt.Errorf("transition entry requires distinct source and destination tasks")
	}
	return newEntry(ticketID, resultName, toTaskID, fromTaskID, resultID, EntryTransition, comment, userID, now)
}

// NewCommentEntry records a free-text comment. The ticket row is never
// touched by comments.
func NewCommentEntry(ticketID, currentTaskID, userID uint, text string, now time.Time) (*LogEntry, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("comment text is required")
	}
	if utf8.RuneCountInString(text) > MaxCommentLen {
		return nil, fmt.Errorf("comment exceeds maximum length of %d characters", MaxCommentLen)
	}
	return newEntry(ticketID, text, currentTaskID, currentTaskID, 0, EntryComment, text, userID, now)
}

// NewEventEntry records a point event such as an attachment upload.
func NewEventEntry(ticketID, currentTaskID, userID uint, description string, now time.Time) (*LogEntry, error) {
	return newEntry(ticketID, description, currentTaskID, currentTaskID, 0, EntryEvent, "", userID, now)
}

func newEntry(ticketID uint, description string, taskToPerform, taskAtEntry, resultID uint, kind EntryKind, comment string, userID uint, now time.Time) (*LogEntry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if taskToPerform == 0 || taskAtEntry == 0 {
		return nil, fmt.Errorf("task snapshot is required")
	}
	return &LogEntry{
		occurredAt:    now,
		description:   description,
		ticketID:      ticketID,
		taskToPerform: taskToPerform,
		taskAtEntry:   taskAtEntry,
		resultID:      resultID,
		kind:          kind,
		comment:       comment,
		userID:        userID,
		responsibleID: userID,
		sent:          false,
	}, nil
}

// ReconstructLogEntry rehydrates an entry from storage.
func ReconstructLogEntry(
	id uint,
	occurredAt time.Time,
	description string,
	ticketID uint,
	taskToPerform uint,
	taskAtEntry uint,
	resultID uint,
	kind EntryKind,
	comment string,
	userID uint,
	responsibleID uint,
	sent bool,
) (*LogEntry, error) {
	if id == 0 {
		return nil, fmt.Errorf("log entry ID cannot be zero")
	}
	return &LogEntry{
		id:            id,
		occurredAt:    occurredAt,
		description:   description,
		ticketID:      ticketID,
		taskToPerform: taskToPerform,
		taskAtEntry:   taskAtEntry,
		resultID:      resultID,
		kind:          kind,
		comment:       comment,
		userID:        userID,
		responsibleID: responsibleID,
		sent:          sent,
	}, nil
}

func (e *LogEntry) ID() uint            { return e.id }
func (e *LogEntry) OccurredAt() time.Time { return e.occurredAt }
func (e *LogEntry) Description() string { return e.description }
func (e *LogEntry) TicketID() uint      { return e.ticketID }
func (e *LogEntry) TaskToPerform() uint { return e.taskToPerform }
func (e *LogEntry) TaskAtEntry() uint   { return e.taskAtEntry }
func (e *LogEntry) ResultID() uint      { return e.resultID }
func (e *LogEntry) Kind() EntryKind     { return e.kind }
func (e *LogEntry) Comment() string     { return e.comment }
func (e *LogEntry) UserID() uint        { return e.userID }
func (e *LogEntry) ResponsibleID() uint { return e.responsibleID }
func (e *LogEntry) Sent() bool          { return e.sent }

// SetID assigns the storage-generated id once.
func (e *LogEntry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("log entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("log entry ID cannot be zero")
	}
	e.id = id
	return nil
}
