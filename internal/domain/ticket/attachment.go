package ticket

import "fmt"

// Attachment is a stored file reference. Attachments are always created
// jointly with a log entry so every file has provenance.
type Attachment struct {
	id         uint
	name       string
	pathRef    string
	size       int64
	mimeType   string
	logEntryID uint
}

// NewAttachment binds a stored file to its log entry.
func NewAttachment(name, pathRef string, size int64, mimeType string, logEntryID uint) (*Attachment, error) {
	if name == "" {
		return nil, fmt.Errorf("attachment name is required")
	}
	if pathRef == "" {
		return nil, fmt.Errorf("attachment path reference is required")
	}
	if logEntryID == 0 {
		return nil, fmt.Errorf("attachment requires an owning log entry")
	}
	return &Attachment{
		name:       name,
		pathRef:    pathRef,
		size:       size,
		mimeType:   mimeType,
		logEntryID: logEntryID,
	}, nil
}

// ReconstructAttachment rehydrates an attachment from storage.
func ReconstructAttachment(id uint, name, pathRef string, size int64, mimeType string, logEntryID uint) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	return &Attachment{
		id:         id,
		name:       name,
		pathRef:    pathRef,
		size:       size,
		mimeType:   mimeType,
		logEntryID: logEntryID,
	}, nil
}

func (a *Attachment) ID() uint         { return a.id }
func (a *Attachment) Name() string     { return a.name }
func (a *Attachment) PathRef() string  { return a.pathRef }
func (a *Attachment) Size() int64      { return a.size }
func (a *Attachment) MimeType() string { return a.mimeType }
func (a *Attachment) LogEntryID() uint { return a.logEntryID }

// SetID assigns the storage-generated id once.
func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}

// FieldValue stores one dynamic field value for a ticket. The field must
// belong to the ticket's subtype; the service boundary enforces it.
type FieldValue struct {
	ID       uint
	FieldID  uint
	TicketID uint
	Value    string
}
