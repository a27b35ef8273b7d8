package models

import "time"

type TicketModel struct {
	ID             uint      `gorm:"primaryKey"`
	Description    string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"not null;index"`
	EstimatedAt    time.Time `gorm:"not null"`
	CompletedAt    *time.Time
	Rating         int     `gorm:"not null;default:0;index"`
	Closed         int     `gorm:"not null;default:0;index"`
	CurrentTaskID  uint    `gorm:"not null;index"`
	SubtypeID      uint    `gorm:"not null;index"`
	Priority       int     `gorm:"not null;default:0"`
	CreatorID      uint    `gorm:"not null;index"`
	Billed         bool    `gorm:"not null;default:false"`
	Currency       string  `gorm:"size:10;not null;default:'LPS'"`
	Amount         float64 `gorm:"not null;default:0"`
	TowerID        uint    `gorm:"index"`
	FloorID        uint
	LocationDetail string `gorm:"size:255"`
	Version        int    `gorm:"not null;default:1"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type LogEntryModel struct {
	ID            uint      `gorm:"primaryKey"`
	OccurredAt    time.Time `gorm:"not null;index"`
	Description   string    `gorm:"type:text;not null"`
	TicketID      uint      `gorm:"not null;index"`
	TaskToPerform uint      `gorm:"not null"`
	TaskAtEntry   uint      `gorm:"not null"`
	ResultID      uint      `gorm:"index"`
	Kind          int       `gorm:"not null;index"`
	Comment       string    `gorm:"type:text"`
	UserID        uint      `gorm:"not null;index"`
	ResponsibleID uint      `gorm:"not null"`
	Sent          bool      `gorm:"not null;default:false"`
}

func (LogEntryModel) TableName() string {
	return "ticket_log"
}

type AttachmentModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:255;not null"`
	PathRef    string `gorm:"size:500;not null"`
	Size       int64  `gorm:"not null;default:0"`
	MimeType   string `gorm:"size:100"`
	LogEntryID uint   `gorm:"not null;index"`
}

func (AttachmentModel) TableName() string {
	return "ticket_files"
}

type FieldValueModel struct {
	ID       uint   `gorm:"primaryKey"`
	FieldID  uint   `gorm:"not null;index"`
	TicketID uint   `gorm:"not null;index"`
	Value    string `gorm:"size:500"`
}

func (FieldValueModel) TableName() string {
	return "ticket_field_values"
}

// TicketOwnerModel records which users own a ticket for visibility
// purposes. The creator is bound at creation time.
type TicketOwnerModel struct {
	ID       uint `gorm:"primaryKey"`
	TicketID uint `gorm:"not null;index"`
	UserID   uint `gorm:"not null;index"`
}

func (TicketOwnerModel) TableName() string {
	return "ticket_owners"
}
