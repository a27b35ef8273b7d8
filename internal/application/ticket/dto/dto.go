// Package dto defines the read-model shapes returned by the ticket use
// cases.
package dto

import "time"

// TicketView is the denormalized projection of one ticket.
type TicketView struct {
	ID             uint       `json:"ticket_id"`
	Description    string     `json:"description"`
	ProcessID      uint       `json:"process_id"`
	ProcessName    string     `json:"process_name"`
	TaskID         uint       `json:"task_id"`
	TaskName       string     `json:"task_name"`
	TypeName       string     `json:"type_name"`
	SubtypeID      uint       `json:"subtype_id"`
	SubtypeName    string     `json:"subtype_name"`
	CreatorID      uint       `json:"creator_id"`
	CreatorName    string     `json:"creator_name"`
	CreatorAccount string     `json:"creator_account"`
	Priority       int        `json:"priority"`
	Rating         int        `json:"rating"`
	Closed         int        `json:"closed"`
	CreatedAt      time.Time  `json:"created_at"`
	EstimatedAt    time.Time  `json:"estimated_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	Billed         bool       `json:"billed"`
	Currency       string     `json:"currency"`
	Amount         float64    `json:"amount"`
	TowerID        uint       `json:"tower_id"`
	TowerName      string     `json:"tower_name"`
	FloorID        uint       `json:"floor_id"`
	FloorName      string     `json:"floor_name"`
	LocationDetail string     `json:"location_detail"`
}

// LogEntryView is one audit-trail row joined with the responsible user's
// display name.
type LogEntryView struct {
	ID                 uint      `json:"log_id"`
	OccurredAt         time.Time `json:"occurred_at"`
	Description        string    `json:"description"`
	Kind               int       `json:"kind"`
	TaskAtEntry        uint      `json:"task_at_entry"`
	TaskToPerform      uint      `json:"task_to_perform"`
	ResultID           uint      `json:"result_id"`
	Comment            string    `json:"comment"`
	UserID             uint      `json:"user_id"`
	ResponsibleID      uint      `json:"responsible_id"`
	ResponsibleName    string    `json:"responsible_name"`
	ResponsibleAccount string    `json:"responsible_account"`
}

// AvailableResult is one action button for the ticket's current task.
// HasRole reflects the caller's role-task scope on the destination task;
// Disabled carries the cascading resolution-gate state.
type AvailableResult struct {
	ResultID     uint   `json:"result_id"`
	Name         string `json:"name"`
	SourceTaskID uint   `json:"source_task_id"`
	DestTaskID   uint   `json:"dest_task_id"`
	TaskName     string `json:"task_name"`
	ProcessName  string `json:"process_name"`
	HasRole      bool   `json:"has_role"`
	Disabled     bool   `json:"disabled"`
}

// AttachmentView is one file reachable through the ticket's log.
type AttachmentView struct {
	ID         uint      `json:"attachment_id"`
	Name       string    `json:"name"`
	PathRef    string    `json:"path_ref"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	LogEntryID uint      `json:"log_entry_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// FieldValueView is one stored dynamic field value with its definition.
type FieldValueView struct {
	ValueID uint   `json:"value_id"`
	FieldID uint   `json:"field_id"`
	Order   int    `json:"order"`
	Label   string `json:"label"`
	Kind    int    `json:"kind"`
	Value   string `json:"value"`
}

// DetailPermissions is the caller-specific permission block of the
// detail view.
type DetailPermissions struct {
	IsHelpdesk bool `json:"is_helpdesk"`
	CanAddCost bool `json:"can_add_cost"`
}

// TicketDetailView is the full detail snapshot of one ticket.
type TicketDetailView struct {
	Ticket           TicketView          `json:"ticket"`
	Log              []LogEntryView      `json:"log"`
	AvailableResults []AvailableResult   `json:"available_results"`
	Attachments      []AttachmentView    `json:"attachments"`
	DynamicValues    []FieldValueView    `json:"dynamic_values"`
	Permissions      DetailPermissions   `json:"permissions"`
}

// SubtypeOption is one selectable subtype in the creation form.
type SubtypeOption struct {
	ID   uint   `json:"subtype_id"`
	Name string `json:"name"`
}

// TicketTypeOption is one ticket type with its subtypes.
type TicketTypeOption struct {
	ID       uint            `json:"ticket_type_id"`
	Name     string          `json:"name"`
	Subtypes []SubtypeOption `json:"subtypes"`
}

// ProcessOption is one process the user may create tickets in, with its
// full type/subtype cascade for the creation form.
type ProcessOption struct {
	ID         uint               `json:"process_id"`
	Name       string             `json:"name"`
	Multitower bool               `json:"multitower"`
	TowerID    *uint              `json:"tower_id,omitempty"`
	FloorID    *uint              `json:"floor_id,omitempty"`
	Types      []TicketTypeOption `json:"types"`
}

// FloorOption is one floor of a tower.
type FloorOption struct {
	ID   uint   `json:"floor_id"`
	Name string `json:"name"`
}

// TowerOption is one tower with its floors.
type TowerOption struct {
	ID     uint          `json:"tower_id"`
	Name   string        `json:"name"`
	Floors []FloorOption `json:"floors"`
}

// CreationCatalogView feeds the ticket creation form selectors.
type CreationCatalogView struct {
	Processes []ProcessOption `json:"processes"`
	Towers    []TowerOption   `json:"towers"`
}

// FieldOptionView is one selectable value of a select field.
type FieldOptionView struct {
	ID    uint   `json:"id"`
	Value string `json:"value"`
}

// DynamicFieldView is one custom field declared by a subtype, in form
// display order.
type DynamicFieldView struct {
	FieldID uint              `json:"field_id"`
	Name    string            `json:"name"`
	Label   string            `json:"label"`
	Kind    int               `json:"kind"`
	Order   int               `json:"order"`
	Options []FieldOptionView `json:"options,omitempty"`
}

// BoardTicket is one card on the Kanban board.
type BoardTicket struct {
	ID          uint      `json:"ticket_id"`
	Description string    `json:"description"`
	TaskID      uint      `json:"task_id"`
	ProcessID   uint      `json:"process_id"`
	ProcessName string    `json:"process_name"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	EstimatedAt time.Time `json:"estimated_at"`
}

// BoardColumn is one process/task column visible to the user.
type BoardColumn struct {
	ProcessID    uint   `json:"process_id"`
	ProcessName  string `json:"process_name"`
	TaskID       uint   `json:"task_id"`
	TaskName     string `json:"task_name"`
	DisplayOrder int    `json:"display_order"`
	Count        int64  `json:"count"`
}

// BoardView is the assembled Kanban board.
type BoardView struct {
	Columns []BoardColumn          `json:"columns"`
	Tickets map[uint][]BoardTicket `json:"tickets"`
}
