// Package ticket holds the mutable workflow instance and its append-only
// audit log.
package ticket

import (
	"fmt"
	"time"
	"unicode/utf8"
)

const (
	// StateOpen is the default closed-state of a live ticket.
	StateOpen = 0
	// StateVoided marks a ticket administratively voided; voided tickets
	// never appear on the board.
	StateVoided = -1

	// DefaultCurrency is applied at creation and when cost capture omits
	// a currency.
	DefaultCurrency = "LPS"

	// MaxDescriptionLen bounds the free-text description, measured in
	// characters.
	MaxDescriptionLen = 2000
)

var validCurrencies = map[string]bool{"LPS": true, "USD": true, "EUR": true}

// Billing is the cost triple captured during a transition.
type Billing struct {
	Billed   bool
	Currency string
	Amount   float64
}

// Location places a ticket in a tower and floor with free-text detail.
type Location struct {
	TowerID uint
	FloorID uint
	Detail  string
}

// Ticket is the workflow instance. It is created once, advanced only by
// the transition engine, and never physically deleted; closure is a
// logical state. The version field serializes concurrent transitions.
type Ticket struct {
	id            uint
	description   string
	createdAt     time.Time
	estimatedAt   time.Time
	completedAt   *time.Time
	rating        int
	closed        int
	currentTaskID uint
	subtypeID     uint
	priority      int
	creatorID     uint
	billing       Billing
	location      Location
	version       int
}

// NewTicket creates a ticket positioned at the process's initial task.
// Priority and SLA hours come from the subtype; the estimated completion
// is creation time plus the SLA.
func NewTicket(
	description string,
	initialTaskID uint,
	subtypeID uint,
	priority int,
	slaHours int,
	loc Location,
	creatorID uint,
	now time.Time,
) (*Ticket, error) {
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", MaxDescriptionLen)
	}
	if initialTaskID == 0 {
		return nil, fmt.Errorf("initial task ID is required")
	}
	if subtypeID == 0 {
		return nil, fmt.Errorf("subtype ID is required")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}
	if slaHours <= 0 {
		return nil, fmt.Errorf("SLA hours must be positive")
	}

	return &Ticket{
		description:   description,
		createdAt:     now,
		estimatedAt:   now.Add(time.Duration(slaHours) * time.Hour),
		rating:        0,
		closed:        StateOpen,
		currentTaskID: initialTaskID,
		subtypeID:     subtypeID,
		priority:      priority,
		creatorID:     creatorID,
		billing:       Billing{Billed: false, Currency: DefaultCurrency, Amount: 0},
		location:      loc,
		version:       1,
	}, nil
}

// ReconstructTicket rehydrates a ticket from storage.
func ReconstructTicket(
	id uint,
	description string,
	createdAt time.Time,
	estimatedAt time.Time,
	completedAt *time.Time,
	rating int,
	closed int,
	currentTaskID uint,
	subtypeID uint,
	priority int,
	creatorID uint,
	billing Billing,
	loc Location,
	version int,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if currentTaskID == 0 {
		return nil, fmt.Errorf("current task ID is required")
	}
	if version < 1 {
		return nil, fmt.Errorf("version must be at least 1")
	}

	return &Ticket{
		id:            id,
		description:   description,
		createdAt:     createdAt,
		estimatedAt:   estimatedAt,
		completedAt:   completedAt,
		rating:        rating,
		closed:        closed,
		currentTaskID: currentTaskID,
		subtypeID:     subtypeID,
		priority:      priority,
		creatorID:     creatorID,
		billing:       billing,
		location:      loc,
		version:       version,
	}, nil
}

func (t *Ticket) ID() uint                { return t.id }
func (t *Ticket) Description() string     { return t.description }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) EstimatedAt() time.Time  { return t.estimatedAt }
func (t *Ticket) CompletedAt() *time.Time { return t.completedAt }
func (t *Ticket) Rating() int             { return t.rating }
func (t *Ticket) Closed() int             { return t.closed }
func (t *Ticket) CurrentTaskID() uint     { return t.currentTaskID }
func (t *Ticket) SubtypeID() uint         { return t.subtypeID }
func (t *Ticket) Priority() int           { return t.priority }
func (t *Ticket) CreatorID() uint         { return t.creatorID }
func (t *Ticket) Billing() Billing        { return t.billing }
func (t *Ticket) Location() Location      { return t.location }
func (t *Ticket) Version() int            { return t.version }

// IsVoided reports whether the ticket carries the voided sentinel state.
func (t *Ticket) IsVoided() bool { return t.closed == StateVoided }

// SetID assigns the storage-generated id once.
func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// MoveTo advances the ticket to the destination task of an executed
// result and bumps the optimistic-lock version.
func (t *Ticket) MoveTo(destTaskID uint) error {
	if destTaskID == 0 {
		return fmt.Errorf("destination task ID is required")
	}
	t.currentTaskID = destTaskID
	t.version++
	return nil
}

// SetBilling records cost capture. Amount must not be negative; a missing
// currency falls back to the default.
func (t *Ticket) SetBilling(billed bool, currency string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("amount cannot be negative")
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if !validCurrencies[currency] {
		return fmt.Errorf("unsupported currency %q", currency)
	}
	t.billing = Billing{Billed: billed, Currency: currency, Amount: amount}
	return nil
}

// IsOverdue reports whether the ticket passed its estimated completion
// without being completed.
func (t *Ticket) IsOverdue(now time.Time) bool {
	if t.completedAt != nil {
		return false
	}
	return now.After(t.estimatedAt)
}
