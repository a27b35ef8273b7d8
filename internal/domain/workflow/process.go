// Package workflow holds the static process/task/result catalog that
// defines the legal transitions for every ticket.
package workflow

import "strings"

// Process is a configured business workflow. It owns tasks and ticket
// types and is immutable outside administrative setup.
type Process struct {
	ID          uint
	Name        string
	Description string
	Multitower  bool
	TowerID     *uint
	FloorID     *uint

	// CostExempt excludes the process from cost capture and from the
	// resolution gating policy. Configured explicitly; DeriveCostExempt
	// provides the migration default from the legacy name convention.
	CostExempt bool
}

// DeriveCostExempt reproduces the legacy name matching used before the
// flag existed. Internal and customer-experience processes never capture
// cost.
func DeriveCostExempt(processName string) bool {
	return strings.Contains(processName, "Interno") ||
		strings.Contains(processName, "Experience")
}

// TicketType groups subtypes under a process.
type TicketType struct {
	ID        uint
	Name      string
	ProcessID uint
}

// Subtype carries the SLA and default priority copied onto tickets at
// creation.
type Subtype struct {
	ID           uint
	Name         string
	TicketTypeID uint
	ProcessID    uint
	SLAHours     *int
	Priority     *int
}

const (
	// DefaultSLAHours applies when a subtype has no configured SLA.
	DefaultSLAHours = 24
	// DefaultPriority applies when a subtype has no configured priority.
	DefaultPriority = 0
)

// EffectiveSLAHours returns the subtype SLA or the default.
func (s *Subtype) EffectiveSLAHours() int {
	if s.SLAHours == nil || *s.SLAHours <= 0 {
		return DefaultSLAHours
	}
	return *s.SLAHours
}

// EffectivePriority returns the subtype priority or the default.
func (s *Subtype) EffectivePriority() int {
	if s.Priority == nil {
		return DefaultPriority
	}
	return *s.Priority
}
