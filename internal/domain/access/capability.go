// Package access models the role-task permission system: process-scoped
// roles carrying capability flags and a task scope, held by users.
package access

import "strings"

// Capability is a bit in a role's capability set. The set replaces the
// legacy wide record of boolean columns so new capabilities do not force
// schema churn.
type Capability uint16

const (
	CapCreate Capability = 1 << iota
	CapAssign
	CapComment
	CapClose
	CapModify
	CapCertify
	CapView
	CapResolve
	CapAttach
	CapEdit
	CapAddCost
)

var capabilityNames = map[Capability]string{
	CapCreate:  "create",
	CapAssign:  "assign",
	CapComment: "comment",
	CapClose:   "close",
	CapModify:  "modify",
	CapCertify: "certify",
	CapView:    "view",
	CapResolve: "resolve",
	CapAttach:  "attach",
	CapEdit:    "edit",
	CapAddCost: "add_cost",
}

// CapabilitySet is a bitflag set of capabilities.
type CapabilitySet uint16

// NewCapabilitySet builds a set from individual capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s = s.With(c)
	}
	return s
}

// Has reports whether the set contains the capability.
func (s CapabilitySet) Has(c Capability) bool {
	return uint16(s)&uint16(c) != 0
}

// With returns the set with the capability added.
func (s CapabilitySet) With(c Capability) CapabilitySet {
	return CapabilitySet(uint16(s) | uint16(c))
}

// String renders the set for logging.
func (s CapabilitySet) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for c := CapCreate; c <= CapAddCost; c <<= 1 {
		if s.Has(c) {
			parts = append(parts, capabilityNames[c])
		}
	}
	return strings.Join(parts, "|")
}
