package access

// RoleTask is a named role bound to one process. Helpdesk roles see every
// ticket in their process regardless of ownership or department. TaskIDs
// is the role's scope: the tasks its holders may act on.
type RoleTask struct {
	ID        uint
	Name      string
	ProcessID uint
	Helpdesk  bool
	Caps      CapabilitySet
	TaskIDs   []uint
}

// ScopedTo reports whether the role's task scope includes the task.
func (r *RoleTask) ScopedTo(taskID uint) bool {
	for _, id := range r.TaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}
