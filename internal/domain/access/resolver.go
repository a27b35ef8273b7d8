package access

import "context"

// Resolver answers permission questions for a user. All methods are pure
// reads; an empty result means "no permission", never an error.
type Resolver interface {
	// RoleTasksFor returns every role the user holds.
	RoleTasksFor(ctx context.Context, userID uint) ([]*RoleTask, error)

	// CanActOnTask reports whether any held role is scoped to the task.
	CanActOnTask(ctx context.Context, userID, taskID uint) (bool, error)

	// IsHelpdesk reports whether any held role carries the helpdesk flag.
	IsHelpdesk(ctx context.Context, userID uint) (bool, error)

	// CanCreateInProcess reports whether a held role for the process
	// grants the create capability.
	CanCreateInProcess(ctx context.Context, userID, processID uint) (bool, error)

	// CanAddCost reports whether a held role scoped to the task grants
	// the add-cost capability.
	CanAddCost(ctx context.Context, userID, taskID uint) (bool, error)

	// HasPrivilege reports whether the user holds a global privilege.
	HasPrivilege(ctx context.Context, userID, privilegeID uint) (bool, error)
}
