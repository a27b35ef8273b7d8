package workflow

import "context"

// Catalog is the read-only view over the configured workflow graph.
// Implementations return shared/errors.NotFoundError for missing ids.
type Catalog interface {
	// ProcessByID resolves one process.
	ProcessByID(ctx context.Context, processID uint) (*Process, error)

	// TaskByID resolves one task.
	TaskByID(ctx context.Context, taskID uint) (*Task, error)

	// InitialTask returns the process's first task: lowest display order,
	// ties broken by lowest id. Fails when the process has no tasks.
	InitialTask(ctx context.Context, processID uint) (*Task, error)

	// ResultByID resolves one result edge.
	ResultByID(ctx context.Context, resultID uint) (*Result, error)

	// ResultsForTask lists a task's outgoing results ordered by
	// destination task id ascending. The ordering feeds DisabledActions.
	ResultsForTask(ctx context.Context, taskID uint) ([]*Result, error)

	// SubtypeByID resolves one subtype together with its owning process id.
	SubtypeByID(ctx context.Context, subtypeID uint) (*Subtype, error)

	// DynamicFieldsFor lists a subtype's fields in declared order, with
	// options loaded for select fields.
	DynamicFieldsFor(ctx context.Context, subtypeID uint) ([]*DynamicField, error)
}
