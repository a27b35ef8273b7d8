package workflow

import "strings"

// TaskKind classifies a task's role in the workflow. It replaces the
// legacy prefix matching on task names; DeriveTaskKind provides the
// migration default.
type TaskKind string

const (
	TaskKindNormal     TaskKind = "normal"
	TaskKindDiagnosis  TaskKind = "diagnosis"
	TaskKindResolution TaskKind = "resolution"
)

func (k TaskKind) IsValid() bool {
	switch k {
	case TaskKindNormal, TaskKindDiagnosis, TaskKindResolution:
		return true
	}
	return false
}

// DeriveTaskKind reproduces the legacy prefix convention on task names.
func DeriveTaskKind(taskName string) TaskKind {
	switch {
	case strings.HasPrefix(taskName, "Diagn"):
		return TaskKindDiagnosis
	case strings.HasPrefix(taskName, "Resoluc"):
		return TaskKindResolution
	default:
		return TaskKindNormal
	}
}

// Task is a node in a process's workflow graph. DisplayOrder drives both
// the Kanban column layout and the choice of a process's first task
// (lowest order, ties broken by lowest id).
type Task struct {
	ID           uint
	Name         string
	Description  string
	ProcessID    uint
	DisplayOrder int
	Kind         TaskKind
}

// Result is a directed edge: selecting it moves a ticket from SourceTaskID
// to DestTaskID.
type Result struct {
	ID           uint
	Name         string
	Description  string
	SourceTaskID uint
	DestTaskID   uint
}
