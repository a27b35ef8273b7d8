package workflow

// ActionRow is one action button candidate for a ticket's current task,
// in destination-task order, annotated with the caller's role visibility.
type ActionRow struct {
	ResultID   uint
	HasRole    bool
	TaskKind   TaskKind
	CostExempt bool
}

// DisabledActions computes which action buttons the presentation layer
// must gray out. The scan is stateful across the ordered rows: a
// resolution row on a non-exempt process disables every subsequent row
// until a diagnosis row re-enables them. Each row records the state after
// its own evaluation, and rows the caller has no role for are skipped
// entirely.
func DisabledActions(rows []ActionRow) map[uint]bool {
	disabledByResult := make(map[uint]bool, len(rows))
	disabled := false

	for _, row := range rows {
		if !row.HasRole {
			continue
		}

		if !row.CostExempt {
			switch row.TaskKind {
			case TaskKindResolution:
				disabled = true
			case TaskKindDiagnosis:
				disabled = false
			}
		}

		disabledByResult[row.ResultID] = disabled
	}

	return disabledByResult
}
