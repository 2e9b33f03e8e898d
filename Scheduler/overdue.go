package Scheduler

import (
	"fmt"
	"time"

	"Mydailylogs/Models"
)

// MarkOverdue flips every still-pending checklist dated before today to
// overdue. One bulk update, no per-row branching; the ISO date strings
// compare correctly as text.
func (e *Engine) MarkOverdue(today time.Time) (int, error) {
	result := e.DB.Model(&Models.DailyChecklist{}).
		Where("status = ? AND date < ?", Models.ChecklistPending, today.Format(Models.DateLayout)).
		Updates(map[string]interface{}{
			"status":     Models.ChecklistOverdue,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("mark overdue checklists: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}
