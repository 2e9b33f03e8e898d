package Scheduler

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier is the side channel the engine pushes messages through. Both calls
// are best effort: a failure is logged by the caller and never rolls back the
// mutation it describes.
type Notifier interface {
	NotifyUser(userID, orgID uint, notifType, title, message string) error
	SendEmail(to, subject, body string) error
}

// Engine runs the daily scheduling and lifecycle sweeps. All stages share one
// "today" value so a whole run is deterministic for a fixed date.
type Engine struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewEngine(db *gorm.DB, notifier Notifier) *Engine {
	return &Engine{DB: db, Notifier: notifier}
}

// Summary is the structured result the trigger caller receives.
type Summary struct {
	RunID                string    `json:"run_id"`
	Date                 string    `json:"date"`
	TrialsDowngraded     int       `json:"trials_downgraded"`
	MarkedOverdue        int       `json:"marked_overdue"`
	DeletedOverdue       int       `json:"deleted_overdue"`
	CreatedInstances     int       `json:"created_instances"`
	SkippedTemplates     int       `json:"skipped_templates"`
	DeletedReports       int       `json:"deleted_reports"`
	CancelledAssignments int       `json:"cancelled_assignments"`
	Errors               []string  `json:"errors,omitempty"`
	StartedAt            time.Time `json:"started_at"`
	FinishedAt           time.Time `json:"finished_at"`
}

// RunDaily executes the five stages in order. Stage failures are isolated: a
// failed stage keeps its zero count and the remaining stages still run, so
// re-invoking the engine for the same day converges to the same end state.
func (e *Engine) RunDaily(today time.Time) Summary {
	today = atMidnight(today)

	summary := Summary{
		RunID:     uuid.NewString(),
		Date:      today.Format("2006-01-02"),
		StartedAt: time.Now(),
	}
	log.Printf("Daily scheduler run %s starting for %s", summary.RunID, summary.Date)

	// 1. Trial expiry
	downgraded, err := e.ExpireTrials(time.Now())
	if err != nil {
		log.Printf("Trial expiry sweep failed: %v", err)
	}
	summary.TrialsDowngraded = downgraded

	// 2. Overdue marking
	marked, err := e.MarkOverdue(today)
	if err != nil {
		log.Printf("Overdue marking failed: %v", err)
	}
	summary.MarkedOverdue = marked

	// 3. Cleanup runs before generation so a freshly created instance is not
	// deleted within the same run. Its notification failures are logged, not
	// reported; only mutation failures belong in the error list.
	summary.DeletedOverdue = e.CleanupOverdue(today)

	// 4. Instance generation
	created, skipped, genErrs := e.GenerateInstances(today)
	summary.CreatedInstances = created
	summary.SkippedTemplates = skipped
	summary.Errors = append(summary.Errors, genErrs...)

	// 5. Report retention and one-off auto-cancel
	purged, err := e.PurgeOldReports(today)
	if err != nil {
		log.Printf("Report retention sweep failed: %v", err)
	}
	summary.DeletedReports = purged

	cancelled, err := e.AutoCancelAssignments(today)
	if err != nil {
		log.Printf("Assignment auto-cancel failed: %v", err)
	}
	summary.CancelledAssignments = cancelled

	summary.FinishedAt = time.Now()
	log.Printf("Daily scheduler run %s finished: created=%d skipped=%d overdue=%d deleted=%d trials=%d reports=%d cancelled=%d errors=%d",
		summary.RunID, summary.CreatedInstances, summary.SkippedTemplates,
		summary.MarkedOverdue, summary.DeletedOverdue, summary.TrialsDowngraded,
		summary.DeletedReports, summary.CancelledAssignments, len(summary.Errors))
	return summary
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
