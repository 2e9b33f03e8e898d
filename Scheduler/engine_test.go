package Scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"Mydailylogs/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would see a different empty memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&Models.Organization{},
		&Models.User{},
		&Models.Subscription{},
		&Models.ChecklistTemplate{},
		&Models.TemplateExclusion{},
		&Models.TemplateAssignment{},
		&Models.Holiday{},
		&Models.StaffUnavailability{},
		&Models.BusinessHours{},
		&Models.DailyChecklist{},
		&Models.SubmittedReport{},
		&Models.Notification{},
	))
	return db
}

type sentNotification struct {
	UserID  uint
	OrgID   uint
	Type    string
	Title   string
	Message string
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

type fakeNotifier struct {
	mu              sync.Mutex
	notifications   []sentNotification
	emails          []sentEmail
	failNotify      bool
	failFirstNotify bool
	failEmail       bool
}

func (f *fakeNotifier) NotifyUser(userID, orgID uint, notifType, title, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNotify {
		return fmt.Errorf("notification store down")
	}
	if f.failFirstNotify {
		f.failFirstNotify = false
		return fmt.Errorf("notification store down")
	}
	f.notifications = append(f.notifications, sentNotification{userID, orgID, notifType, title, message})
	return nil
}

func (f *fakeNotifier) SendEmail(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failEmail {
		return fmt.Errorf("smtp down")
	}
	f.emails = append(f.emails, sentEmail{to, subject, body})
	return nil
}

type fixture struct {
	db       *gorm.DB
	notifier *fakeNotifier
	engine   *Engine
	org      Models.Organization
	admin    Models.User
	staff    Models.User
}

// newFixture seeds one organization on the given plan with an admin and a
// staff member.
func newFixture(t *testing.T, plan string) *fixture {
	t.Helper()
	db := newTestDB(t)

	org := Models.Organization{Name: "Acme Kitchens", Slug: "acme-kitchens", OwnerEmail: "owner@acme.test"}
	require.NoError(t, db.Create(&org).Error)

	admin := Models.User{OrganizationID: org.ID, Name: "Ada Admin", Email: "ada@acme.test", Role: Models.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&admin).Error)
	staff := Models.User{OrganizationID: org.ID, Name: "Sam Staff", Email: "sam@acme.test", Role: Models.RoleStaff, IsActive: true}
	require.NoError(t, db.Create(&staff).Error)

	sub := Models.Subscription{OrganizationID: org.ID, PlanName: plan, Status: Models.SubscriptionActive}
	require.NoError(t, db.Create(&sub).Error)

	notifier := &fakeNotifier{}
	return &fixture{
		db:       db,
		notifier: notifier,
		engine:   NewEngine(db, notifier),
		org:      org,
		admin:    admin,
		staff:    staff,
	}
}

func (f *fixture) createTemplate(t *testing.T, recurrenceType string, createdAt time.Time) Models.ChecklistTemplate {
	t.Helper()
	template := Models.ChecklistTemplate{
		OrganizationID: f.org.ID,
		Title:          "Opening checks",
		IsRecurring:    recurrenceType != Models.RecurrenceNone,
		RecurrenceType: recurrenceType,
		IsActive:       true,
	}
	template.CreatedAt = createdAt
	require.NoError(t, f.db.Create(&template).Error)
	return template
}

func (f *fixture) assign(t *testing.T, template Models.ChecklistTemplate, user Models.User) Models.TemplateAssignment {
	t.Helper()
	assignment := Models.TemplateAssignment{
		TemplateID:     template.ID,
		AssignedTo:     user.ID,
		AssignedBy:     f.admin.ID,
		OrganizationID: f.org.ID,
		IsActive:       true,
		Status:         Models.AssignmentActive,
	}
	require.NoError(t, f.db.Create(&assignment).Error)
	return assignment
}

func (f *fixture) createInstance(t *testing.T, template Models.ChecklistTemplate, user Models.User, date, status string) Models.DailyChecklist {
	t.Helper()
	instance := Models.DailyChecklist{
		TemplateID:     template.ID,
		AssignedTo:     user.ID,
		OrganizationID: f.org.ID,
		Date:           date,
		Status:         status,
	}
	require.NoError(t, f.db.Create(&instance).Error)
	return instance
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(Models.DateLayout, value)
	require.NoError(t, err)
	return parsed
}

func TestMarkOverdue(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceDaily, time.Now())
	today := mustDate(t, "2025-03-12")

	f.createInstance(t, template, f.staff, "2025-03-11", Models.ChecklistPending)
	f.createInstance(t, template, f.admin, "2025-03-12", Models.ChecklistPending)

	marked, err := f.engine.MarkOverdue(today)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	var yesterday Models.DailyChecklist
	require.NoError(t, f.db.Where("date = ?", "2025-03-11").First(&yesterday).Error)
	assert.Equal(t, Models.ChecklistOverdue, yesterday.Status)

	var todays Models.DailyChecklist
	require.NoError(t, f.db.Where("date = ?", "2025-03-12").First(&todays).Error)
	assert.Equal(t, Models.ChecklistPending, todays.Status)

	// Re-running finds nothing left to mark.
	marked, err = f.engine.MarkOverdue(today)
	require.NoError(t, err)
	assert.Zero(t, marked)
}

func TestRunDailyAggregatesAndIsRerunnable(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceDaily, time.Now())
	f.assign(t, template, f.staff)

	today := time.Now()
	summary := f.engine.RunDaily(today)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, today.Format(Models.DateLayout), summary.Date)
	assert.Equal(t, 1, summary.CreatedInstances)
	assert.Zero(t, summary.SkippedTemplates)
	assert.Empty(t, summary.Errors)

	// The whole pipeline is idempotent for a fixed day.
	again := f.engine.RunDaily(today)
	assert.Zero(t, again.CreatedInstances)
	assert.NotEqual(t, summary.RunID, again.RunID)

	var count int64
	f.db.Model(&Models.DailyChecklist{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
