package Scheduler

import (
	"testing"

	"Mydailylogs/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countInstances(t *testing.T, f *fixture) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&Models.DailyChecklist{}).Count(&count).Error)
	return count
}

func TestCleanupOneOffDeletedImmediately(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceNone, mustDate(t, "2025-01-06"))
	f.createInstance(t, template, f.staff, "2025-03-11", Models.ChecklistOverdue)

	deleted := f.engine.CleanupOverdue(mustDate(t, "2025-03-12"))
	assert.Equal(t, 1, deleted)
	assert.Zero(t, countInstances(t, f))

	// One notification per admin, naming the task and the assignee.
	require.Len(t, f.notifier.notifications, 1)
	notice := f.notifier.notifications[0]
	assert.Equal(t, f.admin.ID, notice.UserID)
	assert.Equal(t, f.org.ID, notice.OrgID)
	assert.Contains(t, notice.Message, "Opening checks")
	assert.Contains(t, notice.Message, "Sam Staff")
	assert.Contains(t, notice.Message, "2025-03-11")
}

func TestCleanupWeeklyGraceWindow(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceWeekly, mustDate(t, "2025-01-07"))
	f.createInstance(t, template, f.staff, "2025-03-04", Models.ChecklistOverdue)

	// 7 days overdue: still inside the grace window.
	deleted := f.engine.CleanupOverdue(mustDate(t, "2025-03-11"))
	assert.Zero(t, deleted)
	assert.EqualValues(t, 1, countInstances(t, f))

	// 8 days overdue: the next weekly occurrence has superseded it.
	deleted = f.engine.CleanupOverdue(mustDate(t, "2025-03-12"))
	assert.Equal(t, 1, deleted)
	assert.Zero(t, countInstances(t, f))
}

func TestCleanupMonthlyGraceWindow(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceMonthly, mustDate(t, "2025-01-10"))
	f.createInstance(t, template, f.staff, "2025-02-10", Models.ChecklistOverdue)

	deleted := f.engine.CleanupOverdue(mustDate(t, "2025-03-02")) // 20 days
	assert.Zero(t, deleted)

	deleted = f.engine.CleanupOverdue(mustDate(t, "2025-03-15")) // 33 days
	assert.Equal(t, 1, deleted)
}

func TestCleanupDailyUsesTwoDayWindow(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceDaily, mustDate(t, "2025-01-06"))
	f.createInstance(t, template, f.staff, "2025-03-11", Models.ChecklistOverdue)

	deleted := f.engine.CleanupOverdue(mustDate(t, "2025-03-12")) // 1 day
	assert.Zero(t, deleted)

	deleted = f.engine.CleanupOverdue(mustDate(t, "2025-03-13")) // 2 days
	assert.Equal(t, 1, deleted)
}

func TestCleanupLeavesPendingAlone(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceNone, mustDate(t, "2025-01-06"))
	f.createInstance(t, template, f.staff, "2025-03-01", Models.ChecklistPending)
	f.createInstance(t, template, f.staff, "2025-03-02", Models.ChecklistCompleted)

	deleted := f.engine.CleanupOverdue(mustDate(t, "2025-03-12"))
	assert.Zero(t, deleted)
	assert.EqualValues(t, 2, countInstances(t, f))
}

func TestCleanupNotificationFailureDoesNotBlockDeletion(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	f.notifier.failNotify = true
	template := f.createTemplate(t, Models.RecurrenceNone, mustDate(t, "2025-01-06"))
	f.createInstance(t, template, f.staff, "2025-03-11", Models.ChecklistOverdue)

	deleted := f.engine.CleanupOverdue(mustDate(t, "2025-03-12"))
	assert.Equal(t, 1, deleted)
	assert.Zero(t, countInstances(t, f))
}

func TestCleanupNotificationFailureStaysOutOfRunSummary(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	f.notifier.failNotify = true
	template := f.createTemplate(t, Models.RecurrenceNone, mustDate(t, "2025-01-06"))
	f.createInstance(t, template, f.staff, "2025-03-11", Models.ChecklistOverdue)

	summary := f.engine.RunDaily(mustDate(t, "2025-03-12"))
	assert.Equal(t, 1, summary.DeletedOverdue)
	assert.Empty(t, summary.Errors)
}

func TestCleanupNoticeReachesEveryAdminDespiteFailure(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	second := Models.User{OrganizationID: f.org.ID, Name: "Bea Boss", Email: "bea@acme.test", Role: Models.RoleAdmin, IsActive: true}
	require.NoError(t, f.db.Create(&second).Error)
	f.notifier.failFirstNotify = true

	template := f.createTemplate(t, Models.RecurrenceNone, mustDate(t, "2025-01-06"))
	f.createInstance(t, template, f.staff, "2025-03-11", Models.ChecklistOverdue)

	deleted := f.engine.CleanupOverdue(mustDate(t, "2025-03-12"))
	assert.Equal(t, 1, deleted)

	// The first admin's notice failed but the second admin still got theirs.
	require.Len(t, f.notifier.notifications, 1)
	assert.Equal(t, second.ID, f.notifier.notifications[0].UserID)
}
