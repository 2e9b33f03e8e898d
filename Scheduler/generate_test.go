package Scheduler

import (
	"testing"
	"time"

	"Mydailylogs/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-12 is a Wednesday.
const wednesday = "2025-03-12"

func TestGenerateCreatesInstanceOnceOnly(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceDaily, mustDate(t, "2025-01-06"))
	f.assign(t, template, f.staff)
	today := mustDate(t, wednesday)

	created, skipped, errs := f.engine.GenerateInstances(today)
	assert.Equal(t, 1, created)
	assert.Zero(t, skipped)
	assert.Empty(t, errs)

	var instance Models.DailyChecklist
	require.NoError(t, f.db.First(&instance).Error)
	assert.Equal(t, template.ID, instance.TemplateID)
	assert.Equal(t, f.staff.ID, instance.AssignedTo)
	assert.Equal(t, wednesday, instance.Date)
	assert.Equal(t, Models.ChecklistPending, instance.Status)

	// Duplicate gate: a second run for the same day creates nothing.
	created, _, errs = f.engine.GenerateInstances(today)
	assert.Zero(t, created)
	assert.Empty(t, errs)

	var count int64
	f.db.Model(&Models.DailyChecklist{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGenerateRequiresActiveAssignment(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceDaily, mustDate(t, "2025-01-06"))
	assignment := f.assign(t, template, f.staff)
	require.NoError(t, f.db.Model(&assignment).Updates(map[string]interface{}{
		"is_active": false,
		"status":    Models.AssignmentCancelled,
	}).Error)

	created, skipped, errs := f.engine.GenerateInstances(mustDate(t, wednesday))
	assert.Zero(t, created)
	assert.Zero(t, skipped)
	assert.Empty(t, errs)
}

func TestGenerateEntitlementGate(t *testing.T) {
	f := newFixture(t, Models.PlanStarter)
	template := f.createTemplate(t, Models.RecurrenceDaily, mustDate(t, "2025-01-06"))
	f.assign(t, template, f.staff)

	created, skipped, errs := f.engine.GenerateInstances(mustDate(t, wednesday))
	assert.Zero(t, created)
	assert.Equal(t, 1, skipped)
	assert.Empty(t, errs)
}

func TestGenerateSkipsUnavailableStaffOnly(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceDaily, mustDate(t, "2025-01-06"))
	f.assign(t, template, f.staff)
	f.assign(t, template, f.admin)

	require.NoError(t, f.db.Create(&Models.StaffUnavailability{
		UserID:         f.staff.ID,
		OrganizationID: f.org.ID,
		StartDate:      "2025-03-10",
		EndDate:        "2025-03-14",
		Reason:         "annual leave",
	}).Error)

	created, _, errs := f.engine.GenerateInstances(mustDate(t, wednesday))
	assert.Equal(t, 1, created)
	assert.Empty(t, errs)

	var instance Models.DailyChecklist
	require.NoError(t, f.db.First(&instance).Error)
	assert.Equal(t, f.admin.ID, instance.AssignedTo)
}

func TestGenerateBusinessHoursGate(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceDaily, mustDate(t, "2025-01-06"))
	f.assign(t, template, f.staff)

	day := mustDate(t, wednesday)
	require.NoError(t, f.db.Create(&Models.BusinessHours{
		OrganizationID: f.org.ID,
		DayOfWeek:      int(day.Weekday()),
		IsOpen:         false,
	}).Error)

	created, skipped, _ := f.engine.GenerateInstances(day)
	assert.Zero(t, created)
	assert.Zero(t, skipped)
}

func TestGenerateHolidayGate(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	template := f.createTemplate(t, Models.RecurrenceDaily, mustDate(t, "2025-01-06"))
	f.assign(t, template, f.staff)

	require.NoError(t, f.db.Create(&Models.Holiday{
		OrganizationID: f.org.ID,
		Date:           wednesday,
		Name:           "Founders Day",
	}).Error)

	created, _, _ := f.engine.GenerateInstances(mustDate(t, wednesday))
	assert.Zero(t, created)
}

func TestGenerateWeeklyCadence(t *testing.T) {
	f := newFixture(t, Models.PlanGrowth)
	// Created on a Tuesday; the weekly anchor is that weekday.
	template := f.createTemplate(t, Models.RecurrenceWeekly, mustDate(t, "2025-03-04"))
	f.assign(t, template, f.staff)

	created, _, _ := f.engine.GenerateInstances(mustDate(t, wednesday))
	assert.Zero(t, created, "weekly template must not fire on a Wednesday")

	created, _, _ = f.engine.GenerateInstances(mustDate(t, "2025-03-18")) // following Tuesday
	assert.Equal(t, 1, created)
}

func TestShouldRunToday(t *testing.T) {
	monday := mustDate(t, "2025-03-10")
	saturday := mustDate(t, "2025-03-15")
	open := &orgDayContext{}

	newTemplate := func(recurrence string, createdAt time.Time) *Models.ChecklistTemplate {
		tpl := &Models.ChecklistTemplate{IsRecurring: true, RecurrenceType: recurrence}
		tpl.CreatedAt = createdAt
		return tpl
	}

	tests := []struct {
		name  string
		tpl   *Models.ChecklistTemplate
		octx  *orgDayContext
		today time.Time
		want  bool
	}{
		{"daily runs any day", newTemplate(Models.RecurrenceDaily, monday), open, saturday, true},
		{"weekdays runs on monday", newTemplate(Models.RecurrenceWeekdays, monday), open, monday, true},
		{"weekdays skips saturday", newTemplate(Models.RecurrenceWeekdays, monday), open, saturday, false},
		{"weekly matches anchor weekday", newTemplate(Models.RecurrenceWeekly, mustDate(t, "2025-03-03")), open, monday, true},
		{"weekly skips other weekdays", newTemplate(Models.RecurrenceWeekly, mustDate(t, "2025-03-04")), open, monday, false},
		{"monthly matches anchor day", newTemplate(Models.RecurrenceMonthly, mustDate(t, "2025-01-10")), open, monday, true},
		{"monthly skips other days", newTemplate(Models.RecurrenceMonthly, mustDate(t, "2025-01-11")), open, monday, false},
		{"closed day blocks everything", newTemplate(Models.RecurrenceDaily, monday), &orgDayContext{closedToday: true}, monday, false},
		{
			"holiday blocks regardless of template exclusions",
			newTemplate(Models.RecurrenceDaily, monday),
			&orgDayContext{holidays: []Models.Holiday{{Date: "2025-03-10", Name: "Bank holiday"}}},
			monday,
			false,
		},
		{
			"recurring holiday matches by month and day",
			newTemplate(Models.RecurrenceDaily, monday),
			&orgDayContext{holidays: []Models.Holiday{{Date: "2019-03-10", Name: "Anniversary", IsRecurring: true}}},
			monday,
			false,
		},
		{"unsupported recurrence never runs", newTemplate(Models.RecurrenceNone, monday), open, monday, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shouldRunToday(tc.tpl, tc.octx, tc.today))
		})
	}
}

func TestShouldRunTodayTemplateExclusions(t *testing.T) {
	saturday := mustDate(t, "2025-03-15")
	monday := mustDate(t, "2025-03-10")
	open := &orgDayContext{}

	weekendFree := &Models.ChecklistTemplate{IsRecurring: true, RecurrenceType: Models.RecurrenceDaily}
	weekendFree.CreatedAt = monday
	weekendFree.Exclusion = &Models.TemplateExclusion{ExcludeWeekends: true}
	assert.False(t, shouldRunToday(weekendFree, open, saturday))
	assert.True(t, shouldRunToday(weekendFree, open, monday))

	blackout := &Models.ChecklistTemplate{IsRecurring: true, RecurrenceType: Models.RecurrenceDaily}
	blackout.CreatedAt = monday
	blackout.Exclusion = &Models.TemplateExclusion{}
	require.NoError(t, blackout.Exclusion.SetDatesList([]string{"2025-03-10"}))
	assert.False(t, shouldRunToday(blackout, open, monday))
	assert.True(t, shouldRunToday(blackout, open, mustDate(t, "2025-03-11")))
}
