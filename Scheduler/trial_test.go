package Scheduler

import (
	"testing"
	"time"

	"Mydailylogs/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expireTrial(t *testing.T, f *fixture, endedAgo time.Duration) {
	t.Helper()
	endedAt := time.Now().Add(-endedAgo)
	require.NoError(t, f.db.Model(&Models.Subscription{}).
		Where("organization_id = ?", f.org.ID).
		Updates(map[string]interface{}{
			"is_trial":             true,
			"is_masteradmin_trial": true,
			"trial_ends_at":        endedAt,
		}).Error)
}

func TestExpireTrialsDowngradesAndEmailsOwner(t *testing.T) {
	f := newFixture(t, Models.PlanPro)
	expireTrial(t, f, 48*time.Hour)

	downgraded, err := f.engine.ExpireTrials(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, downgraded)

	var sub Models.Subscription
	require.NoError(t, f.db.Where("organization_id = ?", f.org.ID).First(&sub).Error)
	assert.Equal(t, Models.PlanStarter, sub.PlanName)
	assert.False(t, sub.IsTrial)
	assert.False(t, sub.IsMasterAdminTrial)
	assert.Nil(t, sub.TrialEndsAt)
	assert.Nil(t, sub.CurrentPeriodStart)
	assert.Nil(t, sub.CurrentPeriodEnd)
	assert.Equal(t, Models.SubscriptionActive, sub.Status)

	require.Len(t, f.notifier.emails, 1)
	assert.Equal(t, "owner@acme.test", f.notifier.emails[0].To)
	assert.Contains(t, f.notifier.emails[0].Body, "Acme Kitchens")

	// A second sweep finds nothing left to downgrade.
	downgraded, err = f.engine.ExpireTrials(time.Now())
	require.NoError(t, err)
	assert.Zero(t, downgraded)
	assert.Len(t, f.notifier.emails, 1)
}

func TestExpireTrialsIgnoresRunningTrials(t *testing.T) {
	f := newFixture(t, Models.PlanPro)
	future := time.Now().AddDate(0, 0, 7)
	require.NoError(t, f.db.Model(&Models.Subscription{}).
		Where("organization_id = ?", f.org.ID).
		Updates(map[string]interface{}{"is_trial": true, "trial_ends_at": future}).Error)

	downgraded, err := f.engine.ExpireTrials(time.Now())
	require.NoError(t, err)
	assert.Zero(t, downgraded)

	var sub Models.Subscription
	require.NoError(t, f.db.Where("organization_id = ?", f.org.ID).First(&sub).Error)
	assert.Equal(t, Models.PlanPro, sub.PlanName)
	assert.True(t, sub.IsTrial)
}

func TestExpireTrialsEmailFailureDoesNotBlockDowngrade(t *testing.T) {
	f := newFixture(t, Models.PlanPro)
	f.notifier.failEmail = true
	expireTrial(t, f, time.Hour)

	downgraded, err := f.engine.ExpireTrials(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, downgraded)

	var sub Models.Subscription
	require.NoError(t, f.db.Where("organization_id = ?", f.org.ID).First(&sub).Error)
	assert.Equal(t, Models.PlanStarter, sub.PlanName)
}
