package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription"
	vo "github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription/valueobjects"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
)

func createTestSubscription(t *testing.T, userID uint, plan vo.Plan, sessionID string) *subscription.Subscription {
	t.Helper()

	stripeSubID := "sub_stripe_" + sessionID
	sub, err := subscription.NewSubscription(userID, plan, "cus_test", sessionID, &stripeSubID, time.Now().UTC())
	require.NoError(t, err)
	return sub
}

func TestSubscriptionRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, newTestLogger())
	ctx := context.Background()

	t.Run("create monthly subscription", func(t *testing.T) {
		sub := createTestSubscription(t, 1, vo.PlanMonthly, "cs_test_001")

		err := repo.Create(ctx, sub)
		assert.NoError(t, err)
		assert.NotZero(t, sub.ID())
	})

	t.Run("duplicate checkout session returns conflict", func(t *testing.T) {
		sub1 := createTestSubscription(t, 2, vo.PlanMonthly, "cs_test_dup")
		require.NoError(t, repo.Create(ctx, sub1))

		sub2 := createTestSubscription(t, 2, vo.PlanMonthly, "cs_test_dup")
		err := repo.Create(ctx, sub2)
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestSubscriptionRepository_GetByStripeSessionID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, newTestLogger())
	ctx := context.Background()

	sub := createTestSubscription(t, 3, vo.PlanLifetime, "cs_test_lookup")
	require.NoError(t, repo.Create(ctx, sub))

	found, err := repo.GetByStripeSessionID(ctx, "cs_test_lookup")
	require.NoError(t, err)
	assert.Equal(t, sub.SID(), found.SID())
	assert.True(t, found.IsLifetime())
	assert.Nil(t, found.CurrentPeriodEnd())

	_, err = repo.GetByStripeSessionID(ctx, "cs_missing")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestSubscriptionRepository_GetByStripeSubscriptionID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, newTestLogger())
	ctx := context.Background()

	sub := createTestSubscription(t, 4, vo.PlanMonthly, "cs_test_provider")
	require.NoError(t, repo.Create(ctx, sub))

	found, err := repo.GetByStripeSubscriptionID(ctx, "sub_stripe_cs_test_provider")
	require.NoError(t, err)
	assert.Equal(t, sub.SID(), found.SID())
}

func TestSubscriptionRepository_GetNewestActiveByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, newTestLogger())
	ctx := context.Background()

	t.Run("no rows returns not found", func(t *testing.T) {
		_, err := repo.GetNewestActiveByUserID(ctx, 99)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("cancelled rows are skipped", func(t *testing.T) {
		cancelled := createTestSubscription(t, 5, vo.PlanMonthly, "cs_cancelled")
		require.NoError(t, cancelled.CancelNow(time.Now().UTC()))
		require.NoError(t, repo.Create(ctx, cancelled))

		_, err := repo.GetNewestActiveByUserID(ctx, 5)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("newest active row wins", func(t *testing.T) {
		old := createTestSubscription(t, 6, vo.PlanMonthly, "cs_old")
		require.NoError(t, repo.Create(ctx, old))
		// backdate the first row so ordering is deterministic
		require.NoError(t, db.Exec(
			"UPDATE subscriptions SET created_at = ? WHERE id = ?",
			time.Now().UTC().Add(-time.Hour), old.ID(),
		).Error)

		newest := createTestSubscription(t, 6, vo.PlanLifetime, "cs_new")
		require.NoError(t, repo.Create(ctx, newest))

		found, err := repo.GetNewestActiveByUserID(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, newest.SID(), found.SID())
	})
}

func TestSubscriptionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, newTestLogger())
	ctx := context.Background()

	sub := createTestSubscription(t, 7, vo.PlanMonthly, "cs_update")
	require.NoError(t, repo.Create(ctx, sub))

	require.NoError(t, sub.ScheduleCancellation())
	require.NoError(t, repo.Update(ctx, sub))

	found, err := repo.GetByID(ctx, sub.ID())
	require.NoError(t, err)
	assert.True(t, found.CancelAtPeriodEnd())
	assert.Equal(t, vo.StatusActive, found.Status())
}

func TestSubscriptionRepository_ListByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, newTestLogger())
	ctx := context.Background()

	first := createTestSubscription(t, 8, vo.PlanMonthly, "cs_list_1")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, db.Exec(
		"UPDATE subscriptions SET created_at = ? WHERE id = ?",
		time.Now().UTC().Add(-time.Hour), first.ID(),
	).Error)

	second := createTestSubscription(t, 8, vo.PlanLifetime, "cs_list_2")
	require.NoError(t, repo.Create(ctx, second))

	subs, err := repo.ListByUserID(ctx, 8)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, second.SID(), subs[0].SID())
	assert.Equal(t, first.SID(), subs[1].SID())
}

func TestWebhookEventRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWebhookEventRepository(db)

	event, err := subscription.NewWebhookEvent("evt_test_1", "checkout.session.completed", `{"id":"evt_test_1"}`)
	require.NoError(t, err)
	require.NoError(t, repo.Create(event))
	assert.NotZero(t, event.ID)

	exists, err := repo.ExistsByProviderEventID("evt_test_1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByProviderEventID("evt_missing")
	require.NoError(t, err)
	assert.False(t, exists)

	dup, err := subscription.NewWebhookEvent("evt_test_1", "checkout.session.completed", `{}`)
	require.NoError(t, err)
	err = repo.Create(dup)
	assert.True(t, errors.IsConflictError(err))
}
