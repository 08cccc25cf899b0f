package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T, users, perUser int) *fakeStore {
	t.Helper()
	store := newFakeStore()
	_, err := RunSeedReviews(context.Background(), seedConfig(users, perUser), store, nil)
	require.NoError(t, err)
	store.calls = nil
	return store
}

func TestRunPurgeSeedDeletesReviewsThenUsers(t *testing.T) {
	store := seededStore(t, 3, 2)

	summary, err := RunPurgeSeed(context.Background(), PurgeSeedConfig{StartUserID: 25, Users: 2}, store)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Users)
	assert.Equal(t, int64(4), summary.Reviews)
	assert.Equal(t, []string{"delete:" + DefaultReviewColl, "delete:" + DefaultUserColl}, store.calls)

	users := store.users(DefaultUserColl)
	require.Len(t, users, 1)
	assert.Equal(t, 27, users[0].UserId)
	assert.Len(t, store.reviews(DefaultReviewColl), 2)

	report := CheckSeed(27, 1, 2, users, store.reviews(DefaultReviewColl))
	assert.True(t, report.Clean(), "%+v", report)
}

func TestRunPurgeSeedDryRunOnlyCounts(t *testing.T) {
	store := seededStore(t, 3, 2)

	summary, err := RunPurgeSeed(context.Background(), PurgeSeedConfig{Mode: ModeDryRun, StartUserID: 25, Users: 3}, store)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Users)
	assert.Equal(t, int64(6), summary.Reviews)
	assert.Empty(t, store.calls)
	assert.Len(t, store.users(DefaultUserColl), 3)
}

func TestRunPurgeSeedStopsWhenReviewDeleteFails(t *testing.T) {
	store := seededStore(t, 1, 1)
	store.failOn["delete:"+DefaultReviewColl] = errDuplicateKey

	_, err := RunPurgeSeed(context.Background(), PurgeSeedConfig{StartUserID: 25, Users: 1}, store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete reviews")
	assert.Equal(t, []string{"delete:" + DefaultReviewColl}, store.calls)
	assert.Len(t, store.users(DefaultUserColl), 1)
}

func TestRunPurgeSeedRequiresARange(t *testing.T) {
	_, err := RunPurgeSeed(context.Background(), PurgeSeedConfig{StartUserID: 25}, newFakeStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
