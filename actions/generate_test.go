package actions

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestGenerateSeedScenario(t *testing.T) {
	plan, err := GenerateSeed(SeedPlanConfig{
		Users:          2,
		ReviewsPerUser: 3,
		StartUserID:    25,
		StartReviewID:  10,
		Addresses:      DefaultAddresses,
	}, testRand())
	require.NoError(t, err)

	require.Len(t, plan.Users, 2)
	require.Len(t, plan.Reviews, 6)

	assert.Equal(t, 25, plan.Users[0].UserId)
	assert.Equal(t, 26, plan.Users[1].UserId)
	assert.Equal(t, []int{10, 11, 12}, plan.Users[0].Reviews)
	assert.Equal(t, []int{13, 14, 15}, plan.Users[1].Reviews)

	for i, r := range plan.Reviews {
		assert.Equal(t, 10+i, r.ReviewId)
		if i < 3 {
			assert.Equal(t, 25, r.UserId)
		} else {
			assert.Equal(t, 26, r.UserId)
		}
	}
}

func TestGenerateSeedUserFields(t *testing.T) {
	plan, err := GenerateSeed(SeedPlanConfig{
		Users:          3,
		ReviewsPerUser: 1,
		StartUserID:    7,
		Addresses:      DefaultAddresses,
	}, testRand())
	require.NoError(t, err)

	for _, u := range plan.Users {
		assert.Equal(t, "user"+strconv.Itoa(u.UserId), u.UserName)
		assert.Equal(t, DefaultUserPassword, u.Password)
		assert.Equal(t, "", u.Img)
		assert.Equal(t, 0, u.Admin)
		assert.NotNil(t, u.Orders)
		assert.Empty(t, u.Orders)
	}
}

func TestGenerateSeedReviewFields(t *testing.T) {
	plan, err := GenerateSeed(SeedPlanConfig{
		Users:          50,
		ReviewsPerUser: 4,
		Addresses:      DefaultAddresses,
	}, testRand())
	require.NoError(t, err)

	for _, r := range plan.Reviews {
		assert.Equal(t, ReviewType, r.Type)
		assert.GreaterOrEqual(t, r.Rate, MinReviewRate)
		assert.LessOrEqual(t, r.Rate, MaxReviewRate)
		assert.Len(t, r.Title, ReviewTitleLength)
		assert.Len(t, r.Comment, ReviewCommentLength)

		item, err := strconv.Atoi(r.ReviewedItemId)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, item, MinReviewedItemID)
		assert.LessOrEqual(t, item, MaxReviewedItemID)
	}
}

func TestGenerateSeedProperties(t *testing.T) {
	tests := []struct {
		name           string
		users          int
		reviewsPerUser int
		startUserID    int
		startReviewID  int
	}{
		{"defaults scaled down", 100, 4, 25, 10},
		{"no reviews", 10, 0, 0, 0},
		{"one user many reviews", 1, 50, 1000, 1},
		{"large start ids", 20, 3, 1 << 20, 1 << 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := GenerateSeed(SeedPlanConfig{
				Users:          tt.users,
				ReviewsPerUser: tt.reviewsPerUser,
				StartUserID:    tt.startUserID,
				StartReviewID:  tt.startReviewID,
				Addresses:      DefaultAddresses,
			}, testRand())
			require.NoError(t, err)

			require.Len(t, plan.Users, tt.users)
			require.Len(t, plan.Reviews, tt.users*tt.reviewsPerUser)

			// Review ids are the contiguous range, in generation order.
			for i, r := range plan.Reviews {
				require.Equal(t, tt.startReviewID+i, r.ReviewId)
			}

			owners := map[int]int{}
			for i, u := range plan.Users {
				assert.Equal(t, tt.startUserID+i, u.UserId)
				assert.Len(t, u.Reviews, tt.reviewsPerUser)
				for _, id := range u.Reviews {
					_, dup := owners[id]
					require.False(t, dup, "review %d owned twice", id)
					owners[id] = u.UserId
				}

				require.GreaterOrEqual(t, len(u.Address), 1)
				require.LessOrEqual(t, len(u.Address), len(DefaultAddresses))
				seen := map[string]bool{}
				for _, a := range u.Address {
					assert.Contains(t, DefaultAddresses, a)
					assert.False(t, seen[a], "duplicate address %s", a)
					seen[a] = true
				}
			}

			for _, r := range plan.Reviews {
				owner, ok := owners[r.ReviewId]
				require.True(t, ok, "review %d not listed by any user", r.ReviewId)
				assert.Equal(t, owner, r.UserId)
			}
		})
	}
}

func TestGenerateSeedZeroUsers(t *testing.T) {
	plan, err := GenerateSeed(SeedPlanConfig{Users: 0, ReviewsPerUser: 4}, testRand())
	require.NoError(t, err)
	assert.Empty(t, plan.Users)
	assert.Empty(t, plan.Reviews)
	assert.Empty(t, plan.UserDocs())
	assert.Empty(t, plan.ReviewDocs())
}

func TestGenerateSeedEmptyAddressPool(t *testing.T) {
	_, err := GenerateSeed(SeedPlanConfig{Users: 1, ReviewsPerUser: 1, Addresses: []string{}}, testRand())
	assert.ErrorIs(t, err, ErrEmptyAddressPool)

	_, err = GenerateSeed(SeedPlanConfig{Users: 1, Addresses: []string{" ", ""}}, testRand())
	assert.ErrorIs(t, err, ErrEmptyAddressPool)
}

func TestGenerateSeedDuplicatePoolEntries(t *testing.T) {
	plan, err := GenerateSeed(SeedPlanConfig{
		Users:     30,
		Addresses: []string{"casa1", "casa1", "casa2"},
	}, testRand())
	require.NoError(t, err)
	for _, u := range plan.Users {
		require.LessOrEqual(t, len(u.Address), 2)
		if len(u.Address) == 2 {
			assert.NotEqual(t, u.Address[0], u.Address[1])
		}
	}
}

func TestGenerateSeedRejectsNegativeInput(t *testing.T) {
	cases := []SeedPlanConfig{
		{Users: -1, Addresses: DefaultAddresses},
		{Users: 1, ReviewsPerUser: -1, Addresses: DefaultAddresses},
		{Users: 1, StartUserID: -5, Addresses: DefaultAddresses},
		{Users: 1, StartReviewID: -5, Addresses: DefaultAddresses},
	}
	for _, c := range cases {
		_, err := GenerateSeed(c, testRand())
		assert.Error(t, err)
	}
}

func TestGenerateSeedIsDeterministicForASeed(t *testing.T) {
	cfg := SeedPlanConfig{Users: 5, ReviewsPerUser: 2, Addresses: DefaultAddresses}
	a, err := GenerateSeed(cfg, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	b, err := GenerateSeed(cfg, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateSeedCustomPassword(t *testing.T) {
	plan, err := GenerateSeed(SeedPlanConfig{Users: 1, Addresses: DefaultAddresses, Password: "hashed"}, testRand())
	require.NoError(t, err)
	assert.Equal(t, "hashed", plan.Users[0].Password)
}
