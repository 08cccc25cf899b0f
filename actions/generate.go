package actions

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/sabordos/cli/models"
	"github.com/sabordos/cli/utils"
)

const (
	DefaultSeedUsers          = 10000
	DefaultSeedReviewsPerUser = 4
	DefaultSeedStartUserID    = 25
	DefaultSeedStartReviewID  = 10

	DefaultUserPassword = "psswd123"
	ReviewType          = "restaurant"

	ReviewTitleLength   = 10
	ReviewCommentLength = 30
	MinReviewRate       = 1
	MaxReviewRate       = 5
	MinReviewedItemID   = 1
	MaxReviewedItemID   = 4
)

var DefaultAddresses = []string{"casa1", "casa2", "casa3"}

var ErrEmptyAddressPool = errors.New("address pool is empty")

type SeedPlanConfig struct {
	Users          int
	ReviewsPerUser int
	StartUserID    int
	StartReviewID  int
	Addresses      []string
	// Password is stored as is on every user.
	Password string
}

// SeedPlan is the output of a generation pass. Users and Reviews are in
// generation order.
type SeedPlan struct {
	Users   []models.User
	Reviews []models.Review
}

func (p SeedPlan) UserDocs() []interface{} {
	docs := make([]interface{}, len(p.Users))
	for i := range p.Users {
		docs[i] = p.Users[i]
	}
	return docs
}

func (p SeedPlan) ReviewDocs() []interface{} {
	docs := make([]interface{}, len(p.Reviews))
	for i := range p.Reviews {
		docs[i] = p.Reviews[i]
	}
	return docs
}

// GenerateSeed builds cfg.Users users and cfg.ReviewsPerUser reviews for each
// of them. One review id counter is shared by all users, so review ids form
// the contiguous range starting at cfg.StartReviewID.
func GenerateSeed(cfg SeedPlanConfig, rng *rand.Rand) (SeedPlan, error) {
	if cfg.Users < 0 || cfg.ReviewsPerUser < 0 || cfg.StartUserID < 0 || cfg.StartReviewID < 0 {
		return SeedPlan{}, fmt.Errorf("counts and start ids must be non-negative (users=%d reviews_per_user=%d start_user_id=%d start_review_id=%d)",
			cfg.Users, cfg.ReviewsPerUser, cfg.StartUserID, cfg.StartReviewID)
	}
	pool := utils.Dedupe(cfg.Addresses)
	if cfg.Users > 0 && len(pool) == 0 {
		return SeedPlan{}, ErrEmptyAddressPool
	}
	password := cfg.Password
	if password == "" {
		password = DefaultUserPassword
	}

	plan := SeedPlan{
		Users:   make([]models.User, 0, cfg.Users),
		Reviews: make([]models.Review, 0, cfg.Users*cfg.ReviewsPerUser),
	}

	reviewID := cfg.StartReviewID
	for userID := cfg.StartUserID; userID < cfg.StartUserID+cfg.Users; userID++ {
		user := models.User{
			UserId:   userID,
			UserName: fmt.Sprintf("user%d", userID),
			Password: password,
			Img:      "",
			Admin:    0,
			Address:  utils.SampleSubset(rng, pool),
			Orders:   []interface{}{},
			Reviews:  make([]int, 0, cfg.ReviewsPerUser),
		}

		for r := 0; r < cfg.ReviewsPerUser; r++ {
			plan.Reviews = append(plan.Reviews, newReview(rng, reviewID, userID))
			user.Reviews = append(user.Reviews, reviewID)
			reviewID++
		}

		plan.Users = append(plan.Users, user)
	}
	return plan, nil
}

func newReview(rng *rand.Rand, reviewID int, userID int) models.Review {
	return models.Review{
		ReviewId:       reviewID,
		UserId:         userID,
		Type:           ReviewType,
		Rate:           MinReviewRate + rng.Intn(MaxReviewRate-MinReviewRate+1),
		Title:          utils.RandomText(rng, ReviewTitleLength),
		Comment:        utils.RandomText(rng, ReviewCommentLength),
		ReviewedItemId: strconv.Itoa(MinReviewedItemID + rng.Intn(MaxReviewedItemID-MinReviewedItemID+1)),
	}
}
