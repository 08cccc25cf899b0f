package actions

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/sabordos/cli/database"
	"github.com/sabordos/cli/models"
)

type VerifyStore interface {
	FindUsers(ctx context.Context, collName string, from, to int) ([]models.User, error)
	FindReviews(ctx context.Context, collName string, from, to int) ([]models.Review, error)
}

type VerifySeedConfig struct {
	MongoURI   string `validate:"required"`
	DBName     string `validate:"required"`
	UserColl   string `validate:"required"`
	ReviewColl string `validate:"required"`

	MongoHost database.HostOptions

	StartUserID int `validate:"gte=0"`
	Users       int `validate:"gte=0"`

	// ReviewsPerUser is the count every user should own, -1 skips the check.
	ReviewsPerUser int `validate:"gte=-1"`
}

func (c *VerifySeedConfig) ApplyDefaults() {
	if c.MongoURI == "" {
		c.MongoURI = DefaultMongoURI
	}
	if c.DBName == "" {
		c.DBName = DefaultDBName
	}
	if c.UserColl == "" {
		c.UserColl = DefaultUserColl
	}
	if c.ReviewColl == "" {
		c.ReviewColl = DefaultReviewColl
	}
}

type VerifyReport struct {
	Users   int
	Reviews int
	// user ids in the range with no user document
	MissingUsers []int
	// review ids listed on a user with no review document
	MissingReviews []int
	// review ids whose owner does not list them
	OrphanReviews []int
	// review ids stored or listed more than once
	DuplicateReviews []int
	// user ids owning a different number of reviews than expected
	WrongCount []int
}

func (r VerifyReport) Clean() bool {
	return len(r.MissingUsers) == 0 &&
		len(r.MissingReviews) == 0 &&
		len(r.OrphanReviews) == 0 &&
		len(r.DuplicateReviews) == 0 &&
		len(r.WrongCount) == 0
}

// CheckSeed compares the users of [startUserID, startUserID+users) with the
// reviews they own. Each review must belong to exactly one user that lists
// its review_id.
func CheckSeed(startUserID, users, reviewsPerUser int, userDocs []models.User, reviewDocs []models.Review) VerifyReport {
	report := VerifyReport{Users: len(userDocs), Reviews: len(reviewDocs)}

	owner := make(map[int]int)
	listedTwice := make(map[int]bool)
	present := make(map[int]bool, len(userDocs))
	for _, u := range userDocs {
		present[u.UserId] = true
		if reviewsPerUser >= 0 && len(u.Reviews) != reviewsPerUser {
			report.WrongCount = append(report.WrongCount, u.UserId)
		}
		for _, id := range u.Reviews {
			if _, ok := owner[id]; ok {
				listedTwice[id] = true
				continue
			}
			owner[id] = u.UserId
		}
	}
	for id := startUserID; id < startUserID+users; id++ {
		if !present[id] {
			report.MissingUsers = append(report.MissingUsers, id)
		}
	}

	stored := make(map[int]int, len(reviewDocs))
	for _, r := range reviewDocs {
		stored[r.ReviewId]++
		if o, ok := owner[r.ReviewId]; !ok || o != r.UserId {
			report.OrphanReviews = append(report.OrphanReviews, r.ReviewId)
		}
	}
	for id, n := range stored {
		if n > 1 {
			listedTwice[id] = true
		}
	}
	for id := range owner {
		if stored[id] == 0 {
			report.MissingReviews = append(report.MissingReviews, id)
		}
	}
	for id := range listedTwice {
		report.DuplicateReviews = append(report.DuplicateReviews, id)
	}

	sort.Ints(report.MissingReviews)
	sort.Ints(report.OrphanReviews)
	sort.Ints(report.DuplicateReviews)
	return report
}

func RunVerifySeed(ctx context.Context, cfg VerifySeedConfig, store VerifyStore) (VerifyReport, error) {
	cfg.ApplyDefaults()
	if err := validateConfig(cfg); err != nil {
		return VerifyReport{}, err
	}
	to := cfg.StartUserID + cfg.Users

	users, err := store.FindUsers(ctx, cfg.UserColl, cfg.StartUserID, to)
	if err != nil {
		return VerifyReport{}, fmt.Errorf("find users: %w", err)
	}
	reviews, err := store.FindReviews(ctx, cfg.ReviewColl, cfg.StartUserID, to)
	if err != nil {
		return VerifyReport{}, fmt.Errorf("find reviews: %w", err)
	}

	report := CheckSeed(cfg.StartUserID, cfg.Users, cfg.ReviewsPerUser, users, reviews)
	printVerifyReport(cfg, report)
	return report, nil
}

func printVerifyReport(cfg VerifySeedConfig, r VerifyReport) {
	fmt.Printf("[info] checked users=%d reviews=%d user_ids=%s\n", r.Users, r.Reviews, idRange(cfg.StartUserID, cfg.Users))
	show := func(label string, ids []int) {
		if len(ids) == 0 {
			return
		}
		shown := ids
		if len(shown) > 20 {
			shown = shown[:20]
		}
		fmt.Printf("[warn] %s: %d %v\n", label, len(ids), shown)
	}
	show("missing users", r.MissingUsers)
	show("missing reviews", r.MissingReviews)
	show("orphan reviews", r.OrphanReviews)
	show("duplicate reviews", r.DuplicateReviews)
	show("users with wrong review count", r.WrongCount)
	if r.Clean() {
		fmt.Println("[done] seed is consistent")
	} else {
		fmt.Println("[done] seed is NOT consistent")
	}
}

func VerifySeed(cfg VerifySeedConfig, interactive bool) {
	HandleSignals()
	LoadEnv()

	cfg.MongoURI = resolveString("mongodb-uri", flagOrEnv("mongodb-uri", cfg.MongoURI, EnvConnectionString), DefaultMongoURI, interactive)
	cfg.DBName = resolveString("db", flagOrEnv("db", cfg.DBName, EnvDBName), DefaultDBName, interactive)
	cfg.StartUserID = resolveInt("start-user-id", cfg.StartUserID, false)
	cfg.Users = resolveInt("users", cfg.Users, interactive)

	db, err := database.Connect(cfg.MongoURI, cfg.MongoHost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[error] MongoDB connect %s: %v\n", mongoTarget(cfg.MongoURI, cfg.MongoHost), err)
		os.Exit(1)
	}
	store := database.NewStore(db.Client, cfg.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), database.TIMEOUT)
	report, err := RunVerifySeed(ctx, cfg, store)
	cancel()
	store.Disconnect(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[error] verify seed: %v\n", err)
		os.Exit(1)
	}
	if !report.Clean() {
		os.Exit(1)
	}
}
