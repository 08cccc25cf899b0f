package actions

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/sabordos/cli/database"
	"github.com/sabordos/cli/models"
	"github.com/sabordos/cli/queue"
	"github.com/sabordos/cli/utils"
)

// SeedStore is the storage the seed runner writes to.
type SeedStore interface {
	InsertMany(ctx context.Context, collName string, docs []interface{}) error
	CreateSeedIndexes(ctx context.Context, userCollName, reviewCollName string) error
	LastID(ctx context.Context, collName string, field string) (int, bool, error)
}

// Publisher receives the seed event after a successful live run.
type Publisher interface {
	SendMessage(queueName string, payload string, delay int) error
}

type SeedReviewsConfig struct {
	Mode       string `validate:"oneof=live dry-run"`
	MongoURI   string `validate:"required"`
	DBName     string `validate:"required"`
	UserColl   string `validate:"required"`
	ReviewColl string `validate:"required,nefield=UserColl"`

	// MongoHost replaces MongoURI when its Host is set.
	MongoHost database.HostOptions

	Users          int `validate:"gte=0"`
	ReviewsPerUser int `validate:"gte=0"`
	StartUserID    int `validate:"gte=0"`
	StartReviewID  int `validate:"gte=0"`
	Addresses      []string

	// BatchSize splits each collection into several insertMany calls. Zero
	// writes each collection in one call.
	BatchSize int `validate:"gte=0"`

	Continue     bool
	NoIndex      bool
	HashPassword bool
	Seed         int64
	ShowProgress bool

	QueueName string
}

func (c *SeedReviewsConfig) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeLive
	}
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
	if c.Addresses == nil {
		c.Addresses = append([]string(nil), DefaultAddresses...)
	}
}

type SeedSummary struct {
	Mode            string
	Users           int
	Reviews         int
	StartUserID     int
	StartReviewID   int
	InsertedUsers   int
	InsertedReviews int
}

// Event describes the run for publication. Last ids are -1 when the range is
// empty.
func (s SeedSummary) Event(cfg SeedReviewsConfig) models.SeedEvent {
	return models.SeedEvent{
		Mode:             s.Mode,
		Database:         cfg.DBName,
		UserCollection:   cfg.UserColl,
		ReviewCollection: cfg.ReviewColl,
		Users:            s.Users,
		Reviews:          s.Reviews,
		FirstUserId:      s.StartUserID,
		LastUserId:       lastID(s.StartUserID, s.Users),
		FirstReviewId:    s.StartReviewID,
		LastReviewId:     lastID(s.StartReviewID, s.Reviews),
		Timestamp:        time.Now().Unix(),
	}
}

// RunSeedReviews generates the users and their reviews, then writes the
// users and the reviews with one insertMany each (or one per chunk when
// BatchSize is set). The two writes are not atomic: when the review insert
// fails the users stay in the store.
func RunSeedReviews(ctx context.Context, cfg SeedReviewsConfig, store SeedStore, publisher Publisher) (SeedSummary, error) {
	cfg.ApplyDefaults()
	if err := validateConfig(cfg); err != nil {
		return SeedSummary{}, err
	}

	if cfg.Continue {
		if err := continueFromStore(ctx, &cfg, store); err != nil {
			return SeedSummary{}, err
		}
	}

	if !cfg.NoIndex && cfg.Mode == ModeLive {
		if err := store.CreateSeedIndexes(ctx, cfg.UserColl, cfg.ReviewColl); err != nil {
			fmt.Printf("[info] index creation skipped: %v\n", err)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	password := DefaultUserPassword
	if cfg.HashPassword {
		hashed, err := utils.Hash(DefaultUserPassword)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("hash password: %w", err)
		}
		password = hashed
	}

	plan, err := GenerateSeed(SeedPlanConfig{
		Users:          cfg.Users,
		ReviewsPerUser: cfg.ReviewsPerUser,
		StartUserID:    cfg.StartUserID,
		StartReviewID:  cfg.StartReviewID,
		Addresses:      cfg.Addresses,
		Password:       password,
	}, rng)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("generate seed: %w", err)
	}

	summary := SeedSummary{
		Mode:          cfg.Mode,
		Users:         len(plan.Users),
		Reviews:       len(plan.Reviews),
		StartUserID:   cfg.StartUserID,
		StartReviewID: cfg.StartReviewID,
	}
	fmt.Printf("[info] plan users=%d reviews=%d user_ids=%s review_ids=%s seed=%d\n",
		summary.Users, summary.Reviews,
		idRange(cfg.StartUserID, summary.Users), idRange(cfg.StartReviewID, summary.Reviews), seed)

	if cfg.Mode == ModeDryRun {
		fmt.Printf("[done] dry-run, nothing written to %s.%s / %s.%s\n", cfg.DBName, cfg.UserColl, cfg.DBName, cfg.ReviewColl)
		return summary, nil
	}

	var progress *uiprogress.Progress
	var bar *uiprogress.Bar
	if cfg.ShowProgress && summary.Users+summary.Reviews > 0 {
		progress = uiprogress.New()
		bar = progress.AddBar(summary.Users + summary.Reviews).AppendCompleted().PrependElapsed()
		progress.Start()
	}
	stopProgress := func() {
		if progress != nil {
			progress.Stop()
			progress = nil
		}
	}
	defer stopProgress()

	if Interrupted() {
		return summary, ErrInterrupted
	}

	fmt.Println("Adding users...")
	n, err := insertInBatches(ctx, store, cfg.UserColl, plan.UserDocs(), cfg.BatchSize, bar)
	summary.InsertedUsers = n
	if err != nil {
		stopProgress()
		return summary, fmt.Errorf("insert users: %w", err)
	}
	fmt.Println("Users added!")

	if Interrupted() {
		stopProgress()
		return summary, fmt.Errorf("users %s are stored without their reviews: %w", idRange(cfg.StartUserID, summary.Users), ErrInterrupted)
	}

	fmt.Println("Adding reviews...")
	n, err = insertInBatches(ctx, store, cfg.ReviewColl, plan.ReviewDocs(), cfg.BatchSize, bar)
	summary.InsertedReviews = n
	if err != nil {
		stopProgress()
		return summary, fmt.Errorf("insert reviews (users %s are stored without all their reviews, -action purge-seed removes them): %w",
			idRange(cfg.StartUserID, summary.Users), err)
	}
	fmt.Println("Reviews added!")
	stopProgress()

	fmt.Printf("[done] inserted %d users and %d reviews.\n", summary.InsertedUsers, summary.InsertedReviews)

	if publisher != nil {
		if err := publishSeedEvent(publisher, cfg, summary); err != nil {
			fmt.Printf("[warn] publish seed event: %v\n", err)
		}
	}
	return summary, nil
}

// continueFromStore moves the start ids past the highest ids already stored,
// so a second run does not collide with the first.
func continueFromStore(ctx context.Context, cfg *SeedReviewsConfig, store SeedStore) error {
	lastUser, ok, err := store.LastID(ctx, cfg.UserColl, "user_id")
	if err != nil {
		return fmt.Errorf("last user_id: %w", err)
	}
	if ok && lastUser >= cfg.StartUserID {
		cfg.StartUserID = lastUser + 1
		fmt.Printf("[info] continuing after user_id=%d\n", lastUser)
	}
	lastReview, ok, err := store.LastID(ctx, cfg.ReviewColl, "review_id")
	if err != nil {
		return fmt.Errorf("last review_id: %w", err)
	}
	if ok && lastReview >= cfg.StartReviewID {
		cfg.StartReviewID = lastReview + 1
		fmt.Printf("[info] continuing after review_id=%d\n", lastReview)
	}
	return nil
}

// insertInBatches returns the number of documents written before the first
// failing call.
func insertInBatches(ctx context.Context, store SeedStore, collName string, docs []interface{}, batchSize int, bar *uiprogress.Bar) (int, error) {
	if batchSize <= 0 || batchSize >= len(docs) {
		if err := store.InsertMany(ctx, collName, docs); err != nil {
			return 0, err
		}
		advance(bar, len(docs))
		return len(docs), nil
	}
	inserted := 0
	for start := 0; start < len(docs); start += batchSize {
		if start > 0 && Interrupted() {
			return inserted, ErrInterrupted
		}
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		if err := store.InsertMany(ctx, collName, docs[start:end]); err != nil {
			return inserted, err
		}
		inserted += end - start
		advance(bar, end-start)
	}
	return inserted, nil
}

func advance(bar *uiprogress.Bar, n int) {
	if bar == nil {
		return
	}
	_ = bar.Set(bar.Current() + n)
}

func publishSeedEvent(publisher Publisher, cfg SeedReviewsConfig, summary SeedSummary) error {
	payload, err := queue.NewPayload(summary.Event(cfg)).Marshal()
	if err != nil {
		return err
	}
	if err := publisher.SendMessage(cfg.QueueName, payload, 0); err != nil {
		return err
	}
	fmt.Printf("[info] seed event published to %s\n", valueOr(cfg.QueueName, "default queue"))
	return nil
}

func lastID(start, count int) int {
	if count <= 0 {
		return -1
	}
	return start + count - 1
}

func idRange(start, count int) string {
	if count <= 0 {
		return "none"
	}
	return fmt.Sprintf("%d..%d", start, start+count-1)
}

// SeedReviews resolves the configuration from flags, the environment and
// prompts, connects and runs the seed. It exits the process on failure.
func SeedReviews(cfg SeedReviewsConfig, queueSystem string, queueConnection models.Queue, interactive bool) {
	HandleSignals()
	LoadEnv()

	cfg.MongoURI = resolveString("mongodb-uri", flagOrEnv("mongodb-uri", cfg.MongoURI, EnvConnectionString), DefaultMongoURI, interactive)
	cfg.DBName = resolveString("db", flagOrEnv("db", cfg.DBName, EnvDBName), DefaultDBName, interactive)
	cfg.UserColl = resolveString("user-collection", cfg.UserColl, DefaultUserColl, false)
	cfg.ReviewColl = resolveString("review-collection", cfg.ReviewColl, DefaultReviewColl, false)
	cfg.Mode = resolveString("mode", cfg.Mode, ModeLive, false)
	cfg.Users = resolveInt("users", cfg.Users, interactive)
	cfg.ReviewsPerUser = resolveInt("reviews-per-user", cfg.ReviewsPerUser, interactive)
	cfg.StartUserID = resolveInt("start-user-id", cfg.StartUserID, false)
	cfg.StartReviewID = resolveInt("start-review-id", cfg.StartReviewID, false)
	fmt.Printf("[info] addresses=%s\n", strings.Join(valueOrPool(cfg.Addresses), ","))

	ctx := context.Background()
	db, err := database.Connect(cfg.MongoURI, cfg.MongoHost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[error] MongoDB connect %s: %v\n", mongoTarget(cfg.MongoURI, cfg.MongoHost), err)
		os.Exit(1)
	}
	store := database.NewStore(db.Client, cfg.DBName)
	defer store.Disconnect(ctx)

	var publisher Publisher
	if queueSystem != "" && cfg.Mode == ModeLive {
		q, err := queue.CreateQueue(queueSystem, queueConnection)
		if err != nil {
			fmt.Printf("[warn] queue %s unavailable, no seed event will be published: %v\n", queueSystem, err)
		} else {
			defer q.Close()
			publisher = q
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, database.TIMEOUT)
	defer cancel()
	_, err = RunSeedReviews(runCtx, cfg, store, publisher)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[error] seed reviews: %v\n", err)
		store.Disconnect(ctx)
		if errors.Is(err, ErrInterrupted) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func valueOrPool(pool []string) []string {
	if pool == nil {
		return DefaultAddresses
	}
	return pool
}
