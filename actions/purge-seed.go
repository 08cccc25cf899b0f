package actions

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sabordos/cli/database"
)

type PurgeStore interface {
	CountUserRange(ctx context.Context, collName string, from, to int) (int64, error)
	DeleteUserRange(ctx context.Context, collName string, from, to int) (int64, error)
}

type PurgeSeedConfig struct {
	Mode       string `validate:"oneof=live dry-run"`
	MongoURI   string `validate:"required"`
	DBName     string `validate:"required"`
	UserColl   string `validate:"required"`
	ReviewColl string `validate:"required,nefield=UserColl"`

	MongoHost database.HostOptions

	StartUserID int `validate:"gte=0"`
	Users       int `validate:"gt=0"`
}

func (c *PurgeSeedConfig) ApplyDefaults() {
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
}

type PurgeSummary struct {
	Users   int64
	Reviews int64
}

// RunPurgeSeed removes the users of [StartUserID, StartUserID+Users) and every
// review they own. Reviews go first, so an interrupted purge can be rerun.
func RunPurgeSeed(ctx context.Context, cfg PurgeSeedConfig, store PurgeStore) (PurgeSummary, error) {
	cfg.ApplyDefaults()
	if err := validateConfig(cfg); err != nil {
		return PurgeSummary{}, err
	}
	from, to := cfg.StartUserID, cfg.StartUserID+cfg.Users
	var summary PurgeSummary

	if cfg.Mode == ModeDryRun {
		var err error
		if summary.Reviews, err = store.CountUserRange(ctx, cfg.ReviewColl, from, to); err != nil {
			return summary, fmt.Errorf("count reviews: %w", err)
		}
		if summary.Users, err = store.CountUserRange(ctx, cfg.UserColl, from, to); err != nil {
			return summary, fmt.Errorf("count users: %w", err)
		}
		fmt.Printf("[done] dry-run, would delete %d users and %d reviews (user_ids=%s)\n",
			summary.Users, summary.Reviews, idRange(from, cfg.Users))
		return summary, nil
	}

	if Interrupted() {
		return summary, ErrInterrupted
	}
	fmt.Println("Deleting reviews...")
	n, err := store.DeleteUserRange(ctx, cfg.ReviewColl, from, to)
	if err != nil {
		return summary, fmt.Errorf("delete reviews: %w", err)
	}
	summary.Reviews = n

	if Interrupted() {
		return summary, ErrInterrupted
	}
	fmt.Println("Deleting users...")
	n, err = store.DeleteUserRange(ctx, cfg.UserColl, from, to)
	if err != nil {
		return summary, fmt.Errorf("delete users: %w", err)
	}
	summary.Users = n

	fmt.Printf("[done] deleted %d users and %d reviews (user_ids=%s)\n", summary.Users, summary.Reviews, idRange(from, cfg.Users))
	return summary, nil
}

func PurgeSeed(cfg PurgeSeedConfig, interactive bool) {
	HandleSignals()
	LoadEnv()

	cfg.MongoURI = resolveString("mongodb-uri", flagOrEnv("mongodb-uri", cfg.MongoURI, EnvConnectionString), DefaultMongoURI, interactive)
	cfg.DBName = resolveString("db", flagOrEnv("db", cfg.DBName, EnvDBName), DefaultDBName, interactive)
	cfg.Mode = resolveString("mode", cfg.Mode, ModeLive, false)
	cfg.StartUserID = resolveInt("start-user-id", cfg.StartUserID, false)
	cfg.Users = resolveInt("users", cfg.Users, interactive)

	if cfg.Mode == ModeLive && interactive {
		msg := fmt.Sprintf("Delete users %s and their reviews from %s? [y/N]: ", idRange(cfg.StartUserID, cfg.Users), cfg.DBName)
		if !PromptBool(msg, false) {
			fmt.Println("[info] purge cancelled")
			return
		}
	}

	db, err := database.Connect(cfg.MongoURI, cfg.MongoHost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[error] MongoDB connect %s: %v\n", mongoTarget(cfg.MongoURI, cfg.MongoHost), err)
		os.Exit(1)
	}
	store := database.NewStore(db.Client, cfg.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), database.TIMEOUT)
	_, err = RunPurgeSeed(ctx, cfg, store)
	cancel()
	store.Disconnect(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[error] purge seed: %v\n", err)
		if errors.Is(err, ErrInterrupted) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
