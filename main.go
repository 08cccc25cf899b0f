package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/sabordos/cli/actions"
	"github.com/sabordos/cli/database"
	"github.com/sabordos/cli/models"
	"github.com/sabordos/cli/utils"
)

func promptAction() string {
	choices := []string{
		"seed-reviews",
		"verify-seed",
		"purge-seed",
	}
	fmt.Println("Select an action:")
	for i, c := range choices {
		fmt.Printf("  %d) %s\n", i+1, c)
	}
	var sel int
	for {
		fmt.Print("Enter number: ")
		_, err := fmt.Scanln(&sel)
		if err == nil && sel >= 1 && sel <= len(choices) {
			return choices[sel-1]
		}
		fmt.Println("Invalid choice.")
	}
}

func main() {

	fmt.Println(`
   ____        _                 ____
  / ___|  __ _| |__   ___  _ __ |  _ \  ___  ___
  \___ \ / _' | '_ \ / _ \| '__|| | | |/ _ \/ __|
   ___) | (_| | |_) | (_) | |   | |_| | (_) \__ \
  |____/ \__,_|_.__/ \___/|_|   |____/ \___/|___/
    `)

	action := flag.String("action", "", "Action to take (seed-reviews, verify-seed, purge-seed)")

	mongodbURI := flag.String("mongodb-uri", "", "MongoDB URI (falls back to CONNECTION_STRING)")
	mongodbHost := flag.String("mongodb-host", "", "MongoDB host, used instead of the URI when set")
	mongodbPort := flag.String("mongodb-port", "27017", "MongoDB port")
	mongodbSource := flag.String("mongodb-source", "admin", "MongoDB authentication database")
	mongodbUsername := flag.String("mongodb-username", "", "MongoDB username")
	mongodbPassword := flag.String("mongodb-password", "", "MongoDB password")
	dbName := flag.String("db", actions.DefaultDBName, "Database name (falls back to DB_NAME)")
	userCollName := flag.String("user-collection", actions.DefaultUserColl, "User collection name")
	reviewCollName := flag.String("review-collection", actions.DefaultReviewColl, "Review collection name")
	mode := flag.String("mode", actions.ModeLive, "Mode (live or dry-run)")
	nonInteractive := flag.Bool("yes", false, "Never prompt, use flags and defaults")

	users := flag.Int("users", actions.DefaultSeedUsers, "Number of users to generate")
	reviewsPerUser := flag.Int("reviews-per-user", actions.DefaultSeedReviewsPerUser, "Reviews generated for every user")
	startUserID := flag.Int("start-user-id", actions.DefaultSeedStartUserID, "First user_id")
	startReviewID := flag.Int("start-review-id", actions.DefaultSeedStartReviewID, "First review_id")
	addresses := flag.String("addresses", strings.Join(actions.DefaultAddresses, ","), "Address names to sample from, separated by comma")
	batchSize := flag.Int("batch-size", 0, "Documents per insert call, 0 writes each collection in one call")
	continueIDs := flag.Bool("continue", false, "Start after the highest user_id and review_id already stored")
	noIndex := flag.Bool("no-index", false, "Skip index creation")
	hashPassword := flag.Bool("hash-password", false, "Store a bcrypt hash of the placeholder password")
	seed := flag.Int64("seed", 0, "Random seed, 0 picks one from the clock")
	noProgress := flag.Bool("no-progress", false, "Do not render progress bars")
	verifyReviewsPerUser := flag.Int("expect-reviews-per-user", -1, "verify-seed: reviews every user should own, -1 skips the check")

	queueName := flag.String("queue", "", "Queue system to announce the seed on (rabbitmq, kafka, sqs, webhook)")
	queueTopic := flag.String("queue-topic", "", "Queue, topic or routing key")
	queueBroker := flag.String("queue-broker", "", "Broker address (kafka, rabbitmq)")
	queueUsername := flag.String("queue-username", "", "Broker username")
	queuePassword := flag.String("queue-password", "", "Broker password")
	queueExchange := flag.String("queue-exchange", "", "RabbitMQ exchange")
	queueMechanism := flag.String("queue-mechanism", "", "Kafka SASL mechanism")
	queueSecurity := flag.String("queue-security", "", "Kafka security protocol")
	queueRegion := flag.String("queue-region", "", "AWS region (sqs)")
	queueAccessKey := flag.String("queue-access-key", "", "AWS access key (sqs)")
	queueSecret := flag.String("queue-secret", "", "AWS secret key (sqs)")
	queueURL := flag.String("queue-url", "", "Webhook base URL")
	queueKey := flag.String("queue-key", "", "Webhook key header value")

	flag.Parse()

	if strings.TrimSpace(*action) == "" {
		*action = promptAction()
	}
	interactive := !*nonInteractive
	mongoHost := database.HostOptions{
		Host:     *mongodbHost,
		Port:     *mongodbPort,
		Source:   *mongodbSource,
		Username: *mongodbUsername,
		Password: *mongodbPassword,
	}

	switch *action {
	case "seed-reviews":
		fmt.Println("Seeding users and reviews...")
		actions.SeedReviews(actions.SeedReviewsConfig{
			Mode:           *mode,
			MongoURI:       *mongodbURI,
			MongoHost:      mongoHost,
			DBName:         *dbName,
			UserColl:       *userCollName,
			ReviewColl:     *reviewCollName,
			Users:          *users,
			ReviewsPerUser: *reviewsPerUser,
			StartUserID:    *startUserID,
			StartReviewID:  *startReviewID,
			Addresses:      utils.ParseCSV(*addresses),
			BatchSize:      *batchSize,
			Continue:       *continueIDs,
			NoIndex:        *noIndex,
			HashPassword:   *hashPassword,
			Seed:           *seed,
			ShowProgress:   !*noProgress,
			QueueName:      *queueTopic,
		}, *queueName, models.Queue{
			Name:      *queueName,
			Broker:    *queueBroker,
			Username:  *queueUsername,
			Password:  *queuePassword,
			Topic:     *queueTopic,
			Mechanism: *queueMechanism,
			Security:  *queueSecurity,
			Exchange:  *queueExchange,
			Region:    *queueRegion,
			AccessKey: *queueAccessKey,
			Secret:    *queueSecret,
			Url:       *queueURL,
			CloudKey:  *queueKey,
		}, interactive)
	case "verify-seed":
		fmt.Println("Verifying seeded users and reviews...")
		actions.VerifySeed(actions.VerifySeedConfig{
			MongoURI:       *mongodbURI,
			MongoHost:      mongoHost,
			DBName:         *dbName,
			UserColl:       *userCollName,
			ReviewColl:     *reviewCollName,
			StartUserID:    *startUserID,
			Users:          *users,
			ReviewsPerUser: *verifyReviewsPerUser,
		}, interactive)
	case "purge-seed":
		fmt.Println("Purging seeded users and reviews...")
		actions.PurgeSeed(actions.PurgeSeedConfig{
			Mode:        *mode,
			MongoURI:    *mongodbURI,
			MongoHost:   mongoHost,
			DBName:      *dbName,
			UserColl:    *userCollName,
			ReviewColl:  *reviewCollName,
			StartUserID: *startUserID,
			Users:       *users,
		}, interactive)
	default:
		fmt.Println("Invalid action.")
	}
}
