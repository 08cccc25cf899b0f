package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DB struct {
	Client *mongo.Client
}

var TIMEOUT = 120 * time.Second

const ServerSelectionTimeout = 10 * time.Second

// HostOptions selects a host based connection with SCRAM credentials. It
// takes precedence over a URI when Host is set.
type HostOptions struct {
	Host     string
	Port     string
	Source   string
	Username string
	Password string
}

func Connect(uri string, host HostOptions) (*DB, error) {
	if host.Host != "" {
		return NewMongoDBHost(host.Host, host.Port, host.Source, host.Username, host.Password)
	}
	return NewMongoDBURI(uri)
}

func NewMongoDBURI(uri string) (*DB, error) {
	return NewMongoDB(uri, "", "", "", "", "")
}

func NewMongoDBHost(host string, port string, databaseCredentials string, username string, password string) (*DB, error) {
	return NewMongoDB("", host, port, databaseCredentials, username, password)
}

func NewMongoDB(uri string, host string, port string, databaseCredentials string, username string, password string) (*DB, error) {

	// Hardcoded values
	replicaset := ""
	authentication := "SCRAM-SHA-256"

	ctx, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()

	var opts *options.ClientOptions

	// We can also apply the complete URI
	// e.g. "mongodb+srv://<username>:<password>@cluster0.abcde.mongodb.net/?retryWrites=true&w=majority"
	if uri != "" {
		serverAPI := options.ServerAPI(options.ServerAPIVersion1)
		opts = options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	} else {
		if host == "" {
			return nil, fmt.Errorf("either a MongoDB URI or a host is required")
		}
		if port != "" {
			host = fmt.Sprintf("%s:%s", host, port)
		}
		mongodbURI := fmt.Sprintf("mongodb://%s", host)
		if replicaset != "" {
			mongodbURI = fmt.Sprintf("%s/?replicaSet=%s", mongodbURI, replicaset)
		}
		opts = options.Client().ApplyURI(mongodbURI)
		if username != "" {
			opts = opts.SetAuth(options.Credential{
				AuthMechanism: authentication,
				AuthSource:    databaseCredentials,
				Username:      username,
				Password:      password,
			})
		}
	}
	opts = opts.SetServerSelectionTimeout(ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("setting up mongodb connection: %w", err)
	}
	// Connect is lazy, so make sure the server is reachable before any work
	// is generated.
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &DB{Client: client}, nil
}
