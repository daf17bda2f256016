package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

const (
	collectionAdmins           = "admins"
	collectionAgents           = "agents"
	collectionNotifications    = "notifications"
	collectionContacts         = "contacts"
	collectionPropertyRequests = "property_requests"
	collectionProperties       = "properties"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Ping is used by the readiness probe.
func Ping(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes every repository relies on. Email and
// username uniqueness is enforced here as well as in the services.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	identity := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("username_unique")},
	}

	plan := map[string][]mongo.IndexModel{
		collectionAdmins: identity,
		collectionAgents: identity,
		collectionNotifications: {
			{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "read", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionContacts: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionPropertyRequests: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionProperties: {
			{Keys: bson.D{{Key: "listing_type", Value: 1}, {Key: "featured", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "agent_id", Value: 1}}},
		},
	}

	for name, models := range plan {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}

// objectID parses a hex id. Malformed ids are reported as not found by the
// callers, so ok is all they need.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// identityConflict maps a duplicate key error on the identity indexes to the
// matching domain error.
func identityConflict(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return domain.ErrEmailTaken
	case strings.Contains(msg, "username"):
		return domain.ErrUsernameTaken
	default:
		return domain.ErrIdentityExists
	}
}

// notFound translates mongo.ErrNoDocuments into target.
func notFound(err, target error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return target
	}
	return err
}

// decodeAll drains cur into a slice of domain values.
func decodeAll[D any, T any](ctx context.Context, cur *mongo.Cursor, convert func(*D) *T) ([]*T, error) {
	defer cur.Close(ctx)

	out := make([]*T, 0)
	for cur.Next(ctx) {
		var doc D
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, convert(&doc))
	}
	return out, cur.Err()
}

// pageOptions returns newest-first find options for a 1-based page.
func pageOptions(page, limit int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * limit)).SetLimit(int64(limit))
	}
	return opts
}

// presenceUpdate is shared by the admin and agent repositories.
func presenceUpdate(online bool, at time.Time) bson.M {
	set := bson.M{"is_online": online, "last_activity": at}
	if online {
		set["last_login"] = at
	}
	return bson.M{"$set": set}
}

func setIfPresent(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}
