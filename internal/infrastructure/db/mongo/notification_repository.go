package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// NotificationRepository stores one document per recipient. Every filter
// includes the recipient, so foreign ids match nothing.
type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

type notificationDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Recipient  string             `bson:"recipient"`
	Type       string             `bson:"type"`
	Message    string             `bson:"message"`
	EntityID   string             `bson:"entity_id,omitempty"`
	EntityName string             `bson:"entity_name,omitempty"`
	Read       bool               `bson:"read"`
	CreatedBy  string             `bson:"created_by"`
	CreatedAt  time.Time          `bson:"created_at"`
	// Creator is filled by the list pipeline only.
	Creator []struct {
		FullName string `bson:"full_name"`
		Username string `bson:"username"`
	} `bson:"creator,omitempty"`
}

func (d *notificationDoc) toDomain() *domain.Notification {
	n := &domain.Notification{
		ID:         d.ID.Hex(),
		Recipient:  d.Recipient,
		Type:       domain.NotificationType(d.Type),
		Message:    d.Message,
		EntityID:   d.EntityID,
		EntityName: d.EntityName,
		Read:       d.Read,
		CreatedBy:  d.CreatedBy,
		CreatedAt:  d.CreatedAt,
	}
	if len(d.Creator) > 0 {
		n.CreatedByName = d.Creator[0].FullName
		if n.CreatedByName == "" {
			n.CreatedByName = d.Creator[0].Username
		}
	}
	return n
}

func (r *NotificationRepository) InsertMany(ctx context.Context, items []*domain.Notification) ([]*domain.Notification, error) {
	if len(items) == 0 {
		return []*domain.Notification{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]any, len(items))
	out := make([]*domain.Notification, len(items))
	for i, n := range items {
		doc := notificationDoc{
			ID:         primitive.NewObjectID(),
			Recipient:  n.Recipient,
			Type:       string(n.Type),
			Message:    n.Message,
			EntityID:   n.EntityID,
			EntityName: n.EntityName,
			Read:       n.Read,
			CreatedBy:  n.CreatedBy,
			CreatedAt:  n.CreatedAt,
		}
		docs[i] = doc
		out[i] = doc.toDomain()
	}

	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("insert notifications: %w", err)
	}
	return out, nil
}

// ListByRecipient resolves the creator's display name with a $lookup on the
// admins collection. Creator ids that are not valid ObjectIDs resolve to
// nothing instead of failing the query.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipient string, limit int) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"recipient": recipient}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from": collectionAdmins,
			"let":  bson.M{"creator": "$created_by"},
			"pipeline": mongo.Pipeline{
				{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{
					"$_id",
					bson.M{"$convert": bson.M{"input": "$$creator", "to": "objectId", "onError": nil, "onNull": nil}},
				}}}}},
				{{Key: "$project", Value: bson.M{"full_name": 1, "username": 1}}},
			},
			"as": "creator",
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return decodeAll(ctx, cur, (*notificationDoc).toDomain)
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipient string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"recipient": recipient, "read": false})
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, recipient, id string) (*domain.Notification, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc notificationDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "recipient": recipient},
		bson.M{"$set": bson.M{"read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err, domain.ErrNotificationNotFound)
	}
	return doc.toDomain(), nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipient string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"recipient": recipient, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, recipient, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrNotificationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "recipient": recipient})
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteAll(ctx context.Context, recipient string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"recipient": recipient})
	if err != nil {
		return 0, fmt.Errorf("clear notifications: %w", err)
	}
	return res.DeletedCount, nil
}
