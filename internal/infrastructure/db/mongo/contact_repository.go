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
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection(collectionContacts)}
}

type contactDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Email           string             `bson:"email"`
	Phone           string             `bson:"phone,omitempty"`
	Interest        string             `bson:"interest,omitempty"`
	Message         string             `bson:"message"`
	ContactPhone    bool               `bson:"contact_phone"`
	ContactWhatsApp bool               `bson:"contact_whatsapp"`
	ContactEmail    bool               `bson:"contact_email"`
	Status          string             `bson:"status"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (d *contactDoc) toDomain() *domain.Contact {
	return &domain.Contact{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Email:    d.Email,
		Phone:    d.Phone,
		Interest: d.Interest,
		Message:  d.Message,
		Preferences: domain.ContactPreferences{
			Phone:    d.ContactPhone,
			WhatsApp: d.ContactWhatsApp,
			Email:    d.ContactEmail,
		},
		Status:    domain.ContactStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := contactDoc{
		ID:              primitive.NewObjectID(),
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Interest:        c.Interest,
		Message:         c.Message,
		ContactPhone:    c.Preferences.Phone,
		ContactWhatsApp: c.Preferences.WhatsApp,
		ContactEmail:    c.Preferences.Email,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ContactRepository) List(ctx context.Context, filter ports.ContactFilter) ([]*domain.Contact, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}
	cur, err := r.col.Find(ctx, query, pageOptions(filter.Page, filter.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	items, err := decodeAll(ctx, cur, (*contactDoc).toDomain)
	if err != nil {
		return nil, 0, fmt.Errorf("decode contacts: %w", err)
	}
	return items, total, nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrContactNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc contactDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrContactNotFound)
	}
	return doc.toDomain(), nil
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus, at time.Time) (*domain.Contact, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrContactNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc contactDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err, domain.ErrContactNotFound)
	}
	return doc.toDomain(), nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrContactNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}
