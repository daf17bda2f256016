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

// requestSortFields maps API sort keys to stored field names.
var requestSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"status":    "status",
}

type PropertyRequestRepository struct {
	col *mongo.Collection
}

func NewPropertyRequestRepository(db *mongo.Database) *PropertyRequestRepository {
	return &PropertyRequestRepository{col: db.Collection(collectionPropertyRequests)}
}

type propertyRequestDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Email            string             `bson:"email"`
	Phone            string             `bson:"phone"`
	CountryCode      string             `bson:"country_code"`
	PropertyID       string             `bson:"property_id"`
	PropertyTitle    string             `bson:"property_title"`
	PrivacyConsent   bool               `bson:"privacy_consent"`
	MarketingConsent bool               `bson:"marketing_consent"`
	Status           string             `bson:"status"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func (d *propertyRequestDoc) toDomain() *domain.PropertyRequest {
	return &domain.PropertyRequest{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Email:            d.Email,
		Phone:            d.Phone,
		CountryCode:      d.CountryCode,
		PropertyID:       d.PropertyID,
		PropertyTitle:    d.PropertyTitle,
		PrivacyConsent:   d.PrivacyConsent,
		MarketingConsent: d.MarketingConsent,
		Status:           domain.PropertyRequestStatus(d.Status),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func (r *PropertyRequestRepository) Create(ctx context.Context, req *domain.PropertyRequest) (*domain.PropertyRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := propertyRequestDoc{
		ID:               primitive.NewObjectID(),
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		CountryCode:      req.CountryCode,
		PropertyID:       req.PropertyID,
		PropertyTitle:    req.PropertyTitle,
		PrivacyConsent:   req.PrivacyConsent,
		MarketingConsent: req.MarketingConsent,
		Status:           string(req.Status),
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert property request: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PropertyRequestRepository) List(ctx context.Context, filter ports.PropertyRequestFilter) ([]*domain.PropertyRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	field, ok := requestSortFields[filter.SortField]
	if !ok {
		field = "created_at"
	}
	order := 1
	if filter.SortDesc {
		order = -1
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: field, Value: order}}))
	if err != nil {
		return nil, fmt.Errorf("list property requests: %w", err)
	}
	return decodeAll(ctx, cur, (*propertyRequestDoc).toDomain)
}

func (r *PropertyRequestRepository) FindByID(ctx context.Context, id string) (*domain.PropertyRequest, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPropertyRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc propertyRequestDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrPropertyRequestNotFound)
	}
	return doc.toDomain(), nil
}

func (r *PropertyRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.PropertyRequestStatus, at time.Time) (*domain.PropertyRequest, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPropertyRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc propertyRequestDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err, domain.ErrPropertyRequestNotFound)
	}
	return doc.toDomain(), nil
}

func (r *PropertyRequestRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPropertyRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete property request: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyRequestNotFound
	}
	return nil
}
