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

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection(collectionProperties)}
}

type propertyDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description,omitempty"`
	Price        float64            `bson:"price"`
	Currency     string             `bson:"currency"`
	Location     string             `bson:"location,omitempty"`
	PropertyType string             `bson:"property_type,omitempty"`
	ListingType  string             `bson:"listing_type"`
	Bedrooms     int                `bson:"bedrooms"`
	Bathrooms    int                `bson:"bathrooms"`
	AreaSqft     float64            `bson:"area_sqft"`
	Images       []string           `bson:"images"`
	Amenities    []string           `bson:"amenities"`
	AgentID      string             `bson:"agent_id,omitempty"`
	Featured     bool               `bson:"featured"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func newPropertyDoc(p *domain.Property) propertyDoc {
	return propertyDoc{
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Currency:     p.Currency,
		Location:     p.Location,
		PropertyType: p.PropertyType,
		ListingType:  p.ListingType,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		AreaSqft:     p.AreaSqft,
		Images:       nonNilStrings(p.Images),
		Amenities:    nonNilStrings(p.Amenities),
		AgentID:      p.AgentID,
		Featured:     p.Featured,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (d *propertyDoc) toDomain() *domain.Property {
	return &domain.Property{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		Currency:     d.Currency,
		Location:     d.Location,
		PropertyType: d.PropertyType,
		ListingType:  d.ListingType,
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		AreaSqft:     d.AreaSqft,
		Images:       nonNilStrings(d.Images),
		Amenities:    nonNilStrings(d.Amenities),
		AgentID:      d.AgentID,
		Featured:     d.Featured,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newPropertyDoc(p)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PropertyRepository) List(ctx context.Context, filter ports.PropertyFilter) ([]*domain.Property, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ListingType != "" {
		query["listing_type"] = filter.ListingType
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}
	if filter.AgentID != "" {
		query["agent_id"] = filter.AgentID
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}
	cur, err := r.col.Find(ctx, query, pageOptions(filter.Page, filter.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	items, err := decodeAll(ctx, cur, (*propertyDoc).toDomain)
	if err != nil {
		return nil, 0, fmt.Errorf("decode properties: %w", err)
	}
	return items, total, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc propertyDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrPropertyNotFound)
	}
	return doc.toDomain(), nil
}

// Replace keeps the stored id and creation time.
func (r *PropertyRepository) Replace(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	oid, ok := objectID(p.ID)
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}

	doc := newPropertyDoc(p)
	set := bson.M{
		"title":         doc.Title,
		"description":   doc.Description,
		"price":         doc.Price,
		"currency":      doc.Currency,
		"location":      doc.Location,
		"property_type": doc.PropertyType,
		"listing_type":  doc.ListingType,
		"bedrooms":      doc.Bedrooms,
		"bathrooms":     doc.Bathrooms,
		"area_sqft":     doc.AreaSqft,
		"images":        doc.Images,
		"amenities":     doc.Amenities,
		"agent_id":      doc.AgentID,
		"featured":      doc.Featured,
		"updated_at":    doc.UpdatedAt,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out propertyDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, notFound(err, domain.ErrPropertyNotFound)
	}
	return out.toDomain(), nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) (*domain.Property, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc propertyDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrPropertyNotFound)
	}
	return doc.toDomain(), nil
}
