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

type AdminRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{
		col: db.Collection(collectionAdmins),
		now: func() time.Time { return time.Now().UTC() },
	}
}

type adminDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	FullName     string             `bson:"full_name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	ProfileImage string             `bson:"profile_image,omitempty"`
	Phone        string             `bson:"phone,omitempty"`
	LastLogin    *time.Time         `bson:"last_login,omitempty"`
	LastActivity *time.Time         `bson:"last_activity,omitempty"`
	IsOnline     bool               `bson:"is_online"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func newAdminDoc(a *domain.Admin) adminDoc {
	doc := adminDoc{
		Username:     a.Username,
		FullName:     a.FullName,
		Email:        domain.NormalizeEmail(a.Email),
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		ProfileImage: a.ProfileImage,
		Phone:        a.Phone,
		LastLogin:    a.LastLogin,
		LastActivity: a.LastActivity,
		IsOnline:     a.IsOnline,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if oid, ok := objectID(a.ID); ok {
		doc.ID = oid
	}
	return doc
}

func (d *adminDoc) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		FullName:     d.FullName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		ProfileImage: d.ProfileImage,
		Phone:        d.Phone,
		Presence: domain.Presence{
			LastLogin:    d.LastLogin,
			LastActivity: d.LastActivity,
			IsOnline:     d.IsOnline,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newAdminDoc(a)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, identityConflict(err)
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrAdminNotFound)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) List(ctx context.Context) ([]*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return decodeAll(ctx, cur, (*adminDoc).toDomain)
}

func (r *AdminRepository) ListIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list admin ids: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cur.Err()
}

func (r *AdminRepository) Update(ctx context.Context, id string, upd ports.AdminUpdate) (*domain.Admin, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrAdminNotFound
	}

	set := bson.M{"updated_at": r.now()}
	setIfPresent(set, "username", upd.Username)
	setIfPresent(set, "full_name", upd.FullName)
	if upd.Email != nil {
		set["email"] = domain.NormalizeEmail(*upd.Email)
	}
	setIfPresent(set, "password_hash", upd.PasswordHash)
	setIfPresent(set, "role", upd.Role)
	setIfPresent(set, "profile_image", upd.ProfileImage)
	setIfPresent(set, "phone", upd.Phone)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, identityConflict(err)
		}
		return nil, notFound(err, domain.ErrAdminNotFound)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) Delete(ctx context.Context, id string) (*domain.Admin, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrAdminNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrAdminNotFound)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) Restore(ctx context.Context, a *domain.Admin) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, newAdminDoc(a)); err != nil {
		return fmt.Errorf("restore admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}

func (r *AdminRepository) SetPresence(ctx context.Context, id string, online bool, at time.Time) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrAdminNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, presenceUpdate(online, at))
	if err != nil {
		return fmt.Errorf("set admin presence: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}
