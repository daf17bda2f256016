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

type AgentRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewAgentRepository(db *mongo.Database) *AgentRepository {
	return &AgentRepository{
		col: db.Collection(collectionAgents),
		now: func() time.Time { return time.Now().UTC() },
	}
}

type agentDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Username      string             `bson:"username"`
	FullName      string             `bson:"full_name"`
	Email         string             `bson:"email"`
	PasswordHash  string             `bson:"password_hash"`
	ProfileImage  string             `bson:"profile_image,omitempty"`
	Position      string             `bson:"position,omitempty"`
	WhatsApp      string             `bson:"whatsapp,omitempty"`
	Department    string             `bson:"department,omitempty"`
	ContactNumber string             `bson:"contact_number,omitempty"`
	VCard         string             `bson:"vcard,omitempty"`
	Languages     []string           `bson:"languages"`
	AboutMe       string             `bson:"about_me,omitempty"`
	Address       string             `bson:"address,omitempty"`
	SocialLinks   []string           `bson:"social_links"`
	LastLogin     *time.Time         `bson:"last_login,omitempty"`
	LastActivity  *time.Time         `bson:"last_activity,omitempty"`
	IsOnline      bool               `bson:"is_online"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d *agentDoc) toDomain() *domain.Agent {
	return &domain.Agent{
		ID:            d.ID.Hex(),
		Username:      d.Username,
		FullName:      d.FullName,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		ProfileImage:  d.ProfileImage,
		Position:      d.Position,
		WhatsApp:      d.WhatsApp,
		Department:    d.Department,
		ContactNumber: d.ContactNumber,
		VCard:         d.VCard,
		Languages:     nonNilStrings(d.Languages),
		AboutMe:       d.AboutMe,
		Address:       d.Address,
		SocialLinks:   nonNilStrings(d.SocialLinks),
		Presence: domain.Presence{
			LastLogin:    d.LastLogin,
			LastActivity: d.LastActivity,
			IsOnline:     d.IsOnline,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *AgentRepository) Create(ctx context.Context, a *domain.Agent) (*domain.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := agentDoc{
		ID:            primitive.NewObjectID(),
		Username:      a.Username,
		FullName:      a.FullName,
		Email:         domain.NormalizeEmail(a.Email),
		PasswordHash:  a.PasswordHash,
		ProfileImage:  a.ProfileImage,
		Position:      a.Position,
		WhatsApp:      a.WhatsApp,
		Department:    a.Department,
		ContactNumber: a.ContactNumber,
		VCard:         a.VCard,
		Languages:     nonNilStrings(a.Languages),
		AboutMe:       a.AboutMe,
		Address:       a.Address,
		SocialLinks:   nonNilStrings(a.SocialLinks),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, identityConflict(err)
		}
		return nil, fmt.Errorf("insert agent: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AgentRepository) FindByID(ctx context.Context, id string) (*domain.Agent, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrAgentNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AgentRepository) FindByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *AgentRepository) FindByUsername(ctx context.Context, username string) (*domain.Agent, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AgentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc agentDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrAgentNotFound)
	}
	return doc.toDomain(), nil
}

func (r *AgentRepository) List(ctx context.Context) ([]*domain.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return decodeAll(ctx, cur, (*agentDoc).toDomain)
}

func (r *AgentRepository) Update(ctx context.Context, id string, upd ports.AgentUpdate) (*domain.Agent, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrAgentNotFound
	}

	set := bson.M{"updated_at": r.now()}
	setIfPresent(set, "username", upd.Username)
	setIfPresent(set, "full_name", upd.FullName)
	if upd.Email != nil {
		set["email"] = domain.NormalizeEmail(*upd.Email)
	}
	setIfPresent(set, "password_hash", upd.PasswordHash)
	setIfPresent(set, "profile_image", upd.ProfileImage)
	setIfPresent(set, "position", upd.Position)
	setIfPresent(set, "whatsapp", upd.WhatsApp)
	setIfPresent(set, "department", upd.Department)
	setIfPresent(set, "contact_number", upd.ContactNumber)
	setIfPresent(set, "vcard", upd.VCard)
	setIfPresent(set, "about_me", upd.AboutMe)
	setIfPresent(set, "address", upd.Address)
	if upd.Languages != nil {
		set["languages"] = upd.Languages
	}
	if upd.SocialLinks != nil {
		set["social_links"] = upd.SocialLinks
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc agentDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, identityConflict(err)
		}
		return nil, notFound(err, domain.ErrAgentNotFound)
	}
	return doc.toDomain(), nil
}

func (r *AgentRepository) Delete(ctx context.Context, id string) (*domain.Agent, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrAgentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc agentDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrAgentNotFound)
	}
	return doc.toDomain(), nil
}

func (r *AgentRepository) SetPresence(ctx context.Context, id string, online bool, at time.Time) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrAgentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, presenceUpdate(online, at))
	if err != nil {
		return fmt.Errorf("set agent presence: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
