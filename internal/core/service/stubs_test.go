package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Admin repository
// ---------------------------------------------------------------------------

type stubAdminRepo struct {
	mu          sync.Mutex
	seq         int
	byID        map[string]*domain.Admin
	presenceErr error
	// afterDelete runs after a successful delete, before it returns.
	afterDelete func(r *stubAdminRepo)
	restored    []string
}

func newStubAdminRepo(admins ...*domain.Admin) *stubAdminRepo {
	r := &stubAdminRepo{byID: make(map[string]*domain.Admin)}
	for _, a := range admins {
		r.byID[a.ID] = cloneAdmin(a)
	}
	return r
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func (r *stubAdminRepo) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := cloneAdmin(a)
	c.ID = fmt.Sprintf("admin-new-%d", r.seq)
	r.byID[c.ID] = c
	return cloneAdmin(c), nil
}

func (r *stubAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[id]; ok {
		return cloneAdmin(a), nil
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if strings.EqualFold(a.Email, email) {
			return cloneAdmin(a), nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Username == username {
			return cloneAdmin(a), nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) List(_ context.Context) ([]*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Admin, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, cloneAdmin(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAdminRepo) ListIDs(ctx context.Context) ([]string, error) {
	admins, _ := r.List(ctx)
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (r *stubAdminRepo) Update(_ context.Context, id string, upd ports.AdminUpdate) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.Username, upd.Username)
	set(&a.FullName, upd.FullName)
	set(&a.Email, upd.Email)
	set(&a.PasswordHash, upd.PasswordHash)
	set(&a.Role, upd.Role)
	set(&a.ProfileImage, upd.ProfileImage)
	set(&a.Phone, upd.Phone)
	return cloneAdmin(a), nil
}

func (r *stubAdminRepo) Delete(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	a, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrAdminNotFound
	}
	delete(r.byID, id)
	hook := r.afterDelete
	r.mu.Unlock()
	if hook != nil {
		hook(r)
	}
	return cloneAdmin(a), nil
}

func (r *stubAdminRepo) Restore(_ context.Context, a *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = cloneAdmin(a)
	r.restored = append(r.restored, a.ID)
	return nil
}

func (r *stubAdminRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *stubAdminRepo) SetPresence(_ context.Context, id string, online bool, at time.Time) error {
	if r.presenceErr != nil {
		return r.presenceErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.IsOnline = online
	a.LastActivity = &at
	if online {
		a.LastLogin = &at
	}
	return nil
}

// ---------------------------------------------------------------------------
// Agent repository
// ---------------------------------------------------------------------------

type stubAgentRepo struct {
	byID map[string]*domain.Agent
	seq  int
}

func newStubAgentRepo(agents ...*domain.Agent) *stubAgentRepo {
	r := &stubAgentRepo{byID: make(map[string]*domain.Agent)}
	for _, a := range agents {
		c := *a
		r.byID[a.ID] = &c
	}
	return r
}

func (r *stubAgentRepo) get(id string) (*domain.Agent, error) {
	if a, ok := r.byID[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, domain.ErrAgentNotFound
}

func (r *stubAgentRepo) Create(_ context.Context, a *domain.Agent) (*domain.Agent, error) {
	r.seq++
	c := *a
	c.ID = fmt.Sprintf("agent-new-%d", r.seq)
	r.byID[c.ID] = &c
	return r.get(c.ID)
}

func (r *stubAgentRepo) FindByID(_ context.Context, id string) (*domain.Agent, error) {
	return r.get(id)
}

func (r *stubAgentRepo) FindByEmail(_ context.Context, email string) (*domain.Agent, error) {
	for id, a := range r.byID {
		if strings.EqualFold(a.Email, email) {
			return r.get(id)
		}
	}
	return nil, domain.ErrAgentNotFound
}

func (r *stubAgentRepo) FindByUsername(_ context.Context, username string) (*domain.Agent, error) {
	for id, a := range r.byID {
		if a.Username == username {
			return r.get(id)
		}
	}
	return nil, domain.ErrAgentNotFound
}

func (r *stubAgentRepo) List(_ context.Context) ([]*domain.Agent, error) {
	out := make([]*domain.Agent, 0, len(r.byID))
	for id := range r.byID {
		a, _ := r.get(id)
		out = append(out, a)
	}
	return out, nil
}

func (r *stubAgentRepo) Update(_ context.Context, id string, upd ports.AgentUpdate) (*domain.Agent, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAgentNotFound
	}
	if upd.Username != nil {
		a.Username = *upd.Username
	}
	if upd.FullName != nil {
		a.FullName = *upd.FullName
	}
	if upd.Email != nil {
		a.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		a.PasswordHash = *upd.PasswordHash
	}
	if upd.Position != nil {
		a.Position = *upd.Position
	}
	if upd.Languages != nil {
		a.Languages = upd.Languages
	}
	return r.get(id)
}

func (r *stubAgentRepo) Delete(_ context.Context, id string) (*domain.Agent, error) {
	a, err := r.get(id)
	if err != nil {
		return nil, err
	}
	delete(r.byID, id)
	return a, nil
}

func (r *stubAgentRepo) SetPresence(_ context.Context, id string, online bool, at time.Time) error {
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAgentNotFound
	}
	a.IsOnline = online
	a.LastActivity = &at
	if online {
		a.LastLogin = &at
	}
	return nil
}

// ---------------------------------------------------------------------------
// Notification repository
// ---------------------------------------------------------------------------

type stubNotificationRepo struct {
	mu        sync.Mutex
	seq       int
	items     []*domain.Notification
	insertErr error
	lastLimit int
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{}
}

func (r *stubNotificationRepo) InsertMany(_ context.Context, items []*domain.Notification) ([]*domain.Notification, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Notification, 0, len(items))
	for _, n := range items {
		r.seq++
		c := *n
		c.ID = fmt.Sprintf("n-%d", r.seq)
		r.items = append(r.items, &c)
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubNotificationRepo) ListByRecipient(_ context.Context, recipient string, limit int) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit
	var out []*domain.Notification
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		if r.items[i].Recipient == recipient {
			c := *r.items[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) CountUnread(_ context.Context, recipient string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, it := range r.items {
		if it.Recipient == recipient && !it.Read {
			n++
		}
	}
	return n, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, recipient, id string) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id && it.Recipient == recipient {
			it.Read = true
			c := *it
			return &c, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

func (r *stubNotificationRepo) MarkAllRead(_ context.Context, recipient string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, it := range r.items {
		if it.Recipient == recipient && !it.Read {
			it.Read = true
			n++
		}
	}
	return n, nil
}

func (r *stubNotificationRepo) Delete(_ context.Context, recipient, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it.ID == id && it.Recipient == recipient {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func (r *stubNotificationRepo) DeleteAll(_ context.Context, recipient string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	var n int64
	for _, it := range r.items {
		if it.Recipient == recipient {
			n++
			continue
		}
		kept = append(kept, it)
	}
	r.items = kept
	return n, nil
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

// plainHasher stores "hashed:" + password.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Compare(plain, digest string) bool { return digest == "hashed:"+plain }

type stubResetStore struct {
	byIdentity map[string]string // identity -> hash
	saveErr    error
}

func newStubResetStore() *stubResetStore {
	return &stubResetStore{byIdentity: make(map[string]string)}
}

func (s *stubResetStore) Save(_ context.Context, identityID, tokenHash string, _ time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.byIdentity[identityID] = tokenHash
	return nil
}

func (s *stubResetStore) Lookup(_ context.Context, tokenHash string) (string, error) {
	for id, h := range s.byIdentity {
		if h == tokenHash {
			return id, nil
		}
	}
	return "", domain.ErrResetTokenInvalid
}

func (s *stubResetStore) Delete(_ context.Context, identityID string) error {
	delete(s.byIdentity, identityID)
	return nil
}

type sentMail struct {
	to, subject, html string
}

type stubMailer struct {
	sent []sentMail
	err  error
}

func (m *stubMailer) Send(_ context.Context, to, subject, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, html: html})
	return nil
}

type published struct {
	actorID string
	typ     domain.NotificationType
	message string
	entity  domain.EntityRef
}

type recordingNotifier struct {
	events []published
}

func (n *recordingNotifier) Publish(_ context.Context, actorID string, typ domain.NotificationType, message string, entity domain.EntityRef) {
	n.events = append(n.events, published{actorID: actorID, typ: typ, message: message, entity: entity})
}
