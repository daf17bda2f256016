package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

func newNotificationSvc(repo *stubNotificationRepo) ports.NotificationService {
	return NewNotificationService(repo, zerolog.Nop())
}

func TestNotificationService_Create_FanOut(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := newNotificationSvc(repo)

	created, err := svc.Create(context.Background(), ports.CreateNotificationInput{
		Type:       domain.NotifyPropertyAdded,
		Message:    "New property",
		Recipients: []string{"r1", "r2", "r1", " "},
		CreatedBy:  "creator",
		Entity:     &domain.EntityRef{ID: "p1", Name: "Marina View"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, n := range created {
		assert.False(t, n.Read)
		assert.Equal(t, domain.NotifyPropertyAdded, n.Type)
		assert.Equal(t, "creator", n.CreatedBy)
		assert.Equal(t, "p1", n.EntityID)
		assert.Equal(t, "Marina View", n.EntityName)
	}
	assert.ElementsMatch(t, []string{"r1", "r2"}, []string{created[0].Recipient, created[1].Recipient})
}

func TestNotificationService_Create_DefaultsToCreator(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := newNotificationSvc(repo)

	created, err := svc.Create(context.Background(), ports.CreateNotificationInput{
		Type:      domain.NotifySystem,
		Message:   "Welcome",
		CreatedBy: "creator",
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "creator", created[0].Recipient)
	assert.Empty(t, created[0].EntityID)
}

func TestNotificationService_Create_Validation(t *testing.T) {
	svc := newNotificationSvc(newStubNotificationRepo())

	cases := map[string]ports.CreateNotificationInput{
		"empty type":    {Message: "m", CreatedBy: "c"},
		"empty message": {Type: domain.NotifySystem, Message: "  ", CreatedBy: "c"},
		"unknown type":  {Type: "party-started", Message: "m", CreatedBy: "c"},
		"no creator":    {Type: domain.NotifySystem, Message: "m"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestNotificationService_Create_RepoError(t *testing.T) {
	repo := newStubNotificationRepo()
	repo.insertErr = errors.New("mongo down")
	svc := newNotificationSvc(repo)

	_, err := svc.Create(context.Background(), ports.CreateNotificationInput{
		Type: domain.NotifySystem, Message: "m", CreatedBy: "c",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestNotificationService_List_FiltersByRecipient(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := newNotificationSvc(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, ports.CreateNotificationInput{
			Type: domain.NotifySystem, Message: fmt.Sprintf("msg %d", i), Recipients: []string{"r1", "r2"}, CreatedBy: "c",
		})
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, "r1", 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, n := range items {
		assert.Equal(t, "r1", n.Recipient)
	}
	assert.Equal(t, "msg 2", items[0].Message, "newest first")
	assert.Equal(t, MaxNotificationList, repo.lastLimit)

	_, err = svc.List(ctx, "r1", 500)
	require.NoError(t, err)
	assert.Equal(t, MaxNotificationList, repo.lastLimit)

	items, err = svc.List(ctx, "r1", 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestNotificationService_MarkRead_Ownership(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := newNotificationSvc(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CreateNotificationInput{
		Type: domain.NotifySystem, Message: "m", Recipients: []string{"owner"}, CreatedBy: "c",
	})
	require.NoError(t, err)
	id := created[0].ID

	_, err = svc.MarkRead(ctx, "intruder", id)
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)

	_, err = svc.MarkRead(ctx, "owner", "missing")
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)

	n, err := svc.MarkRead(ctx, "owner", id)
	require.NoError(t, err)
	assert.True(t, n.Read)
}

func TestNotificationService_MarkAllRead_Idempotent(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := newNotificationSvc(repo)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, ports.CreateNotificationInput{
			Type: domain.NotifySystem, Message: "m", Recipients: []string{"r1", "r2"}, CreatedBy: "c",
		})
		require.NoError(t, err)
	}

	unread, err := svc.UnreadCount(ctx, "r1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	count, err := svc.MarkAllRead(ctx, "r1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = svc.MarkAllRead(ctx, "r1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	unread, err = svc.UnreadCount(ctx, "r2")
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread, "other recipients are untouched")
}

func TestNotificationService_DeleteAndClearAll(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := newNotificationSvc(repo)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		created, err := svc.Create(ctx, ports.CreateNotificationInput{
			Type: domain.NotifySystem, Message: "m", Recipients: []string{"r1", "r2"}, CreatedBy: "c",
		})
		require.NoError(t, err)
		ids = append(ids, created[0].ID)
	}

	assert.ErrorIs(t, svc.Delete(ctx, "r2", ids[0]), domain.ErrNotificationNotFound)
	require.NoError(t, svc.Delete(ctx, "r1", ids[0]))
	assert.ErrorIs(t, svc.Delete(ctx, "r1", ids[0]), domain.ErrNotificationNotFound)

	cleared, err := svc.ClearAll(ctx, "r1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, cleared)

	remaining, err := svc.List(ctx, "r2", 0)
	require.NoError(t, err)
	assert.Len(t, remaining, 3)
}

func TestAdminNotifier_PublishToEveryAdmin(t *testing.T) {
	admins := newStubAdminRepo(
		&domain.Admin{ID: "a1", Role: domain.RoleSuperAdmin},
		&domain.Admin{ID: "a2", Role: domain.RoleAdmin},
	)
	repo := newStubNotificationRepo()
	notifier := NewAdminNotifier(admins, newNotificationSvc(repo), zerolog.Nop())

	notifier.Publish(context.Background(), "a1", domain.NotifyAgentAdded, "New agent", domain.EntityRef{ID: "ag1", Name: "Sara"})

	require.Len(t, repo.items, 2)
	for _, n := range repo.items {
		assert.Equal(t, "ag1", n.EntityID)
		assert.Equal(t, "a1", n.CreatedBy)
	}
}

func TestAdminNotifier_SwallowsFailures(t *testing.T) {
	admins := newStubAdminRepo(&domain.Admin{ID: "a1"})
	repo := newStubNotificationRepo()
	repo.insertErr = errors.New("write failed")
	notifier := NewAdminNotifier(admins, newNotificationSvc(repo), zerolog.Nop())

	assert.NotPanics(t, func() {
		notifier.Publish(context.Background(), "a1", domain.NotifySystem, "m", domain.EntityRef{})
	})
	assert.Empty(t, repo.items)
}
