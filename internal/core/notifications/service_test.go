package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, notification *Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockRepository) ListForUser(ctx context.Context, userID string) ([]*NotificationView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*NotificationView), args.Error(1)
}

func (m *MockRepository) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestNotify_PersistsNotification(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*notifications.Notification")).Return(nil)

	err := svc.Notify(ctx, TypeLike, "u1", "u2")
	require.NoError(t, err)

	created := repo.Calls[0].Arguments.Get(1).(*Notification)
	assert.Equal(t, TypeLike, created.Type)
	assert.Equal(t, "u1", created.FromUserID)
	assert.Equal(t, "u2", created.ToUserID)
	assert.NotEmpty(t, created.ID)
}

func TestNotify_RejectsUnknownType(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	err := svc.Notify(context.Background(), "poke", "u1", "u2")

	assert.ErrorIs(t, err, ErrInvalidType)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotify_RequiresBothUsers(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	err := svc.Notify(context.Background(), TypeFollow, "", "u2")

	assert.ErrorIs(t, err, ErrUserRequired)
}

func TestList_MarksUnreadAsRead(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	views := []*NotificationView{
		{ID: "n1", Type: TypeLike, From: &SenderView{ID: "u2", Username: "bob"}},
	}
	repo.On("ListForUser", ctx, "u1").Return(views, nil)
	repo.On("MarkAllRead", ctx, "u1").Return(nil)

	got, err := svc.List(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, views, got)
	repo.AssertCalled(t, "MarkAllRead", ctx, "u1")
}

func TestDeleteAll(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	repo.On("DeleteAllForUser", ctx, "u1").Return(nil)

	require.NoError(t, svc.DeleteAll(ctx, "u1"))
	repo.AssertCalled(t, "DeleteAllForUser", ctx, "u1")
}
