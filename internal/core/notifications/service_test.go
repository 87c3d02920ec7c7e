package notifications

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) ListForUser(ctx context.Context, userID string, limit int) ([]View, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]View), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestFor_SkipsSelfNotification(t *testing.T) {
	now := time.Now()
	assert.Nil(t, For("n1", TypeLike, "u1", "u1", now))

	n := For("n1", TypeLike, "u2", "u1", now).WithPost("p1")
	require.NotNil(t, n)
	assert.Equal(t, "u2", n.UserID)
	assert.Equal(t, "u1", n.CreatorID)
	assert.Equal(t, TypeLike, n.Type)
	assert.False(t, n.Read)
	require.NotNil(t, n.PostID)
	assert.Equal(t, "p1", *n.PostID)
	assert.Nil(t, n.CommentID)
}

func TestList(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil)

	views := []View{{Notification: Notification{ID: "n1", Type: TypeFollow}}}
	repo.On("ListForUser", mock.Anything, "u1", ListLimit).Return(views, nil)

	got, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, views, got)

	_, err = svc.List(context.Background(), "")
	assert.True(t, IsValidationError(err))
}

func TestList_RepoError(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("ListForUser", mock.Anything, "u1", ListLimit).Return(nil, errors.New("boom"))

	_, err := NewNotificationService(repo, nil).List(context.Background(), "u1")
	assert.ErrorContains(t, err, "boom")
}

func TestMarkRead_DedupesAndSkipsEmpty(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil)

	repo.On("MarkRead", mock.Anything, "u1", []string{"n1", "n2"}).Return(int64(2), nil)

	n, err := svc.MarkRead(context.Background(), "u1", []string{"n1", "", "n2", "n1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = svc.MarkRead(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	repo.AssertNumberOfCalls(t, "MarkRead", 1)
}

func TestMarkRead_TooMany(t *testing.T) {
	ids := make([]string, MaxMarkReadBatch+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("n%d", i)
	}

	_, err := NewNotificationService(new(MockNotificationRepository), nil).MarkRead(context.Background(), "u1", ids)
	assert.ErrorIs(t, err, ErrTooManyIDs)
	assert.True(t, IsValidationError(err))
}
