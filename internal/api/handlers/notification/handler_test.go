package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Hearth/internal/actions"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/identity"
	"Hearth/internal/core/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockActions struct {
	mock.Mock
}

func (m *MockActions) GetNotifications(ctx context.Context, session *identity.Session) ([]notifications.View, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notifications.View), args.Error(1)
}

func (m *MockActions) CountUnread(ctx context.Context, session *identity.Session) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActions) MarkNotificationsRead(ctx context.Context, session *identity.Session, ids []string) (*actions.MarkReadResult, error) {
	args := m.Called(ctx, session, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actions.MarkReadResult), args.Error(1)
}

var testSession = &identity.Session{ExternalID: "user_1"}

func request(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	return req.WithContext(middleware.SetTestSession(req.Context(), testSession))
}

func TestHandleList(t *testing.T) {
	m := new(MockActions)
	m.On("GetNotifications", mock.Anything, testSession).Return([]notifications.View{
		{Notification: notifications.Notification{ID: "n1", Type: notifications.TypeLike}},
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(m).HandleList(rec, request(http.MethodGet, "/api/notifications", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Notifications []map[string]any `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "LIKE", body.Notifications[0]["type"])
}

func TestHandleList_EmptyIsArray(t *testing.T) {
	m := new(MockActions)
	m.On("GetNotifications", mock.Anything, testSession).Return(nil, nil)

	rec := httptest.NewRecorder()
	NewHandler(m).HandleList(rec, request(http.MethodGet, "/api/notifications", ""))

	assert.JSONEq(t, `{"notifications":[]}`, rec.Body.String())
}

func TestHandleUnreadCount(t *testing.T) {
	m := new(MockActions)
	m.On("CountUnread", mock.Anything, testSession).Return(int64(4), nil)

	rec := httptest.NewRecorder()
	NewHandler(m).HandleUnreadCount(rec, request(http.MethodGet, "/api/notifications/unread-count", ""))

	assert.JSONEq(t, `{"count":4}`, rec.Body.String())
}

func TestHandleMarkRead(t *testing.T) {
	m := new(MockActions)
	m.On("MarkNotificationsRead", mock.Anything, testSession, []string{"n1", "n2"}).
		Return(&actions.MarkReadResult{Success: true, Updated: 2}, nil)

	rec := httptest.NewRecorder()
	NewHandler(m).HandleMarkRead(rec, request(http.MethodPost, "/api/notifications/read", `{"ids":["n1","n2"]}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"updated":2}`, rec.Body.String())
}

func TestHandleMarkRead_TooMany(t *testing.T) {
	m := new(MockActions)
	m.On("MarkNotificationsRead", mock.Anything, testSession, []string{"n1"}).
		Return(nil, &actions.Error{Message: "Failed to mark notifications as read", Err: notifications.ErrTooManyIDs})

	rec := httptest.NewRecorder()
	NewHandler(m).HandleMarkRead(rec, request(http.MethodPost, "/api/notifications/read", `{"ids":["n1"]}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
