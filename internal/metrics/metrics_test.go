package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Hearth/internal/core/posts"
	"Hearth/internal/core/revalidate"
	"Hearth/internal/core/users"
	"Hearth/internal/db/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
	"resty.dev/v3"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/posts/{postID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.CollectAndCount(requestLatency)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.CollectAndCount(requestLatency))
}

func TestUpstreamMiddleware(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := resty.New()
	defer client.Close()
	client.AddResponseMiddleware(UpstreamMiddleware("test-upstream"))

	before := testutil.CollectAndCount(apiLatency)
	_, err := client.R().Get(server.URL + "/v1/users/u1")
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.CollectAndCount(apiLatency))
}

func TestCountRevalidate(t *testing.T) {
	CountRevalidate("/", nil)
	CountRevalidate("/", errors.New("down"))

	assert.Equal(t, float64(1), testutil.ToFloat64(revalidateSignals.WithLabelValues("/", OutcomeError)))
	assert.GreaterOrEqual(t, testutil.ToFloat64(revalidateSignals.WithLabelValues("/", OutcomeOK)), float64(1))
}

type failingSignaler struct{}

func (failingSignaler) Revalidate(context.Context, string) error { return errors.New("unreachable") }

func TestCountedSignaler(t *testing.T) {
	before := testutil.ToFloat64(revalidateSignals.WithLabelValues("/counted", OutcomeError))

	s := CountedSignaler{Next: failingSignaler{}}
	require.Error(t, s.Revalidate(context.Background(), "/counted"))

	s = CountedSignaler{Next: revalidate.Nop{}}
	require.NoError(t, s.Revalidate(context.Background(), "/counted"))

	assert.Equal(t, before+1, testutil.ToFloat64(revalidateSignals.WithLabelValues("/counted", OutcomeError)))
	assert.GreaterOrEqual(t, testutil.ToFloat64(revalidateSignals.WithLabelValues("/counted", OutcomeOK)), float64(1))
}

func TestObserveAction(t *testing.T) {
	before := testutil.CollectAndCount(actionLatency)
	ObserveAction("metrics-test", OutcomeOK, time.Now())
	assert.Equal(t, before+1, testutil.CollectAndCount(actionLatency))
}

func TestCollector_Collect(t *testing.T) {
	db, err := postgres.Open(context.Background(), "sqlite::memory:", postgres.Options{Migrate: true})
	require.NoError(t, err)
	defer postgres.Close(db)

	require.NoError(t, db.Create(&users.User{ID: "u1", ExternalID: "ext1", Email: "a@example.com", Username: "a"}).Error)

	c := &Collector{DB: db, Tables: []schema.Tabler{&users.User{}, &posts.Post{}}}
	require.NoError(t, c.Collect(context.Background()))

	assert.Equal(t, float64(1), testutil.ToFloat64(tableCount.WithLabelValues("users")))
	assert.Equal(t, float64(0), testutil.ToFloat64(tableCount.WithLabelValues("posts")))
}
