package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitnessdump/fitdump/internal/model"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, bool) {
	return string(s), s != ""
}

type recorded struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

type recorder struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	body     string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	data, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	r.requests = append(r.requests, recorded{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Header: req.Header.Clone(),
		Body:   string(data),
	})
	status, body := r.status, r.body
	r.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (r *recorder) last(t *testing.T) recorded {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.requests)
	return r.requests[len(r.requests)-1]
}

func newTestClient(t *testing.T, rec *recorder, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", opts...)
}

func TestClient_Headers(t *testing.T) {
	rec := &recorder{body: `[]`}
	c := newTestClient(t, rec,
		WithCredentials(staticToken("tok-1")),
		WithRequestIDGenerator(func() string { return "req-42" }),
	)

	_, err := NewFoods(c).List(context.Background())
	require.NoError(t, err)

	got := rec.last(t)
	assert.Equal(t, "/api/foods", got.Path)
	assert.Equal(t, "Bearer tok-1", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "req-42", got.Header.Get(HeaderRequestID))
	assert.Equal(t, "fitdump", got.Header.Get("User-Agent"))
}

func TestClient_NoTokenNoAuthorization(t *testing.T) {
	rec := &recorder{body: `[]`}
	c := newTestClient(t, rec, WithCredentials(staticToken("")))

	_, err := NewFoods(c).List(context.Background())
	require.NoError(t, err)

	got := rec.last(t)
	assert.Empty(t, got.Header.Get("Authorization"))
	assert.NotEmpty(t, got.Header.Get(HeaderRequestID))
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"json message", http.StatusBadRequest, `{"message":"Името вече съществува"}`, "Името вече съществува"},
		{"json error without message", http.StatusInternalServerError, `{"error":"boom"}`, ""},
		{"json string", http.StatusConflict, `"дублиран запис"`, "дублиран запис"},
		{"plain text", http.StatusBadRequest, "Invalid quantity\n", "Invalid quantity"},
		{"html page", http.StatusBadGateway, "<html><body>bad gateway</body></html>", ""},
		{"empty", http.StatusForbidden, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{status: tt.status, body: tt.body}
			c := newTestClient(t, rec)

			_, err := NewFoods(c).List(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.HTTPStatus())
			assert.Equal(t, tt.message, apiErr.ServerMessage())
			assert.Equal(t, http.MethodGet, apiErr.Method)
			assert.Equal(t, tt.status, StatusCode(fmt.Errorf("wrapped: %w", err)))
		})
	}
}

func TestClient_StatusHelpers(t *testing.T) {
	assert.True(t, IsNotFound(&Error{StatusCode: 404}))
	assert.True(t, IsForbidden(&Error{StatusCode: 403}))
	assert.True(t, IsUnauthorized(&Error{StatusCode: 401}))
	assert.False(t, IsNotFound(errors.New("404")))
	assert.Equal(t, 0, StatusCode(nil))
}

func TestClient_UnauthorizedHandler(t *testing.T) {
	rec := &recorder{status: http.StatusUnauthorized, body: `{"message":"expired"}`}
	calls := 0
	c := newTestClient(t, rec, WithUnauthorizedHandler(func(context.Context) { calls++ }))

	_, err := NewExercises(c).List(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, calls)

	rec.mu.Lock()
	rec.status = http.StatusForbidden
	rec.mu.Unlock()
	_, err = NewExercises(c).List(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_InvalidIDSendsNothing(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(t, rec)
	ctx := context.Background()

	_, err := NewExercises(c).Get(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = NewExercises(c).Update(ctx, -1, model.Exercise{})
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.ErrorIs(t, NewExercises(c).Delete(ctx, 0), ErrInvalidID)
	_, err = NewMealPlans(c).DayCalories(ctx, 1, 8)
	assert.ErrorIs(t, err, ErrInvalidDay)

	assert.Empty(t, rec.requests)
}

func TestClient_ContextCanceled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	c := New(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewFoods(c).List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_DecodesBody(t *testing.T) {
	rec := &recorder{body: `{"id":7,"name":"Лицева преса","categoryId":2}`}
	c := newTestClient(t, rec)

	ex, err := NewExercises(c).Create(context.Background(), model.Exercise{Name: "Лицева преса", CategoryID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(7), ex.ID)

	got := rec.last(t)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/exercise/add", got.Path)

	var sent model.Exercise
	require.NoError(t, json.Unmarshal([]byte(got.Body), &sent))
	assert.Equal(t, "Лицева преса", sent.Name)
}

func TestClient_NullListIsEmpty(t *testing.T) {
	rec := &recorder{body: `null`}
	c := newTestClient(t, rec)

	items, err := NewRecipes(c).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClient_TimeoutLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}
	c := New("http://example.invalid/api", WithHTTPClient(shared), WithTimeout(5*time.Second))

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)
}
