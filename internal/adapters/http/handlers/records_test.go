package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/go-container-controller/internal/adapters/http/dto"
	"github.com/jsamuelsen/go-container-controller/internal/adapters/storage"
	"github.com/jsamuelsen/go-container-controller/internal/app/container"
	"github.com/jsamuelsen/go-container-controller/internal/platform/lifecycle"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// setupRecordsRouter serves the records API over a controller backed by a
// single in-memory store.
func setupRecordsRouter(t *testing.T) *gin.Engine {
	t.Helper()

	engine, err := storage.NewEngine([]ports.StoreDescription{{Name: "main", Type: ports.StoreTypeMemory}})
	require.NoError(t, err)

	controller, err := container.New("records-test",
		container.WithEngine(engine),
		container.WithLifecycleSource(lifecycle.NewNotifier()),
		container.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = controller.Close() })

	select {
	case <-controller.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("controller never became ready")
	}

	router := gin.New()
	NewRecordsHandler(controller).RegisterRoutes(router.Group("/api/v1"))

	return router
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader = http.NoBody
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func TestRecordsHandler_CreateThenRead(t *testing.T) {
	router := setupRecordsRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/groups/import/records",
		`{"entity":"note","id":"n-1","attributes":{"title":"first"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[dto.MutationResponse](t, w)
	assert.Equal(t, "import", created.Group)
	assert.Equal(t, dto.ResultSaved, created.Result)
	require.NotNil(t, created.Record)
	assert.Equal(t, "n-1", created.Record.ID)

	w = do(t, router, http.MethodGet, "/api/v1/records/note/n-1", "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[dto.RecordResponse](t, w)
	assert.Equal(t, "first", got.Attributes["title"])
}

func TestRecordsHandler_CreateAssignsID(t *testing.T) {
	router := setupRecordsRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/groups/g/records", `{"entity":"note","attributes":{}}`)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode[dto.MutationResponse](t, w)
	require.NotNil(t, created.Record)
	assert.NotEmpty(t, created.Record.ID)

	w = do(t, router, http.MethodGet, "/api/v1/records/note/"+created.Record.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecordsHandler_UpdateAndDelete(t *testing.T) {
	router := setupRecordsRouter(t)

	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/groups/g/records",
		`{"entity":"note","id":"n-1","attributes":{"title":"draft"}}`).Code)

	w := do(t, router, http.MethodPut, "/api/v1/groups/g/records/note/n-1", `{"attributes":{"title":"final"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[dto.RecordResponse](t, do(t, router, http.MethodGet, "/api/v1/records/note/n-1", ""))
	assert.Equal(t, "final", got.Attributes["title"])

	w = do(t, router, http.MethodDelete, "/api/v1/groups/g/records/note/n-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[dto.MutationResponse](t, w).Record)

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/v1/records/note/n-1", "").Code)
}

func TestRecordsHandler_SaveFailures(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "update of missing record",
			method:     http.MethodPut,
			path:       "/api/v1/groups/g/records/note/ghost",
			body:       `{"attributes":{"title":"x"}}`,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrorCodeNotFound,
		},
		{
			name:       "delete of missing record",
			method:     http.MethodDelete,
			path:       "/api/v1/groups/g/records/note/ghost",
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrorCodeNotFound,
		},
		{
			name:       "duplicate insert",
			method:     http.MethodPost,
			path:       "/api/v1/groups/other/records",
			body:       `{"entity":"note","id":"taken","attributes":{}}`,
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrorCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRecordsRouter(t)
			require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/groups/seed/records",
				`{"entity":"note","id":"taken","attributes":{}}`).Code)

			w := do(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode[dto.ErrorResponse](t, w).Error.Code)
		})
	}
}

func TestRecordsHandler_RollbackIsDefault(t *testing.T) {
	router := setupRecordsRouter(t)

	// The failed update is rolled back, so the next task on the same group
	// starts clean and the delete of a committed record succeeds.
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/groups/g/records",
		`{"entity":"note","id":"n-1","attributes":{}}`).Code)
	require.Equal(t, http.StatusNotFound, do(t, router, http.MethodPut, "/api/v1/groups/g/records/note/ghost",
		`{"attributes":{}}`).Code)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodDelete, "/api/v1/groups/g/records/note/n-1", "").Code)
}

func TestRecordsHandler_OnErrorNoneKeepsChanges(t *testing.T) {
	router := setupRecordsRouter(t)

	require.Equal(t, http.StatusNotFound, do(t, router, http.MethodPut,
		"/api/v1/groups/g/records/note/ghost?on_error=none", `{"attributes":{}}`).Code)

	// The failed update stays staged on the group's context and never
	// reaches the main context.
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/v1/records/note/ghost", "").Code)
}

func TestRecordsHandler_RequestValidation(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"missing entity", http.MethodPost, "/api/v1/groups/g/records", `{"attributes":{}}`, http.StatusBadRequest, dto.ErrorCodeValidation},
		{"malformed body", http.MethodPost, "/api/v1/groups/g/records", `{"entity":`, http.StatusBadRequest, dto.ErrorCodeBadRequest},
		{"update without attributes", http.MethodPut, "/api/v1/groups/g/records/note/n-1", `{}`, http.StatusBadRequest, dto.ErrorCodeValidation},
		{"unknown on_error", http.MethodDelete, "/api/v1/groups/g/records/note/n-1?on_error=retry", "", http.StatusBadRequest, dto.ErrorCodeValidation},
		{"limit too large", http.MethodGet, "/api/v1/records/note?limit=1000", "", http.StatusBadRequest, dto.ErrorCodeValidation},
		{"bad cursor", http.MethodGet, "/api/v1/records/note?cursor=!!!", "", http.StatusBadRequest, dto.ErrorCodeBadRequest},
	}

	router := setupRecordsRouter(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decode[dto.ErrorResponse](t, w).Error.Code)
		})
	}
}

func TestRecordsHandler_ListPaginates(t *testing.T) {
	router := setupRecordsRouter(t)

	for _, id := range []string{"c", "a", "e", "b", "d"} {
		require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/groups/g/records",
			`{"entity":"note","id":"`+id+`","attributes":{}}`).Code)
	}

	var (
		seen   []string
		cursor string
	)

	for range 5 {
		path := "/api/v1/records/note?limit=2"
		if cursor != "" {
			path += "&cursor=" + cursor
		}

		w := do(t, router, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		page := decode[dto.PaginatedResponse[dto.RecordResponse]](t, w)
		for _, r := range page.Items {
			seen = append(seen, r.ID)
		}

		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, seen)
}

func TestRecordsHandler_DeadlineAnswersTimeout(t *testing.T) {
	router := setupRecordsRouter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/groups/g/records/note/n-1", http.NoBody).WithContext(ctx)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Either the save result or the cancelled context may win the race.
	assert.Contains(t, []int{http.StatusGatewayTimeout, http.StatusNotFound}, w.Code)
}
