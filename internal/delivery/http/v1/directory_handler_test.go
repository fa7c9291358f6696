package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"profile-directory/config"
	v1 "profile-directory/internal/delivery/http/v1"
	"profile-directory/internal/domain"
	"profile-directory/internal/repository/memory"
	"profile-directory/internal/usecase"
	"profile-directory/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     []string        `json:"error"`
	RequestID string          `json:"request_id"`
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NotEmpty(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func directory(t *testing.T, env envelope) domain.DirectoryView {
	t.Helper()
	return decodeData[domain.DirectoryView](t, env)
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	repo := memory.NewProfileRepository([]domain.Profile{
		{ID: 1, First: "Ada", Last: "Lovelace", DOB: "1985-12-10", Gender: "female", Country: "United Kingdom", Description: "Presenter"},
		{ID: 2, First: "Noah", Last: "Petersen", DOB: "2012-11-03", Gender: "male", Country: "Denmark", Description: "Child actor"},
	})
	uc, err := usecase.NewDirectoryUsecase(repo, validation.New(), usecase.DirectoryOptions{
		Clock: func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	return v1.NewRouter(v1.RouterDeps{
		DirectoryUC: uc,
		HealthUC:    usecase.NewHealthUsecase(repo),
		Config:      &config.Config{FrontendURL: "http://localhost:3000"},
	})
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func TestHealth(t *testing.T) {
	r := newRouter(t)
	w, env := do(t, r, http.MethodGet, "/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, env.RequestID, w.Header().Get("X-Request-ID"))

	status := decodeData[usecase.HealthStatus](t, env)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, 2, status.ProfileCount)
}

func TestDirectoryFlow(t *testing.T) {
	r := newRouter(t)

	t.Run("Should list and search profiles", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/v1/directory", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, directory(t, env).Total)

		w, env = do(t, r, http.MethodGet, "/v1/directory?search=LOVE", nil)
		require.Equal(t, http.StatusOK, w.Code)
		view := directory(t, env)
		require.Len(t, view.Profiles, 1)
		assert.Equal(t, 1, view.Profiles[0].ID)
		assert.Equal(t, "LOVE", view.Search)
		assert.Equal(t, 2, view.Total)

		w, env = do(t, r, http.MethodPut, "/v1/directory/search", v1.SearchRequest{Term: "noah"})
		require.Equal(t, http.StatusOK, w.Code)
		view = directory(t, env)
		require.Len(t, view.Profiles, 1)
		assert.Equal(t, 2, view.Profiles[0].ID)

		w, env = do(t, r, http.MethodPut, "/v1/directory/search", v1.SearchRequest{Term: ""})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, directory(t, env).Profiles, 2)
	})

	t.Run("Should not store the search query of a GET", func(t *testing.T) {
		_, _ = do(t, r, http.MethodGet, "/v1/directory?search=petersen", nil)

		w, env := do(t, r, http.MethodGet, "/v1/directory", nil)
		require.Equal(t, http.StatusOK, w.Code)
		view := directory(t, env)
		assert.Empty(t, view.Search)
		assert.Len(t, view.Profiles, 2)
	})

	t.Run("Should edit and save a profile", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/v1/profiles/1/toggle", nil)
		require.Equal(t, http.StatusOK, w.Code)
		open := directory(t, env).OpenID
		require.NotNil(t, open)
		assert.Equal(t, 1, *open)

		w, _ = do(t, r, http.MethodPost, "/v1/profiles/1/edit", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w, env = do(t, r, http.MethodPatch, "/v1/directory/draft", v1.FieldChangeRequest{Name: "country", Value: "Sp4in"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, directory(t, env).CanSave)

		w, env = do(t, r, http.MethodPost, "/v1/profiles/1/save", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, validation.MsgCountryDigits, env.Message)
		assert.Equal(t, []string{"Country: Must not contain numbers"}, env.Error)

		_, _ = do(t, r, http.MethodPatch, "/v1/directory/draft", v1.FieldChangeRequest{Name: "country", Value: "Spain"})
		w, env = do(t, r, http.MethodPost, "/v1/profiles/1/save", nil)
		require.Equal(t, http.StatusOK, w.Code)
		view := directory(t, env)
		assert.Nil(t, view.EditingID)
		assert.Equal(t, "Spain", view.Profiles[0].Country)
	})

	t.Run("Should reject editing minors", func(t *testing.T) {
		_, _ = do(t, r, http.MethodPost, "/v1/profiles/2/toggle", nil)
		w, env := do(t, r, http.MethodPost, "/v1/profiles/2/edit", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Cannot edit details of users under 18 years old.", env.Message)
	})

	t.Run("Should cancel and delete", func(t *testing.T) {
		w, env := do(t, r, http.MethodDelete, "/v1/directory/draft", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, directory(t, env).EditingID)

		w, env = do(t, r, http.MethodDelete, "/v1/profiles/2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, directory(t, env).Total)
	})
}

func TestBadRequests(t *testing.T) {
	r := newRouter(t)

	t.Run("Should reject non-numeric ids", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/v1/profiles/abc/toggle", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid profile ID", env.Message)
	})

	t.Run("Should reject draft changes without a field name", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPatch, "/v1/directory/draft", map[string]string{"value": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should reject draft changes when not editing", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPatch, "/v1/directory/draft", v1.FieldChangeRequest{Name: "country", Value: "Spain"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Should answer CORS preflight for the frontend", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/directory", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
