package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/sixdegrees/internal/config"
	"github.com/user/sixdegrees/internal/handler"
	"github.com/user/sixdegrees/internal/model"
	"github.com/user/sixdegrees/internal/repository"
	"github.com/user/sixdegrees/internal/router"
	"github.com/user/sixdegrees/internal/testutil"
	"github.com/user/sixdegrees/internal/utils"
)

func intPtr(v int) *int { return &v }

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitCache()

	repos := repository.NewRepositories(testutil.OpenDB(t))
	require.NoError(t, repos.Schema.Reset())

	require.NoError(t, repos.Person.BatchInsert([]model.Person{
		{ID: 1, Name: "Alice Actor"},
		{ID: 2, Name: "Bob Bridge"},
		{ID: 3, Name: "Carol Chain"},
	}))
	require.NoError(t, repos.Movie.BatchInsert([]model.Movie{
		{ID: 10, Title: "First Film", Year: intPtr(1994)},
		{ID: 20, Title: "Second Film", Year: intPtr(1995)},
	}))
	require.NoError(t, repos.Rating.BatchInsert([]model.Rating{
		{MovieID: 10, NumVotes: intPtr(2000)},
		{MovieID: 20, NumVotes: intPtr(1500)},
	}))
	require.NoError(t, repos.Star.BatchInsert([]model.Star{
		{PersonID: 1, MovieID: 10, Category: "actress"},
		{PersonID: 2, MovieID: 10, Category: "actor"},
		{PersonID: 2, MovieID: 20, Category: "actor"},
		{PersonID: 3, MovieID: 20, Category: "actress"},
	}))

	cfg := &config.Config{
		Env: "test", DatabaseURL: "test", Port: "0",
		DataDir: t.TempDir(), BatchSize: 1000, MinVotes: 2,
		MaxSkipRatio: 0.1, MaxNodes: 1000, ContactsCache: 100,
		ImageDir: t.TempDir(),
	}

	r := gin.New()
	router.RegisterRoutes(r, handler.NewHandler(repos, cfg))
	return r
}

func doRequest(t *testing.T, r *gin.Engine, url string) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)

	var body utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestResolveEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, body := doRequest(t, r, "/api/resolve?q=Bob+Bridge")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)

	data, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var resolution model.Resolution
	require.NoError(t, json.Unmarshal(data, &resolution))
	assert.Equal(t, model.ResolveExact, resolution.Status)
	require.NotNil(t, resolution.Person)
	assert.Equal(t, int64(2), resolution.Person.ID)
}

func TestResolveEndpointMissingQuery(t *testing.T) {
	r := newTestRouter(t)

	w, body := doRequest(t, r, "/api/resolve")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Success)
}

func TestPathEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, body := doRequest(t, r, "/api/path?from=1&to=3")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)

	data, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var result handler.PathResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.Found)
	assert.Equal(t, []int64{1, 2, 3}, result.Path)
	assert.Equal(t, 2, result.Hops)
	assert.Len(t, result.Steps, 2)
}

func TestPathEndpointUnknownPerson(t *testing.T) {
	r := newTestRouter(t)

	w, body := doRequest(t, r, "/api/path?from=1&to=999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, body.Success)
}

func TestPathEndpointBadParams(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doRequest(t, r, "/api/path?from=abc&to=3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
