package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// selfOnly lets callers see and change only their own data.
type selfOnly struct{}

func (selfOnly) CanRead(_ context.Context, callerID int64, owner *User) (bool, error) {
	return callerID == owner.ID, nil
}

func (selfOnly) CanWrite(_ context.Context, callerID int64, owner *User) (bool, error) {
	return callerID == owner.ID, nil
}

func setupTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t)
	h := NewHandler(svc, NewGuard(svc, selfOnly{}))

	r := gin.New()
	api := r.Group("/api")
	RegisterDebugRoutes(api, h)

	authed := api.Group("")
	authed.Use(func(c *gin.Context) {
		if raw := c.GetHeader("X-Test-User-ID"); raw != "" {
			id, _ := strconv.ParseInt(raw, 10, 64)
			c.Set("user_id", id)
		}
		c.Next()
	})
	RegisterRoutes(authed, h)
	return r, svc
}

func doJSONRequest(r http.Handler, method, path string, body any, userID int64) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-Test-User-ID", strconv.FormatInt(userID, 10))
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCreateEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/user", gin.H{"name": "frank", "password": "password1"}, 0)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")

	rr = doJSONRequest(r, http.MethodPost, "/api/user", gin.H{"name": "frank", "password": "password1"}, 0)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doJSONRequest(r, http.MethodPost, "/api/user", gin.H{"name": "stories", "password": "short"}, 0)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VALIDATION_ERROR")
}

func TestInformationEndpoints(t *testing.T) {
	r, svc := setupTestRouter(t)
	ctx := context.Background()
	gina, err := svc.Create(ctx, CreateInput{Name: "gina", Password: "password1", Description: "old"})
	require.NoError(t, err)
	hank, err := svc.Create(ctx, CreateInput{Name: "hank", Password: "password1"})
	require.NoError(t, err)

	rr := doJSONRequest(r, http.MethodGet, "/api/user/gina/information", nil, gina.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"description":"old"`)
	assert.Contains(t, rr.Body.String(), `"amount_posts":0`)

	rr = doJSONRequest(r, http.MethodPut, "/api/user/gina/information", gin.H{"description": "new"}, gina.ID)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/user/gina/information", nil, gina.ID)
	assert.Contains(t, rr.Body.String(), `"description":"new"`)

	rr = doJSONRequest(r, http.MethodPut, "/api/user/gina/information", gin.H{"description": "hacked"}, hank.ID)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Strangers may read profiles.
	rr = doJSONRequest(r, http.MethodGet, "/api/user/gina/information", nil, hank.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"description":"new"`)

	rr = doJSONRequest(r, http.MethodGet, "/api/user/nobody/information", nil, gina.ID)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWhoAmI(t *testing.T) {
	r, svc := setupTestRouter(t)
	u, err := svc.Create(context.Background(), CreateInput{Name: "ivy", Password: "password1"})
	require.NoError(t, err)

	rr := doJSONRequest(r, http.MethodGet, "/api/whoAmI", nil, u.ID)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data struct {
			ID   int64  `json:"id"`
			Name string `json:"user_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, u.ID, body.Data.ID)
	assert.Equal(t, "ivy", body.Data.Name)
}
