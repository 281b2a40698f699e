package changelog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"Version 1.2", 1.2},
		{"version 2", 2},
		{"1.2.3", 1.23},
		{"0.10", 0.1},
		{"3.", 3},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseVersion(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}

	for _, bad := range []string{"", "notes.txt", "Version one", "Version 1 beta", "1e3", "-1", ".", "README"} {
		_, err := ParseVersion(bad)
		assert.ErrorIs(t, err, ErrInvalidVersion, bad)
	}
}

func newFixture(t *testing.T, files map[string]string) *Service {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/changelog", 0o755))
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, "/changelog/"+name, []byte(body), 0o644))
	}
	return NewService(fs, "/changelog", nil)
}

func TestService_LatestPicksHighestVersion(t *testing.T) {
	svc := newFixture(t, map[string]string{
		"Version 1.2":  "old",
		"Version 1.10": "older, 1.10 is 1.1",
		"Version 2.0":  "new\r\nsecond line\n",
		"notes.md":     "ignored",
	})

	latest, err := svc.Latest()
	require.NoError(t, err)
	assert.Equal(t, "Version 2.0", latest.File)
	assert.InDelta(t, 2.0, latest.Version, 1e-9)

	lines, err := svc.Notes()
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "second line"}, lines)
}

func TestService_NoReleases(t *testing.T) {
	_, err := newFixture(t, map[string]string{"readme": "x"}).Latest()
	assert.ErrorIs(t, err, ErrNoReleases)
}

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	get := func(svc *Service, path string) *httptest.ResponseRecorder {
		r := gin.New()
		RegisterRoutes(r.Group("/api"), NewHandler(svc))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		return rr
	}

	svc := newFixture(t, map[string]string{"Version 1.5": "fixed uploads\nfaster stories"})

	rr := get(svc, "/api/changelog/version")
	require.Equal(t, http.StatusOK, rr.Code)
	var version struct {
		Data float64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &version))
	assert.InDelta(t, 1.5, version.Data, 1e-9)

	rr = get(svc, "/api/changelog")
	require.Equal(t, http.StatusOK, rr.Code)
	var notes struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &notes))
	assert.Equal(t, []string{"fixed uploads", "faster stories"}, notes.Data)

	missing := NewService(afero.NewMemMapFs(), "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, get(missing, "/api/changelog").Code)
	assert.Equal(t, http.StatusNotFound, get(missing, "/api/changelog/version").Code)
}
