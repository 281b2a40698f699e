package user

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ChecklistCreatedOnFirstRead(t *testing.T) {
	svc, fs := newTestService(t)
	u, err := svc.Create(context.Background(), CreateInput{Name: "lena", Password: "password1"})
	require.NoError(t, err)

	list, err := svc.Checklist(u)
	require.NoError(t, err)
	assert.Empty(t, list.Entries)
	assert.NotNil(t, list.Entries)

	data, err := afero.ReadFile(fs, "/data/lena/information/list.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"entries": []}`, string(data))
}

func TestService_SaveChecklist(t *testing.T) {
	svc, fs := newTestService(t)
	u, err := svc.Create(context.Background(), CreateInput{Name: "milo", Password: "password1"})
	require.NoError(t, err)

	in := Checklist{Entries: []ChecklistEntry{
		{Title: "pack", Checked: true, SubEntries: []ChecklistSub{{Title: "camera", Checked: true}}},
		{Title: "travel"},
	}}
	require.NoError(t, svc.SaveChecklist(u, in))

	got, err := svc.Checklist(u)
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "camera", got.Entries[0].SubEntries[0].Title)
	assert.NotNil(t, got.Entries[1].SubEntries)

	exists, err := afero.Exists(fs, "/data/milo/information/list.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestService_ChecklistCorrupt(t *testing.T) {
	svc, fs := newTestService(t)
	u, err := svc.Create(context.Background(), CreateInput{Name: "nora", Password: "password1"})
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/data/nora/information/list.json", []byte("{not json"), 0o644))

	_, err = svc.Checklist(u)
	assert.ErrorIs(t, err, ErrChecklistCorrupt)
}

func TestChecklistEndpoints(t *testing.T) {
	r, svc := setupTestRouter(t)
	ctx := context.Background()
	olga, err := svc.Create(ctx, CreateInput{Name: "olga", Password: "password1"})
	require.NoError(t, err)
	pete, err := svc.Create(ctx, CreateInput{Name: "pete", Password: "password1"})
	require.NoError(t, err)

	rr := doJSONRequest(r, http.MethodGet, "/api/user/olga/list", nil, olga.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"entries":[]`)

	body := gin.H{"entries": []gin.H{{"title": "shoot", "checked": false, "sub_entries": []gin.H{{"title": "lens", "checked": true}}}}}
	rr = doJSONRequest(r, http.MethodPut, "/api/user/olga/list", body, olga.ID)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/user/olga/list", nil, olga.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"title":"lens"`)

	rr = doJSONRequest(r, http.MethodPut, "/api/user/olga/list", gin.H{}, olga.ID)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Equal(t, http.StatusUnauthorized, doJSONRequest(r, http.MethodGet, "/api/user/olga/list", nil, pete.ID).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSONRequest(r, http.MethodPut, "/api/user/olga/list", body, pete.ID).Code)
	assert.Equal(t, http.StatusNotFound, doJSONRequest(r, http.MethodGet, "/api/user/nobody/list", nil, olga.ID).Code)
}
