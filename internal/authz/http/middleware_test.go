package authzhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidgo/authz/internal/authz/model"
)

func resolveFromPath(r *http.Request) model.ResourceIdentifier {
	return model.NewResourceIdentifier("http://test.com" + r.URL.Path)
}

func TestMiddlewareAllowsAndSetsWacAllowHeader(t *testing.T) {
	target := model.NewResourceIdentifier("http://test.com/foo")
	accessMap := model.NewAccessMap()
	accessMap.Set(target, model.NewModeSet(model.ModeRead))

	permissionMap := model.NewPermissionMap()
	permissionMap.Set(target, model.PermissionSet{
		model.GroupPublic: model.NewPermission().With(string(model.ModeRead), model.Allow),
	})

	mw := Middleware(
		fixedCredentialsExtractor{set: model.CredentialSet{model.GroupPublic: {}}},
		fixedModesExtractor{accessMap: accessMap},
		fixedPermissionReader{permissionMap: permissionMap},
		resolveFromPath,
	)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/foo", nil)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `public="read"`, rec.Header().Get("WAC-Allow"))
}

func TestMiddlewareDeniesWithStructuredResponse(t *testing.T) {
	target := model.NewResourceIdentifier("http://test.com/foo")
	accessMap := model.NewAccessMap()
	accessMap.Set(target, model.NewModeSet(model.ModeWrite))

	permissionMap := model.NewPermissionMap()
	permissionMap.Set(target, model.PermissionSet{
		model.GroupPublic: model.NewPermission(),
	})

	mw := Middleware(
		fixedCredentialsExtractor{set: model.CredentialSet{model.GroupPublic: {}}},
		fixedModesExtractor{accessMap: accessMap},
		fixedPermissionReader{permissionMap: permissionMap},
		resolveFromPath,
	)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPut, "/foo", nil)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	require.False(t, called, "next must not run on denial")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "access is not allowed")
	require.Empty(t, rec.Header().Get("WAC-Allow"))
}
