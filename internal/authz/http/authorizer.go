// Package authzhttp wires the authorization pipeline to an actual HTTP
// transport: the Authorizer verdict check, the AuthorizingHttpHandler
// per-request orchestration, and the chi middleware adapter that attaches
// both to a router, including WAC-Allow header emission.
package authzhttp

import (
	"context"
	"fmt"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
)

// Authorizer compares required modes against granted permissions.
type Authorizer struct{}

// NewAuthorizer builds an Authorizer. It holds no state.
func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// Authorize succeeds only if, for every identifier and every mode
// accessMap requires on it, at least one credential group in permissionMap
// grants Allow for that mode and none grants Deny.
func (*Authorizer) Authorize(_ context.Context, accessMap *model.AccessMap, permissionMap *model.PermissionMap) error {
	for _, id := range accessMap.Keys() {
		modes, _ := accessMap.Get(id)
		permSet := permissionMap.Get(id)
		for mode := range modes {
			if !grantsMode(permSet, string(mode)) {
				return authz.NewForbiddenError(id.Path, fmt.Sprintf("%s access is not allowed", mode))
			}
		}
	}
	return nil
}

// grantsMode reports whether any credential group in set grants mode and
// none of them explicitly denies it.
func grantsMode(set model.PermissionSet, mode string) bool {
	granted := false
	for _, perm := range set {
		switch perm.Get(mode) {
		case model.Deny:
			return false
		case model.Allow:
			granted = true
		}
	}
	return granted
}
