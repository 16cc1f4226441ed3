// Package reader implements the composable PermissionReader stages of the
// authorizing pipeline: the static and path-dispatching readers, the
// auxiliary/ACL-auxiliary/parent-container transforms, and the union
// merge. The WebACL ground-truth reader itself lives in
// internal/authz/webacl, built on top of these.
package reader

import (
	"context"

	"github.com/solidgo/authz/internal/authz/model"
)

var staticModes = []model.AccessMode{
	model.ModeRead, model.ModeAppend, model.ModeWrite, model.ModeCreate, model.ModeDelete,
}

// AllStaticReader grants (or denies) every access mode on every identifier
// it is asked about, for every credential group present in the request. It
// is used to fix permissions on paths that are not governed by ACL
// documents, e.g. a public status endpoint.
type AllStaticReader struct {
	allow bool
}

// NewAllStaticReader builds an AllStaticReader with a constant verdict.
func NewAllStaticReader(allow bool) *AllStaticReader {
	return &AllStaticReader{allow: allow}
}

// CanHandle never declines.
func (r *AllStaticReader) CanHandle(context.Context, model.CredentialSet, *model.AccessMap) error {
	return nil
}

// Handle emits the constant Permission for every identifier and credential
// group present in the request. The Permission value itself is built once
// and shared across every output entry; PermissionSet is rebuilt per
// identifier so no two entries alias the same map.
func (r *AllStaticReader) Handle(_ context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) (*model.PermissionMap, error) {
	state := model.Deny
	if r.allow {
		state = model.Allow
	}
	perm := make(model.Permission, len(staticModes))
	for _, m := range staticModes {
		perm[string(m)] = state
	}

	out := model.NewPermissionMap()
	for _, id := range accessMap.Keys() {
		set := model.PermissionSet{}
		for group := range credentials {
			set[group] = perm
		}
		out.Set(id, set)
	}
	return out, nil
}
