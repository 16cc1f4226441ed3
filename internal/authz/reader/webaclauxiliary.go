package reader

import (
	"context"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
)

// WebAclAuxiliaryReader is AuxiliaryReader's ACL-specific counterpart: an
// ACL document's own permissions are never read from its own (nonexistent)
// ACL document, they are derived entirely from control over its subject.
// The entry for an ACL identifier is replaced with a `control` requirement
// on its subject; after the inner call, the ACL identifier is granted
// read/append/write/control all equal to the subject's control verdict.
type WebAclAuxiliaryReader struct {
	inner    authz.PermissionReader
	strategy authz.AclAuxiliaryIdentifierStrategy
}

// NewWebAclAuxiliaryReader builds a WebAclAuxiliaryReader.
func NewWebAclAuxiliaryReader(inner authz.PermissionReader, strategy authz.AclAuxiliaryIdentifierStrategy) *WebAclAuxiliaryReader {
	return &WebAclAuxiliaryReader{inner: inner, strategy: strategy}
}

// CanHandle delegates to the inner reader.
func (r *WebAclAuxiliaryReader) CanHandle(ctx context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) error {
	return r.inner.CanHandle(ctx, credentials, accessMap)
}

type aclRewrite struct {
	acl     model.ResourceIdentifier
	subject model.ResourceIdentifier
}

// controlAsAccessMode lets "control" travel through an AccessMap/ModeSet —
// modeled elsewhere as model.AclMode, a distinct type from AccessMode —
// without widening ModeSet's element type for this one caller.
func controlAsAccessMode() model.AccessMode {
	return model.AccessMode(model.ModeControl)
}

// Handle rewrites every ACL entry onto its subject as a control
// requirement, delegates, and derives the ACL verdict from the subject's
// control verdict.
func (r *WebAclAuxiliaryReader) Handle(ctx context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) (*model.PermissionMap, error) {
	var rewrites []aclRewrite
	rewritten := accessMap

	for _, id := range accessMap.Keys() {
		if !r.strategy.IsAclIdentifier(id) {
			continue
		}
		if rewritten == accessMap {
			rewritten = accessMap.Clone()
		}
		subject := r.strategy.GetSubjectIdentifier(id)
		rewritten.Delete(id)
		rewritten.Merge(subject, model.NewModeSet(controlAsAccessMode()))
		rewrites = append(rewrites, aclRewrite{acl: id, subject: subject})
	}

	if len(rewrites) == 0 {
		return authz.HandleSafe(ctx, r.inner, credentials, accessMap)
	}

	result, err := authz.HandleSafe(ctx, r.inner, credentials, rewritten)
	if err != nil {
		return nil, err
	}

	out := model.NewPermissionMap()
	for _, id := range result.Keys() {
		out.Set(id, result.Get(id))
	}
	for _, rw := range rewrites {
		subjectSet := result.Get(rw.subject)
		aclSet := model.PermissionSet{}
		for group, perm := range subjectSet {
			control := perm.Get(string(model.ModeControl))
			aclSet[group] = model.NewPermission().
				With(string(model.ModeRead), control).
				With(string(model.ModeAppend), control).
				With(string(model.ModeWrite), control).
				With(string(model.ModeControl), control)
		}
		out.Set(rw.acl, aclSet)
	}
	return out, nil
}
