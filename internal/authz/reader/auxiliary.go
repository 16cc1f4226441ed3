package reader

import (
	"context"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
)

// AuxiliaryReader forwards auxiliary identifiers to their subject, rather
// than asking the inner reader about them directly: it rewrites every
// auxiliary entry in the incoming AccessMap into a merged entry on its
// subject, invokes the inner reader once with the rewritten map, then
// reattaches the auxiliary identifier with its subject's verdict.
// Auxiliary identifiers that use their own authorization (per strategy) are
// left untouched — they are asked about directly, like any other
// identifier.
type AuxiliaryReader struct {
	inner    authz.PermissionReader
	strategy authz.AuxiliaryStrategy
}

// NewAuxiliaryReader builds an AuxiliaryReader.
func NewAuxiliaryReader(inner authz.PermissionReader, strategy authz.AuxiliaryStrategy) *AuxiliaryReader {
	return &AuxiliaryReader{inner: inner, strategy: strategy}
}

// CanHandle delegates to the inner reader.
func (r *AuxiliaryReader) CanHandle(ctx context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) error {
	return r.inner.CanHandle(ctx, credentials, accessMap)
}

type auxiliaryRewrite struct {
	aux     model.ResourceIdentifier
	subject model.ResourceIdentifier
}

// Handle rewrites auxiliary entries onto their subjects, delegates, and
// reattaches them. With no auxiliary entries present it returns the inner
// reader's output unmodified, by identity.
func (r *AuxiliaryReader) Handle(ctx context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) (*model.PermissionMap, error) {
	var rewrites []auxiliaryRewrite
	rewritten := accessMap

	for _, id := range accessMap.Keys() {
		if !r.strategy.IsAuxiliaryIdentifier(id) || r.strategy.UsesOwnAuthorization(id) {
			continue
		}
		if rewritten == accessMap {
			rewritten = accessMap.Clone()
		}
		modes, _ := accessMap.Get(id)
		subject := r.strategy.GetSubjectIdentifier(id)
		rewritten.Delete(id)
		rewritten.Merge(subject, modes)
		rewrites = append(rewrites, auxiliaryRewrite{aux: id, subject: subject})
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
		out.Set(rw.aux, result.Get(rw.subject))
	}
	return out, nil
}
