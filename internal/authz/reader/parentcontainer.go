package reader

import (
	"context"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
)

// ParentContainerReader derives create/delete verdicts from the parent
// container's append/write verdicts: creating a resource requires append
// on its parent, deleting one requires write on both itself and its
// parent. Child entries are always preserved; an explicit deny on the
// child for create or delete is absorbing and overrides the derivation.
type ParentContainerReader struct {
	inner      authz.PermissionReader
	identifier authz.IdentifierStrategy
}

// NewParentContainerReader builds a ParentContainerReader.
func NewParentContainerReader(inner authz.PermissionReader, identifier authz.IdentifierStrategy) *ParentContainerReader {
	return &ParentContainerReader{inner: inner, identifier: identifier}
}

// CanHandle delegates to the inner reader.
func (r *ParentContainerReader) CanHandle(ctx context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) error {
	return r.inner.CanHandle(ctx, credentials, accessMap)
}

// Handle merges append/write parent requirements into the accessMap for
// every create/delete-bearing entry, delegates, then derives each child's
// create/delete verdict from its own and its parent's result.
func (r *ParentContainerReader) Handle(ctx context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) (*model.PermissionMap, error) {
	rewritten := accessMap.Clone()
	parents := make(map[string]model.ResourceIdentifier)

	for _, id := range accessMap.Keys() {
		modes, _ := accessMap.Get(id)
		var parentModes []model.AccessMode
		if modes.Has(model.ModeCreate) {
			parentModes = append(parentModes, model.ModeAppend)
		}
		if modes.Has(model.ModeDelete) {
			parentModes = append(parentModes, model.ModeWrite)
		}
		if len(parentModes) == 0 {
			continue
		}
		parent, ok := r.identifier.GetParentContainer(id)
		if !ok {
			continue
		}
		rewritten.Merge(parent, model.NewModeSet(parentModes...))
		parents[id.PathKey()] = parent
	}

	result, err := authz.HandleSafe(ctx, r.inner, credentials, rewritten)
	if err != nil {
		return nil, err
	}

	out := model.NewPermissionMap()
	for _, id := range accessMap.Keys() {
		childSet := result.Get(id)
		parent, hasParent := parents[id.PathKey()]
		if !hasParent {
			out.Set(id, childSet)
			continue
		}

		modes, _ := accessMap.Get(id)
		parentSet := result.Get(parent)
		groups := make(map[model.CredentialGroup]struct{}, len(childSet)+len(parentSet))
		for g := range childSet {
			groups[g] = struct{}{}
		}
		for g := range parentSet {
			groups[g] = struct{}{}
		}

		derivedSet := model.PermissionSet{}
		for g := range groups {
			childPerm := childSet[g]
			parentPerm := parentSet[g]
			derived := childPerm
			if modes.Has(model.ModeCreate) {
				derived = derived.With(string(model.ModeCreate), deriveMode(
					childPerm.Get(string(model.ModeCreate)),
					parentPerm.Get(string(model.ModeAppend)) == model.Allow,
				))
			}
			if modes.Has(model.ModeDelete) {
				canDelete := childPerm.Get(string(model.ModeWrite)) == model.Allow && parentPerm.Get(string(model.ModeWrite)) == model.Allow
				derived = derived.With(string(model.ModeDelete), deriveMode(childPerm.Get(string(model.ModeDelete)), canDelete))
			}
			derivedSet[g] = derived
		}
		out.Set(id, derivedSet)
	}
	return out, nil
}

// deriveMode applies the absorbing-deny rule shared by create and delete
// derivation: an explicit child deny always wins, otherwise the derived
// condition decides Allow vs Undefined.
func deriveMode(childState model.TriState, condition bool) model.TriState {
	if childState == model.Deny {
		return model.Deny
	}
	if condition {
		return model.Allow
	}
	return model.Undefined
}
