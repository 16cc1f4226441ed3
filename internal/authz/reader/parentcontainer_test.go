package reader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidgo/authz/internal/authz/model"
)

func TestParentContainerReaderDerivesCreateAndDelete(t *testing.T) {
	child := model.NewResourceIdentifier("http://test.com/foo")
	parent := model.NewResourceIdentifier("http://test.com/")

	accessMap := model.NewAccessMap()
	accessMap.Set(child, model.NewModeSet(model.ModeCreate, model.ModeDelete))

	inner := &recordingReader{produce: func(id model.ResourceIdentifier) model.PermissionSet {
		if id.PathKey() == parent.PathKey() {
			return model.PermissionSet{model.GroupPublic: model.AllowAll(string(model.ModeAppend), string(model.ModeWrite))}
		}
		return model.PermissionSet{model.GroupPublic: model.AllowAll(string(model.ModeWrite))}
	}}

	result, err := NewParentContainerReader(inner, AclSuffixStrategy{}).Handle(context.Background(), model.CredentialSet{model.GroupPublic: {}}, accessMap)
	require.NoError(t, err)

	require.True(t, inner.seen.Has(parent), "parent must receive the derived append/write requirement")

	childPerm := result.Get(child)[model.GroupPublic]
	require.Equal(t, model.Allow, childPerm.Get(string(model.ModeCreate)))
	require.Equal(t, model.Allow, childPerm.Get(string(model.ModeDelete)))
	require.Equal(t, model.Allow, childPerm.Get(string(model.ModeWrite)), "original child modes must be preserved")
}

func TestParentContainerReaderPreservesExplicitChildDeny(t *testing.T) {
	child := model.NewResourceIdentifier("http://test.com/foo")

	accessMap := model.NewAccessMap()
	accessMap.Set(child, model.NewModeSet(model.ModeCreate))

	inner := &recordingReader{produce: func(id model.ResourceIdentifier) model.PermissionSet {
		return model.PermissionSet{
			model.GroupPublic: model.NewPermission().
				With(string(model.ModeCreate), model.Deny).
				With(string(model.ModeAppend), model.Allow),
		}
	}}

	result, err := NewParentContainerReader(inner, AclSuffixStrategy{}).Handle(context.Background(), model.CredentialSet{model.GroupPublic: {}}, accessMap)
	require.NoError(t, err)

	childPerm := result.Get(child)[model.GroupPublic]
	require.Equal(t, model.Deny, childPerm.Get(string(model.ModeCreate)), "explicit child deny must absorb the parent-derived allow")
}

func TestParentContainerReaderPassesThroughEntriesWithoutCreateOrDelete(t *testing.T) {
	child := model.NewResourceIdentifier("http://test.com/foo")

	accessMap := model.NewAccessMap()
	accessMap.Set(child, model.NewModeSet(model.ModeRead))

	inner := &recordingReader{produce: func(model.ResourceIdentifier) model.PermissionSet {
		return model.PermissionSet{model.GroupPublic: model.AllowAll(string(model.ModeRead))}
	}}

	result, err := NewParentContainerReader(inner, AclSuffixStrategy{}).Handle(context.Background(), model.CredentialSet{model.GroupPublic: {}}, accessMap)
	require.NoError(t, err)
	require.False(t, inner.seen.Has(model.NewResourceIdentifier("http://test.com/")), "no parent requirement should be derived without create or delete")
	require.Equal(t, model.Allow, result.Get(child)[model.GroupPublic].Get(string(model.ModeRead)))
}
