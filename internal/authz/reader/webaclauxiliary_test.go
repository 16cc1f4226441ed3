package reader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidgo/authz/internal/authz/model"
)

func TestWebAclAuxiliaryReaderDerivesFromControl(t *testing.T) {
	subject := model.NewResourceIdentifier("http://test.com/foo/")
	acl := model.NewResourceIdentifier("http://test.com/foo/.acl")

	accessMap := model.NewAccessMap()
	accessMap.Set(acl, model.NewModeSet(model.ModeRead))

	inner := &recordingReader{produce: func(id model.ResourceIdentifier) model.PermissionSet {
		return model.PermissionSet{model.GroupPublic: model.AllowAll(string(model.ModeControl))}
	}}

	result, err := NewWebAclAuxiliaryReader(inner, AclSuffixStrategy{}).Handle(context.Background(), model.CredentialSet{model.GroupPublic: {}}, accessMap)
	require.NoError(t, err)

	require.False(t, inner.seen.Has(acl))
	require.True(t, inner.seen.Has(subject))
	subjectModes, _ := inner.seen.Get(subject)
	require.True(t, subjectModes.Has(model.AccessMode(model.ModeControl)))

	aclPerm := result.Get(acl)[model.GroupPublic]
	require.Equal(t, model.Allow, aclPerm.Get(string(model.ModeRead)))
	require.Equal(t, model.Allow, aclPerm.Get(string(model.ModeAppend)))
	require.Equal(t, model.Allow, aclPerm.Get(string(model.ModeWrite)))
	require.Equal(t, model.Allow, aclPerm.Get(string(model.ModeControl)))
}

func TestWebAclAuxiliaryReaderEmptyWhenSubjectAbsent(t *testing.T) {
	acl := model.NewResourceIdentifier("http://test.com/foo/.acl")

	accessMap := model.NewAccessMap()
	accessMap.Set(acl, model.NewModeSet(model.ModeRead))

	inner := &recordingReader{produce: func(model.ResourceIdentifier) model.PermissionSet {
		return model.PermissionSet{}
	}}

	result, err := NewWebAclAuxiliaryReader(inner, AclSuffixStrategy{}).Handle(context.Background(), model.CredentialSet{model.GroupPublic: {}}, accessMap)
	require.NoError(t, err)

	aclSet := result.Get(acl)
	require.Empty(t, aclSet)
}
