package reader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidgo/authz/internal/authz/model"
)

func TestUnionPermissionReaderAllowAbsorbsUndefined(t *testing.T) {
	foo := model.NewResourceIdentifier("http://test.com/foo")
	accessMap := model.NewAccessMap()
	accessMap.Set(foo, model.NewModeSet(model.ModeRead))
	credentials := model.CredentialSet{model.GroupPublic: {}}

	allow := NewAllStaticReader(true)
	emptyReader := pathBasedEmptyReader{}

	result, err := NewUnionPermissionReader(allow, emptyReader).Handle(context.Background(), credentials, accessMap)
	require.NoError(t, err)
	require.Equal(t, model.Allow, result.Get(foo)[model.GroupPublic].Get(string(model.ModeRead)))
}

func TestUnionPermissionReaderDenyAbsorbsAllow(t *testing.T) {
	foo := model.NewResourceIdentifier("http://test.com/foo")
	accessMap := model.NewAccessMap()
	accessMap.Set(foo, model.NewModeSet(model.ModeRead))
	credentials := model.CredentialSet{model.GroupPublic: {}}

	allow := NewAllStaticReader(true)
	deny := NewAllStaticReader(false)

	result, err := NewUnionPermissionReader(allow, deny).Handle(context.Background(), credentials, accessMap)
	require.NoError(t, err)
	require.Equal(t, model.Deny, result.Get(foo)[model.GroupPublic].Get(string(model.ModeRead)))
}

func TestUnionPermissionReaderPropagatesChildError(t *testing.T) {
	foo := model.NewResourceIdentifier("http://test.com/foo")
	accessMap := model.NewAccessMap()
	accessMap.Set(foo, model.NewModeSet(model.ModeRead))
	credentials := model.CredentialSet{model.GroupPublic: {}}

	_, err := NewUnionPermissionReader(NewAllStaticReader(true), failingReader{}).Handle(context.Background(), credentials, accessMap)
	require.Error(t, err)
}

// pathBasedEmptyReader always returns an empty PermissionMap, standing in
// for "undefined" in the lattice.
type pathBasedEmptyReader struct{}

func (pathBasedEmptyReader) CanHandle(context.Context, model.CredentialSet, *model.AccessMap) error {
	return nil
}

func (pathBasedEmptyReader) Handle(context.Context, model.CredentialSet, *model.AccessMap) (*model.PermissionMap, error) {
	return model.NewPermissionMap(), nil
}

type failingReader struct{}

func (failingReader) CanHandle(context.Context, model.CredentialSet, *model.AccessMap) error {
	return nil
}

func (failingReader) Handle(context.Context, model.CredentialSet, *model.AccessMap) (*model.PermissionMap, error) {
	return nil, errors.New("synthetic reader failure")
}
