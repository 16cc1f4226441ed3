package reader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidgo/authz/internal/authz/model"
)

// recordingReader remembers the AccessMap it was invoked with and returns a
// canned PermissionMap built from a per-identifier callback.
type recordingReader struct {
	seen    *model.AccessMap
	produce func(id model.ResourceIdentifier) model.PermissionSet
}

func (r *recordingReader) CanHandle(context.Context, model.CredentialSet, *model.AccessMap) error {
	return nil
}

func (r *recordingReader) Handle(_ context.Context, _ model.CredentialSet, accessMap *model.AccessMap) (*model.PermissionMap, error) {
	r.seen = accessMap
	out := model.NewPermissionMap()
	for _, id := range accessMap.Keys() {
		out.Set(id, r.produce(id))
	}
	return out, nil
}

func TestAuxiliaryReaderRewritesOntoSubject(t *testing.T) {
	subject := model.NewResourceIdentifier("http://test.com/foo/")
	aux := model.NewResourceIdentifier("http://test.com/foo/.dummy")

	accessMap := model.NewAccessMap()
	accessMap.Set(aux, model.NewModeSet(model.ModeRead))

	grantedPublic := model.PermissionSet{model.GroupPublic: model.AllowAll(string(model.ModeRead))}
	inner := &recordingReader{produce: func(model.ResourceIdentifier) model.PermissionSet { return grantedPublic }}

	strategy := dummyAuxStrategy{subject: subject}
	result, err := NewAuxiliaryReader(inner, strategy).Handle(context.Background(), model.CredentialSet{model.GroupPublic: {}}, accessMap)
	require.NoError(t, err)

	require.False(t, inner.seen.Has(aux), "auxiliary identifier must not reach the inner reader")
	require.True(t, inner.seen.Has(subject), "subject must receive the merged requirement")

	require.True(t, result.Has(aux))
	require.Equal(t, model.Allow, result.Get(aux)[model.GroupPublic].Get(string(model.ModeRead)))
}

func TestAuxiliaryReaderIdentityWhenNoAuxiliaryEntries(t *testing.T) {
	foo := model.NewResourceIdentifier("http://test.com/foo")
	accessMap := model.NewAccessMap()
	accessMap.Set(foo, model.NewModeSet(model.ModeRead))

	inner := &recordingReader{produce: func(model.ResourceIdentifier) model.PermissionSet {
		return model.PermissionSet{model.GroupPublic: model.AllowAll(string(model.ModeRead))}
	}}

	strategy := dummyAuxStrategy{subject: model.ResourceIdentifier{}}
	result1, err := NewAuxiliaryReader(inner, strategy).Handle(context.Background(), model.CredentialSet{model.GroupPublic: {}}, accessMap)
	require.NoError(t, err)

	require.Same(t, accessMap, inner.seen, "with no auxiliary entries the original AccessMap must reach the inner reader unmodified")
	require.NotNil(t, result1)
}

// dummyAuxStrategy treats everything whose path does not equal subject.Path
// as an auxiliary identifier of subject.
type dummyAuxStrategy struct {
	subject model.ResourceIdentifier
}

func (s dummyAuxStrategy) IsAuxiliaryIdentifier(id model.ResourceIdentifier) bool {
	return id.Path != s.subject.Path && s.subject.Path != ""
}

func (s dummyAuxStrategy) GetAuxiliaryIdentifier(model.ResourceIdentifier) model.ResourceIdentifier {
	return model.ResourceIdentifier{}
}

func (s dummyAuxStrategy) GetSubjectIdentifier(model.ResourceIdentifier) model.ResourceIdentifier {
	return s.subject
}

func (s dummyAuxStrategy) UsesOwnAuthorization(model.ResourceIdentifier) bool {
	return false
}
