package webacl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
	"github.com/solidgo/authz/internal/authz/quads"
)

func TestAgentClassCheckerMatchesPublic(t *testing.T) {
	rule := "http://test.com/.acl#rule"
	store := quads.NewStore([]quads.Quad{
		{Subject: rule, Predicate: quads.AclAgentClass, Object: quads.FoafAgent},
	})

	ok, err := AgentClassChecker{}.Handle(context.Background(), CheckInput{Store: store, Rule: rule, Credential: model.Credential{}})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAgentClassCheckerRequiresWebIDForAuthenticatedClass(t *testing.T) {
	rule := "http://test.com/.acl#rule"
	store := quads.NewStore([]quads.Quad{
		{Subject: rule, Predicate: quads.AclAgentClass, Object: quads.AclAuthenticated},
	})

	ok, err := AgentClassChecker{}.Handle(context.Background(), CheckInput{Store: store, Rule: rule, Credential: model.Credential{}})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = AgentClassChecker{}.Handle(context.Background(), CheckInput{Store: store, Rule: rule, Credential: model.Credential{WebID: "http://test.com/alice#me"}})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAgentGroupCheckerFetchesGroupDocument(t *testing.T) {
	rule := "http://test.com/.acl#rule"
	group := "http://test.com/groups#admins"
	store := quads.NewStore([]quads.Quad{
		{Subject: rule, Predicate: quads.AclAgentGroup, Object: group},
	})

	groupStore := &fixtureStore{documents: map[string][]quads.Quad{
		"http://test.com/groups": {
			{Subject: group, Predicate: quads.AclMember, Object: "http://test.com/alice#me"},
		},
	}}

	checker := NewAgentGroupChecker(groupStore)
	ok, err := checker.Handle(context.Background(), CheckInput{Store: store, Rule: rule, Credential: model.Credential{WebID: "http://test.com/alice#me"}})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = checker.Handle(context.Background(), CheckInput{Store: store, Rule: rule, Credential: model.Credential{WebID: "http://test.com/bob#me"}})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAgentGroupCheckerTreatsMissingGroupDocumentAsNoMatch(t *testing.T) {
	rule := "http://test.com/.acl#rule"
	group := "http://test.com/groups#admins"
	store := quads.NewStore([]quads.Quad{
		{Subject: rule, Predicate: quads.AclAgentGroup, Object: group},
	})

	checker := NewAgentGroupChecker(&fixtureStore{documents: map[string][]quads.Quad{}})
	ok, err := checker.Handle(context.Background(), CheckInput{Store: store, Rule: rule, Credential: model.Credential{WebID: "http://test.com/alice#me"}})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCompositeAccessCheckerUnion(t *testing.T) {
	rule := "http://test.com/.acl#rule"
	store := quads.NewStore([]quads.Quad{
		{Subject: rule, Predicate: quads.AclAgent, Object: "http://test.com/alice#me"},
	})

	composite := NewCompositeAccessChecker(nil)
	ok, err := composite.Handle(context.Background(), CheckInput{Store: store, Rule: rule, Credential: model.Credential{WebID: "http://test.com/alice#me"}})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = composite.Handle(context.Background(), CheckInput{Store: store, Rule: rule, Credential: model.Credential{WebID: "http://test.com/bob#me"}})
	require.NoError(t, err)
	require.False(t, ok)
}

var _ authz.ResourceStore = (*fixtureStore)(nil)
