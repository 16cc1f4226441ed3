// Package webacl implements the ground-truth permission reader: discovery
// and parsing of WebACL (Web Access Control) RDF documents, the
// accessTo/default rule match, and the AccessChecker variants that decide
// whether a credential matches an acl:Authorization rule.
package webacl

import (
	"context"
	"errors"
	"strings"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
	"github.com/solidgo/authz/internal/authz/quads"
)

// CheckInput bundles the three inputs an AccessChecker is a pure predicate
// over: the ACL rule's quad store, the rule's subject IRI, and the
// credential being tested.
type CheckInput struct {
	Store      *quads.Store
	Rule       string
	Credential model.Credential
}

// AccessChecker decides whether a credential is matched by an
// acl:Authorization rule. Concrete variants are composed behind
// CompositeAccessChecker rather than through inheritance.
type AccessChecker interface {
	CanHandle(ctx context.Context, in CheckInput) error
	Handle(ctx context.Context, in CheckInput) (bool, error)
}

// HandleSafeCheck calls CanHandle and, on success, Handle.
func HandleSafeCheck(ctx context.Context, c AccessChecker, in CheckInput) (bool, error) {
	if err := c.CanHandle(ctx, in); err != nil {
		return false, err
	}
	return c.Handle(ctx, in)
}

// AgentMatchChecker matches a rule's acl:agent against the credential's
// WebID.
type AgentMatchChecker struct{}

func (AgentMatchChecker) CanHandle(context.Context, CheckInput) error { return nil }

func (AgentMatchChecker) Handle(_ context.Context, in CheckInput) (bool, error) {
	if in.Credential.WebID == "" {
		return false, nil
	}
	return in.Store.HasSubjectWith(in.Rule, quads.AclAgent, in.Credential.WebID), nil
}

// AgentClassChecker matches a rule's acl:agentClass against foaf:Agent
// (anyone, including the public) or acl:AuthenticatedAgent (any agent
// carrying a WebID).
type AgentClassChecker struct{}

func (AgentClassChecker) CanHandle(context.Context, CheckInput) error { return nil }

func (AgentClassChecker) Handle(_ context.Context, in CheckInput) (bool, error) {
	if in.Store.HasSubjectWith(in.Rule, quads.AclAgentClass, quads.FoafAgent) {
		return true, nil
	}
	if in.Credential.WebID != "" && in.Store.HasSubjectWith(in.Rule, quads.AclAgentClass, quads.AclAuthenticated) {
		return true, nil
	}
	return false, nil
}

// AgentGroupChecker matches a rule's acl:agentGroup by fetching the group
// resource (the IRI up to its fragment) and checking for an acl:member
// triple naming the credential's WebID. This is the one AccessChecker
// variant that needs I/O beyond the ACL document's own store; group
// resolution mechanics are left to the implementer, so it is wired
// through the same ResourceStore the WebAclReader already holds.
type AgentGroupChecker struct {
	store authz.ResourceStore
}

// NewAgentGroupChecker builds an AgentGroupChecker that resolves group
// membership documents through store.
func NewAgentGroupChecker(store authz.ResourceStore) *AgentGroupChecker {
	return &AgentGroupChecker{store: store}
}

func (c *AgentGroupChecker) CanHandle(context.Context, CheckInput) error { return nil }

func (c *AgentGroupChecker) Handle(ctx context.Context, in CheckInput) (bool, error) {
	if in.Credential.WebID == "" {
		return false, nil
	}
	for _, q := range in.Store.QuadsOf(in.Rule) {
		if q.Predicate != quads.AclAgentGroup {
			continue
		}
		member, err := c.isGroupMember(ctx, q.Object, in.Credential.WebID)
		if err != nil {
			return false, err
		}
		if member {
			return true, nil
		}
	}
	return false, nil
}

func (c *AgentGroupChecker) isGroupMember(ctx context.Context, group, webID string) (bool, error) {
	docID, _, _ := strings.Cut(group, "#")
	rep, err := c.store.GetRepresentation(ctx, model.NewResourceIdentifier(docID), authz.QuadsPreferences())
	if err != nil {
		var notFound *authz.NotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, authz.NewInternalServerError("Error reading group document "+docID, err)
	}
	groupStore := quads.NewStore(rep.Quads)
	return groupStore.HasSubjectWith(group, quads.AclMember, webID), nil
}

// CompositeAccessChecker matches if any of its checkers matches. A
// checker's BadInputError is treated as "this checker does not apply" and
// the next one is tried; any other error aborts the whole evaluation.
type CompositeAccessChecker struct {
	checkers []AccessChecker
}

// NewCompositeAccessChecker builds the default checker composition: agent
// match, agent-class match, and (if store is non-nil) agent-group match.
func NewCompositeAccessChecker(store authz.ResourceStore) *CompositeAccessChecker {
	checkers := []AccessChecker{AgentMatchChecker{}, AgentClassChecker{}}
	if store != nil {
		checkers = append(checkers, NewAgentGroupChecker(store))
	}
	return &CompositeAccessChecker{checkers: checkers}
}

func (*CompositeAccessChecker) CanHandle(context.Context, CheckInput) error { return nil }

func (c *CompositeAccessChecker) Handle(ctx context.Context, in CheckInput) (bool, error) {
	for _, checker := range c.checkers {
		ok, err := HandleSafeCheck(ctx, checker, in)
		if err != nil {
			var badInput *authz.BadInputError
			if errors.As(err, &badInput) {
				continue
			}
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
