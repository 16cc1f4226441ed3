package webacl

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
	"github.com/solidgo/authz/internal/authz/quads"
)

// WebAclReader is the ground-truth PermissionReader: it discovers the
// governing ACL document for every target identifier, classifies each
// target as a direct or inherited subject of that document, and evaluates
// the document's acl:Authorization rules against the request's
// credentials. It only ever emits Allow verdicts — denial is the absence
// of a statement, handled by the Authorizer.
type WebAclReader struct {
	store       authz.ResourceStore
	identifier  authz.IdentifierStrategy
	aclStrategy authz.AclAuxiliaryIdentifierStrategy
	checker     AccessChecker
}

// NewWebAclReader builds a WebAclReader.
func NewWebAclReader(store authz.ResourceStore, identifier authz.IdentifierStrategy, aclStrategy authz.AclAuxiliaryIdentifierStrategy, checker AccessChecker) *WebAclReader {
	return &WebAclReader{store: store, identifier: identifier, aclStrategy: aclStrategy, checker: checker}
}

// CanHandle never declines.
func (r *WebAclReader) CanHandle(context.Context, model.CredentialSet, *model.AccessMap) error {
	return nil
}

// Handle runs ACL discovery and evaluation for every identifier in
// accessMap: targets are claimed in batches sharing a governing ACL
// document, which is fetched at most once per batch.
func (r *WebAclReader) Handle(ctx context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) (*model.PermissionMap, error) {
	out := model.NewPermissionMap()

	unclaimed := make(map[string]model.ResourceIdentifier, accessMap.Len())
	for _, id := range accessMap.Keys() {
		unclaimed[id.PathKey()] = id
	}

	for len(unclaimed) > 0 {
		longest := pickLongest(unclaimed)

		aclStore, owner, err := r.fetchGoverningAcl(ctx, longest)
		if err != nil {
			return nil, err
		}

		var direct, indirect []model.ResourceIdentifier
		for key, target := range unclaimed {
			if !strings.Contains(longest.Path, target.Path) || len(target.Path) < len(owner.Path) {
				continue
			}
			delete(unclaimed, key)
			if target.Path == owner.Path {
				direct = append(direct, target)
			} else {
				indirect = append(indirect, target)
			}
		}

		if len(direct) > 0 {
			perm, err := r.evaluate(ctx, filterRuleStore(aclStore, quads.AclAccessTo, owner.Path), credentials)
			if err != nil {
				return nil, err
			}
			for _, target := range direct {
				out.Set(target, perm)
			}
		}
		if len(indirect) > 0 {
			perm, err := r.evaluate(ctx, filterRuleStore(aclStore, quads.AclDefault, owner.Path), credentials)
			if err != nil {
				return nil, err
			}
			for _, target := range indirect {
				out.Set(target, perm)
			}
		}
	}

	return out, nil
}

// fetchGoverningAcl walks up from start, via the identifier strategy's
// container hierarchy, until a direct ACL document is found. It returns
// the parsed store and the identifier whose ACL document that was (which
// may be start itself or any ancestor).
func (r *WebAclReader) fetchGoverningAcl(ctx context.Context, start model.ResourceIdentifier) (*quads.Store, model.ResourceIdentifier, error) {
	current := start
	for {
		aclID := r.aclStrategy.GetAuxiliaryIdentifier(current)
		rep, err := r.store.GetRepresentation(ctx, aclID, authz.QuadsPreferences())
		if err == nil {
			return quads.NewStore(rep.Quads), current, nil
		}

		var notFound *authz.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, model.ResourceIdentifier{}, authz.NewInternalServerError(
				fmt.Sprintf("Error reading ACL for %s", current.Path), err)
		}

		if r.identifier.IsRootContainer(current) {
			return nil, model.ResourceIdentifier{}, authz.NewForbiddenError(current.Path, "No ACL document found for root container")
		}
		parent, ok := r.identifier.GetParentContainer(current)
		if !ok {
			return nil, model.ResourceIdentifier{}, authz.NewForbiddenError(current.Path, "No ACL document found for root container")
		}
		current = parent
	}
}

// evaluate computes the PermissionSet a rule store grants, per credential
// group. A credential group absent from credentials yields an explicit
// empty Permission ("no statement"), distinct from the group being omitted
// from the result entirely.
func (r *WebAclReader) evaluate(ctx context.Context, ruleStore *quads.Store, credentials model.CredentialSet) (model.PermissionSet, error) {
	out := model.PermissionSet{}
	for _, group := range []model.CredentialGroup{model.GroupPublic, model.GroupAgent} {
		cred, ok := credentials.Get(group)
		if !ok {
			out[group] = model.NewPermission()
			continue
		}

		perm := model.NewPermission()
		for _, rule := range ruleStore.AllSubjectsWithType(quads.AclAuthorization) {
			allowed, err := HandleSafeCheck(ctx, r.checker, CheckInput{Store: ruleStore, Rule: rule, Credential: cred})
			if err != nil {
				return nil, err
			}
			if !allowed {
				continue
			}
			perm = applyRuleModes(perm, ruleStore, rule)
		}
		out[group] = perm
	}
	return out, nil
}

// applyRuleModes folds every acl:mode object of rule into perm using the
// WebACL → operational mode table. Unrecognized modes are ignored; modes
// accumulate monotonically to Allow.
func applyRuleModes(perm model.Permission, ruleStore *quads.Store, rule string) model.Permission {
	for _, q := range ruleStore.QuadsOf(rule) {
		if q.Predicate != quads.AclMode {
			continue
		}
		switch q.Object {
		case quads.AclModeRead:
			perm = perm.With(string(model.ModeRead), model.Allow)
		case quads.AclModeWrite:
			perm = perm.With(string(model.ModeAppend), model.Allow).With(string(model.ModeWrite), model.Allow)
		case quads.AclModeAppend:
			perm = perm.With(string(model.ModeAppend), model.Allow)
		case quads.AclModeControl:
			perm = perm.With(string(model.ModeControl), model.Allow)
		}
	}
	return perm
}

func filterRuleStore(store *quads.Store, predicate, object string) *quads.Store {
	return store.SubStore(store.SubjectsWith(predicate, object))
}

// pickLongest returns the identifier with the longest path among unclaimed.
// Ties are broken by sorting keys first, so discovery order — and hence
// which ACL document batches unrelated same-length targets — is
// deterministic across runs.
func pickLongest(unclaimed map[string]model.ResourceIdentifier) model.ResourceIdentifier {
	keys := make([]string, 0, len(unclaimed))
	for k := range unclaimed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := unclaimed[keys[0]]
	for _, k := range keys[1:] {
		if candidate := unclaimed[k]; len(candidate.Path) > len(best.Path) {
			best = candidate
		}
	}
	return best
}
