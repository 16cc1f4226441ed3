// Package webid implements authz.CredentialsExtractor against Solid's
// WebID-OIDC authentication scheme: a verified bearer token's identity
// claim becomes the agent credential the rest of the pipeline reasons
// about.
package webid

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
)

// Settings configures WebIDOIDCExtractor's upstream OIDC provider.
type Settings struct {
	Issuer   string
	Audience string
}

// claimsVerifier decouples WebIDOIDCExtractor from *oidc.IDToken's
// unexported fields, so tests can hand it claims directly instead of
// fabricating a signed token.
type claimsVerifier interface {
	VerifyClaims(ctx context.Context, rawIDToken string) (map[string]any, error)
}

// oidcVerifier adapts *oidc.IDTokenVerifier to claimsVerifier.
type oidcVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func (v *oidcVerifier) VerifyClaims(ctx context.Context, rawIDToken string) (map[string]any, error) {
	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}
	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// WebIDOIDCExtractor implements authz.CredentialsExtractor via Solid's
// WebID-OIDC: a verified bearer token's `webid` claim (falling back to
// `sub`) becomes the agent credential's WebID. Same provider/verifier
// setup and ✅/❌ logging as a conventional OIDC middleware, but exposed
// as a CredentialsExtractor feeding the pipeline rather than an
// http.Handler middleware that rejects the request outright.
type WebIDOIDCExtractor struct {
	verifier claimsVerifier
}

// NewWebIDOIDCExtractor builds a WebIDOIDCExtractor against an OIDC
// provider discovered from s.Issuer.
func NewWebIDOIDCExtractor(ctx context.Context, s Settings) (*WebIDOIDCExtractor, error) {
	log.Printf("🔐 Initializing WebID-OIDC verifier...")
	provider, err := oidc.NewProvider(ctx, s.Issuer)
	if err != nil {
		return nil, err
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: s.Audience})
	log.Printf("✅ WebID-OIDC verifier created. Issuer=%s Audience=%s", s.Issuer, s.Audience)
	return &WebIDOIDCExtractor{verifier: &oidcVerifier{verifier: verifier}}, nil
}

// Extract implements authz.CredentialsExtractor. A request with no bearer
// token yields only the public credential group. An invalid token yields
// a *authz.BadInputError rather than silently degrading to anonymous — a
// client presenting a broken credential should be told so, not
// reauthorized as public.
func (e *WebIDOIDCExtractor) Extract(ctx context.Context, r *http.Request) (model.CredentialSet, error) {
	out := model.CredentialSet{model.GroupPublic: {}}

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return out, nil
	}

	claims, err := e.verifier.VerifyClaims(ctx, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		log.Printf("❌ WebID-OIDC token verification failed: %v", err)
		return nil, authz.NewBadInputError("invalid bearer token")
	}

	webID, _ := claims["webid"].(string)
	if webID == "" {
		webID, _ = claims["sub"].(string)
	}
	if webID == "" {
		return out, nil
	}

	log.Printf("✅ WebID-OIDC credential resolved: %s", webID)
	out[model.GroupAgent] = model.Credential{WebID: webID}
	return out, nil
}
