/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

// Package main implements the authorization core's demo resource server:
// it wires the pipeline (credentials, modes, permission readers,
// authorizer) behind a real chi router so the library can be exercised
// end-to-end against a configured store backend.
package main

import (
	"context"
	"embed"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"regexp"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/solidgo/authz/internal/authz"
	authzhttp "github.com/solidgo/authz/internal/authz/http"
	"github.com/solidgo/authz/internal/authz/model"
	"github.com/solidgo/authz/internal/authz/modes"
	"github.com/solidgo/authz/internal/authz/reader"
	"github.com/solidgo/authz/internal/authz/store"
	"github.com/solidgo/authz/internal/authz/webacl"
	"github.com/solidgo/authz/internal/authz/webid"
	"github.com/solidgo/authz/internal/common"
)

//go:embed openapi.yaml
var openapiSpec embed.FS

// buildStoreAndSet constructs the authz.ResourceStore / authz.ResourceSet
// pair for cfg.Store.Backend. "postgres" keeps both concerns on the same
// database, one backend per deployment; "s3" splits resource bodies into
// S3 while the cheaper containment-only existence probe stays on Mongo,
// since S3 has no equivalent of a
// `SELECT EXISTS` query.
func buildStoreAndSet(ctx context.Context, cfg *common.Config) (authz.ResourceStore, authz.ResourceSet, error) {
	switch cfg.Store.Backend {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3.Region))
		if err != nil {
			return nil, nil, fmt.Errorf("loading AWS config: %w", err)
		}
		s3Store := store.NewS3ResourceStore(s3.NewFromConfig(awsCfg), cfg.S3.Bucket)

		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		collection := mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		return s3Store, store.NewMongoResourceSet(collection), nil

	case "postgres", "":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
		log.Printf("🗄️  Connecting to Postgres with DSN: postgres://%s:****@%s:%d/%s?sslmode=disable",
			cfg.Postgres.User, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
		db, err := store.InitializePostgres(dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		log.Println("✅ Postgres connection established")
		return store.NewPostgresResourceStore(db), store.NewPostgresResourceSet(db), nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// buildPermissionReader composes the pipeline's PermissionReader: the
// well-known endpoint is always publicly readable (AllStaticReader), every
// other path is governed by its WebACL document, wrapped so ACL auxiliary
// documents derive their own access from control over their subject and
// create/delete derive from the parent container.
func buildPermissionReader(resourceStore authz.ResourceStore, identifierStrategy reader.AclSuffixStrategy) authz.PermissionReader {
	checker := webacl.NewCompositeAccessChecker(resourceStore)
	webAclReader := webacl.NewWebAclReader(resourceStore, identifierStrategy, identifierStrategy, checker)
	aclPipeline := reader.NewParentContainerReader(
		reader.NewWebAclAuxiliaryReader(webAclReader, identifierStrategy),
		identifierStrategy,
	)

	return reader.NewPathBasedReader("", []reader.Route{
		{Pattern: regexp.MustCompile(`^/\.well-known/.*`), Reader: reader.NewAllStaticReader(true)},
		{Pattern: regexp.MustCompile(`.*`), Reader: aclPipeline},
	})
}

// demoResourceHandler is what authzhttp.Middleware calls once a request
// clears the pipeline. It never serves actual resource bytes (out of
// scope for this authorization core) — it just confirms the operation was
// authorized, the WAC-Allow header already set by the middleware.
func demoResourceHandler(w http.ResponseWriter, r *http.Request) {
	log.Printf("▶️ authorized %s %s", r.Method, r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"authorized"}`))
}

func runServer(ctx context.Context, configPath string) error {
	common.PrintSplash()
	log.Println("Loading Solid Authorization Core demo server...")

	cfg, err := common.LoadConfig(configPath)
	if err != nil {
		return err
	}

	resourceStore, resourceSet, err := buildStoreAndSet(ctx, cfg)
	if err != nil {
		return err
	}

	credentialsExtractor, err := webid.NewWebIDOIDCExtractor(ctx, webid.Settings{
		Issuer:   cfg.WebID.Issuer,
		Audience: cfg.WebID.Audience,
	})
	if err != nil {
		return fmt.Errorf("initializing WebID-OIDC verifier: %w", err)
	}

	identifierStrategy := reader.AclSuffixStrategy{}
	permissionReader := buildPermissionReader(resourceStore, identifierStrategy)
	modesExtractor := modes.NewIntermediateModesExtractor(modes.NewMethodModesExtractor(), resourceSet, identifierStrategy)
	resolveTarget := func(r *http.Request) model.ResourceIdentifier {
		return model.NewResourceIdentifier(r.URL.Path)
	}

	r := chi.NewRouter()
	r.Use(common.ConfigMiddleware(cfg))
	common.AddCors(r, cfg)
	common.AddHealthEndpoint(r, cfg)

	if err := common.AddSwaggerUI(r, openapiSpec, "openapi.yaml", "/swagger", "/api-docs/openapi.yaml"); err != nil {
		log.Printf("⚠️ failed to load OpenAPI spec for Swagger UI: %v", err)
	}

	// /whoami is a debug endpoint bypassing the authorizer: it only runs
	// credential extraction, to let an operator verify WebID-OIDC wiring
	// without needing a resource behind an ACL document.
	r.Get("/whoami", func(w http.ResponseWriter, req *http.Request) {
		creds, err := credentialsExtractor.Extract(req.Context(), req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(creds)
	})

	base := common.NormalizeBasePath(cfg.Server.ContextPath)
	apiRouter := chi.NewRouter()
	apiRouter.Use(authzhttp.Middleware(credentialsExtractor, modesExtractor, permissionReader, resolveTarget))
	apiRouter.HandleFunc("/*", demoResourceHandler)
	r.Mount(base, apiRouter)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("▶️ Solid Authorization Core listening on %s (contextPath=%q)\n", addr, cfg.Server.ContextPath)

	go func() {
		//nolint:gosec // demo server, not hardened against slowloris.
		if err := http.ListenAndServe(addr, r); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	return nil
}

func main() {
	ctx := context.Background()
	configPath := ""
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	if err := runServer(ctx, configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
