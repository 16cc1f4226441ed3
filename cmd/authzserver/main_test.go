package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/solidgo/authz/internal/common"
)

func TestHealthEndpoint(t *testing.T) {
	r := chi.NewRouter()
	cfg := &common.Config{Server: common.ServerConfig{ContextPath: ""}}
	common.AddHealthEndpoint(r, cfg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"UP"}`, rr.Body.String())
}

func TestDemoResourceHandlerAcknowledgesAuthorizedRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/foo", nil)
	rr := httptest.NewRecorder()

	demoResourceHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"authorized"}`, rr.Body.String())
}

func TestBuildStoreAndSetRejectsUnknownBackend(t *testing.T) {
	cfg := &common.Config{Store: common.StoreConfig{Backend: "carrier-pigeon"}}
	_, _, err := buildStoreAndSet(context.Background(), cfg)
	assert.Error(t, err)
}
