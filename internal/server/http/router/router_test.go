package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marketbase/marketplace/internal/config"
	pkgAuth "github.com/marketbase/marketplace/internal/pkg/auth"
	testhelpers "github.com/marketbase/marketplace/internal/test"
)

func testEngineDeps() (*testhelpers.MarketplaceFacadeStub, testhelpers.HasherStub, *config.Config, *slog.Logger) {
	facade := &testhelpers.MarketplaceFacadeStub{}
	facade.Subject = "s1"
	facade.Role = pkgAuth.RoleSeller
	hasher := testhelpers.HasherStub{}
	hash, _ := hasher.Hash("admin-key")
	cfg := &config.Config{AdminKeyHash: hash}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return facade, hasher, cfg, logger
}

func TestSetupRoutesSellerEndpoints(t *testing.T) {
	facade, hasher, cfg, logger := testEngineDeps()
	engine := Setup(facade, hasher, cfg, logger)

	body, _ := json.Marshal(map[string]any{"amount": 80})
	req := httptest.NewRequest(http.MethodPost, "/api/v2/withdraw/create-withdraw-request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSetupRejectsUnauthenticatedSellerCall(t *testing.T) {
	facade, hasher, cfg, logger := testEngineDeps()
	engine := Setup(facade, hasher, cfg, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/v2/withdraw/create-withdraw-request", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSetupAdminEndpoints(t *testing.T) {
	facade, hasher, cfg, logger := testEngineDeps()
	engine := Setup(facade, hasher, cfg, logger)

	t.Run("with key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v2/withdraw/get-all-withdraw-request", nil)
		req.Header.Set("X-Admin-Key", "admin-key")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
	t.Run("without key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v2/withdraw/get-all-withdraw-request", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestSetupOpenEndpoints(t *testing.T) {
	facade, hasher, cfg, logger := testEngineDeps()
	engine := Setup(facade, hasher, cfg, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/v2/payment/stripeapikey", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v2/coupon/get-coupon-value/SAVE10", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSetupUnknownRoute(t *testing.T) {
	facade, hasher, cfg, logger := testEngineDeps()
	engine := Setup(facade, hasher, cfg, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/v2/unknown", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
