package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marketkit/marketplace-system/internal/api/middleware"
	"github.com/marketkit/marketplace-system/internal/core/domain"
	"github.com/marketkit/marketplace-system/internal/core/ports"
	"github.com/marketkit/marketplace-system/internal/core/token"
)

// stubProductService records which operations were reached so tests can
// assert that denied requests never touch the service layer.
type stubProductService struct {
	created  bool
	attached bool
	identity *domain.Identity
}

func (s *stubProductService) List(ctx context.Context) ([]domain.Product, error) {
	return []domain.Product{}, nil
}

func (s *stubProductService) ListOwn(ctx context.Context, identity *domain.Identity) ([]domain.Product, error) {
	s.identity = identity
	return []domain.Product{}, nil
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (s *stubProductService) Create(ctx context.Context, identity *domain.Identity, input ports.ProductInput) (*domain.Product, error) {
	s.created = true
	s.identity = identity
	return &domain.Product{ID: "p1", Name: input.Name, OwnerID: identity.SubjectID}, nil
}

func (s *stubProductService) Update(ctx context.Context, identity *domain.Identity, id string, input ports.ProductInput) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (s *stubProductService) Delete(ctx context.Context, identity *domain.Identity, id string) error {
	return domain.ErrProductNotFound
}

func (s *stubProductService) AttachMedia(ctx context.Context, productID, mediaID string) (*domain.Product, error) {
	s.attached = true
	return &domain.Product{ID: productID, ImageIDs: []string{mediaID}}, nil
}

const testInternalSecret = "internal-secret"

func newProductTestRouter(t *testing.T) (*stubProductService, *token.Codec, http.Handler) {
	t.Helper()
	codec := token.NewCodec("test-signing-key", token.DefaultTTL)
	stub := &stubProductService{}
	e := NewProductRouter(stub, codec, testInternalSecret, nil, zerolog.Nop())
	return stub, codec, e
}

func bearer(t *testing.T, codec *token.Codec, subject string, role domain.Role) string {
	t.Helper()
	raw, err := codec.Issue(subject, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + raw
}

func TestProductRouter_ListIsOpen(t *testing.T) {
	_, _, e := newProductTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProductRouter_GarbageTokenStillAnonymousOnOpenRoute(t *testing.T) {
	_, _, e := newProductTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous read, got %d", rec.Code)
	}
}

func TestProductRouter_CreateRequiresSeller(t *testing.T) {
	body := `{"name":"lamp","price":10,"quantity":1}`

	cases := []struct {
		name string
		auth func(t *testing.T, codec *token.Codec) string
		want int
	}{
		{
			name: "anonymous",
			auth: func(t *testing.T, codec *token.Codec) string { return "" },
			want: http.StatusForbidden,
		},
		{
			name: "client token",
			auth: func(t *testing.T, codec *token.Codec) string {
				return bearer(t, codec, "u-client", domain.RoleClient)
			},
			want: http.StatusForbidden,
		},
		{
			name: "seller token",
			auth: func(t *testing.T, codec *token.Codec) string {
				return bearer(t, codec, "u-seller", domain.RoleSeller)
			},
			want: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub, codec, e := newProductTestRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if auth := tc.auth(t, codec); auth != "" {
				req.Header.Set("Authorization", auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
			if wantCreated := tc.want == http.StatusOK; stub.created != wantCreated {
				t.Fatalf("created = %v, want %v", stub.created, wantCreated)
			}
		})
	}
}

func TestProductRouter_CreateUsesTokenIdentity(t *testing.T) {
	stub, codec, e := newProductTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":"lamp","price":10,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, codec, "u-seller", domain.RoleSeller))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.identity == nil || stub.identity.SubjectID != "u-seller" || stub.identity.Role != domain.RoleSeller {
		t.Fatalf("identity = %+v", stub.identity)
	}
}

func TestProductRouter_MineRequiresAuthentication(t *testing.T) {
	_, codec, e := newProductTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/mine", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/products/mine", nil)
	req.Header.Set("Authorization", bearer(t, codec, "u-client", domain.RoleClient))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated: expected 200, got %d", rec.Code)
	}
}

func TestProductRouter_AttachMediaInternalGate(t *testing.T) {
	body := `{"mediaId":"m1"}`

	cases := []struct {
		name    string
		headers map[string]string
		want    int
		reached bool
	}{
		{
			name:    "no header",
			headers: nil,
			want:    http.StatusForbidden,
		},
		{
			name:    "wrong secret",
			headers: map[string]string{middleware.HeaderInternalToken: "guess"},
			want:    http.StatusForbidden,
		},
		{
			name:    "correct secret",
			headers: map[string]string{middleware.HeaderInternalToken: testInternalSecret},
			want:    http.StatusOK,
			reached: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub, _, e := newProductTestRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/api/products/p1/images", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
			if stub.attached != tc.reached {
				t.Fatalf("attached = %v, want %v", stub.attached, tc.reached)
			}
		})
	}
}

func TestProductRouter_BearerTokenDoesNotOpenInternalRoute(t *testing.T) {
	stub, codec, e := newProductTestRouter(t)

	// A valid seller token is not an internal credential.
	req := httptest.NewRequest(http.MethodPost, "/api/products/p1/images", strings.NewReader(`{"mediaId":"m1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, codec, "u-seller", domain.RoleSeller))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if stub.attached {
		t.Fatalf("service must not be reached without the internal secret")
	}
}

func TestProductRouter_EmptyInternalSecretFailsClosed(t *testing.T) {
	codec := token.NewCodec("test-signing-key", token.DefaultTTL)
	stub := &stubProductService{}
	e := NewProductRouter(stub, codec, "", nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/products/p1/images", strings.NewReader(`{"mediaId":"m1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderInternalToken, "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with no configured secret, got %d", rec.Code)
	}
	if stub.attached {
		t.Fatalf("service must not be reached when no secret is configured")
	}
}

func TestHealthEndpointIsOpen(t *testing.T) {
	_, _, e := newProductTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
