package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/marketkit/marketplace-system/internal/core/domain"
)

func TestAuthorizeInternal(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		want       bool
	}{
		{"match", "abc", "abc", true},
		{"mismatch", "abc", "wrong", false},
		{"empty provided", "abc", "", false},
		{"empty configured fails closed", "", "anything", false},
		{"both empty fails closed", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AuthorizeInternal(tt.configured, tt.provided); got != tt.want {
				t.Fatalf("AuthorizeInternal(%q, %q) = %v, want %v", tt.configured, tt.provided, got, tt.want)
			}
		})
	}
}

func internalTestContext(headerValue string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if headerValue != "" {
		req.Header.Set(HeaderInternalToken, headerValue)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestInternalOnly_Allows(t *testing.T) {
	c := internalTestContext("abc")

	called := false
	handler := InternalOnly("abc")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestInternalOnly_Denies(t *testing.T) {
	for _, headerValue := range []string{"wrong", ""} {
		c := internalTestContext(headerValue)

		handler := InternalOnly("abc")(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})

		if err := handler(c); err != domain.ErrInternalTrustDenied {
			t.Fatalf("header %q: expected ErrInternalTrustDenied, got %v", headerValue, err)
		}
	}
}

func TestInternalOnly_UnconfiguredSecretFailsClosed(t *testing.T) {
	c := internalTestContext("")

	handler := InternalOnly("")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrInternalTrustDenied {
		t.Fatalf("expected ErrInternalTrustDenied, got %v", err)
	}
}
