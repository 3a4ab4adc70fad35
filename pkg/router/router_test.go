package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skbags/atelier/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", ok)

	url, err := r.URL("products.show", map[string]string{"id": "7"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/products/7" {
		t.Errorf("expected /products/7, got %s", url)
	}

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	r := router.New()

	var touched bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			touched = true
			next.ServeHTTP(w, req)
		})
	}

	admin := r.Group("/admin", mw)
	admin.Put("/orders/{id}/status", "admin.orders.status", ok)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/orders/3/status", nil)
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !touched {
		t.Error("group middleware did not run")
	}
}

func TestRoutesTable(t *testing.T) {
	r := router.New()
	r.Get("/health", "health", ok)
	r.Post("/orders", "orders.store", ok)
	r.Delete("/admin/products/{id}", "admin.products.destroy", ok)

	table := r.Routes()
	if len(table) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(table))
	}
	// Sorted by path.
	if table[0].Path != "/admin/products/{id}" || table[0].Method != http.MethodDelete {
		t.Errorf("unexpected first route: %+v", table[0])
	}
}
