package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/app/routes"
	"github.com/skbags/atelier/app/services"
	"github.com/skbags/atelier/config"
	"github.com/skbags/atelier/pkg/database"
	"github.com/skbags/atelier/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// newAPI boots the full route table against a fresh in-memory database and
// returns a test server plus a valid admin token.
func newAPI(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Admin{}, &models.Product{}, &models.Order{}, &models.OrderItem{},
	))
	database.DB = db

	admins := repositories.NewAdminRepository(db)
	require.NoError(t, services.NewAuthService(admins).EnsureDefaultAdmin())

	r := router.New()
	routes.RegisterAPI(r)
	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)

	token := login(t, srv, config.AdminEmail(), config.AdminPassword())
	return srv, token
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(srv.URL+"/admin/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "bearer", out.TokenType)
	return out.AccessToken
}

func doJSON(t *testing.T, method, url, token string, payload interface{}) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	srv, _ := newAPI(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	srv, _ := newAPI(t)

	body, _ := json.Marshal(map[string]string{
		"email":    config.AdminEmail(),
		"password": "wrong",
	})
	resp, err := http.Post(srv.URL+"/admin/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	out := decodeEnvelope(t, resp)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Incorrect email or password", out["message"])
}

func TestLoginAlias(t *testing.T) {
	srv, _ := newAPI(t)

	// /auth/login serves older storefront builds.
	body, _ := json.Marshal(map[string]string{
		"email":    config.AdminEmail(),
		"password": config.AdminPassword(),
	})
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginFormBody(t *testing.T) {
	srv, _ := newAPI(t)

	// OAuth2-style clients post form-encoded username/password.
	form := url.Values{}
	form.Set("username", config.AdminEmail())
	form.Set("password", config.AdminPassword())
	resp, err := http.PostForm(srv.URL+"/admin/login", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.AccessToken)
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	srv, _ := newAPI(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/admin/products", "", map[string]interface{}{
		"name": "Tote", "price": 20,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	srv, token := newAPI(t)

	// Create.
	resp := doJSON(t, http.MethodPost, srv.URL+"/admin/products", token, map[string]interface{}{
		"name":           "Classic Canvas Tote",
		"price":          20.0,
		"category":       "Totes",
		"stock_quantity": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeEnvelope(t, resp)
	data := created["data"].(map[string]interface{})
	id := uint(data["ID"].(float64))

	// Public listing sees it.
	listResp, err := http.Get(srv.URL + "/products")
	require.NoError(t, err)
	listOut := decodeEnvelope(t, listResp)
	assert.Len(t, listOut["data"], 1)

	// Patch the price.
	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/admin/products/%d", srv.URL, id), token,
		map[string]interface{}{"price": 25.0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decodeEnvelope(t, resp)
	assert.Equal(t, 25.0, patched["data"].(map[string]interface{})["price"])

	// Invalid price is a 400.
	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/admin/products/%d", srv.URL, id), token,
		map[string]interface{}{"price": -1.0})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Delete, then 404 on fetch.
	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/admin/products/%d", srv.URL, id), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	getResp, err := http.Get(fmt.Sprintf("%s/products/%d", srv.URL, id))
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestCheckoutOverHTTP(t *testing.T) {
	srv, token := newAPI(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/admin/products", token, map[string]interface{}{
		"name": "Classic Canvas Tote", "price": 20.0, "stock_quantity": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	id := uint(data["ID"].(float64))

	order := map[string]interface{}{
		"customer_name":    "Maya Lin",
		"customer_email":   "maya@example.com",
		"shipping_address": "12 Harbour Lane, Wellington",
		"items":            []map[string]interface{}{{"product_id": id, "quantity": 2}},
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/orders", "", order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	placed := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "pending", placed["status"])
	assert.Equal(t, 40.0, placed["total_amount"])

	// Stock is gone; the next checkout fails with the stock message.
	resp = doJSON(t, http.MethodPost, srv.URL+"/orders", "", order)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decodeEnvelope(t, resp)
	assert.Contains(t, out["message"], "Insufficient stock")

	// Admin sees the order, with the legacy alias too.
	resp = doJSON(t, http.MethodGet, srv.URL+"/admin/orders", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeEnvelope(t, resp)["data"], 1)

	resp = doJSON(t, http.MethodGet, srv.URL+"/orders", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Dashboard reflects it.
	resp = doJSON(t, http.MethodGet, srv.URL+"/admin/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, 1.0, stats["total_orders"])
	assert.Equal(t, 1.0, stats["pending_orders"])
	assert.Equal(t, 0.0, stats["total_revenue"]) // pending doesn't count
	assert.Contains(t, stats, "low_stock_products")
}
