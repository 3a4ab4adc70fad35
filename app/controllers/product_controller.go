package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/app/services"
	"github.com/skbags/atelier/pkg/response"
	"github.com/skbags/atelier/pkg/validate"
)

// ProductController serves the public catalogue and admin product management.
type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// Index lists products. Supports ?skip, ?limit, ?category and ?search.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Skip:     queryInt(q.Get("skip"), 0),
		Limit:    queryInt(q.Get("limit"), 100),
	}

	products, err := c.catalog.List(filter)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Success(w, products)
}

// Search is the storefront search box: ?q= over name and description.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.ProductFilter{
		Search: q.Get("q"),
		Skip:   queryInt(q.Get("skip"), 0),
		Limit:  queryInt(q.Get("limit"), 100),
	}

	products, err := c.catalog.List(filter)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Success(w, products)
}

// Show returns a single product.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := c.catalog.Get(id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Success(w, product)
}

// Categories returns the distinct category names in the catalogue.
func (c *ProductController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalog.Categories()
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Success(w, categories)
}

// Store creates a product (admin).
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := validate.Struct(in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.Create(in)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Created(w, product)
}

// Update partially updates a product (admin).
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch services.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	product, err := c.catalog.Update(id, patch)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Success(w, product)
}

// Destroy deletes a product (admin).
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.catalog.Delete(id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Message(w, "Product deleted successfully")
}

// pathID parses the {id} URL parameter, writing a 400 on garbage input.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
