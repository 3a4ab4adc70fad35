package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/skbags/atelier/app/services"
	"github.com/skbags/atelier/pkg/response"
	"github.com/skbags/atelier/pkg/validate"
)

// OrderController handles guest checkout and admin order management.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Store places a new order from the storefront checkout.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := validate.Struct(in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Place(in)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Created(w, order)
}

// Index lists orders (admin). Supports ?status, ?skip, ?limit.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders, err := c.orders.List(q.Get("status"), queryInt(q.Get("skip"), 0), queryInt(q.Get("limit"), 100))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Success(w, orders)
}

// Show returns one order with its items (admin).
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	order, err := c.orders.Get(id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Success(w, order)
}

type statusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves an order through its lifecycle (admin).
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in statusInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(id, in.Status)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Success(w, order)
}
