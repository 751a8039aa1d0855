package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/services"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/bind"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/response"
)

// OrderController manages the order endpoints.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// List returns orders matching the query parameters, populated for display.
// GET /api/orders
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.OrderFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Sort:   q.Get("sort"),
	}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		response.BadRequest(w, "Invalid status")
		return
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			response.BadRequest(w, "limit must be a non-negative integer")
			return
		}
		filter.Limit = n
	}

	orders, err := c.orders.List(r.Context(), filter)
	if err != nil {
		response.Internal(w, "Failed to fetch orders", err)
		return
	}
	response.Success(w, orders)
}

// Get returns one populated order.
// GET /api/orders/{orderId}
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	order, err := c.orders.GetByID(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, err, "Order not found", "Failed to fetch order")
		return
	}
	response.Success(w, order)
}

type orderItemInput struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Size     int    `json:"size"`
}

type createOrderInput struct {
	User    string           `json:"user"`
	Items   []orderItemInput `json:"items"`
	Address models.Address   `json:"address"`
}

// valid reports whether the placement request carries everything an order
// needs. Field-level detail is deliberately not leaked for this endpoint;
// the storefront builds the payload, not a person.
func (in createOrderInput) valid() bool {
	if strings.TrimSpace(in.User) == "" || len(in.Items) == 0 {
		return false
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.Product) == "" || it.Quantity <= 0 {
			return false
		}
	}
	a := in.Address
	return a.FullName != "" && a.Street != "" && a.City != "" && a.Country != ""
}

// Create places an order on behalf of a customer.
// POST /api/orders
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in createOrderInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if !in.valid() {
		response.BadRequest(w, "Invalid order data")
		return
	}

	items := make([]services.OrderItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, services.OrderItemInput{
			ProductID: it.Product,
			Quantity:  it.Quantity,
			Size:      it.Size,
		})
	}

	order, err := c.orders.CreateOrder(r.Context(), services.CreateOrderInput{
		UserID:  in.User,
		Items:   items,
		Address: in.Address,
	})
	if err != nil {
		// Missing references and stock failures alike surface as a placement
		// failure; the storefront retries against fresh catalog data.
		if errors.Is(err, services.ErrInvalidID) {
			response.BadRequest(w, "Invalid order data")
			return
		}
		response.Internal(w, "Failed to create order", err)
		return
	}
	response.Created(w, order)
}

type updateStatusInput struct {
	Status string `json:"status"`
}

// UpdateStatus moves an order through its lifecycle.
// PATCH /api/orders/{orderId}/update-status
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in updateStatusInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	order, err := c.orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), in.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			response.BadRequest(w, "Invalid status")
			return
		}
		writeServiceError(w, err, "Order not found", "Failed to update order")
		return
	}
	response.Success(w, struct {
		Message string                 `json:"message"`
		Order   *models.PopulatedOrder `json:"order"`
	}{Message: "Order status updated", Order: order})
}

// Delete removes an order.
// DELETE /api/orders/{orderId}
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.orders.Delete(r.Context(), chi.URLParam(r, "orderId")); err != nil {
		writeServiceError(w, err, "Order not found", "Failed to delete order")
		return
	}
	response.Message(w, "Order deleted")
}

type inquiryInput struct {
	OrderNumber string `json:"orderNumber" validate:"required"`
}

// Inquiry looks an order up by its public number, for the storefront's
// "track my order" box.
// POST /api/orders/order-inquiry
func (c *OrderController) Inquiry(w http.ResponseWriter, r *http.Request) {
	var in inquiryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Inquiry(r.Context(), in.OrderNumber)
	if err != nil {
		writeServiceError(w, err, "Order not found", "Failed to fetch order")
		return
	}
	response.Success(w, order)
}
