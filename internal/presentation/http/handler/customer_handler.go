package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/milk-ledger/internal/application/service"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/request"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/response"
	"github.com/sangkips/milk-ledger/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	ledgerService *service.LedgerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(ledgerService *service.LedgerService) *CustomerHandler {
	return &CustomerHandler{ledgerService: ledgerService}
}

// List handles listing customers, sorted by name
func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.ledgerService.ListCustomersPage(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.ledgerService.CreateCustomer(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	var uri request.CustomerURI
	if !bindURI(c, &uri) {
		return
	}

	customer, err := h.ledgerService.GetCustomer(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if customer == nil {
		response.NotFound(c, "Customer not found")
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles a partial customer update. Updating an unknown customer
// changes nothing and returns no data.
func (h *CustomerHandler) Update(c *gin.Context) {
	var uri request.CustomerURI
	if !bindURI(c, &uri) {
		return
	}
	var req request.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.ledgerService.UpdateCustomer(ctx, uri.ID, req.ToPatch()); err != nil {
		response.Error(c, err)
		return
	}

	customer, err := h.ledgerService.GetCustomer(ctx, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer with all of its entries and payments
func (h *CustomerHandler) Delete(c *gin.Context) {
	var uri request.CustomerURI
	if !bindURI(c, &uri) {
		return
	}

	if err := h.ledgerService.DeleteCustomer(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}

// Lookup finds a customer by exact phone number
func (h *CustomerHandler) Lookup(c *gin.Context) {
	var q request.LookupQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "phone is required")
		return
	}

	customer, err := h.ledgerService.FindCustomerByPhone(c.Request.Context(), q.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	if customer == nil {
		response.NotFound(c, "No customer with this phone number")
		return
	}

	response.OK(c, "Customer found", customer)
}
