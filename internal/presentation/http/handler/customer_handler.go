package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/barberoil/fuelpos/internal/application/service"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/request"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

const maxImportSize = 10 << 20

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	var req request.CustomerFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), paginationParams(req.Page, req.PerPage), req.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Customers retrieved successfully", result)
}

// Get handles getting a customer by account number
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("account"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), toCustomerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Update handles updating a customer. The account number in the path wins
// over any in the body.
func (h *CustomerHandler) Update(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("account"), toCustomerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("account")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}

// Import handles a CSV or XLSX upload in the "file" form field
func (h *CustomerHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A CSV or XLSX file is required in the 'file' field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	var result *service.ImportResult
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv", ".txt":
		result, err = h.customerService.ImportCustomersCSV(ctx, file)
	case ".xlsx":
		result, err = h.customerService.ImportCustomersXLSX(ctx, file)
	default:
		response.BadRequest(c, "Unsupported file type, use .csv or .xlsx")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers imported", result)
}

func toCustomerInput(req *request.CustomerRequest) *service.CustomerInput {
	return &service.CustomerInput{
		AccountNumber: req.AccountNumber,
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
		Phone:         req.Phone,
		Email:         req.Email,
		TaxExempt:     req.TaxExempt,
		Notes:         req.Notes,
	}
}
