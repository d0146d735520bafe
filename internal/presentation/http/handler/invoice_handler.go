package handler

import (
	"github.com/barberoil/fuelpos/internal/application/service"
	"github.com/barberoil/fuelpos/internal/domain/enum"
	"github.com/barberoil/fuelpos/internal/domain/pricing"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/request"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles draft and invoice history requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	userService    *service.UserService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, userService *service.UserService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		userService:    userService,
	}
}

// CreateDraft opens a new draft for the signed-in driver
func (h *InvoiceHandler) CreateDraft(c *gin.Context) {
	ctx := c.Request.Context()
	driver, err := h.userService.GetUser(ctx, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	draft, err := h.invoiceService.NewDraft(ctx, driver)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Draft created successfully", draft)
}

// ListDrafts returns the open drafts
func (h *InvoiceHandler) ListDrafts(c *gin.Context) {
	response.OK(c, "Drafts retrieved successfully", h.invoiceService.ListDrafts())
}

// GetDraft returns an open draft
func (h *InvoiceHandler) GetDraft(c *gin.Context) {
	draft, err := h.invoiceService.GetDraft(c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved successfully", draft)
}

// DiscardDraft drops an open draft without saving it
func (h *InvoiceHandler) DiscardDraft(c *gin.Context) {
	if err := h.invoiceService.DiscardDraft(c.Param("number")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft discarded", nil)
}

// SetCustomer selects the customer of a draft
func (h *InvoiceHandler) SetCustomer(c *gin.Context) {
	var req request.SelectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	draft, err := h.invoiceService.SetCustomer(c.Request.Context(), c.Param("number"), req.AccountNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer selected", draft)
}

// AddLine prices a product line and adds it to a draft
func (h *InvoiceHandler) AddLine(c *gin.Context) {
	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	draft, err := h.invoiceService.AddLine(c.Request.Context(), c.Param("number"), pricing.LineRequest{
		ProductID:     req.ProductID,
		Quantity:      string(req.Gallons),
		PriceOverride: string(req.PriceOverride),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item added", draft)
}

// RemoveLine removes a line item from a draft
func (h *InvoiceHandler) RemoveLine(c *gin.Context) {
	draft, err := h.invoiceService.RemoveLine(c.Param("number"), c.Param("lineId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item removed", draft)
}

// UpdateDetails sets delivery and payment fields of a draft
func (h *InvoiceHandler) UpdateDetails(c *gin.Context) {
	var req request.DraftDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	details := &service.DraftDetails{
		PONumber:          req.PONumber,
		TicketNumber:      req.TicketNumber,
		TankReadingBefore: req.TankReadingBefore,
		TankReadingAfter:  req.TankReadingAfter,
		DeliveryNotes:     req.DeliveryNotes,
		PaymentRef:        req.PaymentRef,
		Signature:         req.Signature,
	}
	if req.PaymentStatus != nil {
		status := enum.PaymentStatusInvoice
		if *req.PaymentStatus == "paid" {
			status = enum.PaymentStatusPaid
		}
		details.PaymentStatus = &status
	}
	if req.PaymentMethod != nil {
		method := enum.PaymentMethod(*req.PaymentMethod)
		details.PaymentMethod = &method
	}

	draft, err := h.invoiceService.UpdateDetails(c.Param("number"), details)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft updated", draft)
}

// CompleteDraft saves a draft as a completed invoice
func (h *InvoiceHandler) CompleteDraft(c *gin.Context) {
	invoice, err := h.invoiceService.CompleteDraft(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice completed successfully", invoice)
}

// List returns the completed invoices, newest first
func (h *InvoiceHandler) List(c *gin.Context) {
	var req request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return
	}
	filter, err := toInvoiceFilter(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), paginationParams(req.Page, req.PerPage), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Invoices retrieved successfully", result)
}

// Get returns a completed invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// ListByCustomer returns the invoices of a customer
func (h *InvoiceHandler) ListByCustomer(c *gin.Context) {
	invoices, err := h.invoiceService.ListByCustomer(c.Request.Context(), c.Param("account"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoices retrieved successfully", invoices)
}

// ListByDriver returns the invoices delivered by a driver
func (h *InvoiceHandler) ListByDriver(c *gin.Context) {
	invoices, err := h.invoiceService.ListByDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoices retrieved successfully", invoices)
}

func toInvoiceFilter(req *request.InvoiceFilterRequest) (*service.InvoiceFilter, error) {
	from, err := parseDay("from", req.From, false)
	if err != nil {
		return nil, err
	}
	to, err := parseDay("to", req.To, true)
	if err != nil {
		return nil, err
	}
	return &service.InvoiceFilter{
		Search:     req.Search,
		CustomerID: req.CustomerID,
		DriverID:   req.DriverID,
		From:       from,
		To:         to,
	}, nil
}
