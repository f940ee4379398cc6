package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tokosakti/pos-api/internal/application/service"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/internal/presentation/http/dto/request"
	"github.com/tokosakti/pos-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List handles listing all payments
func (h *PaymentHandler) List(c *gin.Context) {
	result, err := h.paymentService.ListPayments(c.Request.Context(), paginationParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Create handles recording a payment against a transaction
func (h *PaymentHandler) Create(c *gin.Context) {
	var req request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := enum.ParsePaymentMethod(req.Method)
	if err != nil {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, use YYYY-MM-DD")
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), &service.CreatePaymentInput{
		TransactionNumber: req.TransactionNumber,
		Method:            method,
		Amount:            req.Amount,
		Note:              req.Note,
		Date:              date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// Get handles getting a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}

// ListByTransaction handles listing the payments of one transaction
func (h *PaymentHandler) ListByTransaction(c *gin.Context) {
	payments, err := h.paymentService.ListPaymentsByTransaction(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// Delete handles removing a payment record
func (h *PaymentHandler) Delete(c *gin.Context) {
	if err := h.paymentService.DeletePayment(c.Request.Context(), c.Param("number")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
