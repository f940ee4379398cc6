package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tokosakti/pos-api/internal/application/service"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/internal/domain/repository"
	"github.com/tokosakti/pos-api/internal/presentation/http/dto/request"
	"github.com/tokosakti/pos-api/internal/presentation/http/dto/response"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List handles listing transactions with filters
func (h *TransactionHandler) List(c *gin.Context) {
	params := &repository.TransactionFilterParams{
		Pagination:   paginationParams(c),
		Search:       c.Query("search"),
		CustomerCode: c.Query("customer_code"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseTransactionStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	if start, ok, err := parseDateQuery(c, "start_date"); err != nil {
		response.BadRequest(c, "Invalid start date, use YYYY-MM-DD")
		return
	} else if ok {
		params.StartDate = &start
	}
	if end, ok, err := parseDateQuery(c, "end_date"); err != nil {
		response.BadRequest(c, "Invalid end date, use YYYY-MM-DD")
		return
	} else if ok {
		params.EndDate = &end
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Create handles creating a transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, use YYYY-MM-DD")
		return
	}

	items := make([]service.TransactionItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.TransactionItemInput{
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
		})
	}

	shippingFee := decimal.Zero
	if req.ShippingFee != nil {
		shippingFee = *req.ShippingFee
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), &service.CreateTransactionInput{
		UserID:       *userID,
		CustomerCode: req.CustomerCode,
		Date:         date,
		Notes:        req.Notes,
		Discount:     req.Discount,
		Tax:          req.Tax,
		ShippingFee:  shippingFee,
		Items:        items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction created successfully", transaction)
}

// Get handles getting a single transaction with details and payments
func (h *TransactionHandler) Get(c *gin.Context) {
	transaction, err := h.transactionService.GetTransaction(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", transaction)
}

// UpdateStatus handles completing or cancelling a pending transaction
func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	var req request.UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, err := enum.ParseTransactionStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "Invalid status")
		return
	}

	transaction, err := h.transactionService.UpdateStatus(c.Request.Context(), c.Param("number"), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction status updated successfully", transaction)
}

// Delete handles deleting a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), c.Param("number")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
