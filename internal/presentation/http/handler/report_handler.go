package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tokosakti/pos-api/internal/application/service"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/internal/domain/repository"
	"github.com/tokosakti/pos-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report and dashboard HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Sales handles the sales report over a required date range
func (h *ReportHandler) Sales(c *gin.Context) {
	start, ok, err := parseDateQuery(c, "start_date")
	if err != nil || !ok {
		response.BadRequest(c, "start_date is required, use YYYY-MM-DD")
		return
	}
	end, ok, err := parseDateQuery(c, "end_date")
	if err != nil || !ok {
		response.BadRequest(c, "end_date is required, use YYYY-MM-DD")
		return
	}

	var categoryID *uint
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		parsed, err := strconv.ParseUint(categoryStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	report, err := h.reportService.BuildSalesReport(c.Request.Context(), start, end, categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report generated successfully", report)
}

// Stock handles the current stock report
func (h *ReportHandler) Stock(c *gin.Context) {
	var categoryID *uint
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		parsed, err := strconv.ParseUint(categoryStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	bucket := repository.StockBucket(c.DefaultQuery("filter", "all"))

	report, err := h.reportService.BuildStockReport(c.Request.Context(), categoryID, bucket)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock report generated successfully", report)
}

// Customers handles the customer activity report with an optional date range
func (h *ReportHandler) Customers(c *gin.Context) {
	start, hasStart, err := parseDateQuery(c, "start_date")
	if err != nil {
		response.BadRequest(c, "Invalid start date, use YYYY-MM-DD")
		return
	}
	end, hasEnd, err := parseDateQuery(c, "end_date")
	if err != nil {
		response.BadRequest(c, "Invalid end date, use YYYY-MM-DD")
		return
	}

	var startPtr, endPtr *time.Time
	if hasStart {
		startPtr = &start
	}
	if hasEnd {
		endPtr = &end
	}

	report, err := h.reportService.BuildCustomerReport(c.Request.Context(), startPtr, endPtr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer report generated successfully", report)
}

// Transactions handles the transaction report with breakdowns
func (h *ReportHandler) Transactions(c *gin.Context) {
	start, ok, err := parseDateQuery(c, "start_date")
	if err != nil || !ok {
		response.BadRequest(c, "start_date is required, use YYYY-MM-DD")
		return
	}
	end, ok, err := parseDateQuery(c, "end_date")
	if err != nil || !ok {
		response.BadRequest(c, "end_date is required, use YYYY-MM-DD")
		return
	}

	filter := &repository.TransactionReportFilter{
		Start:        start,
		End:          end,
		CustomerCode: c.Query("customer_code"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseTransactionStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Status = &status
	}
	if methodStr := c.Query("method"); methodStr != "" {
		method, err := enum.ParsePaymentMethod(methodStr)
		if err != nil {
			response.BadRequest(c, "Invalid payment method filter")
			return
		}
		filter.Method = &method
	}

	report, err := h.reportService.BuildTransactionReport(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction report generated successfully", report)
}

// Dashboard handles the overview stats
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
