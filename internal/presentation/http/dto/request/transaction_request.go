package request

import "github.com/shopspring/decimal"

// TransactionItemRequest is one line of a new transaction
type TransactionItemRequest struct {
	ProductCode string `json:"product_code" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// CreateTransactionRequest represents the create transaction request body.
// Date uses the YYYY-MM-DD layout.
type CreateTransactionRequest struct {
	CustomerCode string                   `json:"customer_code" binding:"required"`
	Date         string                   `json:"date" binding:"required"`
	Notes        *string                  `json:"notes"`
	Discount     *decimal.Decimal         `json:"discount"`
	Tax          *decimal.Decimal         `json:"tax"`
	ShippingFee  *decimal.Decimal         `json:"shipping_fee"`
	Items        []TransactionItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateTransactionStatusRequest represents the status change request body
type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled"`
}

// CreatePaymentRequest represents the create payment request body.
// Date uses the YYYY-MM-DD layout.
type CreatePaymentRequest struct {
	TransactionNumber string          `json:"transaction_number" binding:"required"`
	Method            string          `json:"method" binding:"required,oneof=cash non_cash"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Note              *string         `json:"note"`
	Date              string          `json:"date" binding:"required"`
}
