// Package identifier builds the human-readable identifiers used as primary
// keys across the POS: EAN-13 product codes, customer codes, invoice numbers
// and payment numbers. All functions are pure; sequence allocation against
// the database lives in the infrastructure repositories.
package identifier

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// ProductSerialWidth is the number of digits in the product code before the check digit
	ProductSerialWidth = 12
	// CustomerSeqWidth is the number of digits after the "P" prefix
	CustomerSeqWidth = 6
	// InvoiceSeqWidth is the number of digits in the invoice sequence segment
	InvoiceSeqWidth = 7
	// PaymentSeqWidth is the number of digits in the payment sequence segment
	PaymentSeqWidth = 7
)

const (
	maxProductSerial = 999999999999
	maxCustomerSeq   = 999999
	maxInvoiceSeq    = 9999999
	maxPaymentSeq    = 9999999
)

// ErrSequenceOverflow is returned when an incremented sequence no longer fits
// the fixed identifier width. Widths never grow: downstream consumers (labels,
// receipts, fixed-length columns) rely on them.
type ErrSequenceOverflow struct {
	Kind string
	Seq  int64
	Max  int64
}

func (e *ErrSequenceOverflow) Error() string {
	return fmt.Sprintf("%s sequence %d exceeds maximum %d", e.Kind, e.Seq, e.Max)
}

// CheckDigit computes the standard EAN-13 check digit for a 12-digit payload.
// Counting positions from the right of the full 13-digit code (check digit at
// position 1), digits at even positions are weighted by 3, the rest by 1; the
// check digit is (10 - sum mod 10) mod 10.
func CheckDigit(payload string) (int, error) {
	if len(payload) != ProductSerialWidth {
		return 0, fmt.Errorf("payload must be %d digits, got %d", ProductSerialWidth, len(payload))
	}
	sum := 0
	for i, r := range payload {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("payload contains non-digit character %q", r)
		}
		n := int(r - '0')
		pos := len(payload) - i + 1
		if pos%2 == 0 {
			sum += n * 3
		} else {
			sum += n
		}
	}
	return (10 - sum%10) % 10, nil
}

// ProductCode formats an EAN-13 product code from a serial number: the serial
// zero-padded to 12 digits followed by the check digit.
func ProductCode(serial int64) (string, error) {
	if serial < 1 {
		return "", fmt.Errorf("product serial must be positive, got %d", serial)
	}
	if serial > maxProductSerial {
		return "", &ErrSequenceOverflow{Kind: "product", Seq: serial, Max: maxProductSerial}
	}
	payload := fmt.Sprintf("%0*d", ProductSerialWidth, serial)
	check, err := CheckDigit(payload)
	if err != nil {
		return "", err
	}
	return payload + strconv.Itoa(check), nil
}

// ValidateProductCode reports whether code is a well-formed EAN-13 code with
// a correct check digit.
func ValidateProductCode(code string) error {
	if len(code) != ProductSerialWidth+1 {
		return fmt.Errorf("product code must be %d digits, got %d", ProductSerialWidth+1, len(code))
	}
	check, err := CheckDigit(code[:ProductSerialWidth])
	if err != nil {
		return err
	}
	if code[ProductSerialWidth] != byte('0'+check) {
		return fmt.Errorf("invalid check digit %q, expected %d", code[ProductSerialWidth], check)
	}
	return nil
}

// ProductSerial extracts the numeric serial from an EAN-13 product code.
func ProductSerial(code string) (int64, error) {
	if len(code) != ProductSerialWidth+1 {
		return 0, fmt.Errorf("product code must be %d digits, got %d", ProductSerialWidth+1, len(code))
	}
	return strconv.ParseInt(code[:ProductSerialWidth], 10, 64)
}

// CustomerCode formats a customer code: "P" followed by the sequence
// zero-padded to 6 digits.
func CustomerCode(seq int64) (string, error) {
	if seq < 1 {
		return "", fmt.Errorf("customer sequence must be positive, got %d", seq)
	}
	if seq > maxCustomerSeq {
		return "", &ErrSequenceOverflow{Kind: "customer", Seq: seq, Max: maxCustomerSeq}
	}
	return fmt.Sprintf("P%0*d", CustomerSeqWidth, seq), nil
}

// CustomerSeq extracts the numeric sequence from a customer code.
func CustomerSeq(code string) (int64, error) {
	if len(code) != CustomerSeqWidth+1 || code[0] != 'P' {
		return 0, fmt.Errorf("malformed customer code %q", code)
	}
	return strconv.ParseInt(code[1:], 10, 64)
}

// InvoiceNumber formats a transaction number: INV-YYYY-MM-SSSSSSS-<customer>.
// The sequence is scoped to the calendar month of the transaction date.
func InvoiceNumber(year int, month time.Month, seq int64, customerCode string) (string, error) {
	if seq < 1 {
		return "", fmt.Errorf("invoice sequence must be positive, got %d", seq)
	}
	if seq > maxInvoiceSeq {
		return "", &ErrSequenceOverflow{Kind: "invoice", Seq: seq, Max: maxInvoiceSeq}
	}
	return fmt.Sprintf("INV-%04d-%02d-%0*d-%s", year, int(month), InvoiceSeqWidth, seq, customerCode), nil
}

// InvoiceSeq extracts the numeric sequence from a transaction number.
func InvoiceSeq(number string) (int64, error) {
	parts := strings.Split(number, "-")
	if len(parts) != 5 || parts[0] != "INV" {
		return 0, fmt.Errorf("malformed invoice number %q", number)
	}
	return strconv.ParseInt(parts[3], 10, 64)
}

// PaymentNumber formats a payment number: PAY-YYYYMMDD-SSSSSSS.
// The sequence is scoped to the calendar day of the payment date.
func PaymentNumber(date time.Time, seq int64) (string, error) {
	if seq < 1 {
		return "", fmt.Errorf("payment sequence must be positive, got %d", seq)
	}
	if seq > maxPaymentSeq {
		return "", &ErrSequenceOverflow{Kind: "payment", Seq: seq, Max: maxPaymentSeq}
	}
	return fmt.Sprintf("PAY-%s-%0*d", date.Format("20060102"), PaymentSeqWidth, seq), nil
}

// PaymentSeq extracts the numeric sequence from a payment number.
func PaymentSeq(number string) (int64, error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != "PAY" {
		return 0, fmt.Errorf("malformed payment number %q", number)
	}
	return strconv.ParseInt(parts[2], 10, 64)
}
