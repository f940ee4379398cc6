package identifier

import (
	"errors"
	"testing"
	"time"
)

func TestCheckDigitKnownVectors(t *testing.T) {
	// Published EAN-13/UPC payloads with their standard check digits.
	cases := []struct {
		payload string
		want    int
	}{
		{"000000000001", 7},
		{"400638133393", 1}, // 4006381333931
		{"590123412345", 7}, // 5901234123457
		{"978030640615", 7}, // ISBN-13 example 9780306406157
		{"871125300120", 2},
		{"000000000000", 0},
	}
	for _, tc := range cases {
		got, err := CheckDigit(tc.payload)
		if err != nil {
			t.Fatalf("CheckDigit(%q): %v", tc.payload, err)
		}
		if got != tc.want {
			t.Errorf("CheckDigit(%q) = %d, want %d", tc.payload, got, tc.want)
		}
	}
}

func TestCheckDigitRejectsBadPayload(t *testing.T) {
	if _, err := CheckDigit("12345"); err == nil {
		t.Error("expected error for short payload")
	}
	if _, err := CheckDigit("12345678901x"); err == nil {
		t.Error("expected error for non-digit payload")
	}
}

func TestProductCodeRoundTrip(t *testing.T) {
	for _, serial := range []int64{1, 42, 999, 123456789012} {
		code, err := ProductCode(serial)
		if err != nil {
			t.Fatalf("ProductCode(%d): %v", serial, err)
		}
		if len(code) != 13 {
			t.Fatalf("ProductCode(%d) = %q, want 13 digits", serial, code)
		}
		if err := ValidateProductCode(code); err != nil {
			t.Errorf("generated code %q fails validation: %v", code, err)
		}
		back, err := ProductSerial(code)
		if err != nil {
			t.Fatalf("ProductSerial(%q): %v", code, err)
		}
		if back != serial {
			t.Errorf("ProductSerial(%q) = %d, want %d", code, back, serial)
		}
	}
}

func TestProductCodeFirstSerial(t *testing.T) {
	code, err := ProductCode(1)
	if err != nil {
		t.Fatal(err)
	}
	if code != "0000000000017" {
		t.Errorf("ProductCode(1) = %q, want 0000000000017", code)
	}
}

func TestValidateProductCodeRejectsWrongCheckDigit(t *testing.T) {
	if err := ValidateProductCode("0000000000018"); err == nil {
		t.Error("expected check digit mismatch")
	}
}

func TestCustomerCode(t *testing.T) {
	code, err := CustomerCode(1)
	if err != nil {
		t.Fatal(err)
	}
	if code != "P000001" {
		t.Errorf("CustomerCode(1) = %q, want P000001", code)
	}
	seq, err := CustomerSeq("P004217")
	if err != nil {
		t.Fatal(err)
	}
	if seq != 4217 {
		t.Errorf("CustomerSeq = %d, want 4217", seq)
	}
}

func TestInvoiceNumber(t *testing.T) {
	number, err := InvoiceNumber(2025, time.August, 1, "P000001")
	if err != nil {
		t.Fatal(err)
	}
	if number != "INV-2025-08-0000001-P000001" {
		t.Errorf("InvoiceNumber = %q, want INV-2025-08-0000001-P000001", number)
	}
	// Width must match the char(27) invoice columns exactly, or Postgres
	// blank-pads the stored value and reads it back with a trailing space.
	if len(number) != 27 {
		t.Errorf("invoice number length = %d, want 27", len(number))
	}
	seq, err := InvoiceSeq(number)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 1 {
		t.Errorf("InvoiceSeq = %d, want 1", seq)
	}
}

func TestPaymentNumber(t *testing.T) {
	date := time.Date(2025, time.August, 18, 14, 30, 0, 0, time.UTC)
	number, err := PaymentNumber(date, 1)
	if err != nil {
		t.Fatal(err)
	}
	if number != "PAY-20250818-0000001" {
		t.Errorf("PaymentNumber = %q, want PAY-20250818-0000001", number)
	}
	if len(number) != 20 {
		t.Errorf("payment number length = %d, want 20 to fill char(20)", len(number))
	}
	seq, err := PaymentSeq(number)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 1 {
		t.Errorf("PaymentSeq = %d, want 1", seq)
	}
}

func TestSequenceOverflowRejected(t *testing.T) {
	cases := []struct {
		name string
		run  func() error
	}{
		{"product", func() error { _, err := ProductCode(1000000000000); return err }},
		{"customer", func() error { _, err := CustomerCode(1000000); return err }},
		{"invoice", func() error { _, err := InvoiceNumber(2025, time.August, 10000000, "P000001"); return err }},
		{"payment", func() error { _, err := PaymentNumber(time.Now(), 10000000); return err }},
	}
	for _, tc := range cases {
		err := tc.run()
		var overflow *ErrSequenceOverflow
		if !errors.As(err, &overflow) {
			t.Errorf("%s: expected ErrSequenceOverflow, got %v", tc.name, err)
		}
	}
}

func TestZeroSequenceRejected(t *testing.T) {
	if _, err := CustomerCode(0); err == nil {
		t.Error("expected error for zero customer sequence")
	}
	if _, err := PaymentNumber(time.Now(), 0); err == nil {
		t.Error("expected error for zero payment sequence")
	}
}
