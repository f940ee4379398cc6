package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TransactionStatus represents the lifecycle state of a transaction
type TransactionStatus int

const (
	TransactionStatusPending   TransactionStatus = 0
	TransactionStatusCompleted TransactionStatus = 1
	TransactionStatusCancelled TransactionStatus = 2
)

func (s TransactionStatus) String() string {
	names := [...]string{"pending", "completed", "cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "pending"
	}
	return names[s]
}

// ParseTransactionStatus parses a status name as used in filters and requests
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch s {
	case "pending":
		return TransactionStatusPending, nil
	case "completed":
		return TransactionStatusCompleted, nil
	case "cancelled":
		return TransactionStatusCancelled, nil
	}
	return TransactionStatusPending, fmt.Errorf("unknown transaction status %q", s)
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TransactionStatus(i)
		return nil
	}
	parsed, err := ParseTransactionStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s TransactionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TransactionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TransactionStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TransactionStatus(v)
	case int:
		*s = TransactionStatus(v)
	}
	return nil
}
