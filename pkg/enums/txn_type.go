package enums

import "fmt"

// TxnType describes the direction of a stock movement.
type TxnType string

const (
	TxnTypeIn  TxnType = "IN"
	TxnTypeOut TxnType = "OUT"
)

var validTxnTypes = []TxnType{TxnTypeIn, TxnTypeOut}

// IsValid reports whether the value matches the canonical transaction type enum.
func (t TxnType) IsValid() bool {
	for _, candidate := range validTxnTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTxnType converts the raw string to TxnType.
func ParseTxnType(value string) (TxnType, error) {
	for _, candidate := range validTxnTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
