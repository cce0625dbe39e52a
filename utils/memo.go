package utils

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// MemoInfo is the quantity and price a server memo offers. The price per
// credit is server-defined and must be treated as data, never assumed.
type MemoInfo struct {
	Credits int
	Price   decimal.Decimal
}

// memoPattern matches the server's offer template,
// e.g. "Buy 10 API calls for 0.01 USD".
var memoPattern = regexp.MustCompile(`^Buy (\d+) API calls for (\d+(?:\.\d+)?) USD$`)

// ParseMemo extracts the credit quantity and USD price from a payment
// request memo.
func ParseMemo(memo string) (*MemoInfo, error) {
	m := memoPattern.FindStringSubmatch(memo)
	if m == nil {
		return nil, fmt.Errorf("unrecognized memo format: %q", memo)
	}

	credits, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("memo credits: %w", err)
	}

	price, err := decimal.NewFromString(m[2])
	if err != nil {
		return nil, fmt.Errorf("memo price: %w", err)
	}

	return &MemoInfo{Credits: credits, Price: price}, nil
}
