package model

import (
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Balance is one asset row from the exchange account endpoint. Free and
// Locked stay as strings to preserve the exchange's precision.
type Balance struct {
	Asset  string `json:"asset"`
	Free   string `json:"free"`
	Locked string `json:"locked"`
}

// HasFunds reports whether either side of the balance parses to a positive
// amount. Unparseable amounts count as empty.
func (b Balance) HasFunds() bool {
	return isPositive(b.Free) || isPositive(b.Locked)
}

func isPositive(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.IsPositive()
}

// FilterPositive keeps only balances with funds on either side.
func FilterPositive(balances []Balance) []Balance {
	out := make([]Balance, 0, len(balances))
	for _, b := range balances {
		if b.HasFunds() {
			out = append(out, b)
		}
	}
	return out
}

// AccountInfo mirrors the exchange account endpoint, reduced to the fields
// the front end renders.
type AccountInfo struct {
	AccountType      string    `json:"accountType"`
	MakerCommission  int64     `json:"makerCommission"`
	TakerCommission  int64     `json:"takerCommission"`
	BuyerCommission  int64     `json:"buyerCommission"`
	SellerCommission int64     `json:"sellerCommission"`
	CanTrade         bool      `json:"canTrade"`
	CanWithdraw      bool      `json:"canWithdraw"`
	CanDeposit       bool      `json:"canDeposit"`
	UpdateTime       int64     `json:"updateTime"`
	Permissions      []string  `json:"permissions"`
	Balances         []Balance `json:"balances"`
}

// Symbol is one entry of the exchange symbol list.
type Symbol struct {
	Symbol     string `json:"symbol"`
	Status     string `json:"status"`
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
}

// ExchangeInfo is the exchange metadata endpoint, reduced to what the
// bridge forwards.
type ExchangeInfo struct {
	Symbols []Symbol `json:"symbols"`
}

// MarshalJSON keeps the zero-balance slice encoding as [] instead of null;
// the front end iterates the list unconditionally.
func (a AccountInfo) MarshalJSON() ([]byte, error) {
	type alias AccountInfo
	v := alias(a)
	if v.Balances == nil {
		v.Balances = []Balance{}
	}
	if v.Permissions == nil {
		v.Permissions = []string{}
	}
	return json.Marshal(v)
}
