package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID        string          `json:"id"`
	BookID    string          `json:"bookId"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Account types. Debt-type accounts conventionally hold non-positive
// balances; this is a display convention, not enforced here.
const (
	AccountTypeCash             = "Cash"
	AccountTypeConventionalBank = "Conventional Bank"
	AccountTypeDigitalBank      = "Digital Bank"
	AccountTypeEwallet          = "Ewallet"
	AccountTypeInvestment       = "Investment"
	AccountTypeCreditCard       = "Credit Card"
	AccountTypeDebt             = "Debt"
)

var accountTypes = map[string]bool{
	AccountTypeCash:             true,
	AccountTypeConventionalBank: true,
	AccountTypeDigitalBank:      true,
	AccountTypeEwallet:          true,
	AccountTypeInvestment:       true,
	AccountTypeCreditCard:       true,
	AccountTypeDebt:             true,
}

// ValidAccountType reports whether t is one of the closed account type set.
func ValidAccountType(t string) bool {
	return accountTypes[t]
}

// IsDebtType reports whether accounts of type t count towards debts rather
// than assets in trend reporting.
func IsDebtType(t string) bool {
	return t == AccountTypeDebt || t == AccountTypeCreditCard
}
