package models

import (
	"fmt"
	"time"

	"github.com/pennsieve/playground-api/internal/errors"
)

// AccountType is stored and serialized as its upper-snake-case name.
type AccountType string

const (
	AccountTypeSalary        AccountType = "SALARY"
	AccountTypeSavings       AccountType = "SAVINGS"
	AccountTypeChecking      AccountType = "CHECKING"
	AccountTypeInvestment    AccountType = "INVESTMENT"
	AccountTypeStock         AccountType = "STOCK"
	AccountTypeExternalParty AccountType = "EXTERNAL_PARTY"
)

// AccountTypes lists every valid AccountType in declaration order.
func AccountTypes() []AccountType {
	return []AccountType{
		AccountTypeSalary,
		AccountTypeSavings,
		AccountTypeChecking,
		AccountTypeInvestment,
		AccountTypeStock,
		AccountTypeExternalParty,
	}
}

func (t AccountType) String() string {
	return string(t)
}

// ParseAccountType is the exact inverse of AccountType.String. Matching is
// case-sensitive.
func ParseAccountType(value string) (AccountType, error) {
	for _, t := range AccountTypes() {
		if string(t) == value {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a valid account type", errors.ErrInvalidEnumValue, value)
}

func (t *AccountType) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AccountStatus is stored and serialized as its upper-snake-case name.
type AccountStatus string

const (
	AccountStatusOpen     AccountStatus = "OPEN"
	AccountStatusClosed   AccountStatus = "CLOSED"
	AccountStatusNotInUse AccountStatus = "NOT_IN_USE"
)

func AccountStatuses() []AccountStatus {
	return []AccountStatus{
		AccountStatusOpen,
		AccountStatusClosed,
		AccountStatusNotInUse,
	}
}

func (s AccountStatus) String() string {
	return string(s)
}

func ParseAccountStatus(value string) (AccountStatus, error) {
	for _, s := range AccountStatuses() {
		if string(s) == value {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a valid account status", errors.ErrInvalidEnumValue, value)
}

func (s *AccountStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// AccountBalance is a point-in-time balance snapshot.
type AccountBalance struct {
	Date    time.Time `json:"date"`
	Balance Currency  `json:"balance"`
}

// Account is a read-only view of one row of the accounts table.
// CloseDate is nil for accounts that were never closed.
type Account struct {
	Id          string           `json:"id"`
	Name        string           `json:"name"`
	BankName    string           `json:"bank_name"`
	OpenDate    time.Time        `json:"open_date"`
	CloseDate   *time.Time       `json:"close_date,omitempty"`
	AccountType AccountType      `json:"account_type"`
	Status      AccountStatus    `json:"status"`
	Balances    []AccountBalance `json:"balances"`
}
