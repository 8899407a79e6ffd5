package models

import (
	"fmt"

	"github.com/pennsieve/playground-api/internal/errors"
)

type CurrencyCode string

const (
	CurrencyCodeBRL CurrencyCode = "BRL"
)

func CurrencyCodes() []CurrencyCode {
	return []CurrencyCode{CurrencyCodeBRL}
}

func (c CurrencyCode) String() string {
	return string(c)
}

func ParseCurrencyCode(value string) (CurrencyCode, error) {
	for _, c := range CurrencyCodes() {
		if string(c) == value {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a valid currency code", errors.ErrInvalidEnumValue, value)
}

func (c *CurrencyCode) UnmarshalText(text []byte) error {
	parsed, err := ParseCurrencyCode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type Currency struct {
	Code  CurrencyCode `json:"code"`
	Value float64      `json:"value"`
}
