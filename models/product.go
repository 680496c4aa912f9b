package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

func init() {
	// The inventory API reads prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Date is a calendar day carried as "YYYY-MM-DD". Timestamps are truncated to the day.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Product is the console's snapshot of a backend product record. Quantity is
// authoritative only at the backend.
type Product struct {
	ID             int             `json:"id"`
	Name           string          `json:"nome"`
	Brand          string          `json:"marca"`
	Category       Category        `json:"categoria"`
	Price          decimal.Decimal `json:"preco"`
	Quantity       int             `json:"quantidade"`
	ExpiresOn      *Date           `json:"validade,omitempty"`
	WarrantyMonths *int            `json:"garantiaMeses,omitempty"`
}

// ProductRequest is the create/update payload sent to the backend.
type ProductRequest struct {
	Name           string          `json:"nome" binding:"required"`
	Brand          string          `json:"marca" binding:"required,hasletter"`
	Category       string          `json:"categoria" binding:"required"`
	Price          decimal.Decimal `json:"preco"`
	Quantity       int             `json:"quantidade" binding:"min=0"`
	ExpiresOn      *Date           `json:"validade,omitempty"`
	WarrantyMonths *int            `json:"garantiaMeses,omitempty" binding:"omitempty,min=1"`
}

// Validate checks the request shape. The backend still performs the
// authoritative checks (uniqueness, required fields).
func (r *ProductRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Brand = strings.TrimSpace(r.Brand)

	if r.Name == "" {
		return NewValidationError(ErrMsgNameRequired)
	}
	if r.Brand == "" {
		return NewValidationError(ErrMsgBrandRequired)
	}
	if !HasLetter(r.Brand) {
		return NewValidationError(ErrMsgBrandNeedsLetter)
	}
	category, ok := LookupCategory(r.Category)
	if !ok {
		return NewValidationError(ErrMsgInvalidCategory)
	}
	r.Category = string(category)
	if r.Price.IsNegative() {
		return NewValidationError(ErrMsgPriceNegative)
	}
	if r.Quantity < 0 {
		return NewValidationError(ErrMsgQuantityNegative)
	}
	if r.ExpiresOn != nil && r.WarrantyMonths != nil {
		return NewValidationError(ErrMsgExpiryAndWarranty)
	}
	if r.WarrantyMonths != nil && *r.WarrantyMonths <= 0 {
		return NewValidationError(ErrMsgWarrantyPositive)
	}
	return nil
}

func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
