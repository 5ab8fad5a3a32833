package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates (expiration_date).
const DateLayout = "2006-01-02"

// Money columns are numeric(…,2); render them with two places so the
// value survives JSON without floating-point drift.
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatNullMoney(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := formatMoney(d.Decimal)
	return &s
}

func formatTimestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func formatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
