package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-inventory-ledger/internal/payload"
	"go-inventory-ledger/pkg/validator"

	"github.com/shopspring/decimal"
)

// The set* helpers overlay one payload key onto a model field. Absent keys
// leave the field untouched; malformed values become ValidationErrors.

func fieldError(err error) error {
	var fe *payload.FieldError
	if errors.As(err, &fe) {
		return Validation(fe.Error())
	}
	return Validation(err.Error())
}

func nullError(key string) error {
	return Validation(fmt.Sprintf("%s cannot be null.", key))
}

func setString(f payload.Fields, key string, dst *string) error {
	if !f.Has(key) {
		return nil
	}
	v, err := f.String(key)
	if err != nil {
		return fieldError(err)
	}
	if v == nil {
		return nullError(key)
	}
	*dst = *v
	return nil
}

func setOptionalString(f payload.Fields, key string, dst **string) error {
	if !f.Has(key) {
		return nil
	}
	v, err := f.String(key)
	if err != nil {
		return fieldError(err)
	}
	*dst = v
	return nil
}

func setInt(f payload.Fields, key string, dst *int) error {
	if !f.Has(key) {
		return nil
	}
	v, err := f.Int(key)
	if err != nil {
		return fieldError(err)
	}
	if v == nil {
		return nullError(key)
	}
	*dst = *v
	return nil
}

func setOptionalInt(f payload.Fields, key string, dst **int) error {
	if !f.Has(key) {
		return nil
	}
	v, err := f.Int(key)
	if err != nil {
		return fieldError(err)
	}
	*dst = v
	return nil
}

func setID(f payload.Fields, key string, dst *uint) error {
	if !f.Has(key) {
		return nil
	}
	v, err := f.ID(key)
	if err != nil {
		return fieldError(err)
	}
	if v == nil {
		return nullError(key)
	}
	*dst = *v
	return nil
}

func setOptionalID(f payload.Fields, key string, dst **uint) error {
	if !f.Has(key) {
		return nil
	}
	v, err := f.ID(key)
	if err != nil {
		return fieldError(err)
	}
	*dst = v
	return nil
}

func setBool(f payload.Fields, key string, dst *bool) error {
	if !f.Has(key) {
		return nil
	}
	v, err := f.Bool(key)
	if err != nil {
		return fieldError(err)
	}
	if v == nil {
		return nullError(key)
	}
	*dst = *v
	return nil
}

func setDecimal(f payload.Fields, key string, dst *decimal.Decimal) error {
	if !f.Has(key) {
		return nil
	}
	v, err := f.Decimal(key)
	if err != nil {
		return fieldError(err)
	}
	if !v.Valid {
		return nullError(key)
	}
	*dst = v.Decimal
	return nil
}

func setNullDecimal(f payload.Fields, key string, dst *decimal.NullDecimal) error {
	if !f.Has(key) {
		return nil
	}
	v, err := f.Decimal(key)
	if err != nil {
		return fieldError(err)
	}
	*dst = v
	return nil
}

func setDate(f payload.Fields, key string, dst **time.Time) error {
	if !f.Has(key) {
		return nil
	}
	v, err := f.Date(key)
	if err != nil {
		return Validation(fmt.Sprintf("Invalid date format for %s. Use YYYY-MM-DD.", key))
	}
	*dst = v
	return nil
}

// requireFields fails with msg when any key is absent or null.
func requireFields(f payload.Fields, msg string, keys ...string) error {
	for _, k := range keys {
		if f.IsNull(k) {
			return Validation(msg)
		}
	}
	return nil
}

// missingFieldsMessage lists keys the way the stock endpoint reports them.
func missingFieldsMessage(keys ...string) string {
	return "Missing required fields: " + strings.Join(keys, ", ")
}

// validateInput runs struct tags over input and reports the first failure.
func validateInput(input interface{}) error {
	if msg := validator.FirstError(input); msg != "" {
		return Validation(msg)
	}
	return nil
}

// applyAll runs overlay steps in order and stops at the first failure.
func applyAll(steps ...error) error {
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	return nil
}
