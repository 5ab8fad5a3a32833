package payload

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`{"quantity": 5, "location": null}`))
	require.NoError(t, err)
	assert.True(t, f.Has("quantity"))
	assert.True(t, f.Has("location"))
	assert.False(t, f.Has("cost_price"))

	for _, body := range []string{``, `[]`, `"x"`, `{bad`, `null`} {
		_, err := Parse([]byte(body))
		assert.ErrorIs(t, err, ErrNotObject, body)
	}
}

func TestMissing(t *testing.T) {
	f, err := Parse([]byte(`{"name": "x", "category_id": null}`))
	require.NoError(t, err)

	assert.Empty(t, f.Missing("name", "category_id"))
	assert.Equal(t, []string{"brand", "warranty_months"}, f.Missing("brand", "name", "warranty_months"))
}

func TestScalars(t *testing.T) {
	f, err := Parse([]byte(`{
		"name": "Widget", "note": null,
		"quantity": 10, "bad_int": 1.5, "str_int": "abc",
		"product_id": 3, "zero_id": 0,
		"flag": true, "bad_flag": "yes"
	}`))
	require.NoError(t, err)

	s, err := f.String("name")
	require.NoError(t, err)
	assert.Equal(t, "Widget", *s)

	s, err = f.String("note")
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = f.String("quantity")
	var fe *FieldError
	assert.True(t, errors.As(err, &fe))

	n, err := f.Int("quantity")
	require.NoError(t, err)
	assert.Equal(t, 10, *n)

	_, err = f.Int("bad_int")
	assert.Error(t, err)
	_, err = f.Int("str_int")
	assert.Error(t, err)

	id, err := f.ID("product_id")
	require.NoError(t, err)
	assert.Equal(t, uint(3), *id)

	_, err = f.ID("zero_id")
	assert.Error(t, err)

	b, err := f.Bool("flag")
	require.NoError(t, err)
	assert.True(t, *b)
	_, err = f.Bool("bad_flag")
	assert.Error(t, err)

	missing, err := f.Int("absent")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDecimal(t *testing.T) {
	f, err := Parse([]byte(`{"a": "9.99", "b": 12.5, "c": null, "d": "abc"}`))
	require.NoError(t, err)

	d, err := f.Decimal("a")
	require.NoError(t, err)
	assert.True(t, d.Valid)
	assert.Equal(t, "9.99", d.Decimal.StringFixed(2))

	d, err = f.Decimal("b")
	require.NoError(t, err)
	assert.Equal(t, "12.50", d.Decimal.StringFixed(2))

	d, err = f.Decimal("c")
	require.NoError(t, err)
	assert.False(t, d.Valid)

	_, err = f.Decimal("d")
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	f, err := Parse([]byte(`{"ok": "2025-12-31", "swapped": "31-12-2025", "empty": "", "nil": null, "num": 20251231}`))
	require.NoError(t, err)

	d, err := f.Date("ok")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *d)

	_, err = f.Date("swapped")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.Date("num")
	assert.ErrorIs(t, err, ErrInvalidDate)

	d, err = f.Date("empty")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = f.Date("nil")
	require.NoError(t, err)
	assert.Nil(t, d)
}
