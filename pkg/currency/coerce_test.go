package currency

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{name: "formatted string", input: "$1,234.50", want: 1234.50, wantOK: true},
		{name: "plain float", input: 99.9, want: 99.9, wantOK: true},
		{name: "int", input: 250, want: 250, wantOK: true},
		{name: "json number", input: json.Number("42.5"), want: 42.5, wantOK: true},
		{name: "euro suffix", input: "1 299 €", want: 1299, wantOK: true},
		{name: "nil", input: nil, wantOK: false},
		{name: "empty string", input: "", wantOK: false},
		{name: "no digits", input: "Price on request", wantOK: false},
		{name: "NaN", input: math.NaN(), wantOK: false},
		{name: "infinity", input: math.Inf(1), wantOK: false},
		{name: "two dots", input: "1.2.3", wantOK: false},
		{name: "bool", input: true, wantOK: false},
		{name: "map", input: map[string]any{"amount": 10}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Coerce(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestCoercePtr(t *testing.T) {
	assert.Nil(t, CoercePtr(nil))
	assert.Nil(t, CoercePtr(""))

	got := CoercePtr("USD 310")
	if assert.NotNil(t, got) {
		assert.Equal(t, 310.0, *got)
	}
}

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "$120", FormatDollars(120))
	assert.Equal(t, "$99.5", FormatDollars(99.5))
	assert.Equal(t, "$0", FormatDollars(0))
	assert.Equal(t, "-$15.25", FormatDollars(-15.25))
}
