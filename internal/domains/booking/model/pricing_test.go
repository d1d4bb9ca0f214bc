package model_test

import (
	"testing"

	"hotel/internal/domains/booking/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestCalculateQuote(t *testing.T) {
	tests := []struct {
		name     string
		price    decimal.Decimal
		period   model.Period
		services []decimal.Decimal
		want     model.Quote
		wantErr  bool
	}{
		{
			name:     "two nights with one service",
			price:    money("1000000"),
			period:   period("2024-06-01", "2024-06-03"),
			services: []decimal.Decimal{money("100000")},
			want: model.Quote{
				Nights:        2,
				RoomSubtotal:  money("2000000"),
				ServicesTotal: money("100000"),
				Subtotal:      money("2100000"),
				VAT:           money("210000"),
				Total:         money("2310000"),
			},
		},
		{
			name:   "no services",
			price:  money("450000"),
			period: period("2024-06-01", "2024-06-04"),
			want: model.Quote{
				Nights:        3,
				RoomSubtotal:  money("1350000"),
				ServicesTotal: decimal.Zero,
				Subtotal:      money("1350000"),
				VAT:           money("135000"),
				Total:         money("1485000"),
			},
		},
		{
			name:     "fractional prices stay exact",
			price:    money("99.99"),
			period:   period("2024-06-01", "2024-06-02"),
			services: []decimal.Decimal{money("0.10"), money("0.20")},
			want: model.Quote{
				Nights:        1,
				RoomSubtotal:  money("99.99"),
				ServicesTotal: money("0.30"),
				Subtotal:      money("100.29"),
				VAT:           money("10.03"),
				Total:         money("110.32"),
			},
		},
		{
			name:    "empty stay",
			price:   money("1000000"),
			period:  period("2024-06-01", "2024-06-01"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.CalculateQuote(tt.price, tt.period, tt.services...)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidPeriod)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want.Nights, got.Nights)
			assert.True(t, tt.want.RoomSubtotal.Equal(got.RoomSubtotal), "room subtotal %s", got.RoomSubtotal)
			assert.True(t, tt.want.ServicesTotal.Equal(got.ServicesTotal), "services total %s", got.ServicesTotal)
			assert.True(t, tt.want.Subtotal.Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, tt.want.VAT.Equal(got.VAT), "vat %s", got.VAT)
			assert.True(t, tt.want.Total.Equal(got.Total), "total %s", got.Total)
		})
	}
}

func TestCalculateQuote_TotalIsSubtotalPlusTenPercent(t *testing.T) {
	got, err := model.CalculateQuote(money("1234567.89"), period("2024-06-01", "2024-06-08"), money("15000"))

	assert.NoError(t, err)
	assert.True(t, got.Subtotal.Mul(money("1.10")).Round(2).Equal(got.Total))
}
