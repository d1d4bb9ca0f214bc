package model

import (
	"github.com/shopspring/decimal"
)

const moneyScale = 2

// VATRate is applied to the room and service total.
var VATRate = decimal.RequireFromString("0.10")

type Quote struct {
	Nights        int             `json:"nights"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	RoomSubtotal  decimal.Decimal `json:"room_subtotal"`
	ServicesTotal decimal.Decimal `json:"services_total"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VAT           decimal.Decimal `json:"vat"`
	Total         decimal.Decimal `json:"total"`
}

// CalculateQuote prices a stay. Each service is charged once per booking.
func CalculateQuote(pricePerNight decimal.Decimal, period Period, servicePrices ...decimal.Decimal) (Quote, error) {
	nights := period.Nights()
	if nights < 1 {
		return Quote{}, ErrInvalidPeriod
	}

	roomSubtotal := pricePerNight.Mul(decimal.NewFromInt(int64(nights)))

	servicesTotal := decimal.Zero
	for _, price := range servicePrices {
		servicesTotal = servicesTotal.Add(price)
	}

	subtotal := roomSubtotal.Add(servicesTotal)
	vat := subtotal.Mul(VATRate).Round(moneyScale)

	return Quote{
		Nights:        nights,
		PricePerNight: pricePerNight,
		RoomSubtotal:  roomSubtotal,
		ServicesTotal: servicesTotal,
		Subtotal:      subtotal,
		VAT:           vat,
		Total:         subtotal.Add(vat),
	}, nil
}
