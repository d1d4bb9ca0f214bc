package service

import (
	"fmt"
	"strings"

	"hotel/infras/mail"
	"hotel/internal/domains/booking/model"

	"github.com/shopspring/decimal"
)

const (
	mailDateTimeFormat = "02/01/2006 15:04"
	mailDateFormat     = "02/01/2006"
	thousandsGroup     = 3
)

func confirmationMail(hotelName, recipient string, booking model.Booking, details []model.Detail, services []model.ServiceLine) mail.Mail {
	var body strings.Builder

	fmt.Fprintf(&body, "%s booking confirmation\n", hotelName)
	fmt.Fprintf(&body, "Dear %s,\n\n", booking.GuestName)

	body.WriteString("Booking details:\n")
	fmt.Fprintf(&body, "- Booking code: %s\n", booking.Code)
	fmt.Fprintf(&body, "- Booked on: %s\n", booking.BookingDate.Format(mailDateTimeFormat))
	fmt.Fprintf(&body, "- Check-in: %s\n", booking.CheckIn.Format(mailDateFormat))
	fmt.Fprintf(&body, "- Check-out: %s\n", booking.CheckOut.Format(mailDateFormat))
	fmt.Fprintf(&body, "- Nights: %d\n", booking.Nights)
	fmt.Fprintf(&body, "- Status: %s\n\n", booking.Status)

	body.WriteString("Rooms:\n")

	for _, detail := range details {
		fmt.Fprintf(&body, "  * %s (%s)", detail.RoomName, detail.RoomCode)

		if detail.RoomTypeName != "" {
			fmt.Fprintf(&body, " - Type: %s", detail.RoomTypeName)
		}

		fmt.Fprintf(&body, " - Per night: %s\n", formatAmount(detail.PricePerNight))
	}

	body.WriteString("\n")

	if len(services) > 0 {
		body.WriteString("Services:\n")

		for _, line := range services {
			fmt.Fprintf(&body, "  * %s: %d %s - %s\n", line.ServiceName, line.Quantity, line.ServiceUnit, formatAmount(line.TotalPrice))
		}

		body.WriteString("\n")
	}

	body.WriteString("Summary:\n")
	fmt.Fprintf(&body, "- Subtotal: %s\n", formatAmount(booking.Subtotal))
	fmt.Fprintf(&body, "- VAT (10%%): %s\n", formatAmount(booking.VAT))
	fmt.Fprintf(&body, "- Total: %s\n\n", formatAmount(booking.Total))

	body.WriteString("Payment is due at check-out.\n\n")
	body.WriteString("Thank you for staying with us!\n")
	body.WriteString(hotelName)

	return mail.Mail{
		To:      recipient,
		Subject: fmt.Sprintf("%s booking confirmation - %s", hotelName, booking.GuestName),
		Body:    body.String(),
	}
}

// formatAmount groups thousands with commas and keeps cents only when present.
func formatAmount(amount decimal.Decimal) string {
	places := int32(0)
	if !amount.Equal(amount.Truncate(0)) {
		places = 2
	}

	text := amount.Abs().StringFixed(places)

	whole, fraction, _ := strings.Cut(text, ".")

	var grouped strings.Builder

	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%thousandsGroup == 0 {
			grouped.WriteByte(',')
		}

		grouped.WriteRune(digit)
	}

	if fraction != "" {
		grouped.WriteString("." + fraction)
	}

	if amount.IsNegative() {
		return "-" + grouped.String()
	}

	return grouped.String()
}
