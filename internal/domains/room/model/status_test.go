package model_test

import (
	"testing"
	"time"

	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/room/model"

	"github.com/stretchr/testify/assert"
)

func day(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func stay(id, checkIn, checkOut string, status bookingModel.Status) bookingModel.Stay {
	return bookingModel.Stay{
		BookingID: id,
		RoomID:    "R123",
		CheckIn:   day(checkIn),
		CheckOut:  day(checkOut),
		Status:    status,
	}
}

func TestDeriveStatus(t *testing.T) {
	today := day("2024-06-10")
	available := model.Room{ID: "R123", Active: true, Status: model.StatusAvailable}

	tests := []struct {
		name     string
		room     model.Room
		stays    []bookingModel.Stay
		want     model.Status
		turnover []string
	}{
		{
			name:  "inactive wins over everything",
			room:  model.Room{ID: "R123", Active: false, Status: model.StatusMaintenance},
			stays: []bookingModel.Stay{stay("a", "2024-06-09", "2024-06-11", bookingModel.StatusConfirmed)},
			want:  model.StatusUnavailable,
		},
		{
			name:  "stored maintenance is kept",
			room:  model.Room{ID: "R123", Active: true, Status: model.StatusMaintenance},
			stays: []bookingModel.Stay{stay("a", "2024-06-09", "2024-06-11", bookingModel.StatusConfirmed)},
			want:  model.StatusMaintenance,
		},
		{
			name: "no bookings",
			room: available,
			want: model.StatusAvailable,
		},
		{
			name:  "guest checks in today",
			room:  available,
			stays: []bookingModel.Stay{stay("a", "2024-06-10", "2024-06-12", bookingModel.StatusConfirmed)},
			want:  model.StatusOccupied,
		},
		{
			name:     "checked out yesterday",
			room:     available,
			stays:    []bookingModel.Stay{stay("a", "2024-06-07", "2024-06-09", bookingModel.StatusConfirmed)},
			want:     model.StatusMaintenance,
			turnover: []string{"a"},
		},
		{
			name:     "checks out today",
			room:     available,
			stays:    []bookingModel.Stay{stay("a", "2024-06-08", "2024-06-10", bookingModel.StatusConfirmed)},
			want:     model.StatusMaintenance,
			turnover: []string{"a"},
		},
		{
			name:  "future stay",
			room:  available,
			stays: []bookingModel.Stay{stay("a", "2024-06-20", "2024-06-22", bookingModel.StatusConfirmed)},
			want:  model.StatusReserved,
		},
		{
			name: "current stay beats ended stay whatever the order",
			room: available,
			stays: []bookingModel.Stay{
				stay("a", "2024-06-05", "2024-06-07", bookingModel.StatusConfirmed),
				stay("b", "2024-06-09", "2024-06-12", bookingModel.StatusConfirmed),
			},
			want: model.StatusOccupied,
		},
		{
			name: "ended stay beats future stay",
			room: available,
			stays: []bookingModel.Stay{
				stay("b", "2024-06-20", "2024-06-22", bookingModel.StatusConfirmed),
				stay("a", "2024-06-05", "2024-06-07", bookingModel.StatusConfirmed),
			},
			want:     model.StatusMaintenance,
			turnover: []string{"a"},
		},
		{
			name: "pending and cancelled bookings are ignored",
			room: available,
			stays: []bookingModel.Stay{
				stay("a", "2024-06-09", "2024-06-11", bookingModel.StatusPending),
				stay("b", "2024-06-01", "2024-06-03", bookingModel.StatusCancelled),
				stay("c", "2024-06-01", "2024-06-03", bookingModel.StatusCompleted),
			},
			want: model.StatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.DeriveStatus(tt.room, tt.stays, today)

			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, len(tt.turnover) > 0, got.RequiresTurnover())

			ids := make([]string, 0, len(got.Ended))
			for _, ended := range got.Ended {
				ids = append(ids, ended.BookingID)
			}

			if len(tt.turnover) == 0 {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.turnover, ids)
			}
		})
	}
}

func TestRoom_IsBookable(t *testing.T) {
	assert.True(t, model.Room{Active: true, Status: model.StatusAvailable}.IsBookable())
	assert.False(t, model.Room{Active: true, Status: model.StatusMaintenance}.IsBookable())
	assert.False(t, model.Room{Active: false, Status: model.StatusAvailable}.IsBookable())
}
