package model

import (
	"time"

	bookingModel "hotel/internal/domains/booking/model"
	"hotel/shared/timezone"
)

type Status string

const (
	StatusAvailable   Status = "Available"
	StatusReserved    Status = "Reserved"
	StatusOccupied    Status = "Occupied"
	StatusMaintenance Status = "Under maintenance"
	StatusUnavailable Status = "Unavailable"
)

func (s Status) String() string {
	return string(s)
}

// IsStatic reports whether s may be stored on the room row.
func (s Status) IsStatic() bool {
	return s == StatusAvailable || s == StatusMaintenance
}

// Derivation is the effective status of a room on a given day.
type Derivation struct {
	Status Status
	// Ended lists confirmed stays already checked out. A non-empty list means
	// the room needs turnover and the stays should be completed.
	Ended []bookingModel.Stay
}

func (d Derivation) RequiresTurnover() bool {
	return len(d.Ended) > 0
}

// DeriveStatus computes what guests and staff see for room on today.
// Rules in order: inactive, stored maintenance, a stay covering today,
// a stay already checked out, a future stay, otherwise available.
// Only confirmed stays count and the rules are checked across all of them,
// so the result does not depend on the order of stays.
func DeriveStatus(room Room, stays []bookingModel.Stay, today time.Time) Derivation {
	if !room.Active {
		return Derivation{Status: StatusUnavailable}
	}

	if room.Status == StatusMaintenance {
		return Derivation{Status: StatusMaintenance}
	}

	today = timezone.DateOf(today)

	var (
		occupied bool
		reserved bool
		ended    []bookingModel.Stay
	)

	for _, stay := range stays {
		if stay.Status != bookingModel.StatusConfirmed {
			continue
		}

		switch period := stay.Period(); {
		case period.Contains(today):
			occupied = true
		case period.HasEnded(today):
			ended = append(ended, stay)
		default:
			reserved = true
		}
	}

	switch {
	case occupied:
		return Derivation{Status: StatusOccupied}
	case len(ended) > 0:
		return Derivation{Status: StatusMaintenance, Ended: ended}
	case reserved:
		return Derivation{Status: StatusReserved}
	default:
		return Derivation{Status: StatusAvailable}
	}
}
