package model

import (
	"errors"
	"time"

	"hotel/shared/timezone"
)

const hoursPerDay = 24

var ErrInvalidPeriod = errors.New("check-out date must be after check-in date")

// Period is a stay as a half-open range of calendar dates: the check-out day is free.
type Period struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func NewPeriod(checkIn, checkOut time.Time) (Period, error) {
	period := Period{CheckIn: timezone.DateOf(checkIn), CheckOut: timezone.DateOf(checkOut)}

	if !period.CheckOut.After(period.CheckIn) {
		return Period{}, ErrInvalidPeriod
	}

	return period, nil
}

// ParsePeriod reads two YYYY-MM-DD dates.
func ParsePeriod(checkIn, checkOut string) (Period, error) {
	in, err := timezone.ParseDate(checkIn)
	if err != nil {
		return Period{}, err
	}

	out, err := timezone.ParseDate(checkOut)
	if err != nil {
		return Period{}, err
	}

	return NewPeriod(in, out)
}

func (p Period) Nights() int {
	return int(p.CheckOut.Sub(p.CheckIn).Hours() / hoursPerDay)
}

// Overlaps applies the half-open rule: adjacent stays (one checks out the day the other checks in) do not overlap.
func (p Period) Overlaps(other Period) bool {
	return p.CheckIn.Before(other.CheckOut) && p.CheckOut.After(other.CheckIn)
}

// Contains reports whether a guest is in the room on day.
func (p Period) Contains(day time.Time) bool {
	day = timezone.DateOf(day)

	return !day.Before(p.CheckIn) && day.Before(p.CheckOut)
}

// HasEnded reports whether the guest has checked out by day.
func (p Period) HasEnded(day time.Time) bool {
	return !timezone.DateOf(day).Before(p.CheckOut)
}

// Conflicts reports whether requested overlaps any stay that still holds the room.
func Conflicts(stays []Stay, requested Period) bool {
	for _, stay := range stays {
		if stay.Status == StatusCancelled {
			continue
		}

		if stay.Period().Overlaps(requested) {
			return true
		}
	}

	return false
}
