package domain

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// DateRange is a stay from CheckIn (inclusive) to CheckOut (exclusive).
// Both ends are calendar dates at UTC midnight.
type DateRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// NewDateRange truncates both times to calendar dates and requires CheckIn < CheckOut.
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	in, out := Date(checkIn), Date(checkOut)
	if !in.Before(out) {
		return DateRange{}, fmt.Errorf("%w: check_in %s must be before check_out %s",
			ErrInvalidRange, in.Format(DateLayout), out.Format(DateLayout))
	}
	return DateRange{CheckIn: in, CheckOut: out}, nil
}

// ParseDateRange parses two ISO calendar dates.
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: check_in must be YYYY-MM-DD", ErrInvalidRange)
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: check_out must be YYYY-MM-DD", ErrInvalidRange)
	}
	return NewDateRange(in, out)
}

// Date returns t's calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r DateRange) Nights() int {
	return nightsBetween(r.CheckIn, r.CheckOut)
}

// Overlaps uses half-open semantics: a checkout on the day of another
// check-in is not an overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

func (r DateRange) String() string {
	return "[" + r.CheckIn.Format(DateLayout) + ", " + r.CheckOut.Format(DateLayout) + ")"
}

func nightsBetween(in, out time.Time) int {
	return int(math.Round(Date(out).Sub(Date(in)).Hours() / 24))
}

// StayPolicy holds the rules applied to a requested stay at query/booking time.
type StayPolicy struct {
	MinimumNights int
	NoPastCheckIn bool
	Now           func() time.Time
}

func DefaultStayPolicy() StayPolicy {
	return StayPolicy{MinimumNights: 1, NoPastCheckIn: true, Now: time.Now}
}

func (p StayPolicy) Validate(r DateRange) error {
	minNights := p.MinimumNights
	if minNights < 1 {
		minNights = 1
	}
	if n := r.Nights(); n < minNights {
		return fmt.Errorf("%w: %d night(s) requested, minimum is %d", ErrStayTooShort, n, minNights)
	}
	if p.NoPastCheckIn {
		now := time.Now
		if p.Now != nil {
			now = p.Now
		}
		today := Date(now())
		if r.CheckIn.Before(today) {
			return fmt.Errorf("%w: check_in %s is before today %s",
				ErrPastDate, r.CheckIn.Format(DateLayout), today.Format(DateLayout))
		}
	}
	return nil
}

// StayPrice is nights * rate rounded to cents. A non-positive night count is
// charged as a single night.
func StayPrice(nights int, rate float64) float64 {
	if nights <= 0 {
		nights = 1
	}
	total := float64(nights) * rate
	return math.Round(total*100) / 100
}

// AmountsEqual compares money values at cent precision.
func AmountsEqual(a, b float64) bool {
	return math.Round(a*100) == math.Round(b*100)
}
