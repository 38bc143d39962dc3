package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Vote is a user's restaurant choice for a single date.
type Vote struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	Date         time.Time `json:"date"`
	Time         time.Time `json:"time"`
}

// VoteResult is the number of votes a restaurant collected on a date.
type VoteResult struct {
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Votes          int64  `json:"votes"`
}

// DateOf truncates t to its calendar day in t's own location and returns it
// as midnight UTC, the canonical form dates are compared and stored in.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into its canonical date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, ErrValidation)
	}
	return t, nil
}

// FormatDate renders a canonical date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Cutoff is the time of day after which the day's votes are frozen.
type Cutoff struct {
	Hour   int
	Minute int
}

// DefaultCutoff is 11:00.
var DefaultCutoff = Cutoff{Hour: 11}

// ParseCutoff parses an HH:MM value.
func ParseCutoff(s string) (Cutoff, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Cutoff{}, fmt.Errorf("cutoff %q must be HH:MM: %w", s, ErrValidation)
	}
	return Cutoff{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// IsOpen reports whether voting is still allowed at now, i.e. the
// time of day of now is strictly before the cutoff.
func (c Cutoff) IsOpen(now time.Time) bool {
	h, m, _ := now.Clock()
	if h != c.Hour {
		return h < c.Hour
	}
	return m < c.Minute
}

func (c Cutoff) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
