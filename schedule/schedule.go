// Package schedule decides whether the store is accepting orders, given the
// weekly business-hours table and a clock reading. It is pure: no I/O and no
// global state, so handlers may call it on every request.
package schedule

import (
	"time"

	"reidossalgados/models"
)

// DefaultTimezone is the civil timezone the store operates in.
const DefaultTimezone = "America/Sao_Paulo"

// weekdays indexed by time.Weekday (Sunday == 0), matching the keys of
// models.WeekHours.
var weekdays = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// NextOpening points at the first upcoming open window when the store is
// currently closed.
type NextOpening struct {
	Weekday string `json:"weekday"`
	Label   string `json:"label"` // "today", "tomorrow" or the weekday name
	Start   string `json:"start"`
}

// Status is the availability-gate result the storefront renders.
type Status struct {
	IsOpen      bool         `json:"isOpen"`
	NextOpening *NextOpening `json:"nextOpening,omitempty"`
}

// LoadLocation resolves a timezone name, falling back to DefaultTimezone
// and then UTC so a bad config value can only shift times, never crash.
func LoadLocation(name string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Evaluate reports whether the store is open at now, converted to loc, and
// if closed, the next opening within the coming week. A nil or incomplete
// hours table resolves to closed — the storefront must always get an answer.
func Evaluate(hours models.WeekHours, now time.Time, loc *time.Location) Status {
	if loc != nil {
		now = now.In(loc)
	}
	if len(hours) == 0 {
		return Status{IsOpen: false}
	}

	clock := now.Format("15:04")
	today := int(now.Weekday())

	if day, ok := hours[weekdays[today]]; ok && day.Open && validWindow(day) {
		if day.Start <= clock && clock <= day.End {
			return Status{IsOpen: true}
		}
	}

	// Closed right now. Scan forward from today: today itself counts when
	// its window has not started yet.
	for offset := 0; offset < 7; offset++ {
		name := weekdays[(today+offset)%7]
		day, ok := hours[name]
		if !ok || !day.Open || !validWindow(day) {
			continue
		}
		if offset == 0 && clock >= day.Start {
			// Today's window already started (and therefore ended).
			continue
		}
		return Status{
			IsOpen: false,
			NextOpening: &NextOpening{
				Weekday: name,
				Label:   openingLabel(offset, name),
				Start:   day.Start,
			},
		}
	}
	return Status{IsOpen: false}
}

func openingLabel(offset int, weekday string) string {
	switch offset {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	}
	return weekday
}

// validWindow rejects windows the storefront cannot interpret: missing
// times, non-zero-padded values, or end before start.
func validWindow(day models.DayHours) bool {
	return wellFormed(day.Start) && wellFormed(day.End) && day.Start <= day.End
}

func wellFormed(hhmm string) bool {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if hhmm[i] < '0' || hhmm[i] > '9' {
			return false
		}
	}
	return hhmm <= "23:59" && hhmm[3:] <= "59"
}
