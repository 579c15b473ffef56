package schedule

import (
	"testing"
	"time"

	"reidossalgados/models"
)

// at builds a time on the given 2026 date in UTC; tests pass time.UTC as the
// location so wall-clock values map through unchanged.
func at(day, hour, min int) time.Time {
	return time.Date(2026, time.March, day, hour, min, 0, 0, time.UTC)
}

// March 2026: the 1st is a Sunday, so day N of the month has weekday N%7.
var fullWeek = models.WeekHours{
	"monday":    {Open: true, Start: "18:00", End: "23:00"},
	"tuesday":   {Open: false, Start: "18:00", End: "23:00"},
	"wednesday": {Open: true, Start: "18:00", End: "23:00"},
	"thursday":  {Open: true, Start: "18:00", End: "23:00"},
	"friday":    {Open: true, Start: "18:00", End: "23:00"},
	"saturday":  {Open: true, Start: "12:00", End: "23:30"},
	"sunday":    {Open: false},
}

func TestEvaluate_Boundaries(t *testing.T) {
	monday := 2

	tests := []struct {
		name string
		now  time.Time
		open bool
	}{
		{"opening minute", at(monday, 18, 0), true},
		{"closing minute", at(monday, 23, 0), true},
		{"mid window", at(monday, 20, 30), true},
		{"one minute early", at(monday, 17, 59), false},
		{"one minute late", at(monday, 23, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(fullWeek, tt.now, time.UTC)
			if got.IsOpen != tt.open {
				t.Errorf("IsOpen = %v, want %v", got.IsOpen, tt.open)
			}
		})
	}
}

func TestEvaluate_ClosedDayRegardlessOfTime(t *testing.T) {
	tuesday := 3
	for _, h := range []int{0, 12, 20, 23} {
		if got := Evaluate(fullWeek, at(tuesday, h, 0), time.UTC); got.IsOpen {
			t.Errorf("open at tuesday %02d:00, want closed (day flagged closed)", h)
		}
	}
}

func TestEvaluate_NextOpeningSkipsClosedDay(t *testing.T) {
	// Tuesday 20:00 is closed; the next open day is Wednesday.
	got := Evaluate(fullWeek, at(3, 20, 0), time.UTC)
	if got.IsOpen {
		t.Fatal("want closed on tuesday")
	}
	if got.NextOpening == nil {
		t.Fatal("want a next opening")
	}
	if got.NextOpening.Weekday != "wednesday" || got.NextOpening.Start != "18:00" {
		t.Errorf("next opening = %+v, want wednesday 18:00", got.NextOpening)
	}
	if got.NextOpening.Label != "tomorrow" {
		t.Errorf("label = %q, want \"tomorrow\"", got.NextOpening.Label)
	}
}

func TestEvaluate_TodayBeforeStartIsNextOpening(t *testing.T) {
	// Monday 10:00: today is an open day whose window has not started, so
	// today itself is the next opening.
	got := Evaluate(fullWeek, at(2, 10, 0), time.UTC)
	if got.IsOpen {
		t.Fatal("want closed before start")
	}
	if got.NextOpening == nil {
		t.Fatal("want a next opening")
	}
	if got.NextOpening.Label != "today" || got.NextOpening.Weekday != "monday" || got.NextOpening.Start != "18:00" {
		t.Errorf("next opening = %+v, want today monday 18:00", got.NextOpening)
	}
}

func TestEvaluate_AfterCloseSkipsToNextDay(t *testing.T) {
	// Monday 23:30: today's window is over; Tuesday is closed, so
	// Wednesday it is. Offset 2 gets the weekday name as its label.
	got := Evaluate(fullWeek, at(2, 23, 30), time.UTC)
	if got.NextOpening == nil {
		t.Fatal("want a next opening")
	}
	if got.NextOpening.Weekday != "wednesday" || got.NextOpening.Label != "wednesday" {
		t.Errorf("next opening = %+v, want wednesday/wednesday", got.NextOpening)
	}
}

func TestEvaluate_MalformedHours(t *testing.T) {
	now := at(2, 20, 0)

	tests := []struct {
		name  string
		hours models.WeekHours
	}{
		{"nil map", nil},
		{"empty map", models.WeekHours{}},
		{"missing weekday", models.WeekHours{"friday": {Open: true, Start: "18:00", End: "23:00"}}},
		{"garbage times", models.WeekHours{"monday": {Open: true, Start: "6pm", End: "late"}}},
		{"end before start", models.WeekHours{"monday": {Open: true, Start: "23:00", End: "18:00"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.hours, now, time.UTC)
			if got.IsOpen {
				t.Errorf("IsOpen = true, want closed for malformed/missing hours")
			}
		})
	}
}

func TestEvaluate_NoOpenDayAtAll(t *testing.T) {
	hours := models.WeekHours{
		"monday": {Open: false}, "tuesday": {Open: false}, "wednesday": {Open: false},
		"thursday": {Open: false}, "friday": {Open: false}, "saturday": {Open: false},
		"sunday": {Open: false},
	}
	got := Evaluate(hours, at(2, 12, 0), time.UTC)
	if got.IsOpen || got.NextOpening != nil {
		t.Errorf("got %+v, want closed with no next opening", got)
	}
}

func TestEvaluate_TimezoneConversion(t *testing.T) {
	// 21:00 UTC on Monday is 18:00 in São Paulo (UTC-3), exactly the
	// opening minute.
	loc := LoadLocation(DefaultTimezone)
	got := Evaluate(fullWeek, time.Date(2026, time.March, 2, 21, 0, 0, 0, time.UTC), loc)
	if !got.IsOpen {
		t.Error("want open at 18:00 local São Paulo time")
	}
}

func TestLoadLocation_Fallback(t *testing.T) {
	if loc := LoadLocation("Not/AZone"); loc == nil {
		t.Fatal("LoadLocation returned nil")
	}
	if loc := LoadLocation(""); loc == nil {
		t.Fatal("LoadLocation returned nil for empty name")
	}
}
