package settings

import (
	"testing"

	"reidossalgados/models"
)

func validSettings() models.StoreSettings {
	return models.StoreSettings{
		StoreName: "Rei dos Salgados",
		WhatsApp:  "5511999999999",
		Hours: models.WeekHours{
			"monday": {Open: true, Start: "18:00", End: "23:00"},
			"sunday": {Open: false},
		},
		DeliveryFees: []models.DeliveryFee{{District: "Centro", Fee: 500}},
		MinimumOrder: 1000,
	}
}

func TestValidate_OK(t *testing.T) {
	if msg := validate(validSettings()); msg != "" {
		t.Errorf("valid settings rejected: %s", msg)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.StoreSettings)
	}{
		{"empty store name", func(s *models.StoreSettings) { s.StoreName = "" }},
		{"whatsapp with punctuation", func(s *models.StoreSettings) { s.WhatsApp = "+55 (11) 99999-9999" }},
		{"unknown weekday", func(s *models.StoreSettings) { s.Hours["segunda"] = models.DayHours{Open: true, Start: "18:00", End: "23:00"} }},
		{"bad time format", func(s *models.StoreSettings) { s.Hours["monday"] = models.DayHours{Open: true, Start: "6pm", End: "23:00"} }},
		{"overnight window", func(s *models.StoreSettings) { s.Hours["monday"] = models.DayHours{Open: true, Start: "22:00", End: "02:00"} }},
		{"negative fee", func(s *models.StoreSettings) { s.DeliveryFees[0].Fee = -1 }},
		{"empty fee district", func(s *models.StoreSettings) { s.DeliveryFees[0].District = "" }},
		{"negative minimum", func(s *models.StoreSettings) { s.MinimumOrder = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)
			if validate(s) == "" {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidate_ClosedDaySkipsTimeChecks(t *testing.T) {
	s := validSettings()
	// A closed day may carry leftover garbage times; only open days matter.
	s.Hours["sunday"] = models.DayHours{Open: false, Start: "", End: ""}
	if msg := validate(s); msg != "" {
		t.Errorf("closed day with empty times rejected: %s", msg)
	}
}
