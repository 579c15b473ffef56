package models

import (
	"strings"
	"time"
)

// DayHours is one weekday's window in local civil time, "HH:MM" 24h.
// Start <= End; overnight windows are not supported.
type DayHours struct {
	Open  bool   `json:"open" bson:"open"`
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// WeekHours maps lowercase English weekday names ("sunday".."saturday")
// to that day's window.
type WeekHours map[string]DayHours

// DeliveryFee is the flat fee charged for delivery to one district.
type DeliveryFee struct {
	District string `json:"district" bson:"district"`
	Fee      Cents  `json:"fee" bson:"fee"`
}

// StoreSettings is the single document of the `settings` collection.
type StoreSettings struct {
	StoreName    string        `json:"storeName" bson:"storeName"`
	WhatsApp     string        `json:"whatsapp" bson:"whatsapp"` // digits only, e.g. 5511999999999
	Hours        WeekHours     `json:"hours" bson:"hours"`
	DeliveryFees []DeliveryFee `json:"deliveryFees" bson:"deliveryFees"`
	MinimumOrder Cents         `json:"minimumOrder" bson:"minimumOrder"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// FeeFor returns the delivery fee for a district, matching
// case-insensitively on the stored district name.
func (s StoreSettings) FeeFor(district string) (Cents, bool) {
	for _, f := range s.DeliveryFees {
		if strings.EqualFold(f.District, district) {
			return f.Fee, true
		}
	}
	return 0, false
}
