package models

import "testing"

func TestCentsBRL(t *testing.T) {
	tests := []struct {
		in   Cents
		want string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{1600, "R$ 16,00"},
		{123456, "R$ 1234,56"},
		{-700, "-R$ 7,00"},
	}
	for _, tt := range tests {
		if got := tt.in.BRL(); got != tt.want {
			t.Errorf("BRL(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFeeFor(t *testing.T) {
	s := StoreSettings{DeliveryFees: []DeliveryFee{
		{District: "Centro", Fee: 500},
		{District: "Jardim América", Fee: 800},
	}}

	if fee, ok := s.FeeFor("centro"); !ok || fee != 500 {
		t.Errorf("FeeFor(centro) = %d,%v, want 500,true (case-insensitive)", fee, ok)
	}
	if _, ok := s.FeeFor("Vila Nova"); ok {
		t.Error("unknown district should not have a fee")
	}
}
