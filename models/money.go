package models

import "fmt"

// Cents is a currency amount in centavos. All price arithmetic in the
// service is integer arithmetic on this type, so multi-line totals never
// accumulate floating-point error.
type Cents int64

// Reais returns the amount as a float, for display-layer consumers only.
func (c Cents) Reais() float64 {
	return float64(c) / 100
}

// BRL formats the amount the way the storefront shows it, e.g. "R$ 16,00".
func (c Cents) BRL() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%sR$ %d,%02d", sign, v/100, v%100)
}
