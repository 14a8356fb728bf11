package domain

import "fmt"

// Carrier identifies one of the mobile network operators measured on campus.
type Carrier string

const (
	CarrierMTN     Carrier = "MTN"
	CarrierAirtel  Carrier = "Airtel"
	CarrierGlo     Carrier = "Glo"
	Carrier9mobile Carrier = "9mobile"
)

// Carriers lists every known carrier in display order.
func Carriers() []Carrier {
	return []Carrier{CarrierMTN, CarrierAirtel, CarrierGlo, Carrier9mobile}
}

// ParseCarrier validates a raw carrier name.
func ParseCarrier(raw string) (Carrier, error) {
	switch Carrier(raw) {
	case CarrierMTN, CarrierAirtel, CarrierGlo, Carrier9mobile:
		return Carrier(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCarrier, raw)
}

func (c Carrier) String() string { return string(c) }
