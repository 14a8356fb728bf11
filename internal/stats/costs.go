package stats

import "campusnet-service/internal/domain"

// Data bundle prices in naira, from the carriers' published campus tariffs.
var planPrices = map[domain.Carrier]map[string]int{
	domain.CarrierMTN:     {"1GB": 300, "2GB": 500, "5GB": 1200, "10GB": 2000},
	domain.CarrierAirtel:  {"1GB": 280, "2GB": 480, "5GB": 1150, "10GB": 1900},
	domain.CarrierGlo:     {"1GB": 250, "2GB": 400, "5GB": 1000, "10GB": 1800},
	domain.Carrier9mobile: {"1GB": 270, "2GB": 450, "5GB": 1100, "10GB": 1850},
}

// referencePlan is the bundle used for value-for-money comparisons.
const referencePlan = "1GB"

// PlanPrices returns a copy of a carrier's bundle price table.
func PlanPrices(carrier domain.Carrier) map[string]int {
	prices := planPrices[carrier]
	out := make(map[string]int, len(prices))
	for bundle, price := range prices {
		out[bundle] = price
	}
	return out
}
