package generator

import "campusnet-service/internal/domain"

// carrierProfile captures the baseline radio behaviour of one operator on campus.
type carrierProfile struct {
	BaseStrength float64 // dBm
	Reliability  float64 // 0-1
	BaseSINR     float64 // dB
	BaseSpeed    float64 // Mbps
}

var carrierProfiles = map[domain.Carrier]carrierProfile{
	domain.CarrierMTN:     {BaseStrength: -75, Reliability: 0.85, BaseSINR: 20, BaseSpeed: 45},
	domain.CarrierAirtel:  {BaseStrength: -78, Reliability: 0.80, BaseSINR: 18, BaseSpeed: 40},
	domain.CarrierGlo:     {BaseStrength: -82, Reliability: 0.65, BaseSINR: 12, BaseSpeed: 25},
	domain.Carrier9mobile: {BaseStrength: -85, Reliability: 0.55, BaseSINR: 10, BaseSpeed: 20},
}

// locationProfile adjusts signal per site: Modifier is a dB offset for
// building materials and mast proximity, Congestion the typical load.
type locationProfile struct {
	Modifier   float64
	Congestion float64
}

var locationProfiles = map[string]locationProfile{
	// Open areas with good line of sight
	"Front Gate":  {Modifier: 8, Congestion: 0.1},
	"Round About": {Modifier: 10, Congestion: 0.2},
	"Futo Park":   {Modifier: 12, Congestion: 0.1},
	"Futo Garden": {Modifier: 9, Congestion: 0.15},

	"SENATE Building": {Modifier: 5, Congestion: 0.3},
	"Library":         {Modifier: 4, Congestion: 0.4},
	"UCC Centre":      {Modifier: 6, Congestion: 0.3},
	"Student Affairs": {Modifier: 5, Congestion: 0.35},

	"ICT":           {Modifier: 2, Congestion: 0.5},
	"SICT building": {Modifier: 3, Congestion: 0.45},
	"SEET":          {Modifier: 1, Congestion: 0.6},
	"SOHT building": {Modifier: 2, Congestion: 0.5},
	"Sops building": {Modifier: 1, Congestion: 0.55},

	// Concrete-heavy buildings
	"Lecture Hall 2": {Modifier: -3, Congestion: 0.7},
	"FUTO Medicals":  {Modifier: -2, Congestion: 0.6},
	"SOSC extension": {Modifier: -4, Congestion: 0.65},

	// Hostels carry the highest load
	"Hostel A":  {Modifier: -1, Congestion: 0.8},
	"Hostel B":  {Modifier: -2, Congestion: 0.85},
	"Hostel C":  {Modifier: -3, Congestion: 0.8},
	"Hostel D":  {Modifier: -1, Congestion: 0.75},
	"Hostel E":  {Modifier: -2, Congestion: 0.8},
	"PG Hostel": {Modifier: 0, Congestion: 0.7},

	"Back Gate":   {Modifier: 4, Congestion: 0.4},
	"NDDC":        {Modifier: 1, Congestion: 0.6},
	"TetFund":     {Modifier: 0, Congestion: 0.5},
	"Bj Services": {Modifier: -1, Congestion: 0.55},
	"Futo Cafe":   {Modifier: 3, Congestion: 0.7},
	"ACE fuels":   {Modifier: 2, Congestion: 0.4},
	"750 caps":    {Modifier: 1, Congestion: 0.5},
	"1000 Caps":   {Modifier: 0, Congestion: 0.6},
}

// timePattern models daily load: Performance scales throughput, Congestion
// adds to the location's own load.
type timePattern struct {
	Congestion  float64
	Performance float64
}

var timePatterns = map[domain.TimeOfDay]timePattern{
	domain.Morning:   {Congestion: 0.3, Performance: 1.0},
	domain.Afternoon: {Congestion: 0.7, Performance: 0.8},
	domain.Evening:   {Congestion: 0.9, Performance: 0.6},
	domain.Night:     {Congestion: 0.4, Performance: 1.1},
}
