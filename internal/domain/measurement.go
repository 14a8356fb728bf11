package domain

import "time"

// Radio metric bounds enforced on every measurement. Values outside these
// ranges do not occur on real handsets and indicate a malformed record.
const (
	MinSignalStrength = -120.0 // dBm
	MaxSignalStrength = -50.0  // dBm
	MinSignalQuality  = 0.0    // percent
	MaxSignalQuality  = 100.0  // percent
	MinSINR           = 0.0    // dB
	MaxSINR           = 30.0   // dB
	MinDataSpeed      = 0.1    // Mbps
	MaxDataSpeed      = 100.0  // Mbps
)

// Measurement is a single radio sample taken at a campus location for one carrier.
type Measurement struct {
	Location       string
	Carrier        Carrier
	Timestamp      time.Time
	SignalStrength float64 // dBm
	SignalQuality  float64 // percent, 0-100
	SINR           float64 // dB
	DataSpeed      float64 // Mbps
}

// Validate checks the measurement against the catalog and metric bounds.
func (m Measurement) Validate() error {
	if _, err := ParseCarrier(string(m.Carrier)); err != nil {
		return err
	}
	if _, err := LookupLocation(m.Location); err != nil {
		return err
	}
	switch {
	case m.SignalStrength < MinSignalStrength || m.SignalStrength > MaxSignalStrength:
		return ErrOutOfRange
	case m.SignalQuality < MinSignalQuality || m.SignalQuality > MaxSignalQuality:
		return ErrOutOfRange
	case m.SINR < MinSINR || m.SINR > MaxSINR:
		return ErrOutOfRange
	case m.DataSpeed < MinDataSpeed || m.DataSpeed > MaxDataSpeed:
		return ErrOutOfRange
	}
	return nil
}

// Batch groups measurements handed from the sampler to the worker pool.
type Batch struct {
	ID           string
	Measurements []Measurement
}
