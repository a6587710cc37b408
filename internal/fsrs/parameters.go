package fsrs

import (
	"fmt"
	"os"
	"strconv"
)

// WeightCount is the number of model weights in the FSRS-5 parameter vector.
const WeightCount = 17

// MinStability is the floor applied to every stability value the engine produces.
const MinStability = 0.1

// DefaultWeights are the pre-tuned FSRS-5 model weights. Existing review
// histories depend on these exact values, so they must not be "rounded".
var DefaultWeights = [WeightCount]float64{
	0.4,  // w0  - initial stability after Again
	0.6,  // w1  - initial stability after Hard
	2.4,  // w2  - initial stability after Good
	5.8,  // w3  - initial stability after Easy
	4.93, // w4  - initial difficulty baseline
	0.94, // w5  - initial difficulty slope / mean-reversion weight
	0.86, // w6  - difficulty delta per rating step
	0.01, // w7  - unused by the current formulas, kept for vector compatibility
	1.49, // w8  - recall stability: exp(w8) multiplier
	0.14, // w9  - recall stability: S^(-w9)
	0.94, // w10 - recall stability: exp(w10*(1-R)) - 1
	2.18, // w11 - forget stability: multiplier
	0.05, // w12 - forget stability: D^(-w12)
	0.34, // w13 - forget stability: (S+1)^w13 - 1
	1.26, // w14 - forget stability: exp(w14*(1-R))
	0.29, // w15 - hard penalty
	2.61, // w16 - easy bonus
}

// Parameters configures an Engine. Zero-value fields are filled with
// defaults by New, so Parameters{} gives the stock FSRS-5 behaviour.
type Parameters struct {
	// W is the 17-element weight vector. Zero array means DefaultWeights.
	W [WeightCount]float64
	// RequestRetention is the target recall probability, in (0, 1). Zero means 0.9.
	RequestRetention float64
	// MaximumInterval caps the scheduled interval in days. Zero means 36500.
	MaximumInterval int
	// DisableFuzz turns off interval randomization. Fuzz is on by default.
	DisableFuzz bool
}

// DefaultParameters returns the stock engine configuration.
func DefaultParameters() Parameters {
	return Parameters{
		W:                DefaultWeights,
		RequestRetention: 0.9,
		MaximumInterval:  36500,
	}
}

// withDefaults fills zero-value fields and validates the result.
func (p Parameters) withDefaults() (Parameters, error) {
	if p.W == ([WeightCount]float64{}) {
		p.W = DefaultWeights
	}
	if p.RequestRetention == 0 {
		p.RequestRetention = 0.9
	}
	if p.MaximumInterval == 0 {
		p.MaximumInterval = 36500
	}
	if p.RequestRetention <= 0 || p.RequestRetention >= 1 {
		return p, fmt.Errorf("%w: request retention %v outside (0, 1)", ErrInvalidParameters, p.RequestRetention)
	}
	if p.MaximumInterval < 1 {
		return p, fmt.Errorf("%w: maximum interval %d must be at least 1 day", ErrInvalidParameters, p.MaximumInterval)
	}
	return p, nil
}

// ParametersFromEnv builds Parameters from SRS_* environment variables,
// falling back to defaults for anything unset or unparsable.
//
//	SRS_REQUEST_RETENTION - target recall probability
//	SRS_MAXIMUM_INTERVAL  - interval cap in days
//	SRS_DISABLE_FUZZ      - "true" turns fuzz off
func ParametersFromEnv() Parameters {
	p := DefaultParameters()
	if v := os.Getenv("SRS_REQUEST_RETENTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f < 1 {
			p.RequestRetention = f
		}
	}
	if v := os.Getenv("SRS_MAXIMUM_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			p.MaximumInterval = n
		}
	}
	if os.Getenv("SRS_DISABLE_FUZZ") == "true" {
		p.DisableFuzz = true
	}
	return p
}
