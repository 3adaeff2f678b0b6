package zkstego

import "github.com/Saudadeeee/zk-snark-X-Steganography/diagnostics"

// Options bundles the numbers this protocol leaves as implementation
// constants, plus an optional diagnostics Sink. A nil *Options passed
// to Embed, Extract, or CapacityBits means "use DefaultOptions()".
//
// Options carries no file path and no encrypted-at-rest state: the
// core never reads it from disk itself. A caller that wants
// YAML-backed configuration decodes it at the edge with config.Load.
type Options struct {
	// RetryBoundMinimum floors the per-bit collision retry budget in
	// GeneratePositions (the effective bound is max(this, n)).
	RetryBoundMinimum int `yaml:"retry_bound_minimum"`

	// FeatureWindowMax caps the anchor-selection sliding window's side.
	FeatureWindowMax int `yaml:"feature_window_max"`

	// ReservedEnvelopeBytes is held back from the payload capacity:
	// CapacityBits subtracts ReservedEnvelopeBytes*8 from the raster's
	// total channel count. No particular raster bytes are set aside.
	ReservedEnvelopeBytes int `yaml:"reserved_envelope_bytes"`

	// Sink receives diagnostic Events emitted during Embed/Extract. A
	// nil Sink is equivalent to diagnostics.NopSink{}.
	Sink diagnostics.Sink `yaml:"-"`
}

// DefaultOptions returns the documented default Tunables.
func DefaultOptions() *Options {
	return &Options{
		RetryBoundMinimum:     16,
		FeatureWindowMax:      16,
		ReservedEnvelopeBytes: 64,
	}
}

// withDefaults returns opts if non-nil, else DefaultOptions(). Any
// zero-valued numeric field in a supplied opts is filled from the
// defaults, so a caller decoding partial YAML doesn't have to restate
// every field.
func withDefaults(opts *Options) *Options {
	def := DefaultOptions()
	if opts == nil {
		return def
	}
	merged := *opts
	if merged.RetryBoundMinimum == 0 {
		merged.RetryBoundMinimum = def.RetryBoundMinimum
	}
	if merged.FeatureWindowMax == 0 {
		merged.FeatureWindowMax = def.FeatureWindowMax
	}
	if merged.ReservedEnvelopeBytes == 0 {
		merged.ReservedEnvelopeBytes = def.ReservedEnvelopeBytes
	}
	return &merged
}

func (o *Options) sink() diagnostics.Sink {
	if o == nil || o.Sink == nil {
		return diagnostics.NopSink{}
	}
	return o.Sink
}
