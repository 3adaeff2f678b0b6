package zkstego

import "errors"

// These are the canonical errors returned by Embed, Extract, and
// CapacityBits. Internal packages declare their own sentinels;
// operations in this package translate them to the ones below via
// errors.Is/errors.As at the orchestration boundary so a caller only
// ever needs to know this one taxonomy.
var (
	ErrKeyTooShort          = errors.New("zkstego: key must not be empty")
	ErrUnsupportedFormat    = errors.New("zkstego: image is not a supported PNG pixel format")
	ErrCapacityExceeded     = errors.New("zkstego: payload exceeds the raster's safety-margined capacity")
	ErrCapacityExhausted    = errors.New("zkstego: position generator exhausted its retry budget")
	ErrMalformedPNG         = errors.New("zkstego: malformed PNG, no IEND chunk found")
	ErrEnvelopeCorrupt      = errors.New("zkstego: envelope chunk is corrupt")
	ErrUnknownEnvelope      = errors.New("zkstego: envelope tag or version not recognised")
	ErrEnvelopeInconsistent = errors.New("zkstego: envelope field is inconsistent with this image")
	ErrCarrierMismatch      = errors.New("zkstego: carrier hash does not match this image")
	ErrNoEnvelope           = errors.New("zkstego: image carries no envelope")
	ErrLengthMismatch       = errors.New("zkstego: internal position/bit length mismatch")
)
