/*
Package zkstego implements a deterministic, keyed, chaos-driven LSB
steganographic codec over 8-bit truecolour PNG images (§4 C1-C5), plus
the on-image envelope that carries the metadata a recipient needs to
invert the embedding.

Embed and Extract are the two operations everything else in this
module exists to serve; they orchestrate the five components in
sequence the way the teacher's protocol/stegano.go composes its own
send/receive pipeline out of smaller, independently testable steps.
*/
package zkstego

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/Saudadeeee/zk-snark-X-Steganography/chaos"
	"github.com/Saudadeeee/zk-snark-X-Steganography/diagnostics"
	"github.com/Saudadeeee/zk-snark-X-Steganography/envelope"
	"github.com/Saudadeeee/zk-snark-X-Steganography/feature"
	"github.com/Saudadeeee/zk-snark-X-Steganography/lsb"
	"github.com/Saudadeeee/zk-snark-X-Steganography/raster"
)

// Position is a 2D anchor coordinate. Passing a non-nil Position to
// Embed pins the anchor instead of letting C3 pick one from the image's
// texture.
type Position struct {
	X, Y uint16
}

// Descriptor is the envelope's logical content, returned by both Embed
// and Extract so a caller can inspect the anchor, payload length, and
// any public metadata without re-parsing the PNG.
type Descriptor struct {
	AnchorX     uint16
	AnchorY     uint16
	PayloadBits uint32
	CarrierSHA  [32]byte
	Meta        []byte
}

func fromEnvelopeDescriptor(d envelope.Descriptor) Descriptor {
	return Descriptor{
		AnchorX:     d.AnchorX,
		AnchorY:     d.AnchorY,
		PayloadBits: d.PayloadBits,
		CarrierSHA:  d.CarrierSHA,
		Meta:        d.Meta,
	}
}

// translateErr maps a leaf package's sentinel to this package's
// canonical one, wrapping the original for context. Any other error,
// e.g. one from image/png itself, is wrapped as ErrMalformedPNG.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, raster.ErrUnsupportedFormat):
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	case errors.Is(err, chaos.ErrKeyTooShort):
		return fmt.Errorf("%w: %v", ErrKeyTooShort, err)
	case errors.Is(err, chaos.ErrCapacityExceeded):
		return fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
	case errors.Is(err, chaos.ErrCapacityExhausted):
		return fmt.Errorf("%w: %v", ErrCapacityExhausted, err)
	case errors.Is(err, lsb.ErrLengthMismatch):
		return fmt.Errorf("%w: %v", ErrLengthMismatch, err)
	case errors.Is(err, envelope.ErrMalformedPNG):
		return fmt.Errorf("%w: %v", ErrMalformedPNG, err)
	case errors.Is(err, envelope.ErrEnvelopeCorrupt):
		return fmt.Errorf("%w: %v", ErrEnvelopeCorrupt, err)
	case errors.Is(err, envelope.ErrUnknownEnvelope):
		return fmt.Errorf("%w: %v", ErrUnknownEnvelope, err)
	case errors.Is(err, envelope.ErrEnvelopeInconsistent):
		return fmt.Errorf("%w: %v", ErrEnvelopeInconsistent, err)
	case errors.Is(err, envelope.ErrNoEnvelope):
		return fmt.Errorf("%w: %v", ErrNoEnvelope, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedPNG, err)
	}
}

// capacityBits returns the raw bit capacity of a width x height x 3
// raster after reserving opts.ReservedEnvelopeBytes for envelope
// framing overhead, per P7. It never goes negative.
func capacityBits(width, height int, opts *Options) uint32 {
	total := int64(width) * int64(height) * 3
	reserved := int64(opts.ReservedEnvelopeBytes) * 8
	if total < reserved {
		return 0
	}
	return uint32(total - reserved)
}

// carrierHash computes SHA-256 over r's raster bytes with the LSB at
// every position in positions forced to zero, per §4.5: binding the
// envelope to the carrier without binding it to the payload bits
// themselves.
func carrierHash(r *raster.Raster, positions []chaos.Position) [32]byte {
	scratch := r.Clone()
	for _, pos := range positions {
		b := scratch.Channel(pos.X, pos.Y, pos.Ch)
		scratch.SetChannel(pos.X, pos.Y, pos.Ch, b&^1)
	}
	return sha256.Sum256(scratch.Pix)
}

// Embed hides payload inside image under key, returning the resulting
// PNG bytes and a descriptor of what was written. anchor, meta, and
// opts may all be nil.
//
// image is decoded fresh by this call, so a failure never mutates any
// buffer the caller owns.
func Embed(image []byte, payload []byte, key []byte, anchor *Position, meta []byte, opts *Options) ([]byte, Descriptor, error) {
	opts = withDefaults(opts)
	sink := opts.sink()

	r, alpha, err := raster.Decode(image)
	if err != nil {
		return nil, Descriptor{}, translateErr(err)
	}

	var anchorX, anchorY uint16
	if anchor != nil {
		anchorX, anchorY = anchor.X, anchor.Y
	} else {
		anchorX, anchorY = feature.ExtractAnchor(r, opts.FeatureWindowMax)
	}
	sink.Emit(diagnostics.Event{Level: diagnostics.Info, Stage: diagnostics.StageAnchor,
		Message: fmt.Sprintf("anchor (%d,%d)", anchorX, anchorY)})

	params, err := chaos.DeriveParameters(key, anchorX, anchorY)
	if err != nil {
		return nil, Descriptor{}, translateErr(err)
	}

	n := len(payload) * 8
	if uint32(n) > capacityBits(r.Width, r.Height, opts) {
		return nil, Descriptor{}, ErrCapacityExceeded
	}

	positions, err := chaos.GeneratePositions(params, int(anchorX), int(anchorY), r.Width, r.Height, n, opts.RetryBoundMinimum)
	if err != nil {
		return nil, Descriptor{}, translateErr(err)
	}
	sink.Emit(diagnostics.Event{Level: diagnostics.Info, Stage: diagnostics.StageChaos,
		Message: fmt.Sprintf("%d positions generated", len(positions))})

	bits := lsb.BytesToBits(payload)
	if err := lsb.EmbedBits(r, positions, bits); err != nil {
		return nil, Descriptor{}, translateErr(err)
	}
	sink.Emit(diagnostics.Event{Level: diagnostics.Info, Stage: diagnostics.StageLSB,
		Message: fmt.Sprintf("%d bits embedded", len(bits))})

	desc := envelope.Descriptor{
		AnchorX:     anchorX,
		AnchorY:     anchorY,
		PayloadBits: uint32(n),
		CarrierSHA:  carrierHash(r, positions),
		Meta:        meta,
	}

	pngBytes, err := raster.Encode(r, alpha)
	if err != nil {
		return nil, Descriptor{}, translateErr(err)
	}

	stego, err := envelope.Write(pngBytes, desc)
	if err != nil {
		return nil, Descriptor{}, translateErr(err)
	}
	sink.Emit(diagnostics.Event{Level: diagnostics.Info, Stage: diagnostics.StageEnvelope,
		Message: "envelope written"})

	return stego, fromEnvelopeDescriptor(desc), nil
}

// Extract recovers the payload embedded in stego under key, returning
// the payload and the envelope descriptor that described it.
func Extract(stego []byte, key []byte, opts *Options) ([]byte, Descriptor, error) {
	opts = withDefaults(opts)
	sink := opts.sink()

	rawDesc, err := envelope.Read(stego)
	if err != nil {
		return nil, Descriptor{}, translateErr(err)
	}
	sink.Emit(diagnostics.Event{Level: diagnostics.Info, Stage: diagnostics.StageEnvelope,
		Message: "envelope read"})

	r, _, err := raster.Decode(stego)
	if err != nil {
		return nil, Descriptor{}, translateErr(err)
	}

	if int(rawDesc.AnchorX) >= r.Width || int(rawDesc.AnchorY) >= r.Height {
		return nil, Descriptor{}, ErrEnvelopeInconsistent
	}
	if rawDesc.PayloadBits > capacityBits(r.Width, r.Height, opts) {
		return nil, Descriptor{}, ErrEnvelopeInconsistent
	}

	params, err := chaos.DeriveParameters(key, rawDesc.AnchorX, rawDesc.AnchorY)
	if err != nil {
		return nil, Descriptor{}, translateErr(err)
	}

	n := int(rawDesc.PayloadBits)
	positions, err := chaos.GeneratePositions(params, int(rawDesc.AnchorX), int(rawDesc.AnchorY), r.Width, r.Height, n, opts.RetryBoundMinimum)
	if err != nil {
		return nil, Descriptor{}, translateErr(err)
	}
	sink.Emit(diagnostics.Event{Level: diagnostics.Info, Stage: diagnostics.StageChaos,
		Message: fmt.Sprintf("%d positions regenerated", len(positions))})

	if got := carrierHash(r, positions); got != rawDesc.CarrierSHA {
		sink.Emit(diagnostics.Event{Level: diagnostics.Error, Stage: diagnostics.StageEnvelope,
			Message: "carrier hash mismatch"})
		return nil, Descriptor{}, ErrCarrierMismatch
	}

	bits := lsb.ExtractBits(r, positions)
	payload := lsb.BitsToBytes(bits)
	sink.Emit(diagnostics.Event{Level: diagnostics.Info, Stage: diagnostics.StageLSB,
		Message: fmt.Sprintf("%d bits extracted", len(bits))})

	return payload, fromEnvelopeDescriptor(rawDesc), nil
}

// CapacityBits returns the maximum payload length, in bits, that Embed
// will accept for image under opts. It is monotonic in image's
// width*height (P7).
func CapacityBits(image []byte, opts *Options) (uint32, error) {
	opts = withDefaults(opts)
	r, _, err := raster.Decode(image)
	if err != nil {
		return 0, translateErr(err)
	}
	return capacityBits(r.Width, r.Height, opts), nil
}
