/*
Package chaos derives the chaotic-map parameters from a key (C1) and
drives the Arnold cat map / logistic map position generator (C2).

Key derivation is grounded on the teacher's cryptography/common.go
hashing helpers (crypto/rand + crypto/sha512 usage style), adapted to
the exact SHA-256 bit layout this protocol requires instead of the
teacher's general-purpose HMAC/Hash utilities.
*/
package chaos

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math/big"
)

// ErrKeyTooShort is returned by DeriveParameters when key is empty.
var ErrKeyTooShort = errors.New("chaos: key must not be empty")

// Params bundles the four values that seed the position generator.
// All four are functions of the key and anchor only; none depend on
// the payload.
type Params struct {
	LogisticR        float64
	LogisticX0       float64
	ArnoldIterations int
	ChannelSeed      *big.Int
}

// DeriveParameters computes H = SHA-256(key || u16be(x0) || u16be(y0))
// and partitions H into the four Params fields, big-endian.
func DeriveParameters(key []byte, x0, y0 uint16) (Params, error) {
	if len(key) == 0 {
		return Params{}, ErrKeyTooShort
	}

	buf := make([]byte, len(key)+4)
	copy(buf, key)
	binary.BigEndian.PutUint16(buf[len(key):], x0)
	binary.BigEndian.PutUint16(buf[len(key)+2:], y0)

	h := sha256.Sum256(buf)

	u32 := binary.BigEndian.Uint32(h[0:4])
	logisticR := 3.57 + float64((float64(u32)/4294967296.0)*0.43)

	u64 := binary.BigEndian.Uint64(h[4:12])
	numerator := (u64 % (1 << 53)) + 1
	logisticX0 := float64(numerator) / (float64(uint64(1)<<53) + 2)

	arnoldIterations := int(h[12]%10) + 1

	channelSeed := new(big.Int).SetBytes(h[16:32])

	return Params{
		LogisticR:        logisticR,
		LogisticX0:       logisticX0,
		ArnoldIterations: arnoldIterations,
		ChannelSeed:      channelSeed,
	}, nil
}
