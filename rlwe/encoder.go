package rlwe

import (
	"fmt"
	"strings"

	"github.com/latticekit/ringlwe/ring"
)

// Encoder converts byte messages to and from binary message polynomials.
// Messages longer than N bits are chunked into blocks of N bits, LSB first
// within each byte, with the final block zero-padded to length N.
type Encoder struct {
	params Parameters
}

// NewEncoder creates a new Encoder for the provided parameters.
func NewEncoder(params Parameters) *Encoder {
	return &Encoder{params: params}
}

// EncodeBytes encodes data into binary message polynomials of degree N.
func (ecd *Encoder) EncodeBytes(data []byte) (blocks []ring.Poly) {

	N := ecd.params.N()

	bits := make([]uint64, 0, len(data)*8)
	for _, b := range data {
		for i := 0; i < 8; i++ {
			bits = append(bits, uint64((b>>i)&1))
		}
	}

	for start := 0; start < len(bits); start += N {
		block := ring.NewPoly(N)
		copy(block.Coeffs, bits[start:])
		blocks = append(blocks, block)
	}

	if len(blocks) == 0 {
		blocks = append(blocks, ring.NewPoly(N))
	}

	return
}

// DecodeBytes reassembles the byte message from binary polynomials. Bits
// beyond the last full byte are dropped, matching the zero-padding applied
// by EncodeBytes.
func (ecd *Encoder) DecodeBytes(blocks []ring.Poly) (data []byte, err error) {

	N := ecd.params.N()

	bits := make([]uint64, 0, len(blocks)*N)
	for i, block := range blocks {
		if block.N() != N {
			return nil, fmt.Errorf("cannot DecodeBytes: block %d has %d coefficients, want %d", i, block.N(), N)
		}
		if !block.IsBinary() {
			return nil, fmt.Errorf("cannot DecodeBytes: block %d has a coefficient outside {0, 1}", i)
		}
		bits = append(bits, block.Coeffs...)
	}

	data = make([]byte, 0, len(bits)/8)
	for start := 0; start+8 <= len(bits); start += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b |= byte(bits[start+j]) << j
		}
		data = append(data, b)
	}

	return data, nil
}

// EncodeString encodes the UTF-8 bytes of s into binary message polynomials.
func (ecd *Encoder) EncodeString(s string) []ring.Poly {
	return ecd.EncodeBytes([]byte(s))
}

// DecodeString reassembles a string from binary polynomials, stripping the
// trailing NUL bytes introduced by block padding.
func (ecd *Encoder) DecodeString(blocks []ring.Poly) (string, error) {
	data, err := ecd.DecodeBytes(blocks)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\x00"), nil
}
