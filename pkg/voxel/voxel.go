// Package voxel models a single volumetric sample.
//
// Voxels are 12-bit intensity values stored in 16-bit little-endian
// containers. Construction is the single validation point: a Voxel that
// exists is always within the valid range.
package voxel

import (
	"fmt"
	"math"
)

// MaxValue is the largest valid voxel value. Samples are 12 bits wide
// even though they are stored in 16-bit containers.
const MaxValue = 4095

// Width is the size in bytes of a voxel's on-disk encoding.
const Width = 2

// OutOfRangeError reports a sample value outside the valid 12-bit range.
type OutOfRangeError struct {
	// Value is the offending raw sample value.
	Value uint16
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("voxel value %d is out of the 0-%d range", e.Value, MaxValue)
}

// Voxel is a single validated volumetric sample.
type Voxel struct {
	value uint16
}

// New creates a voxel from a raw sample value.
//
// Returns an OutOfRangeError if the value is outside the 0-4095 (12-bit)
// range.
func New(value uint16) (Voxel, error) {
	if value > MaxValue {
		return Voxel{}, OutOfRangeError{Value: value}
	}
	return Voxel{value: value}, nil
}

// FromBytes creates a voxel from its 2-byte little-endian encoding.
//
// Returns an OutOfRangeError if the decoded value is outside the 0-4095
// (12-bit) range.
func FromBytes(byte0, byte1 byte) (Voxel, error) {
	return New(uint16(byte0) | uint16(byte1)<<8)
}

// Value returns the raw, unnormalized sample value.
func (v Voxel) Value() uint16 {
	return v.value
}

// Bytes returns the 2-byte little-endian encoding of the voxel.
func (v Voxel) Bytes() [Width]byte {
	return [Width]byte{byte(v.value), byte(v.value >> 8)}
}

// Normalized rescales the 12-bit sample value to the 8-bit display range.
//
// The result is round(value / 4095 * 255). Because the value is bounded at
// construction the result always fits in a uint8, and math.Round keeps the
// exact pixel values reproducible.
func (v Voxel) Normalized() uint8 {
	return uint8(math.Round(float64(v.value) / MaxValue * 255.0))
}
