// Package volume addresses a flat 3D voxel buffer and extracts 2D frames
// from it along each of the three orthogonal axes.
//
// Voxels are stored row-major with X varying fastest, then Y, then Z: the
// byte offset of voxel (x, y, z) is 2 * (z*xdim*ydim + y*xdim + x). A
// Volume borrows its buffer rather than copying it, so frame extraction
// runs on strided index arithmetic alone.
package volume

import (
	"fmt"

	"medviz/pkg/metadata"
	"medviz/pkg/voxel"
)

// DataSizeMismatchError reports a data buffer whose length does not match
// the voxel count implied by the volume metadata.
type DataSizeMismatchError struct {
	// Actual is the buffer length in bytes.
	Actual int

	// Expected is the buffer length implied by the metadata.
	Expected int
}

func (e DataSizeMismatchError) Error() string {
	return fmt.Sprintf("data size of %d bytes does not match metadata: expecting %d bytes", e.Actual, e.Expected)
}

// DataSizeUnevenError reports a data buffer whose length is not a multiple
// of the voxel byte width.
type DataSizeUnevenError struct {
	// Size is the buffer length in bytes.
	Size int
}

func (e DataSizeUnevenError) Error() string {
	return fmt.Sprintf("data size of %d bytes is uneven", e.Size)
}

// Volume associates volume metadata with the flat byte buffer holding the
// voxel data. The buffer is borrowed, never copied, and must not be
// mutated for the lifetime of the Volume. Multiple frame iterators may be
// created and consumed independently, including from multiple goroutines,
// under that read-only discipline.
type Volume struct {
	md   metadata.Metadata
	data []byte
}

// New creates a Volume from metadata and a byte buffer.
//
// The buffer length must equal xdim*ydim*zdim voxels of 2 bytes each,
// otherwise a DataSizeMismatchError is returned. A buffer of uneven
// length yields a DataSizeUnevenError; the check is redundant with the
// equality check for well-formed metadata but is kept as an independent
// guard. Sample values are not inspected here: range validation happens
// lazily, per voxel, during frame iteration.
func New(md metadata.Metadata, data []byte) (*Volume, error) {
	expected := md.XDim() * md.YDim() * md.ZDim() * voxel.Width

	if len(data) != expected {
		return nil, DataSizeMismatchError{Actual: len(data), Expected: expected}
	}

	if len(data)%voxel.Width != 0 {
		return nil, DataSizeUnevenError{Size: len(data)}
	}

	return &Volume{md: md, data: data}, nil
}

// Metadata returns the metadata the volume was built with.
func (v *Volume) Metadata() metadata.Metadata {
	return v.md
}

// XFrame returns an iterator over the frame orthogonal to the X axis at
// the given index.
//
// The frame is assembled from the relevant column of every frame on the
// Z axis, visited in reverse Z order. Columns are not contiguous in the
// buffer, so every voxel is an independent 2-byte read.
//
// Panics if index is outside the range of frames on the X axis.
func (v *Volume) XFrame(index int) *FrameIterator {
	if index < 0 || index >= v.md.XDim() {
		panic(fmt.Sprintf("volume: X-frame index %d out of range [0, %d)", index, v.md.XDim()))
	}
	return &FrameIterator{
		vol:    v,
		axis:   axisX,
		index:  index,
		count:  v.md.XFrameLen(),
		width:  v.md.YDim(),
		height: v.md.ZDim(),
	}
}

// YFrame returns an iterator over the frame orthogonal to the Y axis at
// the given index.
//
// The frame is assembled from row index of every frame on the Z axis,
// visited in reverse Z order. Each row is one contiguous run of bytes,
// but rows from different Z-frames are disjoint.
//
// Panics if index is outside the range of frames on the Y axis.
func (v *Volume) YFrame(index int) *FrameIterator {
	if index < 0 || index >= v.md.YDim() {
		panic(fmt.Sprintf("volume: Y-frame index %d out of range [0, %d)", index, v.md.YDim()))
	}
	return &FrameIterator{
		vol:    v,
		axis:   axisY,
		index:  index,
		count:  v.md.YFrameLen(),
		width:  v.md.XDim(),
		height: v.md.ZDim(),
	}
}

// ZFrame returns an iterator over the frame orthogonal to the Z axis at
// the given index. This is the cheapest extraction: one contiguous scan
// of the buffer.
//
// Panics if index is outside the range of frames on the Z axis.
func (v *Volume) ZFrame(index int) *FrameIterator {
	if index < 0 || index >= v.md.ZDim() {
		panic(fmt.Sprintf("volume: Z-frame index %d out of range [0, %d)", index, v.md.ZDim()))
	}
	return &FrameIterator{
		vol:    v,
		axis:   axisZ,
		index:  index,
		count:  v.md.ZFrameLen(),
		width:  v.md.XDim(),
		height: v.md.YDim(),
	}
}
