package volume

import (
	"io"

	"medviz/pkg/voxel"
)

// axis identifies the axis a frame is orthogonal to.
type axis uint8

const (
	axisX axis = iota
	axisY
	axisZ
)

// Sample is a single voxel of a frame together with its 2D coordinates.
// X is the first (fastest-varying) dimension of the frame and Y the
// second, matching the argument order image sinks expect.
type Sample struct {
	// Voxel is the decoded sample value.
	Voxel voxel.Voxel

	// X is the first coordinate of the sample within the frame.
	X int

	// Y is the second coordinate of the sample within the frame.
	Y int
}

// FrameIterator is a lazy, single-pass iterator over the voxels of one
// frame, in row-major display order (Y outer, X inner).
//
// Iterators are independent of each other and keep no state beyond their
// own cursor, so any number of them may be consumed concurrently as long
// as the underlying buffer is not mutated. Stopping consumption early has
// no side effects beyond not decoding further samples.
type FrameIterator struct {
	vol    *Volume
	axis   axis
	index  int
	count  int
	width  int
	height int
	next   int
}

// Len returns the total number of samples the frame yields.
func (it *FrameIterator) Len() int {
	return it.count
}

// Width returns the first (fastest-varying) dimension of the frame.
func (it *FrameIterator) Width() int {
	return it.width
}

// Height returns the second dimension of the frame.
func (it *FrameIterator) Height() int {
	return it.height
}

// Next returns the next sample of the frame. It returns io.EOF once the
// frame is exhausted.
//
// A sample whose stored value is outside the valid voxel range yields a
// voxel.OutOfRangeError for that element only; the returned Sample still
// carries the element's coordinates and iteration continues with the
// following sample. Range validation is deliberately lazy: a sample that
// is never iterated is never validated.
func (it *FrameIterator) Next() (Sample, error) {
	if it.next >= it.count {
		return Sample{}, io.EOF
	}

	i := it.next
	it.next++

	sample := Sample{X: i % it.width, Y: i / it.width}

	offset := it.offsetOf(i)
	vx, err := voxel.FromBytes(it.vol.data[offset], it.vol.data[offset+1])
	if err != nil {
		return sample, err
	}

	sample.Voxel = vx
	return sample, nil
}

// offsetOf converts the i-th sample of the frame into a byte offset in
// the volume buffer. This is the strided addressing core: no bytes are
// copied and no intermediate structures are built.
func (it *FrameIterator) offsetOf(i int) int {
	md := it.vol.md

	switch it.axis {
	case axisZ:
		// One contiguous run: frame index selects the Z-frame, i walks it.
		return (it.index*md.ZFrameLen() + i) * voxel.Width

	case axisY:
		// Row it.index of each Z-frame, Z-frames visited in reverse order
		// to produce the expected display orientation.
		z := md.ZDim() - 1 - i/md.XDim()
		x := i % md.XDim()
		return (z*md.ZFrameLen() + it.index*md.XDim() + x) * voxel.Width

	default: // axisX
		// Column it.index of each Z-frame, again in reverse Z order.
		// Columns are non-contiguous: every sample is its own read.
		z := md.ZDim() - 1 - i/md.YDim()
		row := i % md.YDim()
		return (z*md.ZFrameLen() + row*md.XDim() + it.index) * voxel.Width
	}
}
