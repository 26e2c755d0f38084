package stats

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medviz/pkg/metadata"
	"medviz/pkg/volume"
	"medviz/pkg/voxel"
)

func buildVolume(t *testing.T, xdim, ydim, zdim int, values []uint16) *volume.Volume {
	t.Helper()

	buf := make([]byte, len(values)*voxel.Width)
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[i*voxel.Width:], v)
	}

	vol, err := volume.New(metadata.New(xdim, ydim, zdim), buf)
	require.NoError(t, err)
	return vol
}

func TestFrameStats(t *testing.T) {
	t.Run("KnownValues", func(t *testing.T) {
		vol := buildVolume(t, 2, 2, 1, []uint16{0, 1, 2, 3})

		st, err := FrameStats(vol.ZFrame(0))
		require.NoError(t, err)

		assert.Equal(t, 4, st.Count)
		assert.Equal(t, uint16(0), st.Min)
		assert.Equal(t, uint16(3), st.Max)
		assert.InDelta(t, 1.5, st.Mean, 1e-12)
		// Sample standard deviation of {0, 1, 2, 3}.
		assert.InDelta(t, math.Sqrt(5.0/3.0), st.StdDev, 1e-12)
		// All four values normalize into the same display bin.
		assert.InDelta(t, 0.0, st.Entropy, 1e-12)
	})

	t.Run("TwoBinEntropy", func(t *testing.T) {
		vol := buildVolume(t, 2, 2, 1, []uint16{0, 0, 4095, 4095})

		st, err := FrameStats(vol.ZFrame(0))
		require.NoError(t, err)
		assert.InDelta(t, math.Ln2, st.Entropy, 1e-12)
	})

	t.Run("OutOfRangeAborts", func(t *testing.T) {
		vol := buildVolume(t, 2, 2, 1, []uint16{0, 0xffff, 2, 3})

		_, err := FrameStats(vol.ZFrame(0))
		assert.Equal(t, voxel.OutOfRangeError{Value: 0xffff}, err)
	})

	t.Run("EmptyFrame", func(t *testing.T) {
		vol := buildVolume(t, 2, 0, 3, nil)

		st, err := FrameStats(vol.ZFrame(0))
		require.NoError(t, err)
		assert.Equal(t, Stats{}, st)
	})
}
