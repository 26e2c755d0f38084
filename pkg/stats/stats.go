// Package stats computes intensity statistics for extracted frames,
// useful for quick quality checks and display windowing decisions.
package stats

import (
	"io"

	"gonum.org/v1/gonum/stat"

	"medviz/pkg/volume"
)

// Stats summarizes the raw voxel intensities of a single frame.
type Stats struct {
	// Count is the number of samples in the frame.
	Count int

	// Min and Max are the smallest and largest raw sample values.
	Min uint16
	Max uint16

	// Mean and StdDev are computed over the raw sample values.
	Mean   float64
	StdDev float64

	// Entropy is the Shannon entropy (in nats) of the distribution of
	// normalized 8-bit display values.
	Entropy float64
}

// FrameStats consumes a frame iterator and summarizes it.
//
// An out-of-range sample anywhere in the frame aborts the computation
// and is returned as the error.
func FrameStats(it *volume.FrameIterator) (Stats, error) {
	values := make([]float64, 0, it.Len())
	var hist [256]float64

	s := Stats{}
	for {
		sample, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Stats{}, err
		}

		raw := sample.Voxel.Value()
		if s.Count == 0 || raw < s.Min {
			s.Min = raw
		}
		if raw > s.Max {
			s.Max = raw
		}
		s.Count++

		values = append(values, float64(raw))
		hist[sample.Voxel.Normalized()]++
	}

	if s.Count == 0 {
		return s, nil
	}

	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)

	dist := hist[:]
	for i := range dist {
		dist[i] /= float64(s.Count)
	}
	s.Entropy = stat.Entropy(dist)

	return s, nil
}
