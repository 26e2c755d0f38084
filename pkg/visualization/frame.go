// Package visualization turns extracted frames into persisted artifacts:
// grayscale raster images or raw little-endian dumps of the 16-bit
// sample values.
package visualization

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"

	"medviz/pkg/volume"
)

// Format selects the on-disk encoding of a saved frame.
type Format string

const (
	// FormatBMP encodes frames as BMP images.
	FormatBMP Format = "bmp"

	// FormatJPEG encodes frames as JPEG images at quality 90.
	FormatJPEG Format = "jpeg"

	// FormatPNG encodes frames as PNG images.
	FormatPNG Format = "png"

	// FormatRaw dumps the raw 16-bit little-endian sample values.
	FormatRaw Format = "raw"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatBMP, FormatJPEG, FormatPNG, FormatRaw:
		return Format(name), nil
	case "jpg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("unknown frame format %q (must be bmp, jpeg, png or raw)", name)
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// FrameImage renders a frame into an 8-bit grayscale image using the
// deterministic 12-bit to 8-bit normalization of the voxel model.
//
// The iterator is consumed completely. The first out-of-range sample
// aborts rendering and is returned as the error.
func FrameImage(it *volume.FrameIterator) (*image.Gray, error) {
	img := image.NewGray(image.Rect(0, 0, it.Width(), it.Height()))

	for {
		sample, err := it.Next()
		if err == io.EOF {
			return img, nil
		}
		if err != nil {
			return nil, err
		}
		img.SetGray(sample.X, sample.Y, color.Gray{Y: sample.Voxel.Normalized()})
	}
}

// FrameRGBA renders a frame into an RGBA image, duplicating the
// normalized grayscale value across the R, G and B channels for sinks
// that require a 3-channel format.
func FrameRGBA(it *volume.FrameIterator) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, it.Width(), it.Height()))

	for {
		sample, err := it.Next()
		if err == io.EOF {
			return img, nil
		}
		if err != nil {
			return nil, err
		}
		n := sample.Voxel.Normalized()
		img.SetRGBA(sample.X, sample.Y, color.RGBA{R: n, G: n, B: n, A: 255})
	}
}

// WriteRaw dumps a frame as consecutive 16-bit little-endian sample
// values, in the frame's row-major order.
func WriteRaw(w io.Writer, it *volume.FrameIterator) error {
	bw := bufio.NewWriter(w)

	for {
		sample, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		b := sample.Voxel.Bytes()
		if _, err := bw.Write(b[:]); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// SaveFrame encodes a rendered frame image to a file in the given
// format. FormatRaw is not valid here; use WriteRaw for raw dumps.
func SaveFrame(img image.Image, filename string, format Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	switch format {
	case FormatBMP:
		return bmp.Encode(file, img)
	case FormatJPEG:
		return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
	case FormatPNG:
		return png.Encode(file, img)
	}
	return fmt.Errorf("cannot encode image as %q", format)
}

// SaveFrameSequence extracts and saves every frame along the specified
// axis into outputDir, one file per frame index.
func SaveFrameSequence(vol *volume.Volume, axisName string, outputDir string, format Format) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	frames, err := axisFrames(vol, axisName)
	if err != nil {
		return err
	}

	for pos := 0; pos < frames; pos++ {
		it, err := AxisFrame(vol, axisName, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("frame_%s_%03d.%s", axisName, pos, format.Ext()))
		if format == FormatRaw {
			if err := saveRaw(it, filename); err != nil {
				return err
			}
			continue
		}

		img, err := FrameImage(it)
		if err != nil {
			return err
		}
		if err := SaveFrame(img, filename, format); err != nil {
			return err
		}
	}

	return nil
}

// AxisFrame returns the frame iterator for the named axis at the given
// position. Unlike the Volume methods it reports a bad axis name or an
// out-of-range position as an error rather than a panic, since both
// typically come straight from user input.
func AxisFrame(vol *volume.Volume, axisName string, position int) (*volume.FrameIterator, error) {
	frames, err := axisFrames(vol, axisName)
	if err != nil {
		return nil, err
	}
	if position < 0 || position >= frames {
		return nil, fmt.Errorf("frame position %d out of range for axis %s (%d frames)", position, axisName, frames)
	}

	switch axisName {
	case "x", "X":
		return vol.XFrame(position), nil
	case "y", "Y":
		return vol.YFrame(position), nil
	default:
		return vol.ZFrame(position), nil
	}
}

// axisFrames returns the number of frames along the named axis.
func axisFrames(vol *volume.Volume, axisName string) (int, error) {
	md := vol.Metadata()
	switch axisName {
	case "x", "X":
		return md.XDim(), nil
	case "y", "Y":
		return md.YDim(), nil
	case "z", "Z":
		return md.ZDim(), nil
	}
	return 0, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axisName)
}

func saveRaw(it *volume.FrameIterator, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteRaw(file, it)
}
