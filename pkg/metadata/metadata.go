// Package metadata reads volume dimensions from loosely-structured
// key/value metadata text.
//
// The only meaningful key is DimSize, which carries the three axis sample
// counts. This is intentionally not a strict-grammar parser: it splits
// lines at the first '=' and graciously skips everything it does not
// understand, while still enforcing precise error semantics for the
// DimSize entry itself.
package metadata

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// dimSizeKey is the metadata key naming the three axis sample counts.
const dimSizeKey = "DimSize"

// ErrDimSizeNotFound is returned when no line in the input carries a
// well-formed DimSize entry. It also covers empty input.
var ErrDimSizeNotFound = errors.New("invalid metadata, `DimSize` key not found")

// MissingValuesError reports a DimSize entry with fewer than three values.
type MissingValuesError struct {
	// Line is the 1-based input line number of the entry.
	Line int
}

func (e MissingValuesError) Error() string {
	return fmt.Sprintf("metadata line %d: expecting values for `DimSize` key", e.Line)
}

// TooManyValuesError reports a DimSize entry with more than three values.
type TooManyValuesError struct {
	// Line is the 1-based input line number of the entry.
	Line int
}

func (e TooManyValuesError) Error() string {
	return fmt.Sprintf("metadata line %d: too many values for `DimSize` key", e.Line)
}

// InvalidValueError reports a DimSize value that is not a non-negative
// base-10 integer representable as an int.
type InvalidValueError struct {
	// Line is the 1-based input line number of the entry.
	Line int

	// Value is the original offending token text.
	Value string
}

func (e InvalidValueError) Error() string {
	return fmt.Sprintf("metadata line %d: invalid value %q for dimension size", e.Line, e.Value)
}

// DuplicateKeyError reports a DimSize entry found after a valid one was
// already accepted. It carries the line number of the duplicate, not of
// the first entry.
type DuplicateKeyError struct {
	// Line is the 1-based input line number of the duplicate entry.
	Line int
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("metadata line %d: duplicated `DimSize` key", e.Line)
}

// Metadata holds the immutable dimensions of a volume: the number of
// voxels along each of the three axes.
type Metadata struct {
	xdim int
	ydim int
	zdim int
}

// New creates Metadata directly from known dimensions.
func New(xdim, ydim, zdim int) Metadata {
	return Metadata{xdim: xdim, ydim: ydim, zdim: zdim}
}

// Parse extracts volume dimensions from metadata text.
//
// The text is scanned line by line. Each line is split at the first '='
// into key and value; values containing further '=' characters are
// tolerated. Lines without an '=', with an empty key, or with a key other
// than DimSize are skipped. The first well-formed DimSize entry provides
// the dimensions, in X Y Z order; scanning continues afterwards so that a
// later duplicate DimSize entry is still detected and reported as an
// error.
func Parse(text string) (Metadata, error) {
	var md Metadata
	found := false

	for i, line := range strings.Split(text, "\n") {
		lineNumber := i + 1

		rawKey, rawValue, hasSep := strings.Cut(line, "=")

		key := strings.TrimSpace(rawKey)
		if key == "" {
			slog.Debug("metadata: skipping empty line or line with empty key", "line", lineNumber)
			continue
		}

		if !hasSep {
			slog.Warn("metadata: skipping entry without an '=' sign", "line", lineNumber)
			continue
		}

		if key != dimSizeKey {
			slog.Debug("metadata: skipping key", "line", lineNumber, "key", key)
			continue
		}

		if found {
			return Metadata{}, DuplicateKeyError{Line: lineNumber}
		}

		dims := strings.Fields(rawValue)
		if len(dims) < 3 {
			return Metadata{}, MissingValuesError{Line: lineNumber}
		}
		if len(dims) > 3 {
			return Metadata{}, TooManyValuesError{Line: lineNumber}
		}

		xdim, err := parseDim(dims[0], lineNumber)
		if err != nil {
			return Metadata{}, err
		}
		ydim, err := parseDim(dims[1], lineNumber)
		if err != nil {
			return Metadata{}, err
		}
		zdim, err := parseDim(dims[2], lineNumber)
		if err != nil {
			return Metadata{}, err
		}

		md = Metadata{xdim: xdim, ydim: ydim, zdim: zdim}
		found = true
	}

	if !found {
		return Metadata{}, ErrDimSizeNotFound
	}
	return md, nil
}

// parseDim parses a single dimension token as a checked non-negative
// base-10 integer. Signs, embedded non-digits and values overflowing the
// int range are all rejected.
func parseDim(text string, lineNumber int) (int, error) {
	dim, err := strconv.ParseUint(text, 10, strconv.IntSize-1)
	if err != nil {
		return 0, InvalidValueError{Line: lineNumber, Value: text}
	}
	return int(dim), nil
}

// XDim returns the number of voxels along the X axis.
func (m Metadata) XDim() int {
	return m.xdim
}

// YDim returns the number of voxels along the Y axis.
func (m Metadata) YDim() int {
	return m.ydim
}

// ZDim returns the number of voxels along the Z axis.
func (m Metadata) ZDim() int {
	return m.zdim
}

// XFrameLen returns the voxel count of a single frame orthogonal to the
// X axis.
func (m Metadata) XFrameLen() int {
	return m.ydim * m.zdim
}

// YFrameLen returns the voxel count of a single frame orthogonal to the
// Y axis.
func (m Metadata) YFrameLen() int {
	return m.xdim * m.zdim
}

// ZFrameLen returns the voxel count of a single frame orthogonal to the
// Z axis.
func (m Metadata) ZFrameLen() int {
	return m.xdim * m.ydim
}
