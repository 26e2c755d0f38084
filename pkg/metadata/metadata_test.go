package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("WithSurroundingKeys", func(t *testing.T) {
		input := "\n" +
			"NDims = 3\n" +
			"DimSize = 512 512 333\n" +
			"ElementSpacing = 0.402344 0.402344 0.899994\n"

		md, err := Parse(input)
		require.NoError(t, err)
		assert.Equal(t, 512, md.XDim())
		assert.Equal(t, 512, md.YDim())
		assert.Equal(t, 333, md.ZDim())
	})

	t.Run("SingleLine", func(t *testing.T) {
		md, err := Parse("DimSize = 512 512 333")
		require.NoError(t, err)
		assert.Equal(t, New(512, 512, 333), md)
	})

	t.Run("NoSpacesAroundSeparator", func(t *testing.T) {
		md, err := Parse("DimSize=4 5 6")
		require.NoError(t, err)
		assert.Equal(t, New(4, 5, 6), md)
	})

	t.Run("OtherKeyValueMayContainSeparator", func(t *testing.T) {
		input := "Comment = a=b=c\nDimSize = 1 2 3\n"
		md, err := Parse(input)
		require.NoError(t, err)
		assert.Equal(t, New(1, 2, 3), md)
	})

	t.Run("ZeroDimsAccepted", func(t *testing.T) {
		md, err := Parse("DimSize = 0 0 0")
		require.NoError(t, err)
		assert.Equal(t, New(0, 0, 0), md)
	})
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
	}{
		{
			name: "MissingValues",
			input: "\n" +
				"NDims = 3\n" +
				"DimSize = \n" +
				"ElementSpacing = 0.402344 0.402344 0.899994\n",
			want: MissingValuesError{Line: 3},
		},
		{
			name:  "TwoValues",
			input: "DimSize = 512 512",
			want:  MissingValuesError{Line: 1},
		},
		{
			name: "InvalidValue",
			input: "\n" +
				"NDims = 3\n" +
				"DimSize = 512 512 abc\n" +
				"ElementSpacing = 0.402344 0.402344 0.899994\n",
			want: InvalidValueError{Line: 3, Value: "abc"},
		},
		{
			name:  "NegativeValue",
			input: "DimSize = 512 -1 333",
			want:  InvalidValueError{Line: 1, Value: "-1"},
		},
		{
			name:  "EmbeddedNonDigit",
			input: "DimSize = 512 51a2 333",
			want:  InvalidValueError{Line: 1, Value: "51a2"},
		},
		{
			name:  "OverflowingValue",
			input: "DimSize = 1 2 99999999999999999999",
			want:  InvalidValueError{Line: 1, Value: "99999999999999999999"},
		},
		{
			name: "DuplicateKeyReportsDuplicateLine",
			input: "\n" +
				"NDims = 3\n" +
				"DimSize = 512 512 333\n" +
				"ElementSpacing = 0.402344 0.402344 0.899994\n" +
				"DimSize = 512 512 333\n",
			want: DuplicateKeyError{Line: 5},
		},
		{
			name:  "DuplicateWithMalformedSecondEntry",
			input: "DimSize = 1 2 3\nDimSize = what\n",
			want:  DuplicateKeyError{Line: 2},
		},
		{
			name: "KeyNotFound",
			input: "\n" +
				"NDims = 3\n" +
				"ElementSpacing = 0.402344 0.402344 0.899994\n",
			want: ErrDimSizeNotFound,
		},
		{
			name: "TooManyValues",
			input: "\n" +
				"NDims = 3\n" +
				"DimSize = 512 512 333 333\n" +
				"ElementSpacing = 0.402344 0.402344 0.899994\n",
			want: TooManyValuesError{Line: 3},
		},
		{
			name:  "EmptyInput",
			input: "",
			want:  ErrDimSizeNotFound,
		},
		{
			name:  "OnlyBlankLines",
			input: "    \n\n\n",
			want:  ErrDimSizeNotFound,
		},
		{
			name:  "LineWithoutSeparatorIsSkipped",
			input: "DimSize\njust some text\n",
			want:  ErrDimSizeNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.want, err)
		})
	}
}

func TestFrameLens(t *testing.T) {
	md := New(2, 3, 4)
	assert.Equal(t, 12, md.XFrameLen())
	assert.Equal(t, 8, md.YFrameLen())
	assert.Equal(t, 6, md.ZFrameLen())
}
