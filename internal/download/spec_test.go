package download

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

func TestParseIndexSpec(t *testing.T) {
	tests := []struct {
		input string
		want  model.IndexSpec
	}{
		{"0", model.IndexSpec{Start: 0, End: 0}},
		{"5", model.IndexSpec{Start: 5, End: 5}},
		{" 3 ", model.IndexSpec{Start: 3, End: 3}},
		{"", model.IndexSpec{Start: 0, End: 0}},
		{"12", model.IndexSpec{Start: 7, End: 7}},
		{"-4", model.IndexSpec{Start: 0, End: 0}},
		{"0,3", model.IndexSpec{Start: 0, End: 3, Range: true}},
		{"1, 4", model.IndexSpec{Start: 1, End: 4, Range: true}},
		{"-1,9", model.IndexSpec{Start: 0, End: 7, Range: true}},
		{"2,0", model.IndexSpec{Start: 2, End: 0, Range: true}},
		{"9,9", model.IndexSpec{Start: 7, End: 7, Range: true}},
		{"0,3,", model.IndexSpec{Start: 0, End: 3, Range: true}},
		{"0,3,5", model.IndexSpec{Start: 0, End: 3, Range: true}},
		{"1,2,junk", model.IndexSpec{Start: 1, End: 2, Range: true}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIndexSpec(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIndexSpec_Invalid(t *testing.T) {
	for _, input := range []string{"abc", "1,", ",2", "x,2,3", "1.5", "0;3"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseIndexSpec(input)
			assert.ErrorIs(t, err, ErrInvalidIndexSpec)
		})
	}
}
