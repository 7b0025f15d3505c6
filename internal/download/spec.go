package download

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

var (
	// ErrInvalidIndexSpec is returned when the first one or two
	// comma-separated parts are not integers.
	ErrInvalidIndexSpec = errors.New("invalid index specification")

	// ErrEmptyRange is reported when a range's start is after its end.
	ErrEmptyRange = errors.New("empty index range")
)

// ParseIndexSpec parses "N" (single mode) or "N,M" (inclusive range).
// Parts after the second are ignored.
//
// Surrounding whitespace is ignored and empty input means "0". Each
// number is clamped into [0, model.MaxDayIndex] on its own, so "-1,9"
// is the same as "0,7". A range whose clamped start exceeds its end is
// returned as-is and covers no indices.
func ParseIndexSpec(text string) (model.IndexSpec, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "0"
	}

	parts := strings.Split(text, ",")
	if len(parts) == 1 {
		n, err := parseIndex(parts[0])
		if err != nil {
			return model.IndexSpec{}, err
		}
		return model.IndexSpec{Start: n, End: n}, nil
	}

	// Anything after the second part is ignored: "0,3,5" and "0,3," mean "0,3".
	start, err := parseIndex(parts[0])
	if err != nil {
		return model.IndexSpec{}, err
	}
	end, err := parseIndex(parts[1])
	if err != nil {
		return model.IndexSpec{}, err
	}
	return model.IndexSpec{Start: start, End: end, Range: true}, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidIndexSpec, s)
	}
	return model.ClampDayIndex(n), nil
}
