package model

// FetchOutcome is the result of transferring one image to disk.
//
// Exactly one of Path or Err is set. A partially written file is never a
// Success; it is reported through Err.
type FetchOutcome struct {
	Path string
	Err  error
}

// Success returns an outcome for an image saved at path.
func Success(path string) FetchOutcome {
	return FetchOutcome{Path: path}
}

// Failure returns an outcome for a transfer stopped by err.
func Failure(err error) FetchOutcome {
	return FetchOutcome{Err: err}
}

// OK reports whether the transfer succeeded.
func (o FetchOutcome) OK() bool {
	return o.Err == nil && o.Path != ""
}

// BatchProgress tracks how many units of a batch have completed.
type BatchProgress struct {
	Completed int
	Total     int
}

// Percent returns Completed/Total as an integer percentage, rounded down.
// An empty batch reports 0.
func (p BatchProgress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return p.Completed * 100 / p.Total
}

// MaxDayIndex is the oldest day the provider serves (0 is today).
const MaxDayIndex = 7

// IndexSpec is a parsed index specification: one day-index or an
// inclusive range of them.
type IndexSpec struct {
	Start int
	End   int
	Range bool
}

// Indices returns the day-indices covered by the spec in ascending order.
// A range whose start exceeds its end covers nothing.
func (s IndexSpec) Indices() []int {
	if !s.Range {
		return []int{s.Start}
	}
	var out []int
	for i := s.Start; i <= s.End; i++ {
		out = append(out, i)
	}
	return out
}

// ClampDayIndex limits n to the range the provider serves.
func ClampDayIndex(n int) int {
	return min(MaxDayIndex, max(0, n))
}
