package sim

import "fmt"

// fixedEfforts yields the given efforts in order and fails the race loudly
// when a test under-provisions it.
func fixedEfforts(values ...int) EffortFunc {
	next := 0
	return func() int {
		if next >= len(values) {
			panic("fixedEfforts: exhausted")
		}
		v := values[next]
		next++
		return v
	}
}

// interleave turns per-car effort lists into the draw order the controller
// uses: car A then car B, lap by lap.
func interleave(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	for i := range a {
		out = append(out, a[i], b[i])
	}
	return out
}

// deltas converts cumulative totals into per-lap efforts.
func deltas(totals []int) []int {
	out := make([]int, len(totals))
	prev := 0
	for i, t := range totals {
		out[i] = t - prev
		prev = t
	}
	return out
}

// recordingReporter keeps every report it receives.
type recordingReporter struct {
	starts []StartReport
	laps   []LapReport
	finals []FinalReport
}

func (r *recordingReporter) RaceStarting(rep StartReport) { r.starts = append(r.starts, rep) }
func (r *recordingReporter) LapCompleted(rep LapReport)   { r.laps = append(r.laps, rep) }
func (r *recordingReporter) RaceFinished(rep FinalReport) { r.finals = append(r.finals, rep) }

func (r *recordingReporter) calls() int {
	return len(r.starts) + len(r.laps) + len(r.finals)
}

// sequenceSource replays a fixed list of attributes. Panics when exhausted.
type sequenceSource struct {
	values []int
	next   int
}

func newSequenceSource(values ...int) *sequenceSource {
	return &sequenceSource{values: values}
}

// NextAttribute implements AttributeSource.
func (s *sequenceSource) NextAttribute() int {
	if s.next >= len(s.values) {
		panic(fmt.Sprintf("sequenceSource: exhausted after %d draws", len(s.values)))
	}
	v := s.values[s.next]
	s.next++
	return v
}

// remaining reports how many values have not been drawn yet.
func (s *sequenceSource) remaining() int {
	return len(s.values) - s.next
}
