package sim

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// StartReport is emitted once, before lap 1.
type StartReport struct {
	RaceID       string
	NumberOfLaps int
	Grid         []Leader // competitors in entry order
}

// LapReport is emitted after every lap.
type LapReport struct {
	Lap    int
	Leader Leader
}

// FinalReport is emitted once, after the last lap.
type FinalReport struct {
	RaceID         string
	NumberOfLaps   int
	Leader         Leader
	Classification []Standing
}

// Reporter is the race's output sink. Calls arrive in order:
// RaceStarting, LapCompleted × NumberOfLaps, RaceFinished.
type Reporter interface {
	RaceStarting(StartReport)
	LapCompleted(LapReport)
	RaceFinished(FinalReport)
}

const countdownFrom = 5

// carColors maps car color names to terminal attributes.
// Orange has no ANSI code; bright red is the closest.
var carColors = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"purple":  color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
	"orange":  color.FgHiRed,
}

// TextReporter writes the race commentary as plain text blocks.
// The first write error is kept and all later output is dropped.
type TextReporter struct {
	w              *bufio.Writer
	colorize       bool
	classification bool
	err            error
}

// TextReporterOption customizes a TextReporter at construction.
type TextReporterOption func(*TextReporter)

// WithClassification prints the final classification table before the
// congratulation. Off by default.
func WithClassification() TextReporterOption {
	return func(r *TextReporter) { r.classification = true }
}

// NewTextReporter writes to w. With colorize set, driver names are printed in
// their car's color unless the color package has disabled output (NO_COLOR,
// not a terminal).
func NewTextReporter(w io.Writer, colorize bool, opts ...TextReporterOption) *TextReporter {
	r := &TextReporter{w: bufio.NewWriter(w), colorize: colorize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Err returns the first write error, if any.
func (r *TextReporter) Err() error {
	return r.err
}

// RaceStarting implements Reporter.
func (r *TextReporter) RaceStarting(StartReport) {
	r.printf("Welcome to our main event digital race fans!\n")
	r.printf("I hope everybody has their snacks because we are about to begin!\n\n")

	r.printf("Racers Ready! In...\n")
	for i := countdownFrom; i > 0; i-- {
		r.printf("%d\n", i)
	}
	r.printf("Race!\n\n")
	r.flush()
}

// LapCompleted implements Reporter.
func (r *TextReporter) LapCompleted(rep LapReport) {
	r.printf("After lap number %d\n", rep.Lap)
	r.printf("First Place Is: %s in the %s race car!\n\n", r.driver(rep.Leader), rep.Leader.Color)
	r.flush()
}

// RaceFinished implements Reporter.
func (r *TextReporter) RaceFinished(rep FinalReport) {
	if r.classification && len(rep.Classification) > 0 {
		r.printf("Final classification:\n")
		width := 0
		for _, s := range rep.Classification {
			width = max(width, utf8.RuneCountInString(s.DriverName))
		}
		for _, s := range rep.Classification {
			pad := strings.Repeat(" ", width-utf8.RuneCountInString(s.DriverName))
			r.printf("  %-4s %s%s  %-8s %3d", humanize.Ordinal(s.Position), r.driver(Leader{DriverName: s.DriverName, Color: s.Color}), pad, s.Color, s.TotalLapTime)
			if s.Gap > 0 {
				r.printf("  +%d", s.Gap)
			}
			r.printf("\n")
		}
		r.printf("\n")
	}

	r.printf("Let's all congratulate %s in the %s race car for an amazing performance.\n", r.driver(rep.Leader), rep.Leader.Color)
	r.printf("It truly was a great race and everybody have a goodnight!\n")
	r.flush()
}

func (r *TextReporter) driver(l Leader) string {
	if !r.colorize {
		return l.DriverName
	}
	attr, ok := carColors[strings.ToLower(l.Color)]
	if !ok {
		return l.DriverName
	}
	return color.New(attr, color.Bold).Sprint(l.DriverName)
}

func (r *TextReporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintf(r.w, format, args...); err != nil {
		r.err = fmt.Errorf("writing race report: %w", err)
	}
}

func (r *TextReporter) flush() {
	if r.err != nil {
		return
	}
	if err := r.w.Flush(); err != nil {
		r.err = fmt.Errorf("writing race report: %w", err)
	}
}
