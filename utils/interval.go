package utils

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidInterval is returned for intervals with end <= start.
var ErrInvalidInterval = errors.New("invalid_interval")

// Overlaps tests two half-open intervals [aStart, aEnd) and [bStart, bEnd).
// Back-to-back intervals (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DurationHours returns the interval length in hours (fractional allowed).
func DurationHours(start, end time.Time) (float64, error) {
	if !end.After(start) {
		return 0, ErrInvalidInterval
	}
	return end.Sub(start).Hours(), nil
}

// TokensForInterval computes the token cost of a booking interval.
// Any fractional hour consumes a whole extra token: 1h30m costs 2.
func TokensForInterval(start, end time.Time) (int, error) {
	hours, err := DurationHours(start, end)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(hours)), nil
}

// RoundUpToGranularity rounds t up to the next granularity boundary within
// its day (e.g. 10:07 with 30m granularity -> 10:30). Already-aligned times
// are returned unchanged. A non-positive granularity leaves t as-is.
func RoundUpToGranularity(t time.Time, granularity time.Duration) time.Time {
	if granularity <= 0 {
		return t
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := t.Sub(day)
	steps := offset / granularity
	if offset%granularity != 0 {
		steps++
	}
	return day.Add(steps * granularity)
}

// SlotStarts enumerates candidate slot start times for one calendar day,
// from openHour up to (but excluding) closeHour, stepping by granularity.
// An empty window or non-positive granularity yields no slots.
func SlotStarts(date time.Time, openHour, closeHour int, granularity time.Duration) []time.Time {
	if granularity <= 0 || closeHour <= openHour {
		return nil
	}
	start := time.Date(date.Year(), date.Month(), date.Day(), openHour, 0, 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), closeHour, 0, 0, 0, date.Location())

	var starts []time.Time
	for t := start; t.Before(end); t = t.Add(granularity) {
		starts = append(starts, t)
	}
	return starts
}
