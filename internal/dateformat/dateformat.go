// Package dateformat converts deadlines between the console display format
// (MM/DD/YYYY) and the storage format used on the wire (YYYY-MM-DD).
package dateformat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const (
	StorageLayout = "2006-01-02"
	DisplayLayout = "01/02/2006"
)

var ErrInvalidFormat = errors.New("invalid date format")

// ToDisplay converts "YYYY-MM-DD" to "MM/DD/YYYY".
// Slash-delimited input is returned unchanged, empty input maps to empty output,
// and input that is not three dash-separated parts is returned as is.
func ToDisplay(date string) string {
	if date == "" {
		return ""
	}
	if strings.Contains(date, "/") {
		return date
	}

	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	year, month, day := parts[0], parts[1], parts[2]
	return fmt.Sprintf("%s/%s/%s", month, day, year)
}

// ToStorage converts "MM/DD/YYYY" to "YYYY-MM-DD", zero-padding month and day.
// Empty input maps to empty output; input that is not three slash-separated
// parts is returned as is.
func ToStorage(date string) string {
	if date == "" {
		return ""
	}

	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return date
	}
	month, day, year := parts[0], parts[1], parts[2]
	return fmt.Sprintf("%s-%s-%s", year, padTwo(month), padTwo(day))
}

// ParseDisplay parses "MM/DD/YYYY" into local midnight of that day.
// Exactly three numeric components forming a real calendar date are required.
func ParseDisplay(date string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(date), "/")
	if len(parts) != 3 {
		return time.Time{}, ErrInvalidFormat
	}
	return buildDate(parts[2], parts[0], parts[1])
}

// ParseStorage parses "YYYY-MM-DD" (month and day may be unpadded) into local midnight of that day.
func ParseStorage(date string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 {
		return time.Time{}, ErrInvalidFormat
	}
	return buildDate(parts[0], parts[1], parts[2])
}

// FormatStorage renders t as "YYYY-MM-DD" in t's own location.
func FormatStorage(t time.Time) string {
	return t.Format(StorageLayout)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

func buildDate(yearStr, monthStr, dayStr string) (time.Time, error) {
	year, err := component(yearStr)
	if err != nil {
		return time.Time{}, err
	}
	month, err := component(monthStr)
	if err != nil {
		return time.Time{}, err
	}
	day, err := component(dayStr)
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject instead.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrInvalidFormat, year, month, day)
	}
	return t, nil
}

func component(s string) (int, error) {
	if s == "" {
		return 0, ErrInvalidFormat
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidFormat
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return n, nil
}

func padTwo(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}
