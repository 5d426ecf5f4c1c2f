package tccs

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var dateSeparatorRe = regexp.MustCompile(`[/-]`)

// ParseDayMonthYear parses day/month/year dates delimited by slashes or
// dashes, e.g. "19/11/2025" or "19-11-2025 08:30". A missing year defaults
// to the current year.
func ParseDayMonthYear(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " T"); i >= 0 {
		s = s[:i]
	}
	parts := dateSeparatorRe.Split(s, -1)
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	year := time.Now().Year()
	if len(parts) == 3 {
		if year, err = strconv.Atoi(parts[2]); err != nil {
			return time.Time{}, false
		}
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

// articleDate returns the best publish date of a, preferring the full date.
func articleDate(a *ExcelArticle) (time.Time, bool) {
	if t, ok := ParseDayMonthYear(a.PublishDateFull); ok {
		return t, true
	}
	return ParseDayMonthYear(a.PublishDate)
}

// SortByPublishDateDesc sorts articles newest first.
// Unparseable dates sort as earliest; ties keep their input order.
func SortByPublishDateDesc(articles []*ExcelArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		ti, oki := articleDate(articles[i])
		tj, okj := articleDate(articles[j])
		switch {
		case !oki:
			return false
		case !okj:
			return true
		default:
			return ti.After(tj)
		}
	})
}

// FormatPublishDate formats t the way the publisher prints bylines.
func FormatPublishDate(t time.Time) string {
	return t.Format("15:04, ngày 02-01-2006")
}

// DateRange describes the span of publish dates in articles, e.g.
// "Từ 1/11/2025 đến 19/11/2025". The current day is used when no date parses.
func DateRange(articles []*ExcelArticle, now time.Time) string {
	var lo, hi time.Time
	for _, a := range articles {
		t, ok := articleDate(a)
		if !ok {
			continue
		}
		if lo.IsZero() || t.Before(lo) {
			lo = t
		}
		if hi.IsZero() || t.After(hi) {
			hi = t
		}
	}
	if lo.IsZero() {
		lo, hi = now, now
	}
	return fmt.Sprintf("Từ %s đến %s", shortDate(lo), shortDate(hi))
}

func shortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}
