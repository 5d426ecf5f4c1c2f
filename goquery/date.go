package goquery

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/araddon/dateparse"
)

var (
	trailingOffsetRe = regexp.MustCompile(`\s*[+-]\d{4}$`)
	dateTimeSepRe    = regexp.MustCompile(`(\d)T(\d)`)
)

// PublishDate returns the publish time declared by the page, formatted the
// way the publisher prints bylines and kept in the page's own time zone.
// Dates that do not parse are returned as found, minus any trailing zone
// offset. Returns "" when the page declares no date.
func PublishDate(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	raw := metaContent(doc, `meta[property="article:published_time"]`)
	if raw == "" {
		raw = metaContent(doc, `meta[name="pubdate"]`)
	}
	if raw == "" {
		raw = strings.TrimSpace(doc.Find(".publish-date, .date, .time, .post-date").First().Text())
	}
	if raw == "" {
		return ""
	}

	if t, err := dateparse.ParseIn(raw, time.Local, dateparse.PreferMonthFirst(false)); err == nil {
		return tccs.FormatPublishDate(t)
	}
	raw = trailingOffsetRe.ReplaceAllString(raw, "")
	return strings.TrimSpace(dateTimeSepRe.ReplaceAllString(raw, "$1 $2"))
}
