// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Mode selects the retrieval strategy derived from a period expression.
type Mode string

const (
	// ModeToday fetches the daily announcement feed, falling back to the
	// HTML "new" listing.
	ModeToday Mode = "today"

	// ModeDateRange queries the API over a submitted-date span, falling
	// back to the HTML "recent" listing when empty.
	ModeDateRange Mode = "daterange"

	// ModeHTMLPage scrapes a named listing page directly.
	ModeHTMLPage Mode = "html_page"
)

const dayStamp = "20060102"

var (
	singleDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearMonth  = regexp.MustCompile(`^\d{4}-\d{2}$`)
	lastDays   = regexp.MustCompile(`^(\d{1,3})d$`)
)

// ParsePeriod turns a human period expression into a retrieval mode and a
// YYYYMMDD date span. For ModeHTMLPage the from value carries the page
// identifier and to is empty; anything unrecognized is treated as a
// literal page identifier.
func ParsePeriod(period string, now time.Time) (Mode, string, string) {
	period = strings.ToLower(strings.TrimSpace(period))

	switch period {
	case "today":
		return ModeToday, "", ""
	case "week", "pastweek":
		return ModeDateRange, now.AddDate(0, 0, -7).Format(dayStamp), now.Format(dayStamp)
	case "month", "pastmonth", "30d":
		return ModeDateRange, now.AddDate(0, 0, -30).Format(dayStamp), now.Format(dayStamp)
	case "recent":
		return ModeHTMLPage, "recent", ""
	}

	if m := lastDays.FindStringSubmatch(period); m != nil {
		n, _ := strconv.Atoi(m[1])
		return ModeDateRange, now.AddDate(0, 0, -n).Format(dayStamp), now.Format(dayStamp)
	}

	if singleDate.MatchString(period) {
		d := strings.ReplaceAll(period, "-", "")
		return ModeDateRange, d, d
	}

	// Date range: YYYY-MM-DD:YYYY-MM-DD. A side that fails calendar
	// validation rejects the whole range.
	if strings.Contains(period, ":") {
		parts := strings.SplitN(period, ":", 2)
		from := strings.TrimSpace(parts[0])
		to := strings.TrimSpace(parts[1])
		if validDate(from) && validDate(to) {
			return ModeDateRange,
				strings.ReplaceAll(from, "-", ""),
				strings.ReplaceAll(to, "-", "")
		}
		return ModeHTMLPage, period, ""
	}

	// Calendar month: YYYY-MM expands to its first and last day.
	if yearMonth.MatchString(period) {
		if t, err := time.Parse("2006-01", period); err == nil {
			first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
			last := first.AddDate(0, 1, -1)
			return ModeDateRange, first.Format(dayStamp), last.Format(dayStamp)
		}
	}

	return ModeHTMLPage, period, ""
}

// validDate reports whether s is a real calendar date in YYYY-MM-DD form.
func validDate(s string) bool {
	if !singleDate.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// dateChunk is one consecutive sub-span of a chunked date range, both ends
// inclusive, in YYYYMMDD form.
type dateChunk struct {
	From string
	To   string
}

// chunkRange splits [from, to] into consecutive non-overlapping chunks of
// at most chunkDays days each, covering the full span with no gaps. A
// chunkDays below 1 is clamped to 1. An unparseable bound yields the whole
// range as a single chunk so the API still sees the caller's input.
func chunkRange(from, to string, chunkDays int) []dateChunk {
	if chunkDays < 1 {
		chunkDays = 1
	}

	start, err1 := time.Parse(dayStamp, from)
	end, err2 := time.Parse(dayStamp, to)
	if err1 != nil || err2 != nil || !start.Before(end) && !start.Equal(end) {
		return []dateChunk{{From: from, To: to}}
	}

	var chunks []dateChunk
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, chunkDays) {
		chunkEnd := cur.AddDate(0, 0, chunkDays-1)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		chunks = append(chunks, dateChunk{
			From: cur.Format(dayStamp),
			To:   chunkEnd.Format(dayStamp),
		})
	}
	return chunks
}
