package claim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// maxEntryDuration bounds a single work entry.
const maxEntryDuration = 24 * time.Hour

var (
	dateLayouts = []string{"2006-01-02", time.RFC3339}
	timeLayouts = []string{"15:04", "15:04:05"}
)

// TimeEntry is one raw work entry as posted by the client.
type TimeEntry struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Aggregator turns raw time entries into a claim's monthly hours.
type Aggregator struct {
	log logrus.FieldLogger
}

// NewAggregator creates an Aggregator that logs skipped entries to log.
func NewAggregator(log logrus.FieldLogger) *Aggregator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Aggregator{log: log}
}

// ParseEntries strictly decodes a JSON array of entries. Empty input yields no entries.
// Structural problems fail the whole batch with ErrMalformedEntries.
func ParseEntries(raw []byte) ([]TimeEntry, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var entries []TimeEntry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEntries, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after entries", ErrMalformedEntries)
	}
	return entries, nil
}

// TotalJSON parses raw entries and totals them for monthKey.
func (a *Aggregator) TotalJSON(monthKey string, raw []byte) (decimal.Decimal, error) {
	entries, err := ParseEntries(raw)
	if err != nil {
		a.log.WithError(err).Error("time entries could not be decoded")
		return decimal.Zero, err
	}
	return a.Total(monthKey, entries), nil
}

// Total sums the durations of entries that fall in monthKey and rounds to one decimal place.
// Unparsable, out-of-month, non-positive and over-long entries are skipped.
func (a *Aggregator) Total(monthKey string, entries []TimeEntry) decimal.Decimal {
	var seconds int64
	for i, e := range entries {
		log := a.log.WithFields(logrus.Fields{"entry": i, "date": e.Date, "start": e.Start, "end": e.End})

		date, ok := parseFirst(dateLayouts, e.Date)
		if !ok {
			log.Warn("skipping work entry with invalid date")
			continue
		}
		if date.Format("2006-01") != monthKey {
			log.WithField("month_key", monthKey).Warn("skipping work entry outside claim month")
			continue
		}
		start, okStart := parseFirst(timeLayouts, e.Start)
		end, okEnd := parseFirst(timeLayouts, e.End)
		if !okStart || !okEnd {
			log.Warn("skipping work entry with invalid time")
			continue
		}
		d := end.Sub(start)
		if d <= 0 {
			log.Warn("skipping work entry with non-positive duration")
			continue
		}
		if d > maxEntryDuration {
			log.WithField("hours", d.Hours()).Warn("skipping work entry with unreasonable duration")
			continue
		}
		seconds += int64(d / time.Second)
	}
	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600)).Round(1)
}

func parseFirst(layouts []string, v string) (time.Time, bool) {
	for _, l := range layouts {
		if t, err := time.Parse(l, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
