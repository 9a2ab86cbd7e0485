package models

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// timestampLayouts - RFC 3339 и варианты, которые отдаёт <input type="datetime-local">.
// Время без зоны считается UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp разбирает время из запроса или из ранее сохранённого документа.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}
