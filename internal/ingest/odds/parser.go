// Package odds normalizes odds-API event payloads into player props.
package odds

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fortuna/delphi/internal/store"
)

// defaultLine is used for yes/no markets that carry no point
const defaultLine = 0.5

// ParseFile reads a saved odds payload
func ParseFile(path string) ([]*store.PlayerProp, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read odds file: %w", err)
	}
	return Parse(data)
}

// Parse accepts a single event, a list of events, or a list whose items are
// themselves single-event lists. Outcomes without a player are dropped.
func Parse(data []byte) ([]*store.PlayerProp, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode odds: %w", err)
	}

	var props []*store.PlayerProp
	for _, event := range events(raw) {
		props = append(props, parseEvent(event)...)
	}
	return props, nil
}

func events(raw interface{}) []map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		return []map[string]interface{}{v}
	case []interface{}:
		var out []map[string]interface{}
		for _, item := range v {
			out = append(out, events(item)...)
		}
		return out
	}
	return nil
}

func parseEvent(event map[string]interface{}) []*store.PlayerProp {
	eventID := extractString(event, "id")

	var props []*store.PlayerProp
	for _, b := range extractArray(event, "bookmakers") {
		bookmaker, ok := b.(map[string]interface{})
		if !ok {
			continue
		}
		for _, m := range extractArray(bookmaker, "markets") {
			market, ok := m.(map[string]interface{})
			if !ok {
				continue
			}
			lastUpdate := parseTime(extractString(market, "last_update"))

			for _, o := range extractArray(market, "outcomes") {
				outcome, ok := o.(map[string]interface{})
				if !ok {
					continue
				}
				player := extractString(outcome, "description")
				if player == "" {
					continue
				}
				line := defaultLine
				if _, ok := outcome["point"]; ok {
					line = parseFloat(outcome["point"])
				}

				props = append(props, &store.PlayerProp{
					EventID:      eventID,
					BookmakerKey: extractString(bookmaker, "key"),
					Bookmaker:    fallbackString(extractString(bookmaker, "title"), extractString(bookmaker, "key")),
					MarketKey:    extractString(market, "key"),
					Side:         extractString(outcome, "name"),
					PlayerName:   player,
					Price:        parseFloat(outcome["price"]),
					Line:         line,
					LastUpdate:   lastUpdate,
				})
			}
		}
	}
	return props
}

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if strVal, ok := v.(string); ok {
			return strVal
		}
	}
	return ""
}

func fallbackString(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

func parseFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	case int:
		return float64(val)
	default:
		return 0
	}
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
