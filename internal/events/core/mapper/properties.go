package mapper

import (
	"encoding/json"
	"maps"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"calq-destination-service/internal/events/core/domain"
)

// revenueKeys are checked in order; the first one present supplies the sale value.
var revenueKeys = []string{"revenue", "value"}

// properties builds the enriched property set shared by track, page and screen.
// The result is a fresh map the caller may modify.
func properties(e *domain.Event) map[string]any {
	props := make(map[string]any, len(e.Properties)+8)
	maps.Copy(props, e.Properties)

	props["$device_agent"] = e.Context.UserAgent

	if res, ok := resolution(e.Context.Screen); ok {
		props["$device_resolution"] = res
	}

	if c := e.Context.Campaign; c != nil {
		props["$utm_campaign"] = c.Name
		props["$utm_source"] = c.Source
		props["$utm_medium"] = c.Medium
		props["$utm_content"] = c.Content
		props["$utm_term"] = c.Term
	}

	sale(props)

	return domain.Reject(props)
}

// resolution returns "<width>x<height>" only when both dimensions are positive numbers.
func resolution(s *domain.Screen) (string, bool) {
	if s == nil {
		return "", false
	}
	width, ok := number(s.Width)
	if !ok || width <= 0 {
		return "", false
	}
	height, ok := number(s.Height)
	if !ok || height <= 0 {
		return "", false
	}
	return formatNumber(width) + "x" + formatNumber(height), true
}

// sale replaces currency and revenue with Calq's sale fields. Calq needs both
// together or neither, so nothing changes unless both are valid.
func sale(props map[string]any) {
	currency, ok := props["currency"].(string)
	if !ok || utf8.RuneCountInString(currency) != 3 {
		return
	}

	for _, key := range revenueKeys {
		raw, present := props[key]
		if !present || domain.IsEmpty(raw) {
			continue
		}
		value, ok := number(raw)
		if !ok {
			return
		}
		props["$sale_currency"] = currency
		props["$sale_value"] = value
		delete(props, "currency")
		delete(props, key)
		return
	}
}

// number converts JSON-ish numeric values, including numeric strings, to float64.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
