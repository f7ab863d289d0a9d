package openproject

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// The v3 API takes a JSON filters query parameter: an array of
// single-key objects mapping a filter name to an operator and values.
// Only the two shapes below are used by the fallback tools.

// OpenStatusFilter selects work packages whose status is open.
// The "o" operator needs no values.
func OpenStatusFilter() string {
	filters := []map[string]any{
		{"status": map[string]any{"operator": "o", "values": []string{}}},
	}
	data, _ := json.Marshal(filters)
	return string(data)
}

// DueWithinFilter selects work packages due within the next days days.
func DueWithinFilter(days int) string {
	filters := []map[string]any{
		{"dueDate": map[string]any{"operator": "<t+", "values": []string{strconv.Itoa(days)}}},
	}
	data, _ := json.Marshal(filters)
	return string(data)
}

// FilterQuery wraps a filter expression in the query values the API expects.
// An empty expression yields no query parameters at all.
func FilterQuery(expr string) url.Values {
	if expr == "" {
		return nil
	}
	q := url.Values{}
	q.Set("filters", expr)
	return q
}
