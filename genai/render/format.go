// Package render turns tool output into short human-readable summaries.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	maxListed     = 5
	maxDescRunes  = 60
	maxItemRunes  = 80
	maxValueRunes = 200
	maxTextRunes  = 500
)

const (
	GlyphError   = "❌"
	GlyphAsk     = "❓"
	GlyphOK      = "✅"
	GlyphEmpty   = "📭"
	GlyphList    = "📋"
	GlyphObject  = "📄"
	noResultsMsg = GlyphEmpty + " No results found"
)

// Content renders raw tool text: JSON is summarised with Format, anything
// else is echoed, truncated to 500 runes.
func Content(text string) string {
	if data, ok := decode(text); ok {
		return Format(data)
	}
	if truncated, cut := truncate(text, maxTextRunes); cut {
		return GlyphOK + " " + truncated + "..."
	}
	return GlyphOK + " " + text
}

// Format renders decoded JSON. Search pages ({"items":[...],"total_count":n})
// and lists show up to five titles, objects are pretty printed and
// scalars are echoed.
func Format(data interface{}) string {
	switch actual := data.(type) {
	case map[string]interface{}:
		if items, ok := actual["items"].([]interface{}); ok {
			if total, has := actual["total_count"]; has {
				return formatPage(total, items)
			}
		}
		return GlyphObject + " Result:\n" + prettyJSON(actual)
	case []interface{}:
		if len(actual) == 0 {
			return noResultsMsg
		}
		return formatItems(strconv.Itoa(len(actual)), actual, false)
	}
	value, _ := truncate(stringify(data), maxValueRunes)
	return GlyphOK + " " + value
}

func formatPage(total interface{}, items []interface{}) string {
	if isZero(total) {
		return noResultsMsg
	}
	return formatItems(stringify(total), items, true)
}

func formatItems(total string, items []interface{}, withDescription bool) string {
	out := &strings.Builder{}
	fmt.Fprintf(out, "%v %v results found:\n", GlyphList, total)
	for i, item := range items {
		if i == maxListed {
			break
		}
		record, ok := item.(map[string]interface{})
		if !ok {
			value, _ := truncate(stringify(item), maxItemRunes)
			fmt.Fprintf(out, "  • %v\n", value)
			continue
		}
		out.WriteString("  • " + title(record, i))
		if withDescription {
			if desc := record["description"]; truthy(desc) {
				value, _ := truncate(stringify(desc), maxDescRunes)
				out.WriteString(" - " + value)
			}
		}
		out.WriteString("\n")
	}
	if len(items) > maxListed {
		fmt.Fprintf(out, "\n... and %d more.", len(items)-maxListed)
	}
	return out.String()
}

func title(record map[string]interface{}, i int) string {
	for _, key := range []string{"full_name", "name", "title"} {
		if v := record[key]; truthy(v) {
			return stringify(v)
		}
	}
	return "Item " + strconv.Itoa(i+1)
}

func truthy(v interface{}) bool {
	switch actual := v.(type) {
	case nil:
		return false
	case string:
		return actual != ""
	case bool:
		return actual
	case json.Number:
		return !isZero(actual)
	case float64:
		return actual != 0
	case int:
		return actual != 0
	case []interface{}:
		return len(actual) > 0
	case map[string]interface{}:
		return len(actual) > 0
	}
	return true
}

func isZero(v interface{}) bool {
	switch actual := v.(type) {
	case json.Number:
		f, err := actual.Float64()
		return err == nil && f == 0
	case float64:
		return actual == 0
	case int:
		return actual == 0
	case int64:
		return actual == 0
	}
	return false
}

// stringify renders strings verbatim, numbers in their shortest form and
// composites as compact JSON.
func stringify(v interface{}) string {
	switch actual := v.(type) {
	case nil:
		return "null"
	case string:
		return actual
	case json.Number:
		return actual.String()
	case float64:
		return strconv.FormatFloat(actual, 'f', -1, 64)
	case bool, int, int64:
		return fmt.Sprint(actual)
	}
	data, err := marshal(v, "")
	if err != nil {
		return fmt.Sprint(v)
	}
	return data
}

func prettyJSON(v interface{}) string {
	data, err := marshal(v, "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return data
}

func marshal(v interface{}, indent string) (string, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// truncate cuts s to max runes and reports whether it was cut.
func truncate(s string, max int) (string, bool) {
	count := 0
	for i := range s {
		if count == max {
			return s[:i], true
		}
		count++
	}
	return s, false
}

// decode parses a single JSON document, keeping number literals intact.
func decode(text string) (interface{}, bool) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return data, true
}
