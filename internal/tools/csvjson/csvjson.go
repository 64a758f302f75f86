// Package csvjson converts between CSV text and JSON arrays of flat
// objects.
package csvjson

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/tools/jsonvalue"
)

var (
	ErrTooShort   = apperr.Validationf("CSV must have at least a header and one row of data.")
	ErrEmptyArray = apperr.Validationf("JSON array is empty.")
)

// ToJSON reads CSV with a header row and returns an array of objects.
// Header names and cells are trimmed; short rows pad with "". Blank
// lines are ignored.
func ToJSON(input string) (jsonvalue.Value, error) {
	r := csv.NewReader(strings.NewReader(input))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return jsonvalue.Value{}, apperr.Validation(err, fmt.Sprintf("Invalid CSV: %v", err))
		}
		if blank(rec) {
			continue
		}
		records = append(records, rec)
	}
	if len(records) < 2 {
		return jsonvalue.Value{}, ErrTooShort
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]jsonvalue.Value, 0, len(records)-1)
	for _, rec := range records[1:] {
		obj := jsonvalue.ObjectValue()
		for i, h := range headers {
			cell := ""
			if i < len(rec) {
				cell = strings.TrimSpace(rec[i])
			}
			obj.Set(h, jsonvalue.StringValue(cell))
		}
		rows = append(rows, obj)
	}
	return jsonvalue.ArrayValue(rows...), nil
}

// ToJSONText is ToJSON rendered with a two-space indent.
func ToJSONText(input string) (string, error) {
	v, err := ToJSON(input)
	if err != nil {
		return "", err
	}
	out, err := v.Indent("  ")
	return string(out), err
}

// ToCSV flattens a JSON array (or single object) into CSV. Nested
// objects become dot-separated columns; the header is the union of every
// row's keys in first-seen order.
func ToCSV(input string) (string, error) {
	v, err := jsonvalue.Parse([]byte(input))
	if err != nil {
		return "", apperr.Validation(err, fmt.Sprintf("Invalid JSON: %v", err))
	}

	items := []jsonvalue.Value{v}
	if v.Kind() == jsonvalue.Array {
		items = v.Items()
	}
	if len(items) == 0 {
		return "", ErrEmptyArray
	}

	var headers []string
	seen := map[string]bool{}
	rows := make([]map[string]jsonvalue.Value, len(items))
	for i, item := range items {
		row := map[string]jsonvalue.Value{}
		members := jsonvalue.Flatten(item)
		if item.IsScalar() {
			members = []jsonvalue.Member{{Key: "value", Value: item}}
		}
		for _, m := range members {
			row[m.Key] = m.Value
			if !seen[m.Key] {
				seen[m.Key] = true
				headers = append(headers, m.Key)
			}
		}
		rows[i] = row
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return "", err
	}
	record := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			record[i] = row[h].Text()
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
