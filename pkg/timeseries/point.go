// Package timeseries defines point records, the numeric value extraction
// rule, and the series transformations used by the correlation engine.
package timeseries

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/marketmood/marketmood/pkg/constants"
)

// Field is a single named value within a point record. Fields keep the order
// they appeared in within the source document because value extraction is
// order-sensitive.
type Field struct {
	Name  string
	Value interface{}
}

// Point is one record of a time series: an optional timestamp field plus any
// number of additional fields, in source order. The timestamp carries no
// meaning for the correlation math; it is retained only for display.
type Point struct {
	Fields []Field
}

// NewPoint constructs a point from fields in the given order.
func NewPoint(fields ...Field) Point {
	return Point{Fields: fields}
}

// Timestamp returns the value of the timestamp field, or nil when absent.
func (p Point) Timestamp() interface{} {
	for _, f := range p.Fields {
		if f.Name == constants.TimestampField {
			return f.Value
		}
	}
	return nil
}

// Value applies the extraction rule to the point:
//  1. a field named "value" holding a number wins;
//  2. otherwise the first non-timestamp field holding a number wins;
//  3. otherwise the point contributes 0.
//
// The rule is total; malformed records never produce an error.
func (p Point) Value() float64 {
	for _, f := range p.Fields {
		if f.Name != constants.ValueField {
			continue
		}
		if v, ok := asNumber(f.Value); ok {
			return v
		}
	}
	for _, f := range p.Fields {
		if f.Name == constants.TimestampField {
			continue
		}
		if v, ok := asNumber(f.Value); ok {
			return v
		}
	}
	return 0
}

// Values applies the extraction rule to every point, preserving order.
func Values(points []Point) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value()
	}
	return values
}

// asNumber reports whether the field value holds a number. Strings are never
// numbers, even when they would parse as one.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// UnmarshalJSON decodes a JSON object into a point while preserving the key
// order of the document. The standard map decoding would lose that order,
// which the extraction rule depends on.
func (p *Point) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode point: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object for point, got %v", tok)
	}

	p.Fields = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode point field name: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string field name, got %v", keyTok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode point field %s: %w", key, err)
		}
		p.Fields = append(p.Fields, Field{Name: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to decode point: %w", err)
	}
	return nil
}

// MarshalJSON encodes the point as a JSON object in field order.
func (p Point) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode point field %s: %w", f.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
