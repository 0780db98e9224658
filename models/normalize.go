package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ID is an API identifier. The API sends ids as numbers in some places and
// strings in others; both decode to the same ID.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	v, err := decodeValue(data)
	if err != nil {
		return err
	}
	*id = idFrom(v)
	return nil
}

func (id ID) String() string { return string(id) }

// WireID is an ID in a request payload. Integer ids go out as JSON numbers,
// which is what the API binds them to; anything else stays a string.
type WireID ID

func (id WireID) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(id))
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return []byte(s), nil
	}
	return json.Marshal(string(id))
}

// object is a decoded JSON object with numbers kept as json.Number.
type object map[string]any

func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeObject(data []byte) (object, error) {
	v, err := decodeValue(data)
	if err != nil {
		return nil, err
	}
	switch m := v.(type) {
	case map[string]any:
		return object(m), nil
	case nil:
		return object{}, nil
	default:
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
}

// first returns the first present, non-null value among keys.
func (o object) first(keys ...string) any {
	for _, k := range keys {
		if v, ok := o[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstTruthy is first, but also skips empty strings and zero numbers.
func (o object) firstTruthy(keys ...string) any {
	for _, k := range keys {
		v, ok := o[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t == "" {
				continue
			}
		case json.Number:
			if d, err := decimal.NewFromString(t.String()); err == nil && d.IsZero() {
				continue
			}
		case bool:
			if !t {
				continue
			}
		}
		return v
	}
	return nil
}

func (o object) obj(key string) object {
	if m, ok := o[key].(map[string]any); ok {
		return object(m)
	}
	return nil
}

func (o object) list(keys ...string) []any {
	for _, k := range keys {
		if l, ok := o[k].([]any); ok {
			return l
		}
	}
	return nil
}

func idFrom(v any) ID {
	switch t := v.(type) {
	case string:
		return ID(strings.TrimSpace(t))
	case json.Number:
		return ID(t.String())
	case float64:
		return ID(decimal.NewFromFloat(t).String())
	case nil:
		return ""
	default:
		return ID(fmt.Sprint(t))
	}
}

func stringFrom(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func decimalFrom(v any) decimal.Decimal {
	switch t := v.(type) {
	case json.Number:
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(t)); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(t)
	}
	return decimal.Zero
}

func intFrom(v any, fallback int) int {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return int(d.IntPart())
		}
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(t)); err == nil {
			return int(d.IntPart())
		}
	case float64:
		return int(t)
	}
	return fallback
}

func optionalString(v any) *string {
	s := stringFrom(v)
	if s == "" {
		return nil
	}
	return &s
}

// remarshal turns a decoded value back into JSON so it can be decoded into a
// typed record with its own normalizer.
func remarshal(v any, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
