package domain

import (
	"bytes"
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// JSONText stores a value as JSON in a text column.
type JSONText[T any] struct {
	Val T
}

func (j JSONText[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.Val)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSONText[T]) Scan(src any) error {
	b, err := textBytes(src)
	if err != nil || len(b) == 0 {
		return err
	}
	return json.Unmarshal(b, &j.Val)
}

func (j JSONText[T]) MarshalJSON() ([]byte, error) { return json.Marshal(j.Val) }

func (j *JSONText[T]) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &j.Val) }

// Gates is the gate list of a status reading. It is never encoded as null.
type Gates []GateStatus

func (g Gates) Value() (driver.Value, error) {
	if g == nil {
		g = Gates{}
	}
	b, err := json.Marshal([]GateStatus(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (g *Gates) Scan(src any) error {
	b, err := textBytes(src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*g = Gates{}
		return nil
	}
	var out []GateStatus
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*g = out
	return nil
}

func (g Gates) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]GateStatus(g))
}

// Coordinates holds a dam location exactly as it was supplied: either "lat,lng"
// or a JSON object with lat and lng. Use geo.ParseCoordinates to read it.
type Coordinates string

func (c Coordinates) IsObject() bool {
	return bytes.HasPrefix(bytes.TrimSpace([]byte(c)), []byte("{"))
}

func (c Coordinates) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("null"), nil
	}
	if c.IsObject() && json.Valid([]byte(c)) {
		return []byte(c), nil
	}
	return json.Marshal(string(c))
}

func (c *Coordinates) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*c = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Coordinates(s)
	case b[0] == '{':
		*c = Coordinates(b)
	default:
		return fmt.Errorf("coordinates must be a string or an object")
	}
	return nil
}

func textBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", src)
	}
}
