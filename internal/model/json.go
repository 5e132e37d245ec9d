package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonValue / jsonScan back the TEXT columns used for nested artifact data.
// SQLite and PostgreSQL both take JSON as text, so one codec covers the
// driver switch.
func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src any, dst any) error {
	switch s := src.(type) {
	case nil:
		return nil
	case string:
		if s == "" {
			return nil
		}
		return json.Unmarshal([]byte(s), dst)
	case []byte:
		if len(s) == 0 {
			return nil
		}
		return json.Unmarshal(s, dst)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", src)
	}
}

// StringList is a JSON array of strings stored in a TEXT column.
type StringList []string

func (l StringList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *StringList) Scan(src any) error          { return jsonScan(src, l) }

// IntList is a JSON array of ints stored in a TEXT column.
type IntList []int

func (l IntList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *IntList) Scan(src any) error          { return jsonScan(src, l) }
