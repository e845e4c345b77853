package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// ISODateLayout is the wire form in JSON bodies and client paths.
	ISODateLayout = "2006-01-02"
	// StoreDateLayout is the month/day/year form the store uses.
	StoreDateLayout = "01/02/2006"
)

var inputLayouts = []string{
	ISODateLayout,
	"1/2/2006",
	time.RFC3339,
}

// Date is a calendar day without time of day or zone. It is the only date
// type at the API boundary; conversions between the ISO and store forms
// happen here and nowhere else.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD, M/D/YYYY (zero padded or not) and RFC3339.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or MM/DD/YYYY", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(ISODateLayout)
}

// StoreString renders the date in the store's textual form.
func (d Date) StoreString() string {
	return d.Format(StoreDateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalText lets Date bind from path and query parameters.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.StoreString(), nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
