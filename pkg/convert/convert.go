// Package convert provides small string conversion helpers.
package convert

import "strconv"

type StrTo string

func (s StrTo) String() string {
	return string(s)
}

func (s StrTo) Int() (int, error) {
	return strconv.Atoi(s.String())
}

// MustInt converts to int, returning 0 on failure.
func (s StrTo) MustInt() int {
	v, _ := s.Int()
	return v
}

func (s StrTo) Int64() (int64, error) {
	return strconv.ParseInt(s.String(), 10, 64)
}

// MustInt64 converts to int64, returning 0 on failure.
func (s StrTo) MustInt64() int64 {
	v, _ := s.Int64()
	return v
}

func (s StrTo) Bool() (bool, error) {
	return strconv.ParseBool(s.String())
}

// MustBool converts to bool, returning false on failure.
func (s StrTo) MustBool() bool {
	v, _ := s.Bool()
	return v
}
