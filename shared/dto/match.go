package dto

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Match reports whether record satisfies the filter. Columns are resolved through
// the `db` tags of record, including embedded structs.
func (f *Filter) Match(record any) bool {
	value, ok := FieldValue(record, f.Field)
	if !ok {
		return false
	}

	switch f.Operator {
	case FilterOperatorEq:
		return Equal(value, f.Value)
	case FilterOperatorNotEq:
		return !Equal(value, f.Value)
	case FilterOperatorLike:
		return strings.Contains(strings.ToLower(fmt.Sprint(value)), strings.ToLower(fmt.Sprint(f.Value)))
	case FilterOperatorIn:
		list := reflect.ValueOf(f.Value)
		if list.Kind() != reflect.Slice && list.Kind() != reflect.Array {
			return false
		}

		for idx := range list.Len() {
			if Equal(value, list.Index(idx).Interface()) {
				return true
			}
		}

		return false
	case FilterOperatorLessEq:
		cmp, ok := Compare(value, f.Value)

		return ok && cmp <= 0
	case FilterOperatorGreaterEq:
		cmp, ok := Compare(value, f.Value)

		return ok && cmp >= 0
	case FilterOperatorLess:
		cmp, ok := Compare(value, f.Value)

		return ok && cmp < 0
	case FilterOperatorGreater:
		cmp, ok := Compare(value, f.Value)

		return ok && cmp > 0
	case FilterIsNull:
		return value == nil
	case FilterIsNotNull:
		return value != nil
	default:
		return false
	}
}

// Match reports whether record satisfies the group. An empty group matches everything.
func (f *FilterGroup) Match(record any) bool {
	if len(f.Filters) == 0 {
		return true
	}

	anyOf := f.Operator == FilterGroupOperatorOr

	for _, filter := range f.Filters {
		var matched bool

		switch fill := filter.(type) {
		case Filter:
			matched = fill.Match(record)
		case FilterGroup:
			matched = fill.Match(record)
		default:
			continue
		}

		if anyOf && matched {
			return true
		}

		if !anyOf && !matched {
			return false
		}
	}

	return !anyOf
}

// FieldValue returns the value of the field tagged `db:"column"`. Nil pointers yield nil.
func FieldValue(record any, column string) (any, bool) {
	val := reflect.Indirect(reflect.ValueOf(record))
	if val.Kind() != reflect.Struct {
		return nil, false
	}

	typ := val.Type()

	for idx := range typ.NumField() {
		field := typ.Field(idx)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if value, ok := FieldValue(val.Field(idx).Interface(), column); ok {
				return value, true
			}

			continue
		}

		if field.Tag.Get("db") != column {
			continue
		}

		fieldValue := val.Field(idx)
		if fieldValue.Kind() == reflect.Pointer {
			if fieldValue.IsNil() {
				return nil, true
			}

			fieldValue = fieldValue.Elem()
		}

		return fieldValue.Interface(), true
	}

	return nil, false
}

// Equal compares two scalar values, tolerating numeric kind differences and time zones.
func Equal(left, right any) bool {
	if cmp, ok := Compare(left, right); ok {
		return cmp == 0
	}

	return reflect.DeepEqual(left, right)
}

// Compare orders two scalar values of compatible kinds.
func Compare(left, right any) (int, bool) {
	if lt, ok := left.(time.Time); ok {
		rt, ok := right.(time.Time)
		if !ok {
			return 0, false
		}

		return lt.Compare(rt), true
	}

	lv := reflect.ValueOf(left)
	rv := reflect.ValueOf(right)

	if !lv.IsValid() || !rv.IsValid() {
		return 0, false
	}

	switch {
	case lv.Kind() == reflect.String && rv.Kind() == reflect.String:
		return strings.Compare(lv.String(), rv.String()), true
	case isNumber(lv) && isNumber(rv):
		lf, rf := toFloat(lv), toFloat(rv)

		switch {
		case lf < rf:
			return -1, true
		case lf > rf:
			return 1, true
		default:
			return 0, true
		}
	case lv.Kind() == reflect.Bool && rv.Kind() == reflect.Bool:
		if lv.Bool() == rv.Bool() {
			return 0, true
		}

		if !lv.Bool() {
			return -1, true
		}

		return 1, true
	}

	return 0, false
}

func isNumber(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func toFloat(value reflect.Value) float64 {
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(value.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(value.Uint())
	default:
		return value.Float()
	}
}
