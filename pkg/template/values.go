package template

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/wecco-dev/wecco/pkg/dom"
)

// textValue converts a scalar to its text form. ok is false for values that
// are not text-like.
func textValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case []byte:
		return string(x), true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(x).Int(), 10), true
	case uint, uint8, uint16, uint32, uint64, uintptr:
		return strconv.FormatUint(reflect.ValueOf(x).Uint(), 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	case error:
		return x.Error(), true
	}
	return "", false
}

// attrText is textValue with a fmt fallback; attribute values always
// stringify.
func attrText(v any) string {
	if s, ok := textValue(v); ok {
		return s
	}
	return fmt.Sprint(v)
}

// isList reports whether v is a slice or array other than []byte.
func isList(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// listItems returns the elements of a list value.
func listItems(v any) []any {
	if items, ok := v.([]any); ok {
		return items
	}
	rv := reflect.ValueOf(v)
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items
}

// truthy follows the usual loose truthiness: false, zero numbers, empty
// strings, nil and empty collections are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Slice, reflect.Map:
		return !rv.IsNil() && rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// sameValue reports whether a and b are equal comparable values of the same
// type. Values of non-comparable types (funcs, slices, maps) are never
// considered the same.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() || !ra.Comparable() {
		return false
	}
	return ra.Equal(rb)
}

// isNilPointer reports whether v is a nil *Result, *Template or *dom.Node.
// Those render as nothing.
func isNilPointer(v any) bool {
	switch x := v.(type) {
	case *Result:
		return x == nil
	case *Template:
		return x == nil
	case *dom.Node:
		return x == nil
	}
	return false
}
