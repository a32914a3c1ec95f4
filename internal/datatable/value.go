package datatable

import (
	"cmp"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// DateLayout is the layout used when a time.Time is shown or exported as text.
const DateLayout = "2006-01-02"

// valueRank orders values of different kinds so that mixed columns
// still sort deterministically.
type valueRank int

const (
	rankNil valueRank = iota
	rankBool
	rankNumber
	rankTime
	rankString
	rankOther
)

// normalize reduces v to one of: nil, bool, int64, uint64, float64,
// time.Time, string, or the original value for anything else. Pointers
// are dereferenced; nil pointers and zero times are nil.
func normalize(v any) (any, valueRank) {
	if v == nil {
		return nil, rankNil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, rankNil
	}

	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return nil, rankNil
		}
		return val, rankTime
	case string:
		return val, rankString
	case fmt.Stringer:
		s, ok := stringerText(val)
		if !ok {
			return nil, rankNil
		}
		return s, rankString
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return normalize(rv.Elem().Interface())
	case reflect.Bool:
		return rv.Bool(), rankBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), rankNumber
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), rankNumber
	case reflect.Float32, reflect.Float64:
		return rv.Float(), rankNumber
	case reflect.String:
		return rv.String(), rankString
	}
	return v, rankOther
}

// stringerText calls String, treating a panic (a nil map or a nil
// embedded pointer inside a value receiver) as a missing value.
func stringerText(s fmt.Stringer) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text, ok = "", false
		}
	}()
	return s.String(), true
}

// compareNumbers orders normalized numbers exactly. Integers of either
// sign compare without conversion; float64 is used only when one side
// is a float.
func compareNumbers(a, b any) int {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return cmp.Compare(x, y)
		case uint64:
			if x < 0 {
				return -1
			}
			return cmp.Compare(uint64(x), y)
		case float64:
			return cmp.Compare(float64(x), y)
		}
	case uint64:
		switch y := b.(type) {
		case uint64:
			return cmp.Compare(x, y)
		case int64, float64:
			return -compareNumbers(b, a)
		}
	case float64:
		switch y := b.(type) {
		case float64:
			return cmp.Compare(x, y)
		case int64, uint64:
			return -compareNumbers(b, a)
		}
	}
	return 0
}

// compareValues orders two raw values the way the relational operators
// would for same-typed scalars. Values of different kinds are ordered by
// kind rank; values that cannot be compared are equal.
func compareValues(a, b any) int {
	na, ra := normalize(a)
	nb, rb := normalize(b)

	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankBool:
		x, y := na.(bool), nb.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case rankNumber:
		return compareNumbers(na, nb)
	case rankTime:
		return na.(time.Time).Compare(nb.(time.Time))
	case rankString:
		return cmp.Compare(na.(string), nb.(string))
	}
	return 0
}

// scalarText converts v to display text. The boolean result is false for
// nil and composite values (structs, maps, slices), which have no
// meaningful text form.
func scalarText(v any) (string, bool) {
	n, rank := normalize(v)
	switch rank {
	case rankNil:
		return "", false
	case rankBool:
		return strconv.FormatBool(n.(bool)), true
	case rankNumber:
		switch x := n.(type) {
		case int64:
			return strconv.FormatInt(x, 10), true
		case uint64:
			return strconv.FormatUint(x, 10), true
		default:
			return strconv.FormatFloat(x.(float64), 'f', -1, 64), true
		}
	case rankTime:
		return n.(time.Time).Format(DateLayout), true
	case rankString:
		return n.(string), true
	}
	return "", false
}

// searchText is the text a value is matched against by the global search.
// Composite values fall back to their fmt representation so that nested
// objects remain searchable by their contents.
func searchText(v any) string {
	if s, ok := scalarText(v); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
