package field

import (
	"math"
	"reflect"
)

// CheckboxField holds the checked state of a checkbox.  The raw input is
// reduced to a boolean when the field is created.
type CheckboxField struct {
	value   bool
	options Options
}

// NewCheckboxField returns a checkbox field that is checked if raw is set and
// truthy.  Browsers send "on" for checked boxes and nothing otherwise.
func NewCheckboxField(raw interface{}, opts Options) *CheckboxField {
	return &CheckboxField{value: truthy(raw), options: opts}
}

// Checked reports whether the box was checked.
func (f *CheckboxField) Checked() bool { return f.value }

// Validate applies the base blank rule to the boolean value, which is never
// empty, so a checkbox always validates.
func (f *CheckboxField) Validate() bool {
	return validateBlank(f.value, f.options.Blank)
}

func (f *CheckboxField) Value() interface{} { return f.value }

// truthy follows the loose truth rules of form data: nil, false, empty
// strings, zero and NaN are false, anything else is true.
func truthy(raw interface{}) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case float64:
		return v != 0 && !math.IsNaN(v)
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}
