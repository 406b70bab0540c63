// Package form collects named fields into a single submission that validates
// as a whole and hands its values to caller supplied save logic.
package form

import (
	"errors"
	"sync"

	"github.com/G-Node/sieve/sieve/field"
)

// ErrValidation is passed to the save callback when a field fails validation.
var ErrValidation = errors.New("Form failed validation.")

// Callback receives the outcome of a save.  It is called exactly once, with
// nil on success.
type Callback func(err error)

// Saver persists a validated form.  Implementations may work asynchronously
// but must call done exactly once when finished, passing any error unchanged.
type Saver interface {
	Save(f *Form, done Callback)
}

// SaverFunc adapts a function to the Saver interface.
type SaverFunc func(f *Form, done Callback)

// Save calls fn(f, done).
func (fn SaverFunc) Save(f *Form, done Callback) { fn(f, done) }

type entry struct {
	name  string
	field field.Field
}

// Form is one submission's set of fields.
type Form struct {
	// Name identifies the kind of form, e.g. "registration".
	Name string
	// Options is passed through to the Saver untouched.
	Options interface{}
	// Saver performs the actual save.  A nil Saver saves nothing.
	Saver Saver

	fields []entry
	index  map[string]int
}

// New returns an empty form with the given name.
func New(name string) *Form {
	return &Form{Name: name, index: make(map[string]int)}
}

// Add sets the field stored under name.  Adding an existing name replaces
// the field in its original position.
func (f *Form) Add(name string, fld field.Field) *Form {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if idx, ok := f.index[name]; ok {
		f.fields[idx].field = fld
		return f
	}
	f.index[name] = len(f.fields)
	f.fields = append(f.fields, entry{name: name, field: fld})
	return f
}

// Field returns the field stored under name.
func (f *Form) Field(name string) (field.Field, bool) {
	idx, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.fields[idx].field, true
}

// Names returns the field names in insertion order.
func (f *Form) Names() []string {
	names := make([]string, len(f.fields))
	for idx := range f.fields {
		names[idx] = f.fields[idx].name
	}
	return names
}

// Len returns the number of fields.
func (f *Form) Len() int { return len(f.fields) }

// Validate reports whether every field validates.  It stops at the first
// failing field.
func (f *Form) Validate() bool {
	for _, e := range f.fields {
		if !e.field.Validate() {
			return false
		}
	}
	return true
}

// Invalid returns the names of all fields that fail validation.
func (f *Form) Invalid() []string {
	var names []string
	for _, e := range f.fields {
		if !e.field.Validate() {
			names = append(names, e.name)
		}
	}
	return names
}

// Values returns the value of each field keyed by name.
func (f *Form) Values() map[string]interface{} {
	values := make(map[string]interface{}, len(f.fields))
	for _, e := range f.fields {
		values[e.name] = e.field.Value()
	}
	return values
}

// Each calls fn for every field in insertion order.
func (f *Form) Each(fn func(name string, fld field.Field)) {
	for _, e := range f.fields {
		fn(e.name, e.field)
	}
}

// Save validates the form and, if valid, saves it.  done receives
// ErrValidation if validation fails.
func (f *Form) Save(done Callback) {
	f.SaveWith(true, done)
}

// SaveUnvalidated saves the form without validating it first.
func (f *Form) SaveUnvalidated(done Callback) {
	f.SaveWith(false, done)
}

// SaveWith saves the form, validating it first if validate is set.
func (f *Form) SaveWith(validate bool, done Callback) {
	done = once(done)
	if validate && !f.Validate() {
		done(ErrValidation)
		return
	}
	if f.Saver == nil {
		done(nil)
		return
	}
	f.Saver.Save(f, done)
}

// once wraps done so that only its first call is delivered.
func once(done Callback) Callback {
	if done == nil {
		return func(error) {}
	}
	var o sync.Once
	return func(err error) {
		o.Do(func() { done(err) })
	}
}
