package form

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/G-Node/sieve/sieve/field"
)

// countingField validates to a fixed result and counts calls.
type countingField struct {
	valid bool
	calls int
}

func (c *countingField) Validate() bool     { c.calls++; return c.valid }
func (c *countingField) Value() interface{} { return c.valid }

func validForm() *Form {
	f := New("test")
	f.Add("name", field.NewTextField("Alice", field.Options{Blank: field.DenyBlank}))
	f.Add("email", field.NewEmailField("a@b.co", field.EmailOptions{}))
	f.Add("passwords", field.NewSetPasswordFields("abc", "abc"))
	f.Add("terms", field.NewCheckboxField("on", field.Options{}))
	return f
}

// saveResult runs save and returns the single error passed to the callback.
func saveResult(t *testing.T, save func(Callback)) error {
	calls := 0
	var result error
	save(func(err error) {
		calls++
		result = err
	})
	if calls != 1 {
		t.Fatalf("Callback called %d times, expected 1", calls)
	}
	return result
}

func TestFormValidate(t *testing.T) {
	f := validForm()
	if !f.Validate() {
		t.Fatalf("Valid form failed validation: %v", f.Invalid())
	}
	if len(f.Invalid()) != 0 {
		t.Fatalf("Valid form reports invalid fields: %v", f.Invalid())
	}

	f.Add("choice", field.NewChoiceField("a", field.ChoiceOptions{}))
	if f.Validate() {
		t.Fatal("Form with invalid field passed validation")
	}
	if inv := f.Invalid(); !reflect.DeepEqual(inv, []string{"choice"}) {
		t.Fatalf("Unexpected invalid fields: %v", inv)
	}
	// idempotent
	if f.Validate() {
		t.Fatal("Second validation changed the result")
	}
}

func TestFormValidateShortCircuit(t *testing.T) {
	first := &countingField{valid: false}
	second := &countingField{valid: true}
	f := New("short")
	f.Add("first", first)
	f.Add("second", second)
	if f.Validate() {
		t.Fatal("Form with failing field passed validation")
	}
	if second.calls != 0 {
		t.Fatalf("Validation continued after first failure: %d calls", second.calls)
	}
}

func TestFormEmpty(t *testing.T) {
	f := New("empty")
	if !f.Validate() {
		t.Fatal("Empty form failed validation")
	}
	var zero Form
	if !zero.Validate() {
		t.Fatal("Zero form failed validation")
	}
	zero.Add("x", field.NewTextField("", field.Options{}))
	if zero.Len() != 1 {
		t.Fatalf("Zero form has %d fields after Add", zero.Len())
	}
}

func TestFormFields(t *testing.T) {
	f := validForm()
	expected := []string{"name", "email", "passwords", "terms"}
	if names := f.Names(); !reflect.DeepEqual(names, expected) {
		t.Fatalf("Unexpected field order: %v", names)
	}

	replacement := field.NewTextField("", field.Options{Blank: field.DenyBlank})
	f.Add("email", replacement)
	if names := f.Names(); !reflect.DeepEqual(names, expected) {
		t.Fatalf("Replacing a field changed the order: %v", names)
	}
	if f.Len() != len(expected) {
		t.Fatalf("Replacing a field changed the field count: %d", f.Len())
	}
	if fld, ok := f.Field("email"); !ok || fld != replacement {
		t.Fatal("Field lookup did not return the replacement")
	}
	if _, ok := f.Field("missing"); ok {
		t.Fatal("Field lookup found a missing field")
	}

	values := f.Values()
	if values["name"] != "Alice" || values["terms"] != true {
		t.Fatalf("Unexpected values: %v", values)
	}

	var visited []string
	f.Each(func(name string, _ field.Field) { visited = append(visited, name) })
	if !reflect.DeepEqual(visited, expected) {
		t.Fatalf("Each visited %v", visited)
	}
}

func TestFormSave(t *testing.T) {
	if err := saveResult(t, validForm().Save); err != nil {
		t.Fatalf("Saving valid form failed: %v", err)
	}

	invalid := validForm()
	invalid.Add("passwords", field.NewSetPasswordFields("abc", "xyz"))
	err := saveResult(t, invalid.Save)
	if err != ErrValidation {
		t.Fatalf("Unexpected error saving invalid form: %v", err)
	}
	if err.Error() != "Form failed validation." {
		t.Fatalf("Unexpected validation message: %q", err.Error())
	}

	if err := saveResult(t, invalid.SaveUnvalidated); err != nil {
		t.Fatalf("Unvalidated save failed: %v", err)
	}
	if err := saveResult(t, func(cb Callback) { invalid.SaveWith(false, cb) }); err != nil {
		t.Fatalf("SaveWith(false) failed: %v", err)
	}
	if err := saveResult(t, func(cb Callback) { invalid.SaveWith(true, cb) }); err != ErrValidation {
		t.Fatalf("SaveWith(true) on invalid form returned %v", err)
	}

	// nil callbacks are allowed
	invalid.Save(nil)
}

func TestFormSaver(t *testing.T) {
	var saved map[string]interface{}
	f := validForm()
	f.Options = "opts"
	f.Saver = SaverFunc(func(sf *Form, done Callback) {
		if sf.Options != "opts" {
			t.Errorf("Saver got options %v", sf.Options)
		}
		saved = sf.Values()
		done(nil)
	})
	if err := saveResult(t, f.Save); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved["name"] != "Alice" {
		t.Fatalf("Saver did not receive form values: %v", saved)
	}

	// the saver is not called for invalid forms
	saved = nil
	f.Add("name", field.NewTextField("", field.Options{Blank: field.DenyBlank}))
	if err := saveResult(t, f.Save); err != ErrValidation {
		t.Fatalf("Unexpected error: %v", err)
	}
	if saved != nil {
		t.Fatal("Saver called for invalid form")
	}
}

func TestFormSaverError(t *testing.T) {
	saveErr := errors.New("disk full")
	f := validForm()
	f.Saver = SaverFunc(func(_ *Form, done Callback) {
		done(saveErr)
		done(nil) // ignored
	})
	if err := saveResult(t, f.Save); err != saveErr {
		t.Fatalf("Save error not passed through: %v", err)
	}
}

func TestFormSaverAsync(t *testing.T) {
	f := validForm()
	f.Saver = SaverFunc(func(_ *Form, done Callback) {
		go func() {
			time.Sleep(time.Millisecond)
			done(nil)
		}()
	})
	result := make(chan error, 2)
	f.Save(func(err error) { result <- err })
	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("Async save failed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Async save never completed")
	}
}
