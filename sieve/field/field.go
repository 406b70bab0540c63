// Package field implements validated form input values.  Each field kind
// holds one raw input value and its configuration and decides on its own
// whether the value is acceptable.
package field

// Field is a single validated unit of form input.
type Field interface {
	// Validate reports whether the current value satisfies the field's
	// configuration.  The result depends only on the value and options.
	Validate() bool
	// Value returns the (possibly transformed) input value.
	Value() interface{}
}

// Encrypter is a Field whose value can be turned into a one-way digest for
// storage.
type Encrypter interface {
	Field
	Encrypt() (string, error)
}

// Blank controls whether an empty value is acceptable.
type Blank int

const (
	// BlankDefault leaves the decision to the field kind.
	BlankDefault Blank = iota
	// AllowBlank explicitly permits empty values.
	AllowBlank
	// DenyBlank requires a non-empty value.
	DenyBlank
)

// Options configures a plain text field and the checkbox field.
type Options struct {
	Blank Blank
}

// TextField is the base field kind with no format rules.
type TextField struct {
	value   string
	options Options
}

// NewTextField returns a plain text field.
func NewTextField(value string, opts Options) *TextField {
	return &TextField{value: value, options: opts}
}

// Validate fails only for an empty value when blanks are denied.
func (f *TextField) Validate() bool {
	return validateBlank(f.value, f.options.Blank)
}

func (f *TextField) Value() interface{} { return f.value }
func (f *TextField) String() string     { return f.value }

func validateBlank(value interface{}, blank Blank) bool {
	if blank == DenyBlank {
		return value != ""
	}
	return true
}
