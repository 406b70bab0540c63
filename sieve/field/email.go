package field

import "regexp"

// DefaultEmailExpression accepts anything shaped like user@host.tld with a
// two or three character suffix.  It is not anchored.
var DefaultEmailExpression = regexp.MustCompile(`\S+@\S+\.\S{2,3}`)

// EmailOptions configures an EmailField.
type EmailOptions struct {
	// Blank must be AllowBlank for an empty value to pass.  The default
	// does not permit empty values.
	Blank Blank
	// Expression overrides DefaultEmailExpression.
	Expression *regexp.Regexp
}

// EmailField validates an email address.
type EmailField struct {
	value   string
	options EmailOptions
}

// NewEmailField returns an email field.
func NewEmailField(value string, opts EmailOptions) *EmailField {
	if opts.Expression == nil {
		opts.Expression = DefaultEmailExpression
	}
	return &EmailField{value: value, options: opts}
}

// Validate passes an empty value when blanks are allowed, otherwise the value
// must match the expression.
func (f *EmailField) Validate() bool {
	if f.options.Blank == AllowBlank && f.value == "" {
		return true
	}
	return f.options.Expression.MatchString(f.value)
}

func (f *EmailField) Value() interface{} { return f.value }
func (f *EmailField) String() string     { return f.value }
