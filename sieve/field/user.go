package field

import "regexp"

// DefaultUserExpression allows 1 to 15 characters of letters, digits and
// @.+-_
var DefaultUserExpression = regexp.MustCompile(`^[a-zA-Z0-9@.+\-_]{1,15}$`)

// UserOptions configures a UserField.
type UserOptions struct {
	// Expression overrides DefaultUserExpression.  It always has to match the
	// whole value.
	Expression *regexp.Regexp
}

// UserField validates a user name.
type UserField struct {
	value      string
	expression *regexp.Regexp
}

// NewUserField returns a user name field.
func NewUserField(value string, opts UserOptions) *UserField {
	expr := DefaultUserExpression
	if opts.Expression != nil {
		expr = regexp.MustCompile(`^(?:` + opts.Expression.String() + `)$`)
	}
	return &UserField{value: value, expression: expr}
}

// Validate reports whether the whole value matches the expression.
func (f *UserField) Validate() bool {
	return f.expression.MatchString(f.value)
}

func (f *UserField) Value() interface{} { return f.value }
func (f *UserField) String() string     { return f.value }
