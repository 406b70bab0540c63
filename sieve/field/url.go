package field

import (
	"regexp"
	"strings"
)

var (
	// DefaultAbsoluteURLExpression requires an optional http(s) scheme, a
	// double slash and a host containing a dot.
	DefaultAbsoluteURLExpression = regexp.MustCompile(`(https?:)?//\S+\.\S+`)
	// DefaultURLExpression requires at least one non-space character.
	DefaultURLExpression = regexp.MustCompile(`\S+`)
)

// URLOptions configures a URLField.
type URLOptions struct {
	// Absolute selects DefaultAbsoluteURLExpression over DefaultURLExpression.
	Absolute bool
	// Expression overrides both defaults.
	Expression *regexp.Regexp
}

// URLField validates a URL.  The raw value is escaped on creation.
type URLField struct {
	value      string
	expression *regexp.Regexp
}

// NewURLField returns a URL field holding the escaped raw value.
func NewURLField(raw string, opts URLOptions) *URLField {
	expr := opts.Expression
	if expr == nil {
		if opts.Absolute {
			expr = DefaultAbsoluteURLExpression
		} else {
			expr = DefaultURLExpression
		}
	}
	return &URLField{value: EscapeURI(raw), expression: expr}
}

// Validate reports whether the expression matches anywhere in the escaped
// value.
func (f *URLField) Validate() bool {
	return f.expression.MatchString(f.value)
}

func (f *URLField) Value() interface{} { return f.value }
func (f *URLField) String() string     { return f.value }

// uriKeep lists the characters besides ASCII letters and digits that
// EscapeURI leaves alone.
const uriKeep = ";,/?:@&=+$-_.!~*'()#"

// EscapeURI percent-encodes every byte of s except ASCII letters, digits and
// the URI reserved and mark characters, so that a complete URI keeps its
// structure.
func EscapeURI(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || strings.IndexByte(uriKeep, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}
