package field

// ChoiceOptions configures a ChoiceField.
type ChoiceOptions struct {
	// Choices lists the acceptable values.  A field without choices never
	// validates.
	Choices []string
}

// ChoiceField validates membership in a fixed list of values.
type ChoiceField struct {
	value   string
	choices []string
}

// NewChoiceField returns a choice field.
func NewChoiceField(value string, opts ChoiceOptions) *ChoiceField {
	return &ChoiceField{value: value, choices: opts.Choices}
}

// Validate reports whether the value is one of the configured choices.
func (f *ChoiceField) Validate() bool {
	if len(f.choices) == 0 {
		return false
	}
	for _, c := range f.choices {
		if c == f.value {
			return true
		}
	}
	return false
}

func (f *ChoiceField) Value() interface{} { return f.value }
func (f *ChoiceField) String() string     { return f.value }

// Choices returns the configured choices.
func (f *ChoiceField) Choices() []string {
	c := make([]string, len(f.choices))
	copy(c, f.choices)
	return c
}
