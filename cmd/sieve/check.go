package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/G-Node/sieve/sieve/field"
	"github.com/spf13/cobra"
)

// checkOptions holds the flags of the check command.
type checkOptions struct {
	blank      string
	expression string
	absolute   bool
	choices    []string
}

var fieldKinds = []string{"text", "email", "user", "password", "setpassword", "checkbox", "url", "choice"}

func checkCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check <kind> <value> [confirmation]",
		Short: "Validate a single value",
		Long: fmt.Sprintf(`Validate a value as a field of the given kind and print "valid" or
"invalid".  The command fails for invalid values.

Kinds: %s.  The setpassword kind takes the password and its
confirmation.`, strings.Join(fieldKinds, ", ")),
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fld, err := newField(args[0], args[1:], opts)
			if err != nil {
				return err
			}
			if !fld.Validate() {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return fmt.Errorf("invalid %s value", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.blank, "blank", "", `Blank handling: "allow" or "deny"`)
	cmd.Flags().StringVarP(&opts.expression, "expression", "e", "", "Custom expression (email, user, url)")
	cmd.Flags().BoolVar(&opts.absolute, "absolute", false, "Require an absolute URL")
	cmd.Flags().StringSliceVar(&opts.choices, "choices", nil, "Acceptable values for choice fields")
	return cmd
}

// newField creates a field of the named kind from the command arguments.
func newField(kind string, values []string, opts checkOptions) (field.Field, error) {
	var blank field.Blank
	switch opts.blank {
	case "":
	case "allow":
		blank = field.AllowBlank
	case "deny":
		blank = field.DenyBlank
	default:
		return nil, fmt.Errorf("unknown blank mode %q", opts.blank)
	}

	var expr *regexp.Regexp
	if opts.expression != "" {
		var err error
		if expr, err = regexp.Compile(opts.expression); err != nil {
			return nil, fmt.Errorf("bad expression: %w", err)
		}
	}

	value := func(idx int) string {
		if idx < len(values) {
			return values[idx]
		}
		return ""
	}

	switch kind {
	case "text":
		return field.NewTextField(value(0), field.Options{Blank: blank}), nil
	case "email":
		return field.NewEmailField(value(0), field.EmailOptions{Blank: blank, Expression: expr}), nil
	case "user":
		return field.NewUserField(value(0), field.UserOptions{Expression: expr}), nil
	case "password":
		return field.NewPasswordField(value(0), field.PasswordOptions{}), nil
	case "setpassword":
		return field.NewSetPasswordFields(value(0), value(1)), nil
	case "checkbox":
		var raw interface{}
		if len(values) > 0 {
			raw = values[0]
		}
		return field.NewCheckboxField(raw, field.Options{Blank: blank}), nil
	case "url":
		return field.NewURLField(value(0), field.URLOptions{Absolute: opts.absolute, Expression: expr}), nil
	case "choice":
		return field.NewChoiceField(value(0), field.ChoiceOptions{Choices: opts.choices}), nil
	}
	return nil, fmt.Errorf("unknown field kind %q (one of %s)", kind, strings.Join(fieldKinds, ", "))
}
