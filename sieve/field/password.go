package field

import (
	"encoding/hex"
	"fmt"
)

// DefaultAlgorithm is the digest used when PasswordOptions leaves it empty.
const DefaultAlgorithm = "sha512"

// PasswordOptions configures the digest of a PasswordField.  Neither option
// affects validation.
type PasswordOptions struct {
	Salt      string
	Algorithm string
}

// PasswordField holds a password.  Any non-empty value is valid.
type PasswordField struct {
	value   string
	options PasswordOptions
}

// NewPasswordField returns a password field.
func NewPasswordField(value string, opts PasswordOptions) *PasswordField {
	if opts.Algorithm == "" {
		opts.Algorithm = DefaultAlgorithm
	}
	return &PasswordField{value: value, options: opts}
}

// Validate reports whether a password was given.
func (f *PasswordField) Validate() bool {
	return len(f.value) > 0
}

func (f *PasswordField) Value() interface{} { return f.value }

// Encrypt returns the hex encoded digest of the salt followed by the
// password.  It has no effect on validation and is never called implicitly.
func (f *PasswordField) Encrypt() (string, error) {
	h, err := Digest(f.options.Algorithm)
	if err != nil {
		return "", err
	}
	h.Write([]byte(f.options.Salt + f.value))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SetPasswordFields is the pair of password and confirmation inputs used when
// a password is chosen.  The two password fields are created without
// options; call Encrypt on a configured PasswordField for a salted digest.
type SetPasswordFields struct {
	Password1 *PasswordField
	Password2 *PasswordField
}

// NewSetPasswordFields returns the composite of both inputs.
func NewSetPasswordFields(password1, password2 string) *SetPasswordFields {
	return &SetPasswordFields{
		Password1: NewPasswordField(password1, PasswordOptions{}),
		Password2: NewPasswordField(password2, PasswordOptions{}),
	}
}

// Validate requires a non-empty first password equal to the confirmation.
func (f *SetPasswordFields) Validate() bool {
	return f.Password1.value != "" && f.Password1.value == f.Password2.value
}

// Value returns both inputs as a pair.
func (f *SetPasswordFields) Value() interface{} {
	return [2]string{f.Password1.value, f.Password2.value}
}

// Encrypt returns the digest of the first password.
func (f *SetPasswordFields) Encrypt() (string, error) {
	return f.Password1.Encrypt()
}

// String hides the password values when the field is printed.
func (f *SetPasswordFields) String() string {
	return fmt.Sprintf("SetPasswordFields{match: %t}", f.Validate())
}
