// Package account implements the user registration form and the store
// backed save logic for it.
package account

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/G-Node/sieve/sieve/db"
	"github.com/G-Node/sieve/sieve/field"
	"github.com/G-Node/sieve/sieve/form"
)

// FormName is the name of the registration form.
const FormName = "registration"

// DefaultRoles are the roles offered when Options has none.
var DefaultRoles = []string{"researcher", "student", "other"}

// ErrBadCredentials is returned by Authenticate for an unknown user or a
// wrong password.
var ErrBadCredentials = errors.New("invalid user name or password")

// ErrUsernameTaken is passed to the save callback when an account with the
// submitted user name already exists.
var ErrUsernameTaken = errors.New("user name already taken")

// Store is the account storage used by the registration form.
type Store interface {
	InsertAccount(acc *db.Account) error
	GetAccountByName(username string) (*db.Account, error)
	DeleteAccount(id string) error
}

// Options configures the registration form.
type Options struct {
	// Digest algorithm for stored passwords (default sha512).
	Algorithm string
	// Roles a user can pick from.
	Roles []string
}

func (opts Options) withDefaults() Options {
	if opts.Algorithm == "" {
		opts.Algorithm = field.DefaultAlgorithm
	}
	if len(opts.Roles) == 0 {
		opts.Roles = DefaultRoles
	}
	return opts
}

// RegistrationForm builds the registration form from submitted values.  A
// valid form saves a new account in store.
func RegistrationForm(values url.Values, store Store, opts Options) *form.Form {
	opts = opts.withDefaults()
	f := form.New(FormName)
	f.Options = opts
	f.Add("username", field.NewUserField(values.Get("username"), field.UserOptions{}))
	f.Add("email", field.NewEmailField(values.Get("email"), field.EmailOptions{}))
	f.Add("password", field.NewSetPasswordFields(values.Get("password1"), values.Get("password2")))
	f.Add("role", field.NewChoiceField(values.Get("role"), field.ChoiceOptions{Choices: opts.Roles}))
	f.Add("newsletter", field.NewCheckboxField(values.Get("newsletter"), field.Options{}))
	if homepage := values.Get("homepage"); homepage != "" {
		f.Add("homepage", field.NewURLField(homepage, field.URLOptions{Absolute: true}))
	}
	f.Saver = &saver{store: store}
	return f
}

type saver struct {
	store Store
	// ID of the account inserted by the last Save
	inserted string
}

// Save inserts the account described by a registration form.
func (s *saver) Save(f *form.Form, done form.Callback) {
	acc, err := NewAccount(f)
	if err != nil {
		done(err)
		return
	}
	if _, err := s.store.GetAccountByName(acc.Username); err == nil {
		done(ErrUsernameTaken)
		return
	} else if err != db.ErrNotFound {
		done(fmt.Errorf("looking up account %q: %w", acc.Username, err))
		return
	}
	if err := s.store.InsertAccount(acc); err != nil {
		done(fmt.Errorf("creating account %q: %w", acc.Username, err))
		return
	}
	s.inserted = acc.ID
	done(nil)
}

// Revert deletes the account inserted by the last Save, so that a failed
// later save step does not leave the user name taken.
func (s *saver) Revert(f *form.Form) {
	if s.inserted == "" {
		return
	}
	if err := s.store.DeleteAccount(s.inserted); err != nil {
		log.Printf("Error removing account %s after failed save of %q: %v", s.inserted, f.Name, err)
		return
	}
	s.inserted = ""
}

// NewAccount creates the account record for a registration form, hashing the
// password with a new random salt.
func NewAccount(f *form.Form) (*db.Account, error) {
	opts, _ := f.Options.(Options)
	opts = opts.withDefaults()

	acc := db.NewAccount(text(f, "username"), text(f, "email"))
	acc.Role = text(f, "role")
	if fld, ok := f.Field("newsletter"); ok {
		acc.Newsletter, _ = fld.Value().(bool)
	}

	fld, ok := f.Field("password")
	if !ok {
		return nil, fmt.Errorf("registration form has no password field")
	}
	pair, _ := fld.Value().([2]string)
	salt, err := newSalt()
	if err != nil {
		return nil, err
	}
	hash, err := field.NewPasswordField(pair[0], field.PasswordOptions{Salt: salt, Algorithm: opts.Algorithm}).Encrypt()
	if err != nil {
		return nil, err
	}
	acc.Salt = salt
	acc.Algorithm = opts.Algorithm
	acc.PasswordHash = hash
	return acc, nil
}

// Authenticate checks a password against the stored account and returns the
// account on success.
func Authenticate(store Store, username, password string) (*db.Account, error) {
	acc, err := store.GetAccountByName(username)
	if err == db.ErrNotFound {
		return nil, ErrBadCredentials
	} else if err != nil {
		return nil, err
	}
	hash, err := field.NewPasswordField(password, field.PasswordOptions{Salt: acc.Salt, Algorithm: acc.Algorithm}).Encrypt()
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(hash), []byte(acc.PasswordHash)) != 1 {
		return nil, ErrBadCredentials
	}
	return acc, nil
}

func text(f *form.Form, name string) string {
	fld, ok := f.Field(name)
	if !ok {
		return ""
	}
	s, _ := fld.Value().(string)
	return s
}

func newSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
