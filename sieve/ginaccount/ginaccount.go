// Package ginaccount saves registration forms as user accounts on a GIN
// (Gogs) server.
package ginaccount

import (
	"fmt"
	"log"

	"github.com/G-Node/sieve/sieve/form"
	"github.com/gogs/go-gogs-client"
)

// Saver creates a user on a GIN server through the admin API for every saved
// registration form.  The token must belong to a site administrator.
type Saver struct {
	client *gogs.Client
	// Notify asks the server to send the new user a notification email.
	Notify bool
}

// NewSaver returns a Saver for the server at url.
func NewSaver(url, token string) *Saver {
	return &Saver{client: gogs.NewClient(url, token)}
}

// Save creates the user described by the form's username, email and password
// fields.  The password is sent as entered; the server stores its own digest.
func (s *Saver) Save(f *form.Form, done form.Callback) {
	opt, err := CreateUserOption(f)
	if err != nil {
		done(err)
		return
	}
	opt.SendNotify = s.Notify
	user, err := s.client.AdminCreateUser(opt)
	if err != nil {
		done(err)
		return
	}
	log.Printf("Created GIN user %q [%d]", opt.Username, user.ID)
	done(nil)
}

// CreateUserOption builds the API request for a registration form.
func CreateUserOption(f *form.Form) (gogs.CreateUserOption, error) {
	var opt gogs.CreateUserOption
	values := f.Values()
	var ok bool
	if opt.Username, ok = values["username"].(string); !ok {
		return opt, fmt.Errorf("form %q has no username field", f.Name)
	}
	if opt.Email, ok = values["email"].(string); !ok {
		return opt, fmt.Errorf("form %q has no email field", f.Name)
	}
	pair, ok := values["password"].([2]string)
	if !ok {
		return opt, fmt.Errorf("form %q has no password field", f.Name)
	}
	opt.Password = pair[0]
	return opt, nil
}
