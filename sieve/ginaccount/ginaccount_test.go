package ginaccount

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/G-Node/sieve/sieve/account"
	"github.com/G-Node/sieve/sieve/form"
	"github.com/gogs/go-gogs-client"
)

func registration() url.Values {
	return url.Values{
		"username":  {"alice"},
		"email":     {"alice@example.org"},
		"password1": {"correct horse"},
		"password2": {"correct horse"},
		"role":      {"student"},
	}
}

func save(f *form.Form) error {
	result := make(chan error, 1)
	f.Save(func(err error) { result <- err })
	return <-result
}

func TestSaverCreatesUser(t *testing.T) {
	var received gogs.CreateUserOption
	var token string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/admin/users" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		token = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("Failed to decode request body: %s", err.Error())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 42, "email": "alice@example.org"}`))
	}))
	defer ts.Close()

	f := account.RegistrationForm(registration(), nil, account.Options{})
	saver := NewSaver(ts.URL, "admintoken")
	saver.Notify = true
	f.Saver = saver

	if err := save(f); err != nil {
		t.Fatalf("Failed to create user: %s", err.Error())
	}
	if received.Username != "alice" || received.Email != "alice@example.org" || received.Password != "correct horse" {
		t.Fatalf("Unexpected user request: %+v", received)
	}
	if !received.SendNotify {
		t.Fatal("Notify option not sent")
	}
	if token != "token admintoken" {
		t.Fatalf("Unexpected authorization header: %q", token)
	}
}

func TestSaverRemoteError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	f := account.RegistrationForm(registration(), nil, account.Options{})
	f.Saver = NewSaver(ts.URL, "usertoken")
	if err := save(f); err == nil || err == form.ErrValidation {
		t.Fatalf("Unexpected result for rejected request: %v", err)
	}
}

func TestSaverSkipsInvalidForm(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	values := registration()
	values.Set("password2", "battery staple")
	f := account.RegistrationForm(values, nil, account.Options{})
	f.Saver = NewSaver(ts.URL, "admintoken")
	if err := save(f); err != form.ErrValidation {
		t.Fatalf("Unexpected result for invalid form: %v", err)
	}
	if called {
		t.Fatal("Invalid form reached the server")
	}
}

func TestCreateUserOptionMissingFields(t *testing.T) {
	if _, err := CreateUserOption(form.New("empty")); err == nil {
		t.Fatal("Built user request from empty form")
	}
}
