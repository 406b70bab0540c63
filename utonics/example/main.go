package main

import (
	"log"
	"net/url"
	"strconv"

	"github.com/G-Node/sieve/sieve"
	"github.com/G-Node/sieve/sieve/field"
	"github.com/G-Node/sieve/sieve/form"
)

// ratingField accepts whole numbers from 1 to 5.
type ratingField struct {
	raw string
}

func (r ratingField) Validate() bool {
	n, err := strconv.Atoi(r.raw)
	return err == nil && n >= 1 && n <= 5
}

func (r ratingField) Value() interface{} { return r.raw }

func feedbackForm(values url.Values) *form.Form {
	f := form.New("feedback")
	f.Add("name", field.NewTextField(values.Get("name"), field.Options{}))
	f.Add("email", field.NewEmailField(values.Get("email"), field.EmailOptions{Blank: field.AllowBlank}))
	f.Add("page", field.NewURLField(values.Get("page"), field.URLOptions{Absolute: true}))
	f.Add("rating", ratingField{raw: values.Get("rating")})
	f.Add("message", field.NewTextField(values.Get("message"), field.Options{Blank: field.DenyBlank}))
	f.Add("reply", field.NewCheckboxField(values.Get("reply"), field.Options{}))
	f.Saver = form.SaverFunc(exampleSave)
	return f
}

func exampleSave(f *form.Form, done form.Callback) {
	for _, name := range f.Names() {
		fld, _ := f.Field(name)
		log.Printf("Example form got %s: %v", name, fld.Value())
	}
	done(nil)
}

func main() {
	config := sieve.DefaultConfig()
	config.Port = 3000
	config.DBPath = "./example.db"
	config.RateLimit = 2

	srv, err := sieve.NewService(config)
	if err != nil {
		log.Fatal(err)
	}
	srv.AddForm("feedback", feedbackForm)
	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
	defer srv.Stop()
	srv.WaitForInterrupt()
}
