package sieve

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"sync"

	"github.com/G-Node/sieve/sieve/account"
	"github.com/G-Node/sieve/sieve/db"
	"github.com/G-Node/sieve/sieve/form"
	"github.com/G-Node/sieve/sieve/ginaccount"
	"github.com/G-Node/sieve/sieve/web"
	"github.com/G-Node/sieve/sieve/worker"
)

// Builder creates a form from submitted values.
type Builder func(values url.Values) *form.Form

// Sieve represents a full service which contains a web server, a database for
// submissions and accounts, and a worker that saves submitted forms.
type Sieve struct {
	web     *web.Server
	db      *db.Connection
	worker  *worker.Worker
	metrics *metrics
	formsMu sync.RWMutex
	forms   map[string]Builder
	Config  *Config
}

// NewService creates a new Sieve with the registration form already
// available.
func NewService(config Config) (*Sieve, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	srv := new(Sieve)
	srv.Config = &config
	srv.forms = make(map[string]Builder)
	srv.metrics = newMetrics()

	// DB
	log.Printf("Initialising %s database %s", config.DBDriver, config.DBPath)
	conn, err := db.Open(config.DBDriver, config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	srv.db = conn

	// Worker
	srv.worker = worker.New(srv.db, config.QueueSize)

	// Web server
	srv.web = web.New(config.Port)
	srv.setupWebRoutes()

	srv.AddForm(account.FormName, srv.registrationForm)
	return srv, nil
}

// registrationForm builds the registration form, saving accounts locally and,
// if configured, on the GIN server.
func (srv *Sieve) registrationForm(values url.Values) *form.Form {
	opts := account.Options{Algorithm: srv.Config.PasswordAlgorithm, Roles: srv.Config.Roles}
	f := account.RegistrationForm(values, srv.db, opts)
	if srv.Config.GINServer != "" {
		gin := ginaccount.NewSaver(srv.Config.GINServer, srv.Config.GINToken)
		gin.Notify = srv.Config.GINNotify
		f.Saver = form.Chain(f.Saver, gin)
	}
	return f
}

// AddForm makes the form built by b available for submission under name.
// An existing form with the same name is replaced.
func (srv *Sieve) AddForm(name string, b Builder) {
	srv.formsMu.Lock()
	defer srv.formsMu.Unlock()
	srv.forms[name] = b
}

// builder returns the builder registered under name.
func (srv *Sieve) builder(name string) (Builder, bool) {
	srv.formsMu.RLock()
	defer srv.formsMu.RUnlock()
	b, ok := srv.forms[name]
	return b, ok
}

// FormNames returns the sorted names of all registered forms.
func (srv *Sieve) FormNames() []string {
	srv.formsMu.RLock()
	defer srv.formsMu.RUnlock()
	names := make([]string, 0, len(srv.forms))
	for name := range srv.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handler returns the HTTP handler serving all routes.
func (srv *Sieve) Handler() http.Handler {
	return srv.web.Handler
}

// Start the service (worker and web server).
func (srv *Sieve) Start() error {
	if len(srv.FormNames()) == 0 {
		return fmt.Errorf("service has no forms")
	}

	log.Print("Starting worker")
	srv.worker.Start()

	log.Print("Starting web service")
	srv.web.Start()
	log.Printf("Web server listening on %s", srv.web.Addr)
	return nil
}

// WaitForInterrupt blocks until the service receives an interrupt signal (SIGINT).
func (srv *Sieve) WaitForInterrupt() {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt)
	<-sigchan
}

// Stop the service by gracefully shutting down the web service, stopping the
// worker, and closing the database connection, in that order.
func (srv *Sieve) Stop() {
	log.Print("Stopping web service")
	srv.web.Stop()

	log.Print("Stopping worker queue")
	srv.worker.Stop()

	log.Print("Closing database connection")
	if err := srv.db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	log.Print("Service stopped")
}
