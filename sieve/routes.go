// Common routes of the service
package sieve

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/G-Node/sieve/sieve/account"
	"github.com/G-Node/sieve/sieve/db"
	"github.com/G-Node/sieve/sieve/form"
	"github.com/G-Node/sieve/sieve/web"
	"github.com/G-Node/sieve/sieve/worker"
	"github.com/gorilla/mux"
)

// setupWebRoutes sets up the routes shared by all instances of the service.
func (srv *Sieve) setupWebRoutes() {
	router := srv.web.Router
	router.StrictSlash(true)

	router.Handle("/metrics", srv.metrics.handler()).Methods("GET")

	api := router.NewRoute().Subrouter()
	if srv.Config.RateLimit > 0 {
		api.Use(srv.web.RateLimit(srv.Config.RateLimit, srv.Config.RateBurst))
	}
	api.HandleFunc("/forms", srv.listForms).Methods("GET")
	api.HandleFunc("/forms/{name}", srv.submitForm).Methods("POST")
	api.HandleFunc("/submissions", srv.listSubmissions).Methods("GET")
	api.HandleFunc("/submissions/{id:[0-9]+}", srv.showSubmission).Methods("GET")
	api.HandleFunc("/login", srv.userLoginPost).Methods("POST")
}

func (srv *Sieve) listForms(w http.ResponseWriter, r *http.Request) {
	web.JSON(w, http.StatusOK, map[string][]string{"forms": srv.FormNames()})
}

// submitForm builds the named form from the posted values, queues it for
// saving and responds when the save has finished.
func (srv *Sieve) submitForm(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	build, ok := srv.builder(name)
	if !ok {
		srv.web.ErrorResponse(w, http.StatusNotFound, "No such form")
		return
	}
	if err := r.ParseForm(); err != nil {
		srv.web.ErrorResponse(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	f := build(r.PostForm)
	start := time.Now()
	result := make(chan error, 1)
	job := worker.NewJob(f, func(err error) { result <- err })
	srv.metrics.queued.Inc()
	srv.worker.Enqueue(job)

	var err error
	select {
	case err = <-result:
		srv.metrics.queued.Dec()
	case <-r.Context().Done():
		// the save carries on; its outcome is in the submission record
		go func() {
			err := <-result
			srv.metrics.queued.Dec()
			srv.metrics.observe(name, outcome(err), start)
		}()
		return
	}
	srv.metrics.observe(name, outcome(err), start)

	switch {
	case err == nil:
		web.JSON(w, http.StatusCreated, map[string]interface{}{
			"form":       name,
			"submission": job.Submission.ID,
		})
	case err == form.ErrValidation:
		srv.web.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error(), f.Invalid()...)
	case errors.Is(err, account.ErrUsernameTaken):
		srv.web.ErrorResponse(w, http.StatusConflict, "User name already taken", "username")
	default:
		log.Printf("Saving form %q failed: %v", name, err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Failed to save form")
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeSaved
	case err == form.ErrValidation:
		return outcomeInvalid
	default:
		return outcomeFailed
	}
}

func (srv *Sieve) listSubmissions(w http.ResponseWriter, r *http.Request) {
	var subs []db.Submission
	var err error
	if name := r.URL.Query().Get("form"); name != "" {
		subs, err = srv.db.FormSubmissions(name)
	} else {
		subs, err = srv.db.AllSubmissions()
	}
	if err != nil {
		log.Printf("Error reading submissions: %v", err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Error reading submissions from DB")
		return
	}
	web.JSON(w, http.StatusOK, map[string][]db.Submission{"submissions": subs})
}

func (srv *Sieve) showSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		srv.web.ErrorResponse(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	sub, err := srv.db.GetSubmission(id)
	if err == db.ErrNotFound {
		srv.web.ErrorResponse(w, http.StatusNotFound, "No such submission")
		return
	} else if err != nil {
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Error reading submission from DB")
		return
	}
	web.JSON(w, http.StatusOK, sub)
}

// userLoginPost checks posted credentials against the registered accounts.
func (srv *Sieve) userLoginPost(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		srv.web.ErrorResponse(w, http.StatusUnauthorized, "authentication failed")
		return
	}
	acc, err := account.Authenticate(srv.db, username, password)
	if err == account.ErrBadCredentials {
		srv.web.ErrorResponse(w, http.StatusUnauthorized, "authentication failed")
		return
	} else if err != nil {
		log.Printf("Error authenticating %q: %v", username, err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "authentication error")
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"id": acc.ID, "username": acc.Username})
}
