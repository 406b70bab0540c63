package web

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestWebPlain(t *testing.T) {
	srv := New(4242)

	srv.Start()
	defer srv.Stop()
}

func TestWebWithRoutes(t *testing.T) {
	srv := New(0)

	router := srv.Router
	router.StrictSlash(true)

	testget := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("(get) hello"))
	}

	testpost := func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseForm()
		if err != nil {
			t.Errorf("Post request handler failed to read form data: %v", err.Error())
		}
		resp := r.PostForm.Get("response")
		w.Write([]byte(fmt.Sprintf("(post) hello: %s", resp)))
	}

	router.HandleFunc("/test", testget).Methods("GET")
	router.HandleFunc("/test", testpost).Methods("POST")

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	if resp, err := http.Get(ts.URL + "/test"); err != nil {
		t.Fatalf("Error testing get request: %v", err.Error())
	} else if b, err := ioutil.ReadAll(resp.Body); err != nil {
		t.Fatalf("Error reading get request body: %v", err.Error())
	} else if string(b) != "(get) hello" {
		t.Fatalf("Got unexpected response from get request: %s", string(b))
	}

	if resp, err := http.PostForm(ts.URL+"/test", url.Values{"response": {"formvalue"}}); err != nil {
		t.Fatalf("Error testing post request: %v", err.Error())
	} else if b, err := ioutil.ReadAll(resp.Body); err != nil {
		t.Fatalf("Error reading post request body: %v", err.Error())
	} else if string(b) != "(post) hello: formvalue" {
		t.Fatalf("Got unexpected response from post request: %s", string(b))
	}
}

func TestErrorResponse(t *testing.T) {
	srv := New(0)
	rr := httptest.NewRecorder()
	srv.ErrorResponse(rr, http.StatusUnprocessableEntity, "Form failed validation.", "email", "role")

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Unexpected status code: %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("Unexpected content type: %s", ct)
	}
	var info ErrorInfo
	if err := json.NewDecoder(rr.Body).Decode(&info); err != nil {
		t.Fatalf("Failed to decode error body: %s", err.Error())
	}
	if info.Message != "Form failed validation." || len(info.Fields) != 2 || info.StatusText != "Unprocessable Entity" {
		t.Fatalf("Unexpected error body: %+v", info)
	}
}

func TestRateLimit(t *testing.T) {
	srv := New(0)
	srv.Router.Use(srv.RateLimit(1, 2))
	srv.Router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	request := func(addr string) int {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = addr
		srv.Router.ServeHTTP(rr, req)
		return rr.Code
	}

	for idx := 0; idx < 2; idx++ {
		if code := request("10.0.0.1:1234"); code != http.StatusNoContent {
			t.Fatalf("Request %d within burst rejected: %d", idx, code)
		}
	}
	if code := request("10.0.0.1:5678"); code != http.StatusTooManyRequests {
		t.Fatalf("Request over burst not limited: %d", code)
	}
	if code := request("10.0.0.2:1234"); code != http.StatusNoContent {
		t.Fatalf("Other client limited: %d", code)
	}
}
