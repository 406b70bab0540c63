package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// JSON writes v as the JSON body of a response with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// ErrorInfo is the body of an error response.
type ErrorInfo struct {
	StatusCode int    `json:"status"`
	StatusText string `json:"status_text"`
	Message    string `json:"message"`
	// Fields lists invalid form fields, if any.
	Fields []string `json:"fields,omitempty"`
}

// ErrorResponse writes an error body with the given message and status code.
func (ws *Server) ErrorResponse(w http.ResponseWriter, status int, message string, fields ...string) {
	JSON(w, status, ErrorInfo{
		StatusCode: status,
		StatusText: http.StatusText(status),
		Message:    message,
		Fields:     fields,
	})
}

// Server implements the web server for the Sieve service.
type Server struct {
	*http.Server
	Router *mux.Router
}

// New returns a web Server with an initialised mux.Router and http.Server
// listening on the given port.
func New(port uint16) *Server {
	srv := new(Server)
	srv.Router = mux.NewRouter()
	httpsrv := new(http.Server)
	httpsrv.Handler = srv.Router

	httpsrv.Addr = fmt.Sprintf(":%d", port)
	httpsrv.WriteTimeout = time.Second * 15
	httpsrv.ReadTimeout = time.Second * 15
	httpsrv.IdleTimeout = time.Second * 60
	srv.Server = httpsrv
	return srv
}

// Start starts the embedded web server's ListenAndServe method in a goroutine
// and returns.  This method does not block.
func (ws *Server) Start() {
	go func() {
		if err := ws.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println(err)
		}
	}()
}

// Stop gracefully stops the web service.
func (ws *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	// Gracefully shut down, waiting for the timeout deadline for connections to close.
	if err := ws.Shutdown(ctx); err != nil {
		log.Printf("Error stopping web server: %v", err)
	}
}
