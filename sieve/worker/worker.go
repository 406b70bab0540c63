package worker

import (
	"fmt"
	"log"
	"time"

	"github.com/G-Node/sieve/sieve/db"
	"github.com/G-Node/sieve/sieve/field"
	"github.com/G-Node/sieve/sieve/form"
)

// DefaultQueueSize is the queue length used when New is given zero.
const DefaultQueueSize = 100

// Redacted replaces the values of password fields in stored submissions.
const Redacted = "********"

// Job is a queued save of one form.
type Job struct {
	Form *form.Form
	// Validate the form before saving it.
	Validate bool
	// Done is called once the save has finished.
	Done form.Callback
	// Submission is the database record of the job, set by Enqueue.
	Submission *db.Submission
}

// NewJob returns a job that validates and saves f.
func NewJob(f *form.Form, done form.Callback) *Job {
	return &Job{Form: f, Validate: true, Done: done}
}

// Worker pool with queue for saving forms asynchronously.
type Worker struct {
	queue chan *Job
	stop  chan bool
	db    *db.Connection
}

// New returns a worker that records submissions in dbconn.  A size of zero
// selects DefaultQueueSize.
func New(dbconn *db.Connection, size int) *Worker {
	if size <= 0 {
		size = DefaultQueueSize
	}
	w := new(Worker)
	w.queue = make(chan *Job, size)
	w.stop = make(chan bool)
	w.db = dbconn
	return w
}

// Enqueue adds the job to the queue and stores its submission in the
// database.
func (w *Worker) Enqueue(j *Job) {
	j.Submission = &db.Submission{
		Form:       j.Form.Name,
		ValueMap:   ValueMap(j.Form),
		SubmitTime: time.Now(),
	}
	if err := w.db.InsertSubmission(j.Submission); err != nil {
		log.Printf("Error inserting submission %+v into db: %v", j.Submission, err)
	}
	w.queue <- j
}

// Stop the run loop.  Jobs still queued are not saved.
func (w *Worker) Stop() {
	w.stop <- true
}

func (w *Worker) run(j *Job) {
	sub := j.Submission
	log.Printf("Saving submission [S%d] of form %q", sub.ID, j.Form.Name)
	finished := make(chan error, 1)
	j.Form.SaveWith(j.Validate, func(err error) { finished <- err })
	err := <-finished

	sub.EndTime = time.Now()
	if err == nil {
		log.Printf("Submission [S%d] %s saved", sub.ID, j.Form.Name)
	} else {
		log.Printf("Submission [S%d] %s failed: %s", sub.ID, j.Form.Name, err)
		sub.Error = err.Error()
	}
	if dberr := w.db.UpdateSubmission(sub); dberr != nil {
		log.Printf("Error updating submission [S%d] in db: %v", sub.ID, dberr)
	}
	if j.Done != nil {
		j.Done(err)
	}
}

// Start the run loop in a goroutine and return.
func (w *Worker) Start() {
	go func() {
		for {
			select {
			case job := <-w.queue:
				w.run(job)
			case <-w.stop:
				return
			}
		}
	}()
	log.Print("Worker started")
}

// ValueMap renders the form values as strings for storage.  Values of fields
// that can be encrypted are replaced by Redacted.
func ValueMap(f *form.Form) map[string]string {
	values := make(map[string]string, f.Len())
	f.Each(func(name string, fld field.Field) {
		if _, secret := fld.(field.Encrypter); secret {
			values[name] = Redacted
			return
		}
		values[name] = fmt.Sprint(fld.Value())
	})
	return values
}
