package db

import (
	"time"
)

// Submission records one form submission and the outcome of saving it.
type Submission struct {
	// Submission ID (auto)
	ID int64 `xorm:"pk autoincr"`
	// Name of the submitted form
	Form string `xorm:"index"`
	// Field values of the submission, secrets redacted
	ValueMap map[string]string
	// Error message of a failed save
	Error string
	// Time when the submission was queued
	SubmitTime time.Time
	// Time when the save finished (0 if ongoing)
	EndTime time.Time
}

// InsertSubmission inserts a new Submission into the database.  Upon
// successful return, the Submission has a new unique ID.
func (conn *Connection) InsertSubmission(sub *Submission) error {
	_, err := conn.engine.Insert(sub) // ID is assigned on insertion
	return err
}

// UpdateSubmission updates an existing Submission entry in the database.
func (conn *Connection) UpdateSubmission(sub *Submission) error {
	_, err := conn.engine.ID(sub.ID).AllCols().Update(sub)
	return err
}

// FormSubmissions retrieves all the Submissions of the named form.
func (conn *Connection) FormSubmissions(form string) ([]Submission, error) {
	subs := make([]Submission, 0)
	if err := conn.engine.Where("form = ?", form).Asc("id").Find(&subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// IsFinished returns true if the save has finished (has an EndTime).
func (sub *Submission) IsFinished() bool {
	return !sub.EndTime.IsZero()
}

// Failed returns true if the save finished with an error.
func (sub *Submission) Failed() bool {
	return sub.IsFinished() && sub.Error != ""
}

// AllSubmissions returns all Submission entries in the database.
func (conn *Connection) AllSubmissions() ([]Submission, error) {
	subs := make([]Submission, 0)
	if err := conn.engine.Asc("id").Find(&subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// GetSubmission retrieves a Submission from the database given its ID.
func (conn *Connection) GetSubmission(id int64) (*Submission, error) {
	sub := new(Submission)
	if has, err := conn.engine.ID(id).Get(sub); err != nil {
		return nil, err
	} else if !has {
		return nil, ErrNotFound
	}
	return sub, nil
}
