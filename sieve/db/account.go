package db

import (
	"time"

	"github.com/google/uuid"
)

// Account holds a registered user and the digest of their password.
type Account struct {
	// Account ID
	ID string `xorm:"pk"`
	// Unique login name
	Username string `xorm:"unique notnull"`
	Email    string
	Role     string
	// Whether the user asked for the newsletter
	Newsletter bool
	// Hex digest of Salt + password
	PasswordHash string
	Salt         string
	// Digest algorithm used for PasswordHash
	Algorithm string
	// Time when the account was created
	Created time.Time
}

// NewAccount creates a new account with a new unique ID.
func NewAccount(username, email string) *Account {
	acc := new(Account)
	acc.ID = uuid.New().String()
	acc.Username = username
	acc.Email = email
	acc.Created = time.Now()
	return acc
}

// InsertAccount inserts a new Account into the database.  Inserting a
// duplicate ID or user name fails.
func (conn *Connection) InsertAccount(acc *Account) error {
	_, err := conn.engine.Insert(acc)
	return err
}

// GetAccount retrieves an account from the database given its ID.
func (conn *Connection) GetAccount(id string) (*Account, error) {
	acc := new(Account)
	if has, err := conn.engine.ID(id).Get(acc); err != nil {
		return nil, err
	} else if !has {
		return nil, ErrNotFound
	}
	return acc, nil
}

// GetAccountByName retrieves an account from the database given its user
// name.
func (conn *Connection) GetAccountByName(username string) (*Account, error) {
	acc := new(Account)
	if has, err := conn.engine.Where("username = ?", username).Get(acc); err != nil {
		return nil, err
	} else if !has {
		return nil, ErrNotFound
	}
	return acc, nil
}

// DeleteAccount removes the account with the given ID.
func (conn *Connection) DeleteAccount(id string) error {
	_, err := conn.engine.ID(id).Delete(new(Account))
	return err
}

// AllAccounts returns all accounts ordered by creation time.
func (conn *Connection) AllAccounts() ([]Account, error) {
	accs := make([]Account, 0)
	if err := conn.engine.Asc("created").Find(&accs); err != nil {
		return nil, err
	}
	return accs, nil
}
