package store

import (
	"path/filepath"

	"pennyplan/internal/models"
)

const usersFile = "users.json"

// UserStore specializes Store for user accounts, adding username and
// email lookups. Matching is case-sensitive and exact.
type UserStore struct {
	*Store[models.User]
}

// OpenUserStore opens the user collection under dir.
func OpenUserStore(dir string) (*UserStore, error) {
	s, err := Open[models.User](filepath.Join(dir, usersFile))
	if err != nil {
		return nil, err
	}
	return &UserStore{Store: s}, nil
}

// FindByUsername returns the user with the given username.
func (s *UserStore) FindByUsername(username string) (models.User, bool) {
	return s.FindFirstBy(func(u models.User) bool { return u.Username == username })
}

// UsernameTaken reports whether a user with the given username exists.
func (s *UserStore) UsernameTaken(username string) bool {
	return s.ExistsBy(func(u models.User) bool { return u.Username == username })
}

// EmailTaken reports whether a user with the given email exists.
func (s *UserStore) EmailTaken(email string) bool {
	return s.ExistsBy(func(u models.User) bool { return u.Email == email })
}
