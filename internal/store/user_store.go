package store

import (
	"slices"
	"strings"

	"github.com/eems-edu/exam-marking-service/internal/models"
)

// Users returns a copy of the user collection.
func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Users)
}

// FindUserByEmail looks a user up by its email, the collection's uniqueness
// key. The match is case-sensitive.
func (s *Store) FindUserByEmail(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.state.Users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// AddUser stores a new user, assigning the next sequential id when the
// caller supplies none. A duplicate email is rejected with ErrDuplicate.
func (s *Store) AddUser(user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		if u.Email == user.Email {
			return models.User{}, ErrDuplicate
		}
	}

	if user.ID == 0 {
		user.ID = maxID(s.state.Users, func(u models.User) int { return u.ID }) + 1
	}

	s.state.Users = append(s.state.Users, user)
	s.save()
	return user, nil
}

// MigrateUserPasswords hashes any stored password that is not already a
// bcrypt hash, using the supplied hash function. Idempotent: already-hashed
// entries are left untouched and the document is persisted only when at
// least one record changed. Returns the number of records migrated.
func (s *Store) MigrateUserPasswords(hash func(string) (string, error)) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	migrated := 0
	for i, u := range s.state.Users {
		if u.PasswordHash == "" || strings.HasPrefix(u.PasswordHash, "$2") {
			continue
		}
		hashed, err := hash(u.PasswordHash)
		if err != nil {
			s.logger.LogError(err, "failed to migrate user password", "email", u.Email)
			continue
		}
		s.state.Users[i].PasswordHash = hashed
		migrated++
	}

	if migrated > 0 {
		s.save()
	}
	return migrated
}
