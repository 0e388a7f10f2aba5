package services

import (
	"github.com/eems-edu/exam-marking-service/internal/models"
	"github.com/eems-edu/exam-marking-service/internal/store"
	"github.com/eems-edu/exam-marking-service/internal/utils"
)

// defaultUsers are the development accounts seeded into an empty store.
var defaultUsers = []struct {
	email    string
	password string
	role     models.UserRole
}{
	{"instructor@test.com", "instructor123", models.RoleInstructor},
	{"student@test.com", "student123", models.RoleStudent},
	{"grader@test.com", "grader123", models.RoleGrader},
	{"admin@test.com", "admin123", models.RoleAdmin},
}

// SeedDefaultUsers populates the user collection with the built-in test
// accounts when it is empty. Passwords are stored bcrypt-hashed.
func SeedDefaultUsers(st *store.Store, logger utils.Logger) {
	if len(st.Users()) > 0 {
		return
	}

	for _, du := range defaultUsers {
		hash, err := HashPassword(du.password)
		if err != nil {
			logger.LogError(err, "failed to hash seed password", "email", du.email)
			continue
		}
		if _, err := st.AddUser(models.User{
			Email:        du.email,
			PasswordHash: hash,
			Role:         du.role,
		}); err != nil {
			logger.LogError(err, "failed to seed user", "email", du.email)
		}
	}

	logger.Info("seeded default users", "count", len(defaultUsers))
}
