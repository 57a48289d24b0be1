package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/monocle-dev/opsdesk/internal/models"
)

// Users adds the credential lookup to the generic user repository.
type Users struct {
	*Repository[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repository: New[models.User](db, "user", models.UserKey, models.UserKeys),
	}
}

// FindCredentials is the only query that reads the password hash.
func (r *Users) FindCredentials(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).
		Select("user_id", "username", "password", "role").
		Where(eq("username", username)).
		Take(&user).Error
	if err != nil {
		return nil, r.classify(err, "user %q", username)
	}
	return &user, nil
}
