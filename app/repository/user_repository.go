package repository

import (
	"errors"
	"time"

	"github.com/medirate/medirate/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository backed by GORM.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByAPIKeyHash(hash string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("api_key_hash = ?", hash).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertByEmail lazily creates the identity row on first authentication and
// refreshes provider linkage + last-login on subsequent syncs.
func (r *userRepository) UpsertByEmail(user *models.User) (bool, error) {
	var existing models.User
	created, err := createdFromPreRead(r.db.Where("email = ?", user.Email).First(&existing).Error)
	if err != nil {
		return false, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "email"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"auth_provider_id",
			"name",
			"last_login_at",
			"updated_at",
		}),
	}).Create(user).Error; err != nil {
		return false, err
	}

	// Ensure ID is populated after upsert.
	if err := r.db.Where("email = ?", user.Email).First(user).Error; err != nil {
		return false, err
	}
	return created, nil
}

// createdFromPreRead maps the pre-upsert lookup result to the created flag.
// Only a not-found read means the row is new; any other failure aborts the
// sync instead of masquerading as an update.
func createdFromPreRead(err error) (bool, error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return true, nil
	default:
		return false, err
	}
}
