// Package service implements the business logic behind the web controllers.
package service

import (
	"userhub/database"
	"userhub/database/model"
	"userhub/logger"
	"userhub/util/crypto"
	"userhub/util/validation"

	"gorm.io/gorm"
)

const (
	// DefaultPerPage applies when the listing request names no page size.
	DefaultPerPage = 10
	// MaxPerPage caps the page size server-side regardless of the request.
	MaxPerPage = 100
)

type UserService struct{}

// Register persists a new user from an already-validated form. The role is
// always forced to user and the password stored as a bcrypt hash. A
// username/email collision surfaces as ErrDuplicateUser.
func (s *UserService) Register(form validation.RegisterForm, pictureName string) (*model.User, error) {
	hash, err := crypto.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Username:       form.Username,
		Email:          form.Email,
		Password:       hash,
		Phone:          form.Phone,
		Country:        form.Country,
		Address:        form.Address,
		Role:           model.RoleUser,
		ProfilePicture: pictureName,
	}

	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return user, nil
}

// FindByUsername is an exact-match lookup, nil when no such user exists.
func (s *UserService) FindByUsername(username string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser authenticates a username/password pair. It returns nil both for
// an unknown username and for a wrong password so callers cannot tell the
// two cases apart.
func (s *UserService) CheckUser(username, password string) *model.User {
	user, err := s.FindByUsername(username)
	if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}
	if user == nil {
		return nil
	}
	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

// ListNonAdmins returns one page of the user directory, ordered by id and
// excluding administrator accounts. perPage <= 0 falls back to the default
// and is capped at MaxPerPage; page must be >= 1.
func (s *UserService) ListNonAdmins(page, perPage int) (int64, []model.User, error) {
	if page < 1 {
		return 0, nil, ErrInvalidPage
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	db := database.GetDB()

	var total int64
	err := db.Model(model.User{}).
		Where("role != ?", model.RoleAdmin).
		Count(&total).
		Error
	if err != nil {
		return 0, nil, err
	}

	var users []model.User
	err = db.Model(model.User{}).
		Where("role != ?", model.RoleAdmin).
		Order("id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&users).
		Error
	if err != nil {
		return 0, nil, err
	}
	return total, users, nil
}

// ReferencedPictures lists every profile picture name the users table points
// at. Used by the orphaned upload cleanup job.
func (s *UserService) ReferencedPictures() ([]string, error) {
	db := database.GetDB()

	var names []string
	err := db.Model(model.User{}).
		Where("profile_picture != ''").
		Pluck("profile_picture", &names).
		Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return names, nil
}
