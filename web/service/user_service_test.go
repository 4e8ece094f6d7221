package service

import (
	"os"
	"testing"

	"userhub/database"
	"userhub/database/model"
	"userhub/logger"
	"userhub/util/crypto"
	"userhub/util/validation"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
)

func setup() {
	os.Setenv("USERHUB_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)

	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(sqlite.Open(dbPath))
}

func teardown() {
	database.CloseDB()
	os.Remove("test.db")
}

func registerForm(username, email string) validation.RegisterForm {
	return validation.RegisterForm{
		FirstName:       "Ana",
		LastName:        "Popescu",
		Username:        username,
		Password:        "secret1",
		Confirmation:    "secret1",
		Country:         "RO",
		Email:           email,
		Address:         "Strada Lunga 10",
		Phone:           "+40711111111",
		PictureFilename: "avatar.jpg",
	}
}

func TestRegisterStoresHashedUserRow(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	user, err := service.Register(registerForm("apopescu", "a@example.com"), "pic_avatar.jpg")
	assert.NoError(t, err)
	assert.NotZero(t, user.Id)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, "pic_avatar.jpg", user.ProfilePicture)
	assert.False(t, user.CreatedAt.IsZero())

	// Stored password is a verifiable hash, never the plaintext.
	stored, err := service.FindByUsername("apopescu")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.True(t, crypto.CheckPasswordHash(stored.Password, "secret1"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	_, err := service.Register(registerForm("apopescu", "a@example.com"), "p1.jpg")
	assert.NoError(t, err)

	_, err = service.Register(registerForm("apopescu", "other@example.com"), "p2.jpg")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	_, err := service.Register(registerForm("apopescu", "a@example.com"), "p1.jpg")
	assert.NoError(t, err)

	_, err = service.Register(registerForm("bpopescu", "a@example.com"), "p2.jpg")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestRegisterCannotSetRole(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	user, err := service.Register(registerForm("apopescu", "a@example.com"), "p.jpg")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
}

func TestCheckUserUniformFailure(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	_, err := service.Register(registerForm("apopescu", "a@example.com"), "p.jpg")
	assert.NoError(t, err)

	assert.NotNil(t, service.CheckUser("apopescu", "secret1"))
	// Wrong password and unknown username are indistinguishable.
	assert.Nil(t, service.CheckUser("apopescu", "wrongpass"))
	assert.Nil(t, service.CheckUser("nobody", "secret1"))
}

func TestFindByUsernameMissing(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	user, err := service.FindByUsername("ghost")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestListNonAdminsExcludesAdmins(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	for _, u := range []struct{ username, email string }{
		{"user1", "u1@example.com"},
		{"user2", "u2@example.com"},
		{"user3", "u3@example.com"},
	} {
		_, err := service.Register(registerForm(u.username, u.email), "p.jpg")
		assert.NoError(t, err)
	}

	// InitDB seeded an admin; it never appears in the listing.
	total, users, err := service.ListNonAdmins(1, 10)
	assert.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, users, 3)
	for _, u := range users {
		assert.NotEqual(t, model.RoleAdmin, u.Role)
	}
}

func TestListNonAdminsPagination(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	usernames := []string{"user1", "user2", "user3", "user4", "user5"}
	for _, name := range usernames {
		_, err := service.Register(registerForm(name, name+"@example.com"), "p.jpg")
		assert.NoError(t, err)
	}

	total, page2, err := service.ListNonAdmins(2, 2)
	assert.NoError(t, err)
	assert.EqualValues(t, 5, total)
	if assert.Len(t, page2, 2) {
		assert.Equal(t, "user3", page2[0].Username)
		assert.Equal(t, "user4", page2[1].Username)
		assert.Less(t, page2[0].Id, page2[1].Id)
	}

	// Past the end: empty page, same total.
	total, tail, err := service.ListNonAdmins(10, 2)
	assert.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Empty(t, tail)
}

func TestListNonAdminsRejectsBadPage(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	_, _, err := service.ListNonAdmins(0, 10)
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, _, err = service.ListNonAdmins(-3, 10)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestReferencedPictures(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	_, err := service.Register(registerForm("apopescu", "a@example.com"), "keep.jpg")
	assert.NoError(t, err)

	names, err := service.ReferencedPictures()
	assert.NoError(t, err)
	assert.Contains(t, names, "keep.jpg")
}
