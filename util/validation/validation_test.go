package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() RegisterForm {
	return RegisterForm{
		FirstName:       "Ana",
		LastName:        "Popescu",
		Username:        "apopescu",
		Password:        "secret1",
		Confirmation:    "secret1",
		Country:         "RO",
		Email:           "a@example.com",
		Address:         "Strada Lunga 10",
		Phone:           "+40711111111",
		PictureFilename: "avatar.jpg",
	}
}

func TestCheckRegistrationAcceptsValidForm(t *testing.T) {
	assert.Nil(t, CheckRegistration(validForm(), "RO"))
}

func TestCheckRegistrationRuleOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *RegisterForm)
		key    string
	}{
		{"missing first name", func(f *RegisterForm) { f.FirstName = "" }, "pages.register.toasts.firstNameRequired"},
		{"short first name", func(f *RegisterForm) { f.FirstName = "  Al  " }, "pages.register.toasts.firstNameTooShort"},
		{"missing last name", func(f *RegisterForm) { f.LastName = "" }, "pages.register.toasts.lastNameRequired"},
		{"short last name", func(f *RegisterForm) { f.LastName = "Po" }, "pages.register.toasts.lastNameTooShort"},
		{"missing username", func(f *RegisterForm) { f.Username = "" }, "pages.register.toasts.usernameRequired"},
		{"short username", func(f *RegisterForm) { f.Username = "ap" }, "pages.register.toasts.usernameTooShort"},
		{"missing password", func(f *RegisterForm) { f.Password = "" }, "pages.register.toasts.passwordRequired"},
		{"short password", func(f *RegisterForm) { f.Password = "abc12"; f.Confirmation = "abc12" }, "pages.register.toasts.passwordTooShort"},
		{"confirmation mismatch", func(f *RegisterForm) { f.Confirmation = "different" }, "pages.register.toasts.confirmationMismatch"},
		{"missing country", func(f *RegisterForm) { f.Country = "" }, "pages.register.toasts.countryRequired"},
		{"missing email", func(f *RegisterForm) { f.Email = "" }, "pages.register.toasts.emailRequired"},
		{"invalid email", func(f *RegisterForm) { f.Email = "not-an-email" }, "pages.register.toasts.emailInvalid"},
		{"missing address", func(f *RegisterForm) { f.Address = "" }, "pages.register.toasts.addressRequired"},
		{"short address", func(f *RegisterForm) { f.Address = "Str 1" }, "pages.register.toasts.addressTooShort"},
		{"missing phone", func(f *RegisterForm) { f.Phone = "" }, "pages.register.toasts.phoneRequired"},
		{"garbage phone", func(f *RegisterForm) { f.Phone = "abc" }, "pages.register.toasts.phoneUnparsable"},
		{"foreign phone", func(f *RegisterForm) { f.Phone = "+16502530000" }, "pages.register.toasts.phoneWrongRegion"},
		{"missing picture", func(f *RegisterForm) { f.PictureFilename = "" }, "pages.register.toasts.pictureRequired"},
		{"bad extension", func(f *RegisterForm) { f.PictureFilename = "avatar.gif" }, "pages.register.toasts.pictureBadExtension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			err := CheckRegistration(form, "RO")
			if assert.NotNil(t, err) {
				assert.Equal(t, tt.key, err.Key)
			}
		})
	}
}

func TestCheckRegistrationReportsFirstViolationOnly(t *testing.T) {
	// Everything is wrong; only the first rule in the order is reported.
	err := CheckRegistration(RegisterForm{}, "RO")
	if assert.NotNil(t, err) {
		assert.Equal(t, "pages.register.toasts.firstNameRequired", err.Key)
	}
}

func TestCheckRegistrationTrimsForLengthOnly(t *testing.T) {
	form := validForm()
	form.Password = "  a1  " // six runes, two after trimming
	form.Confirmation = form.Password
	err := CheckRegistration(form, "RO")
	if assert.NotNil(t, err) {
		assert.Equal(t, "pages.register.toasts.passwordTooShort", err.Key)
	}
}

func TestAllowedPicture(t *testing.T) {
	assert.True(t, AllowedPicture("a.png"))
	assert.True(t, AllowedPicture("a.jpg"))
	assert.True(t, AllowedPicture("photo.JPEG"))
	assert.False(t, AllowedPicture("archive.tar.gz"))
	assert.False(t, AllowedPicture("noextension"))
	assert.False(t, AllowedPicture("script.php"))
}
