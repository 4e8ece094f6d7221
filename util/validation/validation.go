// Package validation implements the registration form rule chain. Rules run in
// a fixed order and the first violation wins; the returned error carries a
// message key resolved by the web locale layer.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// allowedPictureExtensions is the profile picture extension allow-list.
var allowedPictureExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
}

var validate = validator.New()

// RegisterForm carries the raw submitted registration fields. PictureFilename
// is the client-supplied file name, not file content.
type RegisterForm struct {
	FirstName       string `form:"firstName"`
	LastName        string `form:"lastName"`
	Username        string `form:"username"`
	Password        string `form:"password"`
	Confirmation    string `form:"confirmation"`
	Country         string `form:"country"`
	Email           string `form:"email"`
	Address         string `form:"address"`
	Phone           string `form:"phone"`
	PictureFilename string `form:"-"`
}

// Error is a single rejected rule. Key addresses a localized message.
type Error struct {
	Key string
}

func (e *Error) Error() string {
	return e.Key
}

func reject(key string) *Error {
	return &Error{Key: key}
}

// CheckRegistration validates form against the registration rules, using
// region for phone number parsing. Trimming applies to length checks only;
// stored values keep the submitted form.
func CheckRegistration(form RegisterForm, region string) *Error {
	if form.FirstName == "" {
		return reject("pages.register.toasts.firstNameRequired")
	}
	if len(strings.TrimSpace(form.FirstName)) < 3 {
		return reject("pages.register.toasts.firstNameTooShort")
	}
	if form.LastName == "" {
		return reject("pages.register.toasts.lastNameRequired")
	}
	if len(strings.TrimSpace(form.LastName)) < 3 {
		return reject("pages.register.toasts.lastNameTooShort")
	}
	if form.Username == "" {
		return reject("pages.register.toasts.usernameRequired")
	}
	if len(strings.TrimSpace(form.Username)) < 3 {
		return reject("pages.register.toasts.usernameTooShort")
	}
	if form.Password == "" {
		return reject("pages.register.toasts.passwordRequired")
	}
	if len(strings.TrimSpace(form.Password)) < 6 {
		return reject("pages.register.toasts.passwordTooShort")
	}
	if form.Password != form.Confirmation {
		return reject("pages.register.toasts.confirmationMismatch")
	}
	if form.Country == "" {
		return reject("pages.register.toasts.countryRequired")
	}
	if form.Email == "" {
		return reject("pages.register.toasts.emailRequired")
	}
	if err := validate.Var(form.Email, "email"); err != nil {
		return reject("pages.register.toasts.emailInvalid")
	}
	if form.Address == "" {
		return reject("pages.register.toasts.addressRequired")
	}
	if len(strings.TrimSpace(form.Address)) < 6 {
		return reject("pages.register.toasts.addressTooShort")
	}
	if err := checkPhone(form.Phone, region); err != nil {
		return err
	}
	if form.PictureFilename == "" {
		return reject("pages.register.toasts.pictureRequired")
	}
	if !AllowedPicture(form.PictureFilename) {
		return reject("pages.register.toasts.pictureBadExtension")
	}
	return nil
}

// checkPhone parses phone against region and requires a valid mobile-capable
// number belonging to that region.
func checkPhone(phone, region string) *Error {
	if phone == "" {
		return reject("pages.register.toasts.phoneRequired")
	}
	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return reject("pages.register.toasts.phoneUnparsable")
	}
	if phonenumbers.GetRegionCodeForNumber(parsed) != region {
		return reject("pages.register.toasts.phoneWrongRegion")
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return reject("pages.register.toasts.phoneInvalid")
	}
	switch phonenumbers.GetNumberType(parsed) {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
	default:
		return reject("pages.register.toasts.phoneNotMobile")
	}
	return nil
}

// AllowedPicture reports whether filename carries an allow-listed extension.
func AllowedPicture(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return allowedPictureExtensions[strings.ToLower(filename[idx+1:])]
}
