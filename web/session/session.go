// Package session wraps the cookie-backed store with typed access to the
// logged-in user and flash messages.
package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUserKey = "LOGIN_USER"

	// CookieName names the session cookie issued to clients.
	CookieName = "userhub_session"

	// sessionMaxAge bounds how long a login survives, in seconds.
	sessionMaxAge = 86400
)

// User is the identity cached in the session after a successful login.
type User struct {
	Id        int
	Username  string
	FirstName string
}

// FlashMessage is a one-shot notice rendered on the next page load.
type FlashMessage struct {
	Category string
	Message  string
}

func init() {
	gob.Register(User{})
	gob.Register(FlashMessage{})
}

func SetLoginUser(c *gin.Context, user User) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
	})
	s.Set(loginUserKey, user)
	return s.Save()
}

func GetLoginUser(c *gin.Context) *User {
	s := sessions.Default(c)
	if obj := s.Get(loginUserKey); obj != nil {
		if user, ok := obj.(User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	return nil
}

// Flash queues a message for the next rendered page.
func Flash(c *gin.Context, category, message string) error {
	s := sessions.Default(c)
	s.AddFlash(FlashMessage{Category: category, Message: message})
	return s.Save()
}

// TakeFlashes drains queued flash messages.
func TakeFlashes(c *gin.Context) []FlashMessage {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save()
	out := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(FlashMessage); ok {
			out = append(out, msg)
		}
	}
	return out
}
