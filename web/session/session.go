package session

import (
	"crypto/subtle"
	"encoding/gob"
	"time"

	"secondplan/util/random"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CookieName is the single session cookie issued by the panel.
const CookieName = "secondplan_session"

const (
	loginUser  = "LOGIN_USER"
	sessionId  = "SESSION_ID"
	csrfToken  = "CSRF_TOKEN"
	csrfIssued = "CSRF_ISSUED"
)

// MaxAge is how long a session identifier may live before it is rotated.
const MaxAge = 30 * time.Minute

// User is the canonical session payload. One schema everywhere: Id, Name,
// Email, Role, LoginTime.
type User struct {
	Id        int
	Name      string
	Email     string
	Role      string
	LoginTime int64
}

func init() {
	gob.Register(User{})
}

// SetLoginUser establishes an authenticated session, regenerating the
// session identifier to prevent fixation.
func SetLoginUser(c *gin.Context, user User) error {
	s := sessions.Default(c)
	user.LoginTime = time.Now().Unix()
	s.Set(loginUser, user)
	s.Set(sessionId, random.TokenHex(16))
	return s.Save()
}

func GetLoginUser(c *gin.Context) *User {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// Rotate reissues the session identifier and refreshes the login timestamp
// once the session is older than MaxAge. Call on every authenticated request.
func Rotate(c *gin.Context) error {
	user := GetLoginUser(c)
	if user == nil {
		return nil
	}
	if time.Since(time.Unix(user.LoginTime, 0)) < MaxAge {
		return nil
	}
	s := sessions.Default(c)
	user.LoginTime = time.Now().Unix()
	s.Set(loginUser, *user)
	s.Set(sessionId, random.TokenHex(16))
	return s.Save()
}

// IssueCsrfToken returns the session's CSRF token, minting a fresh 32-byte
// hex token when none exists or the current one is older than ttl.
func IssueCsrfToken(c *gin.Context, ttl time.Duration) (string, error) {
	s := sessions.Default(c)
	token, _ := s.Get(csrfToken).(string)
	issued, _ := s.Get(csrfIssued).(int64)
	if token != "" && time.Since(time.Unix(issued, 0)) < ttl {
		return token, nil
	}
	token = random.TokenHex(32)
	s.Set(csrfToken, token)
	s.Set(csrfIssued, time.Now().Unix())
	return token, s.Save()
}

// VerifyCsrfToken fails closed: no stored token, an expired token, or a
// mismatch all reject. The comparison is constant-time and a successful
// verification consumes the token.
func VerifyCsrfToken(c *gin.Context, candidate string, ttl time.Duration) bool {
	s := sessions.Default(c)
	token, _ := s.Get(csrfToken).(string)
	issued, _ := s.Get(csrfIssued).(int64)
	if token == "" || candidate == "" {
		return false
	}
	if time.Since(time.Unix(issued, 0)) >= ttl {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(candidate)) != 1 {
		return false
	}
	s.Delete(csrfToken)
	s.Delete(csrfIssued)
	if err := s.Save(); err != nil {
		return false
	}
	return true
}

// ClearSession destroys all session state and expires the cookie.
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
	c.SetCookie(CookieName, "", -1, "/", "", c.Request.TLS != nil, true)
	return nil
}
