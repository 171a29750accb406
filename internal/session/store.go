package session

import (
	"errors"
	"net/http"
	"time"

	"myshop-be/internal/cart"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "session"

var ErrMissingSecret = errors.New("SESSION_SECRET is not set")

// Session is the per-visitor bag. Only the cart is stored in it.
type Session struct {
	ID   string
	Cart *cart.Cart

	fresh bool
}

// NeedsSave reports whether the cookie must be (re)written.
func (s *Session) NeedsSave() bool {
	return s.fresh || s.Cart.Dirty()
}

type claims struct {
	Cart map[string]cart.Item `json:"cart"`
	jwt.RegisteredClaims
}

// Store keeps sessions client side in an HS256 signed cookie.
type Store struct {
	secret []byte
	maxAge time.Duration
	secure bool
}

func NewStore(secret string, maxAge time.Duration, secure bool) (*Store, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if maxAge <= 0 {
		maxAge = 30 * 24 * time.Hour
	}
	return &Store{secret: []byte(secret), maxAge: maxAge, secure: secure}, nil
}

// Load never fails: a missing, expired or tampered cookie yields a new
// empty session.
func (s *Store) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return s.newSession()
	}

	c, err := s.decode(cookie.Value)
	if err != nil || c.ID == "" {
		return s.newSession()
	}

	return &Session{ID: c.ID, Cart: cart.Restore(c.Cart)}
}

func (s *Store) Save(w http.ResponseWriter, sess *Session) error {
	value, err := s.encode(sess)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	sess.fresh = false
	return nil
}

func (s *Store) newSession() *Session {
	return &Session{ID: uuid.NewString(), Cart: cart.New(), fresh: true}
}

func (s *Store) encode(sess *Session) (string, error) {
	now := time.Now()
	c := claims{
		Cart: sess.Cart.Snapshot(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *Store) decode(value string) (*claims, error) {
	token, err := jwt.ParseWithClaims(value, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session")
	}
	return c, nil
}
