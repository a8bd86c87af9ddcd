package entity

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID             int64     `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	PasswordDigest string    `json:"-" db:"password_digest"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// SetPassword хранит только bcrypt-хэш пароля
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordDigest = string(hash)
	return nil
}

func (u *User) Authenticate(password string) bool {
	if u == nil || u.PasswordDigest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordDigest), []byte(password)) == nil
}

// bcrypt учитывает только первые 72 байта пароля и отказывается хэшировать длиннее
const MaxPasswordBytes = 72

// UserInput - данные формы регистрации
type UserInput struct {
	Email    string
	Password string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (in UserInput) Validate() ValidationErrors {
	var errs ValidationErrors
	if NormalizeEmail(in.Email) == "" {
		errs = errs.Add("email", "Email can't be blank")
	}
	switch {
	case in.Password == "":
		errs = errs.Add("password", "Password can't be blank")
	case len(in.Password) > MaxPasswordBytes:
		errs = errs.Add("password", "Password is too long (maximum is 72 bytes)")
	}
	return errs
}

func (in UserInput) NewUser() (*User, error) {
	u := &User{Email: NormalizeEmail(in.Email)}
	if err := u.SetPassword(in.Password); err != nil {
		return nil, err
	}
	return u, nil
}
