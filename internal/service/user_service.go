package service

import (
	"errors"

	"inkwell/internal/model"
	"inkwell/internal/pkg"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrCodeMismatch       = errors.New("verification failed")
)

// UserService covers the account lifecycle: register, login, logout, token
// refresh and password changes. It is a collaborator of the post core, which
// only ever sees the resulting principal id.
type UserService struct {
	users    UserRepo
	sessions SessionStore
	tokens   *pkg.TokenManager
	email    *EmailService
}

func NewUserService(users UserRepo, sessions SessionStore, tokens *pkg.TokenManager, email *EmailService) *UserService {
	return &UserService{users: users, sessions: sessions, tokens: tokens, email: email}
}

// Register creates an account after the emailed code checks out. Username and
// email collisions surface as pkg.ErrConstraintViolation.
func (s *UserService) Register(username, password, email, code string) error {
	ok, err := s.email.VerifyCode("register", email, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCodeMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.Create(&model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	})
}

// Login checks credentials, issues a token pair and pins the access token as
// the single active session.
func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(user.ID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.sessions.Delete(userID)
}

// Refresh trades a valid refresh token for a new pair and pins the new access
// token as the active session, so the old access token stops working and the
// new one is accepted by the auth middleware.
func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, userID, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(userID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// ResetPassword sets a new password after the emailed reset code checks out.
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.email.VerifyCode("reset", email, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCodeMismatch
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(user, string(hash))
}

// ChangePassword is the logged-in variant; it ends the session so the client
// has to log in again with the new password.
func (s *UserService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	return s.sessions.Delete(userID)
}
