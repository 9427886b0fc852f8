package service

import (
	"errors"
	"time"

	"inkwell/internal/pkg"

	"go.uber.org/zap"
)

const (
	codeLength = 6
	codeTTL    = 5 * time.Minute
)

// MailSender is what the service needs from SMTP; pkg.Mailer is the
// production implementation.
type MailSender interface {
	Send(to, subject, htmlBody string) error
}

// EmailService sends and verifies one-shot email codes for registration and
// password reset.
type EmailService struct {
	mailer MailSender
	codes  CodeStore
	log    *zap.Logger
}

func NewEmailService(mailer MailSender, codes CodeStore, log *zap.Logger) *EmailService {
	return &EmailService{mailer: mailer, codes: codes, log: log}
}

// SendCode generates a code, stores it under the scope and mails it.
func (s *EmailService) SendCode(scope, email string) error {
	code, err := pkg.RandCode(codeLength)
	if err != nil {
		return err
	}
	if err := s.codes.Save(scope, email, code); err != nil {
		return err
	}

	var action string
	switch scope {
	case "register":
		action = "account registration"
	case "reset":
		action = "password reset"
	default:
		action = scope
	}

	html := pkg.VerificationEmailHTML(action, code, codeTTL)
	if err := s.mailer.Send(email, "Your inkwell verification code", html); err != nil {
		// The stored code would let a later retry succeed with stale mail;
		// drop it so the user always verifies against the mail they got.
		_ = s.codes.Delete(scope, email)
		return err
	}
	s.log.Info("verification code sent", zap.String("scope", scope))
	return nil
}

// VerifyCode compares the submitted code and burns the stored one on success.
// A missing or expired code is a plain mismatch, not an error.
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	stored, err := s.codes.Get(scope, email)
	if errors.Is(err, pkg.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := s.codes.Delete(scope, email); err != nil {
		return false, err
	}
	return true, nil
}
