package service_test

import (
	"errors"
	"testing"

	"inkwell/internal/pkg"
	"inkwell/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCodes struct {
	codes map[string]string
}

func (f *fakeCodes) key(scope, email string) string { return scope + ":" + email }

func (f *fakeCodes) Save(scope, email, code string) error {
	f.codes[f.key(scope, email)] = code
	return nil
}

func (f *fakeCodes) Get(scope, email string) (string, error) {
	code, ok := f.codes[f.key(scope, email)]
	if !ok {
		return "", pkg.ErrNotFound
	}
	return code, nil
}

func (f *fakeCodes) Delete(scope, email string) error {
	delete(f.codes, f.key(scope, email))
	return nil
}

type fakeMailer struct {
	sent []string
	fail bool
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestEmailServiceSendAndVerify(t *testing.T) {
	codes := &fakeCodes{codes: make(map[string]string)}
	mailer := &fakeMailer{}
	svc := service.NewEmailService(mailer, codes, zap.NewNop())

	require.NoError(t, svc.SendCode("register", "user@example.com"))
	require.Len(t, mailer.sent, 1)

	stored, err := codes.Get("register", "user@example.com")
	require.NoError(t, err)
	require.Len(t, stored, 6)

	// Wrong code: mismatch, stored code survives.
	ok, err := svc.VerifyCode("register", "user@example.com", "000000x")
	require.NoError(t, err)
	assert.False(t, ok)

	// Right code: verifies once, then it is burned.
	ok, err = svc.VerifyCode("register", "user@example.com", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyCode("register", "user@example.com", stored)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmailServiceScopesAreIsolated(t *testing.T) {
	codes := &fakeCodes{codes: make(map[string]string)}
	svc := service.NewEmailService(&fakeMailer{}, codes, zap.NewNop())

	require.NoError(t, svc.SendCode("register", "user@example.com"))
	stored, err := codes.Get("register", "user@example.com")
	require.NoError(t, err)

	ok, err := svc.VerifyCode("reset", "user@example.com", stored)
	require.NoError(t, err)
	assert.False(t, ok, "a register code must not pass reset verification")
}

func TestEmailServiceSendFailureDropsCode(t *testing.T) {
	codes := &fakeCodes{codes: make(map[string]string)}
	svc := service.NewEmailService(&fakeMailer{fail: true}, codes, zap.NewNop())

	require.Error(t, svc.SendCode("register", "user@example.com"))
	_, err := codes.Get("register", "user@example.com")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
