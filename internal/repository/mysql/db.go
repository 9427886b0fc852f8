package mysql

import (
	"errors"

	"inkwell/internal/pkg"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open connects to MySQL. TranslateError is on so duplicate-key failures come
// back as gorm.ErrDuplicatedKey regardless of driver.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// wrapErr maps gorm sentinel errors onto the domain error taxonomy. Everything
// else passes through untouched.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkg.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return pkg.ErrConstraintViolation
	}
	return err
}
