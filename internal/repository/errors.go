package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a row does not exist or belongs to another
// tenant. The two cases are indistinguishable on purpose.
var ErrNotFound = errors.New("registro no encontrado")

// DuplicateError reports a violated uniqueness constraint with a stable,
// machine-readable code per resource kind.
type DuplicateError struct {
	Code    string
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// translate maps storage errors to the domain taxonomy. GORM's TranslateError
// already normalizes driver-specific unique violations into
// gorm.ErrDuplicatedKey, so no error-string sniffing happens here.
func translate(err error, dup *DuplicateError) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return dup
	default:
		return err
	}
}
