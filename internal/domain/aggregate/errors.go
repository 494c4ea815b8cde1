package aggregate

import (
	"errors"
	"fmt"

	"github.com/okian/podium/internal/domain/model"
)

// Sentinel kinds for aggregation errors.
var (
	ErrInvalidField = errors.New("invalid field")
	ErrInvalidSpec  = errors.New("invalid aggregation spec")
)

// InvalidFieldError reports an aggregation over a field the schema does not
// have, or one that cannot play the requested role.
type InvalidFieldError struct {
	Field string
	Role  string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %q: not a %s field", e.Field, e.Role)
}

func (e *InvalidFieldError) Unwrap() error { return ErrInvalidField }

func requireCategorical(fields ...model.Field) error {
	for _, f := range fields {
		if !f.Categorical() {
			return &InvalidFieldError{Field: string(f), Role: "categorical"}
		}
	}
	return nil
}

func requireNumeric(f model.Field) error {
	if !f.Numeric() {
		return &InvalidFieldError{Field: string(f), Role: "numeric"}
	}
	return nil
}
