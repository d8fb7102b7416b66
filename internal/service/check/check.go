// Package check validates write payloads before they reach a repository.
package check

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"jewelry-storefront/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Payload validates v, skipping the named fields, and wraps failures in
// domain.ErrValidation with the offending field names.
func Payload(v any, except ...string) error {
	var err error
	if len(except) > 0 {
		err = validate.StructExcept(v, except...)
	} else {
		err = validate.Struct(v)
	}
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(fields, ", "))
}

// ID rejects identifiers that cannot name a stored record.
func ID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return nil
}
