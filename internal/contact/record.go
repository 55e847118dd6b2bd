// Package contact turns loosely formatted contact lines into validated,
// deduplicated records.
package contact

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
)

// ErrInvalidRecord indicates a Record that breaks a field invariant.
var ErrInvalidRecord = errors.New("contact: invalid record")

// Record is a normalized contact. Records are values; nothing in this
// package mutates one after it is built.
type Record struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"omitempty,len=10,number"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate reports whether r satisfies the Record invariants: a
// grammar-conforming email and a phone of length 0 or 10.
func (r Record) Validate() error {
	if err := recordValidator().Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %q", ErrInvalidRecord, verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("%w: email %q", ErrInvalidRecord, r.Email)
	}
	return nil
}

// Key returns the identity key used for deduplication: the case-folded email.
func (r Record) Key() string {
	return cases.Fold().String(r.Email)
}
