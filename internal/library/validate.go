// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// MinYear is the earliest publication year the adapters accept.
const MinYear = 1000

// ErrInvalidInput is matched by every ValidationErrors value.
var ErrInvalidInput = errors.New("invalid book")

// currentYear is swapped in tests.
var currentYear = func() int { return time.Now().Year() }

// BookInput is a candidate book collected by a presentation layer.
// The store never validates; adapters call Validate before Store.Add.
type BookInput struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Year   int    `json:"year" validate:"gte=1000,notFuture"`
	Genre  string `json:"genre" validate:"required"`
	Read   bool   `json:"read"`
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors lists every rejected field of a BookInput.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "invalid book: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// V returns the shared validator with the book rules registered.
func V() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = validate.RegisterValidation("notFuture", func(fl validator.FieldLevel) bool {
			return fl.Field().Int() <= int64(currentYear())
		})
	})
	return validate
}

// Normalize returns a copy with text fields trimmed, the form Store.Add stores.
func (in BookInput) Normalize() BookInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Genre = strings.TrimSpace(in.Genre)
	return in
}

// Validate checks the trimmed input. It returns nil or a ValidationErrors.
func (in BookInput) Validate() error {
	norm := in.Normalize()
	err := V().Struct(norm)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var ves ValidationErrors
	for _, e := range fieldErrs {
		switch e.Tag() {
		case "required":
			ves = append(ves, FieldError{Field: e.Field(), Message: "must not be empty"})
		case "gte":
			ves = append(ves, FieldError{Field: e.Field(), Message: fmt.Sprintf("must be at least %d", MinYear)})
		case "notFuture":
			ves = append(ves, FieldError{Field: e.Field(), Message: fmt.Sprintf("must not be after %d", currentYear())})
		default:
			ves = append(ves, FieldError{Field: e.Field(), Message: "is invalid"})
		}
	}
	return ves
}

// AddTo validates the input and adds it to store.
func (in BookInput) AddTo(store BookStore) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}
	return store.Add(in.Title, in.Author, in.Year, in.Genre, in.Read)
}
