// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the error taxonomy shared by the content core.
// Callers distinguish the five kinds to decide between "fix your input",
// "that no longer exists", "log in", "you lack permission", and
// "sign-in failed". None of these are transient; no retry is implied.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or conflicting input, such as a
// duplicate slug or an unresolvable domain/author reference.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports an absent id or slug.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// UnauthorizedError reports a gated action attempted without a principal.
type UnauthorizedError struct {
	Action string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("authentication required for %s", e.Action)
}

// ForbiddenError reports a principal that lacks the role or ownership an
// action requires. Distinct from UnauthorizedError: the caller is known,
// just not allowed.
type ForbiddenError struct {
	Action string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("permission denied for %s", e.Action)
}

// AuthenticationError reports a credential that could not be exchanged
// for a known user.
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a NotFoundError for the given resource and key.
func NotFound(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

// Unauthorized builds an UnauthorizedError for the named action.
func Unauthorized(action string) error {
	return &UnauthorizedError{Action: action}
}

// Forbidden builds a ForbiddenError for the named action.
func Forbidden(action string) error {
	return &ForbiddenError{Action: action}
}

// Authentication builds an AuthenticationError from a format string.
func Authentication(format string, args ...any) error {
	return &AuthenticationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsUnauthorized reports whether err is an UnauthorizedError.
func IsUnauthorized(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

// IsForbidden reports whether err is a ForbiddenError.
func IsForbidden(err error) bool {
	var e *ForbiddenError
	return errors.As(err, &e)
}

// IsAuthentication reports whether err is an AuthenticationError.
func IsAuthentication(err error) bool {
	var e *AuthenticationError
	return errors.As(err, &e)
}
