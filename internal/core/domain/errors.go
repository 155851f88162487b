package domain

import "errors"

var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrForbidden = errors.New("access forbidden")
var ErrUserNotFound = errors.New("user not found")
var ErrDepartmentNotFound = errors.New("department not found")
var ErrEmailExists = errors.New("email already registered")
var ErrTooManyAttempts = errors.New("too many login attempts")
var ErrUnavailable = errors.New("service unavailable")
