package service

import "errors"

var (
	ErrHomeNameTaken      = errors.New("funeral home name already registered")
	ErrEmailTaken         = errors.New("email already in use")
	ErrEmailNotRegistered = errors.New("email is not registered")
	ErrInvalidHomeName    = errors.New("funeral home name contains invalid characters")
	ErrWeakPassword       = errors.New("password is too short")

	ErrInvalidCode = errors.New("verification code is incorrect")
	ErrExpiredCode = errors.New("verification code has expired")

	ErrSlugTaken = errors.New("project slug already in use")

	ErrHomeNotFound    = errors.New("funeral home not found")
	ErrProjectNotFound = errors.New("project not found")
)
