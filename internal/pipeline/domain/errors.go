package domain

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrPromptNotFound  = errors.New("prompt record not found")
	ErrInvalidStage    = errors.New("invalid stage key")
	ErrEmptyField      = errors.New("required field is empty")
)
