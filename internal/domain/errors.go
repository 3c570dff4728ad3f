package domain

import "errors"

var (
	ErrChatNotFound     = errors.New("chat not found")
	ErrUnauthorized     = errors.New("not authenticated")
	ErrEmptyPrompt      = errors.New("empty prompt")
	ErrRequestInFlight  = errors.New("request already in flight")
	ErrNoActiveChat     = errors.New("no active chat")
	ErrEmptyCredentials = errors.New("email and password are required")
	ErrWeakPassword     = errors.New("password must be at least 8 characters with a letter and a digit")
	ErrInvalidName      = errors.New("name may only contain letters and spaces")
)
