package domain

import "errors"

var (
	// ErrRemoteService is returned when the text-generation service call fails
	// (network, auth, non-200, malformed payload)
	ErrRemoteService = errors.New("remote text-generation service failed")

	// ErrMissingCredential is returned when no API key was configured
	ErrMissingCredential = errors.New("text-generation API key not configured")

	// ErrEmptyResponse is returned when the remote service answers without any text
	ErrEmptyResponse = errors.New("remote service returned no text")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnknownView is returned when a view name is not one of the five screens
	ErrUnknownView = errors.New("unknown view")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrRequestInFlight is returned when a client submits a concierge request
	// while its previous one is still outstanding
	ErrRequestInFlight = errors.New("concierge request already in flight")
)
