package services

import "errors"

// ErrMissingLocationProvider is returned when no location provider is configured.
var ErrMissingLocationProvider = errors.New("services: location provider is required")

// ErrMissingActivityRecognizer is returned when no activity recognizer is configured.
var ErrMissingActivityRecognizer = errors.New("services: activity recognizer is required")

// ErrMissingGeocoder is returned when no geocoder is configured.
var ErrMissingGeocoder = errors.New("services: geocoder is required")

// ErrMissingRenderer is returned when no renderer is configured.
var ErrMissingRenderer = errors.New("services: renderer is required")

// ErrNotCreated is returned when a screen is started before OnCreate.
var ErrNotCreated = errors.New("services: screen not created")
