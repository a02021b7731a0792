package models

import "errors"

var (
	// the accessory list could not be fetched (bad status or network failure)
	ErrTransport = errors.New("transport error")

	// the hub response was not valid JSON
	ErrParse = errors.New("parse error")

	// a required field was missing
	ErrSchema = errors.New("schema error")

	ErrNotFound = errors.New("not found")
)
