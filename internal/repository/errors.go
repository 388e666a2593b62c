package repository

import "errors"

var (
	// ErrConnection means the store could not be reached with the configured
	// credential. Callers show setup guidance and stop.
	ErrConnection = errors.New("store connection failed")
	// ErrProvision means the book or worksheet could not be created, usually
	// because the account is out of storage quota.
	ErrProvision = errors.New("store not available")
	ErrLoad      = errors.New("loading plans failed")
	ErrWrite     = errors.New("saving plan failed")

	ErrPlanNotFound = errors.New("plan not found")
)
