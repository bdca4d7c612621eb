package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrSeriesNotTracked indicates the series is not in the tracked collection
	ErrSeriesNotTracked = errors.New("series is not tracked")

	// ErrCatalogUnreachable indicates the remote catalog is unreachable
	ErrCatalogUnreachable = errors.New("catalog is unreachable")

	// ErrNotFound indicates the requested catalog resource does not exist
	ErrNotFound = errors.New("catalog resource not found")

	// ErrInvalidCollection indicates a file is not a valid series collection database
	ErrInvalidCollection = errors.New("not a valid series collection database")

	// ErrDatastoreBusy indicates the datastore is locked by another process
	ErrDatastoreBusy = errors.New("datastore is in use")

	// ErrNoDataDir indicates the application data directory could not be determined
	ErrNoDataDir = errors.New("application data directory could not be determined")
)
