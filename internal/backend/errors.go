package backend

import "errors"

var (
	// ErrProvision marks failures to download, place, or mark the binary runnable.
	ErrProvision = errors.New("browser provisioning failed")
	// ErrLaunch marks failures to start the backend or get it listening.
	ErrLaunch = errors.New("browser launch failed")
)
