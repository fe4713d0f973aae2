package handler

const (
	// RootPath is the root path of the route group.
	RootPath = "/"

	// AuthBasePath is the common prefix of all auth routes.
	AuthBasePath = "/auth"

	// ErrNilDepsFatalLogMsg is used if the app, cfg or service pointer is nil.
	ErrNilDepsFatalLogMsg = "app, cfg or service is nil"
)
