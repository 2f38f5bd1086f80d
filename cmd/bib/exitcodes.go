package main

// Exit codes shared by all commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed input, validation failure)

	// Search exit codes
	ExitSearchNoResults = 1 // No records matched the query
	ExitSearchAuthError = 2 // Missing or invalid XPLORE_API_KEY
	ExitSearchAPIError  = 3 // API error (rate limit, network)
)
