package main

// Exit codes
const (
	ExitSuccess     = 0 // Success, including degraded adds
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing repository, invalid paths)
	ExitRemoteError = 3 // Metadata API failure (network, status, schema)
	ExitInvalidID   = 4 // Input is not a recognizable arXiv identifier
)
