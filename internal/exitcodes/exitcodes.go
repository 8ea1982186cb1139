package exitcodes

// Exit codes for the fileutils CLI
// These codes form the contract with scripts and Makefiles
const (
	Success         = 0 // Successful execution
	NotUpToDate     = 1 // uptodate: target is missing or older than a source
	InvalidConfig   = 2 // Configuration file invalid or missing, or bad usage
	SafetyViolation = 3 // Safety validator blocked an operation
	RuntimeError    = 4 // Runtime error during execution
)
