// Package exitcode provides standardized exit codes for sfdelta
package exitcode

// Exit codes for the sfdelta CLI
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	GitError        = 3
	FileSystemError = 4
	UnknownMetadata = 5
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case GitError:
		return "Git error"
	case FileSystemError:
		return "File system error"
	case UnknownMetadata:
		return "Unknown metadata type"
	default:
		return "Unknown error"
	}
}
