// Package filesystem holds small path helpers shared by the adapters.
package filesystem

import "os"

// UserHomeDir returns the current user's home directory, falling back to the
// working directory when it cannot be resolved.
func UserHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
