package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads the first of .env/.env.local that exists. Variables that
// are already set in the process environment are not overwritten. It returns
// the file it loaded, or "" when none was present.
func loadEnvFile() (string, error) {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return path, fmt.Errorf("parse %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}
