package env

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load reads .env and then .env.<APP_ENV> (default "dev") into the process
// environment, the second overriding the first. Missing files are skipped.
// It returns the files that were loaded.
func Load() []string {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	var loaded []string
	if err := godotenv.Load(".env"); err == nil {
		loaded = append(loaded, ".env")
	}

	envFile := fmt.Sprintf(".env.%s", appEnv)
	if err := godotenv.Overload(envFile); err == nil {
		loaded = append(loaded, envFile)
	}

	return loaded
}
