// Package autoload loads .env from the working directory on import.
// Variables already present in the environment win.
package autoload

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"stopwatch/internal/infra"
)

var logger = infra.NewLogger(os.Stdout, "autoload")

func init() {
	if err := Load(); err != nil {
		logger.Printf(context.Background(), "dotenv autoload: %v", err)
	}
}

// Load applies the given env files, ignoring the ones that do not exist.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var errs []error
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
