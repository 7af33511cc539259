package main

import (
	"os"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/app"
)

// Global flags (-config, -useExamples) are parsed by the app together with the command.
func main() {
	os.Exit(app.Run())
}
