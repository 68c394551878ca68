package main

import (
	"io"
	"os"

	"github.com/spacesedan/docscore/config"
	"github.com/spacesedan/docscore/internal/logging"
)

const finishedLine = "process finished with exit code 0"

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	run(os.Stdout)
}

// run executes the CLI. Every outcome, failures included, is reported as text and
// followed by the same final status line; the exit code stays 0.
func run(out io.Writer) {
	p := newPrinter(out)
	if err := Execute(); err != nil {
		p.Error("%v", err)
	}
	p.Success(finishedLine)
}
