// Command cropctl runs the crop recommendation engine from the terminal.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/crop-advisor-service/internal/domain"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0
	ExitInvalid = 1 // farm conditions failed validation
	ExitError   = 2 // flags, files or I/O
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, domain.ErrInvalidConditions) {
			os.Exit(ExitInvalid)
		}
		os.Exit(ExitError)
	}
}
