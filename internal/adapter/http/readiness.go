package http

import (
	"context"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// AllReady combines checkers; the first failure wins. Nil checkers are skipped.
func AllReady(checkers ...sharedobs.ReadinessChecker) sharedobs.ReadinessChecker {
	return readinessChecks(checkers)
}

type readinessChecks []sharedobs.ReadinessChecker

func (rc readinessChecks) CheckReadiness(ctx context.Context) error {
	for _, c := range rc {
		if c == nil {
			continue
		}
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}
