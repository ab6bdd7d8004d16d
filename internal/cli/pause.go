package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibhost/internal/host"
)

// SpinnerPause returns a host.PauseFunc that shows a countdown spinner on w
// for the duration of each pause. The spinner is stopped and its line
// cleared before the pause returns, so host output is never interleaved
// with it.
func SpinnerPause(w io.Writer) host.PauseFunc {
	return func(ctx context.Context, d time.Duration) error {
		if d <= 0 {
			return ctx.Err()
		}
		deadline := time.Now().Add(d)

		s := newSpinner(spinner.WithWriter(w))
		s.UpdateSuffix(pauseSuffix(d))
		s.Start()
		defer s.Stop()

		timer := time.NewTimer(d)
		defer timer.Stop()
		ticker := time.NewTicker(ProgressRefreshRate)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
				return nil
			case <-ticker.C:
				s.UpdateSuffix(pauseSuffix(time.Until(deadline)))
			}
		}
	}
}

func pauseSuffix(remaining time.Duration) string {
	return fmt.Sprintf(" next call in %s", FormatETA(remaining))
}
