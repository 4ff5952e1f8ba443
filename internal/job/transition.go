package job

import "github.com/realchief/RenderShotPanel/internal/config"

// ResolveStatus decides which status actually takes effect when the
// backend (or an admin tool) proposes a change. It is pure: the caller
// persists whatever comes back.
//
//   - deleted is terminal; nothing moves a job out of it.
//   - resuming only settles into rendering; suspending only into
//     suspended. While in either transitional state, failed and
//     completed are still accepted as out-of-band farm corrections.
//     Anything else is dropped and the prior status kept.
//   - every other proposal is accepted as-is.
func ResolveStatus(current, requested string) string {
	switch current {
	case config.StatusDeleted:
		return current

	case config.StatusResuming:
		if requested == config.StatusRendering {
			return requested
		}
		if requested == config.StatusFailed || requested == config.StatusCompleted {
			return requested
		}
		return current

	case config.StatusSuspending:
		if requested == config.StatusSuspended {
			return requested
		}
		if requested == config.StatusFailed || requested == config.StatusCompleted {
			return requested
		}
		return current
	}

	return requested
}
