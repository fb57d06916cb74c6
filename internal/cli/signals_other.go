//go:build !unix

package cli

import (
	"context"

	"launchpad/internal/ui/services/lifecycle"
)

// lifecycleSignals has no signal source here; focus and blur reports from
// the terminal still drive the lifecycle
func lifecycleSignals(context.Context) (<-chan lifecycle.Signal, func()) {
	return make(chan lifecycle.Signal), func() {}
}
