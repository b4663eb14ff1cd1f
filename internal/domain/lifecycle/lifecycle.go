// Package lifecycle holds shared start/stop conventions for long-lived
// components managed by the fx lifecycle.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdown.
const DefaultTimeout = 10 * time.Second
