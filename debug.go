package liquid

import (
	"fmt"
	"io"
	"os"
	"time"
)

// logOutput receives diagnostics. Replaced in tests.
var logOutput io.Writer = os.Stderr

// logf writes one "[liquid]"-prefixed diagnostic line.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(logOutput, "[liquid] "+format+"\n", args...)
}

// debugStats holds per-frame timings. Only populated when Config.Debug is set.
type debugStats struct {
	stepTime time.Duration
	drawTime time.Duration
	ready    bool
}

// debugLog prints timing stats to stderr.
func (e *Effect) debugLog(stats debugStats) {
	if !e.cfg.Debug {
		return
	}
	logf("%s: step: %v | draw: %v | total: %v | backend: %v | image ready: %v",
		e.name(), stats.stepTime, stats.drawTime, stats.stepTime+stats.drawTime,
		e.cfg.Backend, stats.ready)
}
