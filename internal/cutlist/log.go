package cutlist

import "go.uber.org/zap"

// log is the package-wide diagnostic logger. The engine itself takes no
// configuration; callers that want the parse/split/combine diagnostics
// install a logger with SetLogger. Everything logged here is informational —
// the engine corrects anomalies in place and never fails on them.
var log = zap.NewNop().Sugar()

// SetLogger installs the diagnostic logger for the whole package.
// Passing nil restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		log = zap.NewNop().Sugar()
		return
	}
	log = l.Sugar()
}
