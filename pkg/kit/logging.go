package kit

import "go.uber.org/zap"

// NewLogger builds the production zap logger every binary uses. debug lowers
// the level so store and loader warnings show their detail fields.
func NewLogger(service string, debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.InitialFields = map[string]any{"service": service}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
