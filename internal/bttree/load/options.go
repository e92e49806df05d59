package load

import "log/slog"

type config struct {
	rootName string
	logger   *slog.Logger
}

// Option configures a call to Load.
type Option func(*config)

// WithRootName loads the tree declared under name instead of the default
// "main".
func WithRootName(name string) Option {
	return func(c *config) { c.rootName = name }
}

// WithLogger overrides the *slog.Logger Load uses for its one-line
// load-summary record, in place of the default of slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}
