package gosmt

// Config holds the translator's persistent options. §6 names exactly
// one: use-construct-hash, defaulted on. No config/flag-parsing
// dependency is pulled in for a single boolean — see DESIGN.md's
// "Standard-library-only pieces" entry for this file.
type Config struct {
	// UseConstructHash gates the constructed cache in
	// Translator.constructScalar. Disabling it forces every
	// expression to be re-translated on each Construct call instead
	// of reusing a prior translation keyed by node identity; useful
	// for isolating a translation bug from a stale-cache artifact,
	// never needed in ordinary use.
	UseConstructHash bool
}

// Option mutates a Config under construction, following the same
// functional-options shape the rest of the package favours for
// optional behaviour (e.g. Builder's plain constructors take no
// options at all, since they have nothing to configure).
type Option func(*Config)

// WithConstructHash overrides the default-enabled construct cache.
func WithConstructHash(enabled bool) Option {
	return func(c *Config) {
		c.UseConstructHash = enabled
	}
}

func newConfig(opts ...Option) *Config {
	cfg := &Config{
		UseConstructHash: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
