package parser

// WithDefaultsForTest exposes Config.withDefaults.
func WithDefaultsForTest(cf Config) Config {
	return cf.withDefaults()
}
