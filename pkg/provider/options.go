package provider

// options are shared by the word-based providers.
type options struct {
	allow Allowlist
}

// Option configures a word-based provider.
type Option func(*options)

// WithAllowlist accepts the words in a, even if the provider would flag them.
func WithAllowlist(a Allowlist) Option {
	return func(o *options) {
		o.allow = a
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
