package golpsa

// Option configures a Model at construction time.
type Option func(*Model) error

// WithLogger redirects the model's (and, through it, the engines')
// diagnostic output. The default discards everything.
func WithLogger(logger Logger) Option {
	return func(m *Model) error {
		m.logger = logger

		return nil
	}
}
