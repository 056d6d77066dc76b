package sqlite

type Option func(*Provider)

// WithPath sets the database file. An empty path or ":memory:" keeps the
// database in memory.
func WithPath(path string) Option {
	return func(p *Provider) {
		p.path = path
	}
}
