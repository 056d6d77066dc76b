package mongo

type Option func(*Provider)

func WithDatabase(name string) Option {
	return func(p *Provider) {
		p.database = name
	}
}
