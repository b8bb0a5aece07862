package archive

import "github.com/0xC0000054/dbpf/internal/options"

// config holds the settings an Option can adjust before Open/Create run.
type config struct {
	preloadPayloads bool
}

// Option configures Open or Create.
type Option = options.Option[*config]

// WithPreloadPayloads causes Open to read every entry's payload into memory
// immediately instead of deferring reads to the first GetEntry call. Useful
// when the caller knows it will touch most of the archive and wants a
// single sequential read pass instead of many seeks.
func WithPreloadPayloads() Option {
	return options.NoError[*config](func(c *config) {
		c.preloadPayloads = true
	})
}

func newConfig(opts ...Option) (*config, error) {
	c := &config{}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}
