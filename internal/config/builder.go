package config

// Builder merges user configurations over the built-in defaults. Later
// additions win over earlier ones, field by field.
type Builder struct {
	configs []*Config
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a user configuration to the merge chain.
func (b *Builder) Add(cfg *Config) *Builder {
	if cfg != nil {
		b.configs = append(b.configs, cfg)
	}
	return b
}

// Build produces the effective configuration.
func (b *Builder) Build() Effective {
	eff := Effective{
		Remote:     DefaultRemote,
		FetchDepth: DefaultFetchDepth,
	}

	for _, cfg := range b.configs {
		if cfg.Remote != nil {
			eff.Remote = *cfg.Remote
		}
		if cfg.FetchDepth != nil {
			eff.FetchDepth = *cfg.FetchDepth
		}
		if cfg.DefaultBranch != nil {
			eff.DefaultBranch = *cfg.DefaultBranch
		}
	}

	return eff
}
