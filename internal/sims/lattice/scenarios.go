package lattice

import "mc-lattice/internal/core"

func init() {
	core.Register(LayoutAssembly, func(cfg map[string]string) (core.Sim, error) {
		return fromMap(LayoutAssembly, cfg)
	})
	core.Register(LayoutSinglePin, func(cfg map[string]string) (core.Sim, error) {
		return fromMap(LayoutSinglePin, cfg)
	})
}

func fromMap(layout string, cfg map[string]string) (core.Sim, error) {
	merged := map[string]string{"layout": layout}
	for k, v := range cfg {
		merged[k] = v
	}
	c, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	s, err := NewWithConfig(c)
	if err != nil {
		return nil, err
	}
	return s, nil
}
