package app

import "flag"

// Config represents the command-line parameters for the GUI.
type Config struct {
	Sim      string
	Scale    int
	HUDWidth int
	SPS      int
	TPS      int
	Seed     int64

	ConfigFile string
	Playbook   string
	LogLevel   string
	LogFormat  string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:       "assembly",
		Scale:     40,
		HUDWidth:  260,
		SPS:       50,
		TPS:       60,
		Seed:      0,
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "scenario to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per world unit")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.IntVar(&c.SPS, "sps", c.SPS, "simulation steps per second")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 keeps the configured seed)")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "INI run configuration")
	fs.StringVar(&c.Playbook, "playbook", c.Playbook, "playbook file (.txt or .yaml)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "console or json")
}

// WorldMargin is the border drawn around the domain, in world units.
const WorldMargin = 0.1

// ViewSize returns the pixel size of the lattice view for a domain of
// w x h world units.
func (c *Config) ViewSize(w, h float64) (int, int) {
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	return int((w + 2*WorldMargin) * float64(scale)), int((h + 2*WorldMargin) * float64(scale))
}
