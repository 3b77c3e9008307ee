package lattice

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"
)

// Layout names accepted by Config.Layout.
const (
	LayoutAssembly  = "assembly"
	LayoutSinglePin = "single-pin"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("lattice: invalid config")

// Params holds the tunable physics and bookkeeping knobs.
type Params struct {
	BaseSpeed    float64
	StepDuration float64
	SourceGroup  int
	FissionGroup int

	ResetParticles int
	MaxHistory     int
	MaxSteps       int
}

// Config controls the lattice geometry, materials and run settings.
type Config struct {
	Library string
	Layout  string

	PinsX     int
	PinsY     int
	PinPitch  float64
	PinRadius float64

	// Width and Height size the domain of the single-pin layout. The assembly
	// domain is always PinsX*PinPitch by PinsY*PinPitch.
	Width  float64
	Height float64

	Fuel       string
	Moderator  string
	Control    string
	Void       string
	Background string

	// MaterialTables adds materials read from column files to the library,
	// as comma-separated name:path pairs.
	MaterialTables string

	Seed     int64
	Boundary string
	Paused   bool

	// ResetX and ResetY place the particles spawned by a reset. Negative
	// values select the domain center.
	ResetX float64
	ResetY float64

	Params Params
}

// DefaultConfig returns the 17x17 fuel assembly.
func DefaultConfig() Config {
	return Config{
		Library:    "C5G7",
		Layout:     LayoutAssembly,
		PinsX:      17,
		PinsY:      17,
		PinPitch:   1,
		PinRadius:  0.4,
		Width:      10,
		Height:     10,
		Fuel:       "UO2",
		Moderator:  "Moderator",
		Control:    "Control",
		Void:       "Void",
		Background: "Moderator",
		Seed:       1337,
		Boundary:   Vacuum.String(),
		ResetX:     -1,
		ResetY:     -1,
		Params: Params{
			BaseSpeed:      0.5,
			StepDuration:   1,
			SourceGroup:    6,
			FissionGroup:   0,
			ResetParticles: 10,
			MaxHistory:     1000,
			MaxSteps:       0,
		},
	}
}

// SinglePinConfig returns one fuel pin of radius 1 centered on the origin of
// a 10x10 moderator domain.
func SinglePinConfig() Config {
	c := DefaultConfig()
	c.Layout = LayoutSinglePin
	c.PinRadius = 1
	c.Width = 10
	c.Height = 10
	return c
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch c.Layout {
	case LayoutAssembly:
		if c.PinsX <= 0 || c.PinsY <= 0 {
			return fmt.Errorf("%w: pin counts must be positive, got %dx%d", ErrInvalidConfig, c.PinsX, c.PinsY)
		}
		if c.PinPitch <= 0 {
			return fmt.Errorf("%w: pin pitch must be positive", ErrInvalidConfig)
		}
		if c.PinRadius*2 > c.PinPitch {
			return fmt.Errorf("%w: pin radius %g overlaps pitch %g", ErrInvalidConfig, c.PinRadius, c.PinPitch)
		}
	case LayoutSinglePin:
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("%w: domain must have positive size", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown layout %q", ErrInvalidConfig, c.Layout)
	}
	if c.PinRadius <= 0 {
		return fmt.Errorf("%w: pin radius must be positive", ErrInvalidConfig)
	}
	if _, err := c.materialTables(); err != nil {
		return err
	}
	if _, err := ParseBoundaryCondition(c.Boundary); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	p := c.Params
	if p.BaseSpeed <= 0 || p.StepDuration <= 0 {
		return fmt.Errorf("%w: speed and step duration must be positive", ErrInvalidConfig)
	}
	if p.SourceGroup < 0 || p.FissionGroup < 0 {
		return fmt.Errorf("%w: energy groups must not be negative", ErrInvalidConfig)
	}
	if p.ResetParticles < 0 || p.MaxSteps < 0 {
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidConfig)
	}
	if p.MaxHistory < 2 {
		return fmt.Errorf("%w: history capacity must be at least 2", ErrInvalidConfig)
	}
	return nil
}

type materialTable struct {
	name, path string
}

func (c Config) materialTables() ([]materialTable, error) {
	var tables []materialTable
	for _, entry := range strings.Split(c.MaterialTables, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, path, ok := strings.Cut(entry, ":")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("%w: material table %q, want name:path", ErrInvalidConfig, entry)
		}
		tables = append(tables, materialTable{name, path})
	}
	return tables, nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unparsable values are reported rather than ignored.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg["layout"] == LayoutSinglePin {
		c = SinglePinConfig()
	}
	if err := c.apply(cfg); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// With returns a copy of c with the key/value overrides applied and
// validated.
func (c Config) With(overrides map[string]string) (Config, error) {
	if err := c.apply(overrides); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c *Config) apply(cfg map[string]string) error {
	for key, v := range cfg {
		var err error
		switch key {
		case "library":
			c.Library = v
		case "layout":
			c.Layout = v
		case "pins_x":
			c.PinsX, err = strconv.Atoi(v)
		case "pins_y":
			c.PinsY, err = strconv.Atoi(v)
		case "pin_pitch":
			c.PinPitch, err = strconv.ParseFloat(v, 64)
		case "pin_radius":
			c.PinRadius, err = strconv.ParseFloat(v, 64)
		case "w":
			c.Width, err = strconv.ParseFloat(v, 64)
		case "h":
			c.Height, err = strconv.ParseFloat(v, 64)
		case "fuel":
			c.Fuel = v
		case "moderator":
			c.Moderator = v
		case "control":
			c.Control = v
		case "void":
			c.Void = v
		case "background":
			c.Background = v
		case "materials":
			c.MaterialTables = v
		case "seed":
			c.Seed, err = strconv.ParseInt(v, 10, 64)
		case "boundary":
			c.Boundary = strings.ToLower(v)
		case "paused":
			c.Paused, err = strconv.ParseBool(v)
		case "reset_x":
			c.ResetX, err = strconv.ParseFloat(v, 64)
		case "reset_y":
			c.ResetY, err = strconv.ParseFloat(v, 64)
		case "base_speed":
			c.Params.BaseSpeed, err = strconv.ParseFloat(v, 64)
		case "step_duration":
			c.Params.StepDuration, err = strconv.ParseFloat(v, 64)
		case "source_group":
			c.Params.SourceGroup, err = strconv.Atoi(v)
		case "fission_group":
			c.Params.FissionGroup, err = strconv.Atoi(v)
		case "reset_particles":
			c.Params.ResetParticles, err = strconv.Atoi(v)
		case "max_history":
			c.Params.MaxHistory, err = strconv.Atoi(v)
		case "max_steps":
			c.Params.MaxSteps, err = strconv.Atoi(v)
		default:
			return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
		}
	}
	return nil
}

// ExampleConfigFile documents the INI format read by ReadConfigFile.
const ExampleConfigFile = `[Lattice]

# One of: assembly, single-pin
Layout = assembly
Library = C5G7

# Assembly geometry.
PinsX = 17
PinsY = 17
PinPitch = 1.0
PinRadius = 0.4

# Materials assigned to each pin type and to the space between pins.
Fuel = UO2
Moderator = Moderator
Control = Control
Void = Void
Background = Moderator

# Extra materials read from column files, as name:path pairs.
# MaterialTables = Graphite:graphite.txt

# vacuum or reflective
Boundary = vacuum
Seed = 1337

[Physics]

BaseSpeed = 0.5
StepDuration = 1.0
SourceGroup = 6
FissionGroup = 0
ResetParticles = 10
MaxHistory = 1000
# MaxSteps = 0
`

type latticeSection struct {
	Layout    string
	Library   string
	PinsX     int
	PinsY     int
	PinPitch  float64
	PinRadius float64
	Width     float64
	Height    float64

	Fuel       string
	Moderator  string
	Control    string
	Void       string
	Background string

	MaterialTables string

	Boundary string
	Seed     int64
	Paused   bool
	ResetX   float64
	ResetY   float64
}

type physicsSection struct {
	BaseSpeed      float64
	StepDuration   float64
	SourceGroup    int
	FissionGroup   int
	ResetParticles int
	MaxHistory     int
	MaxSteps       int
}

type fileConfig struct {
	Lattice latticeSection
	Physics physicsSection
}

func toFile(c Config) fileConfig {
	return fileConfig{
		Lattice: latticeSection{
			Layout:     c.Layout,
			Library:    c.Library,
			PinsX:      c.PinsX,
			PinsY:      c.PinsY,
			PinPitch:   c.PinPitch,
			PinRadius:  c.PinRadius,
			Width:      c.Width,
			Height:     c.Height,
			Fuel:       c.Fuel,
			Moderator:  c.Moderator,
			Control:    c.Control,
			Void:       c.Void,
			Background: c.Background,

			MaterialTables: c.MaterialTables,

			Boundary: c.Boundary,
			Seed:     c.Seed,
			Paused:   c.Paused,
			ResetX:   c.ResetX,
			ResetY:   c.ResetY,
		},
		Physics: physicsSection(c.Params),
	}
}

func (f fileConfig) config() Config {
	l := f.Lattice
	return Config{
		Library:    l.Library,
		Layout:     l.Layout,
		PinsX:      l.PinsX,
		PinsY:      l.PinsY,
		PinPitch:   l.PinPitch,
		PinRadius:  l.PinRadius,
		Width:      l.Width,
		Height:     l.Height,
		Fuel:       l.Fuel,
		Moderator:  l.Moderator,
		Control:    l.Control,
		Void:       l.Void,
		Background: l.Background,

		MaterialTables: l.MaterialTables,

		Seed:     l.Seed,
		Boundary: strings.ToLower(l.Boundary),
		Paused:   l.Paused,
		ResetX:   l.ResetX,
		ResetY:   l.ResetY,
		Params:   Params(f.Physics),
	}
}

// ReadConfigFile reads an INI file laid out like ExampleConfigFile. Keys left
// out of the file keep their default values.
func ReadConfigFile(fname string) (Config, error) {
	src, err := os.ReadFile(fname)
	if err != nil {
		return Config{}, err
	}
	c, err := ParseConfig(string(src))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", fname, err)
	}
	return c, nil
}

// ParseConfig reads the INI format from a string.
func ParseConfig(src string) (Config, error) {
	fc := toFile(DefaultConfig())
	if err := gcfg.ReadStringInto(&fc, src); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c := fc.config()
	return c, c.Validate()
}

// Bind registers the config fields on fs, using the current values as
// defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Layout, "layout", c.Layout, "lattice layout: assembly or single-pin")
	fs.StringVar(&c.Library, "library", c.Library, "cross-section library")
	fs.IntVar(&c.PinsX, "pins-x", c.PinsX, "assembly pins along x")
	fs.IntVar(&c.PinsY, "pins-y", c.PinsY, "assembly pins along y")
	fs.Float64Var(&c.PinPitch, "pitch", c.PinPitch, "assembly pin pitch")
	fs.Float64Var(&c.PinRadius, "radius", c.PinRadius, "pin radius")
	fs.StringVar(&c.Boundary, "boundary", c.Boundary, "boundary condition: vacuum or reflective")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.Float64Var(&c.Params.BaseSpeed, "speed", c.Params.BaseSpeed, "base particle speed per step")
	fs.IntVar(&c.Params.SourceGroup, "source-group", c.Params.SourceGroup, "energy group of source particles")
	fs.IntVar(&c.Params.ResetParticles, "particles", c.Params.ResetParticles, "particles spawned on reset")
	fs.IntVar(&c.Params.MaxSteps, "max-steps", c.Params.MaxSteps, "pause after this many steps (0 = never)")
}
