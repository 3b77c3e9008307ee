package playbook

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"mc-lattice/internal/core"
	"mc-lattice/pkg/geom"
)

// ErrSyntax wraps every malformed playbook error.
var ErrSyntax = errors.New("playbook: syntax error")

// args gives positional (text) or named (YAML) access to command arguments.
type args interface {
	float(name string, pos int) (float64, error)
	integer(name string, pos int) (int, error)
	str(name string, pos int) (string, error)
}

func build(instruction string, a args) (Command, error) {
	point := func() (geom.Vec2, error) {
		x, err := a.float("x", 0)
		if err != nil {
			return geom.Vec2{}, err
		}
		y, err := a.float("y", 1)
		if err != nil {
			return geom.Vec2{}, err
		}
		return geom.V(x, y), nil
	}

	switch instruction {
	case "reset":
		return reset{}, nil
	case "toggle_boundary":
		return toggleBoundary{}, nil
	case "pause":
		return togglePause{}, nil
	case "toggle_material":
		at, err := point()
		if err != nil {
			return nil, err
		}
		return cycleShape{at: at}, nil
	case "cycle_all":
		return cycleAll{}, nil
	case "set_material":
		at, err := point()
		if err != nil {
			return nil, err
		}
		name, err := a.str("material", 2)
		if err != nil {
			return nil, err
		}
		pin, err := core.ParsePinType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse material: %v", ErrSyntax, err)
		}
		return setMaterial{at: at, pin: pin}, nil
	case "add_particles":
		at, err := point()
		if err != nil {
			return nil, err
		}
		n, err := a.integer("n", 2)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: negative particle count %d", ErrSyntax, n)
		}
		return addParticles{at: at, n: n}, nil
	case "source":
		at, err := point()
		if err != nil {
			return nil, err
		}
		return setSource{at: at}, nil
	case "clear_source":
		return clearSource{}, nil
	case "noop":
		return noop{}, nil
	case "halt":
		return halt{}, nil
	}
	return nil, fmt.Errorf("%w: failed to parse instruction %q", ErrSyntax, instruction)
}

type textArgs []string

func (t textArgs) field(name string, pos int) (string, error) {
	if pos >= len(t) {
		return "", fmt.Errorf("%w: missing argument %s", ErrSyntax, name)
	}
	return t[pos], nil
}

func (t textArgs) float(name string, pos int) (float64, error) {
	s, err := t.field(name, pos)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: argument %s: %v", ErrSyntax, name, err)
	}
	return v, nil
}

func (t textArgs) integer(name string, pos int) (int, error) {
	s, err := t.field(name, pos)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// Older playbooks wrote counts as floats.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, fmt.Errorf("%w: argument %s: %v", ErrSyntax, name, err)
		}
		v = int(f)
	}
	return v, nil
}

func (t textArgs) str(name string, pos int) (string, error) {
	return t.field(name, pos)
}

// Parse reads the line-oriented format: "<tics> <instruction> [args...]".
// Blank lines and lines starting with '#' are skipped.
func Parse(r io.Reader) (*Playbook, error) {
	p := New()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		src := strings.TrimSpace(sc.Text())
		if src == "" || strings.HasPrefix(src, "#") {
			continue
		}
		fields := strings.Fields(src)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: %w: expected \"<tics> <instruction>\"", line, ErrSyntax)
		}
		tics, err := strconv.ParseUint(fields[0], 10, 31)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: bad tic count %q", line, ErrSyntax, fields[0])
		}
		cmd, err := build(fields[1], textArgs(fields[2:]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p.Add(int(tics), cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

type yamlFile struct {
	Commands []yamlCommand `yaml:"commands"`
}

type yamlCommand struct {
	After    int      `yaml:"after"`
	Do       string   `yaml:"do"`
	X        *float64 `yaml:"x,omitempty"`
	Y        *float64 `yaml:"y,omitempty"`
	Material string   `yaml:"material,omitempty"`
	N        *int     `yaml:"n,omitempty"`
}

func (c yamlCommand) float(name string, _ int) (float64, error) {
	var v *float64
	switch name {
	case "x":
		v = c.X
	case "y":
		v = c.Y
	}
	if v == nil {
		return 0, fmt.Errorf("%w: missing argument %s", ErrSyntax, name)
	}
	return *v, nil
}

func (c yamlCommand) integer(name string, _ int) (int, error) {
	if name != "n" || c.N == nil {
		return 0, fmt.Errorf("%w: missing argument %s", ErrSyntax, name)
	}
	return *c.N, nil
}

func (c yamlCommand) str(name string, _ int) (string, error) {
	if name != "material" || c.Material == "" {
		return "", fmt.Errorf("%w: missing argument %s", ErrSyntax, name)
	}
	return c.Material, nil
}

// ParseYAML reads a YAML document with a "commands" list.
func ParseYAML(r io.Reader) (*Playbook, error) {
	var f yamlFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	p := New()
	for i, c := range f.Commands {
		if c.After < 0 {
			return nil, fmt.Errorf("command %d: %w: negative wait %d", i, ErrSyntax, c.After)
		}
		cmd, err := build(c.Do, c)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		p.Add(c.After, cmd)
	}
	return p, nil
}

// Load opens path and parses it, choosing the YAML reader for .yaml and .yml
// files.
func Load(path string) (*Playbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playbook file: %w", err)
	}
	defer f.Close()

	var p *Playbook
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = ParseYAML(f)
	default:
		p, err = Parse(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
