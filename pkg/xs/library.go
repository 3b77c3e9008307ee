package xs

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownMaterial is returned when a name is not in the library.
	ErrUnknownMaterial = errors.New("xs: unknown material")
	// ErrDuplicateMaterial is returned when a name is added twice.
	ErrDuplicateMaterial = errors.New("xs: duplicate material")
	// ErrGroupMismatch is returned when a material disagrees with the library
	// group structure.
	ErrGroupMismatch = errors.New("xs: energy group mismatch")
	// ErrEmptyLibrary is returned when a library without materials is used.
	ErrEmptyLibrary = errors.New("xs: empty library")
)

// Library is a name-indexed registry of materials sharing one group structure.
type Library struct {
	name      string
	groups    int
	materials []*Material
	byName    map[string]MaterialID
}

// NewLibrary creates an empty library.
func NewLibrary(name string) *Library {
	return &Library{name: name, byName: map[string]MaterialID{}}
}

// Name returns the library identifier.
func (l *Library) Name() string { return l.name }

// Groups returns the number of energy groups, or 0 for an empty library.
func (l *Library) Groups() int { return l.groups }

// Len returns the number of materials.
func (l *Library) Len() int { return len(l.materials) }

// Add registers m and assigns its ID.
func (l *Library) Add(m *Material) (MaterialID, error) {
	if m == nil {
		return NoMaterial, fmt.Errorf("%w: nil material", ErrInvalidMaterial)
	}
	if _, ok := l.byName[m.Name]; ok {
		return NoMaterial, fmt.Errorf("%w: %q", ErrDuplicateMaterial, m.Name)
	}
	if l.groups != 0 && m.Groups != l.groups {
		return NoMaterial, fmt.Errorf("%w: %q has %d groups, library %q has %d", ErrGroupMismatch, m.Name, m.Groups, l.name, l.groups)
	}
	l.groups = m.Groups
	id := MaterialID(len(l.materials))
	m.ID = id
	l.materials = append(l.materials, m)
	l.byName[m.Name] = id
	return id, nil
}

// Alias makes an existing material reachable under another name.
func (l *Library) Alias(alias, name string) error {
	id, ok := l.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	if _, ok := l.byName[alias]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateMaterial, alias)
	}
	l.byName[alias] = id
	return nil
}

// ByName looks a material up by name.
func (l *Library) ByName(name string) (*Material, error) {
	id, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in library %q", ErrUnknownMaterial, name, l.name)
	}
	return l.materials[id], nil
}

// MustByName panics on unknown names. Use it only for compiled-in fixtures.
func (l *Library) MustByName(name string) *Material {
	m, err := l.ByName(name)
	if err != nil {
		panic(err)
	}
	return m
}

// ByID returns the material with the given handle, or nil.
func (l *Library) ByID(id MaterialID) *Material {
	if id < 0 || int(id) >= len(l.materials) {
		return nil
	}
	return l.materials[id]
}

// Names lists every registered name, aliases included, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.byName))
	for name := range l.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the library can be used for transport.
func (l *Library) Validate() error {
	if len(l.materials) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyLibrary, l.name)
	}
	return nil
}

var libraries = map[string]func() *Library{
	"C5G7": C5G7,
}

// Lookup builds a compiled-in library by name.
func Lookup(name string) (*Library, error) {
	f, ok := libraries[name]
	if !ok {
		return nil, fmt.Errorf("xs: unknown library %q", name)
	}
	return f(), nil
}
