package lattice

import (
	"fmt"
	"image/color"

	"mc-lattice/internal/core"
	"mc-lattice/internal/transport"
	"mc-lattice/pkg/geom"
	"mc-lattice/pkg/xs"
)

// pin ties a palette entry to its display color and material.
type pin struct {
	color    color.RGBA
	material *xs.Material
}

var pinColors = map[core.PinType]color.RGBA{
	core.PinFuel:      {R: 128, A: 255},
	core.PinModerator: {G: 26, B: 77, A: 255},
	core.PinControl:   {R: 26, G: 26, B: 26, A: 255},
	core.PinVoid:      {R: 200, G: 200, B: 200, A: 255},
}

// buildPalette resolves the material of every pin type.
func buildPalette(lib *xs.Library, cfg Config) (map[core.PinType]pin, error) {
	names := map[core.PinType]string{
		core.PinFuel:      cfg.Fuel,
		core.PinModerator: cfg.Moderator,
		core.PinControl:   cfg.Control,
		core.PinVoid:      cfg.Void,
	}
	palette := make(map[core.PinType]pin, len(names))
	for _, t := range core.PinTypes() {
		m, err := lib.ByName(names[t])
		if err != nil {
			return nil, fmt.Errorf("%s pin: %w", t, err)
		}
		palette[t] = pin{color: pinColors[t], material: m}
	}
	return palette, nil
}

// buildMesh lays out the configured geometry with every pin set to fuel.
func buildMesh(lib *xs.Library, cfg Config, palette map[core.PinType]pin) (*transport.Mesh, error) {
	bg, err := lib.ByName(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	bgColor := pinColors[core.PinModerator]
	for _, t := range core.PinTypes() {
		if palette[t].material.ID == bg.ID {
			bgColor = pinColors[t]
			break
		}
	}
	fuel := palette[core.PinFuel]

	switch cfg.Layout {
	case LayoutAssembly:
		w := float64(cfg.PinsX) * cfg.PinPitch
		h := float64(cfg.PinsY) * cfg.PinPitch
		mesh := transport.NewMesh(w, h, bg, bgColor)
		for ix := 0; ix < cfg.PinsX; ix++ {
			for iy := 0; iy < cfg.PinsY; iy++ {
				center := geom.V((float64(ix)+0.5)*cfg.PinPitch, (float64(iy)+0.5)*cfg.PinPitch)
				mesh.AddShape(geom.NewCircle(fuel.color, center, cfg.PinRadius), fuel.material)
			}
		}
		return mesh, nil
	case LayoutSinglePin:
		mesh := transport.NewMesh(cfg.Width, cfg.Height, bg, bgColor)
		mesh.AddShape(geom.NewCircle(fuel.color, geom.V(0, 0), cfg.PinRadius), fuel.material)
		return mesh, nil
	}
	return nil, fmt.Errorf("%w: unknown layout %q", ErrInvalidConfig, cfg.Layout)
}
