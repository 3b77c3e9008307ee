//go:build ebiten

package app

import (
	"go.uber.org/zap"

	"mc-lattice/internal/core"
	"mc-lattice/internal/playbook"
	"mc-lattice/internal/render"
	"mc-lattice/internal/sims/lattice"
	"mc-lattice/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a lattice State to the ebiten.Game interface.
type Game struct {
	sim     *lattice.State
	painter *render.LatticePainter
	hud     *ui.HUD
	overlay *ui.Overlay
	clock   *core.FixedStep
	log     *zap.Logger

	viewW, viewH int
	hudW         int
	dragging     bool
}

// New constructs a Game for the provided simulation.
func New(sim *lattice.State, cfg *Config, log *zap.Logger) *Game {
	b := sim.Bounds()
	vw, vh := cfg.ViewSize(b.W, b.H)
	hudW := max(cfg.HUDWidth, 0)
	return &Game{
		sim:     sim,
		painter: render.NewLatticePainter(render.NewView(b.W, b.H, WorldMargin, vw, vh)),
		hud:     ui.NewHUD(sim, hudW),
		overlay: ui.NewOverlay(),
		clock:   core.NewFixedStep(cfg.SPS),
		log:     log,
		viewW:   vw,
		viewH:   vh,
		hudW:    hudW,
	}
}

// WindowSize returns the preferred window size in pixels.
func (g *Game) WindowSize() (int, int) { return g.viewW + g.hudW, g.viewH }

// Update handles per-frame input and advances the simulation at the fixed
// step rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	// The generator is not reseeded, so each reset starts a fresh history.
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.HardReset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.sim.ToggleBoundaryCondition()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.sim.ToggleWaypoints()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.sim.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.sim.CycleAll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.sim.Tic(true)
	}
	g.handleMouse()

	g.hud.Update(g.viewW)
	next := g.sim.TicsToNextCommand()
	if next == playbook.Never {
		next = -1
	}
	g.overlay.Update(ui.Status{
		Paused:      g.sim.Paused(),
		Boundary:    g.sim.BoundaryCondition().String(),
		Population:  g.sim.Population(),
		Steps:       g.sim.Steps(),
		NextCommand: next,
	})

	for i := g.clock.Due(); i > 0; i-- {
		g.sim.Tic(false)
	}
	return nil
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	view := g.painter.View()
	inView := mx >= 0 && mx < g.viewW && my >= 0 && my < g.viewH

	if inView && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.sim.CycleShapeAt(view.ToWorld(mx, my))
	}
	if inView && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
	}
	if g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && view.InWorld(mx, my) {
		g.sim.SetSource(view.ToWorld(mx, my))
	}
	if g.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
		g.sim.ClearSource()
	}
}

// Draw renders the lattice, HUD and overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen, g.sim, g.sim.BoundaryCondition() == lattice.Reflective)
	g.hud.Draw(screen, g.viewW, g.viewH)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
