//go:build !ebiten

package ui

// Status mirrors the GUI status line in headless builds.
type Status struct {
	Paused      bool
	Boundary    string
	Population  int
	Steps       int
	NextCommand int
}

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update(Status) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
