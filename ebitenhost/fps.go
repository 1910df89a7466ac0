package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the overlay text is refreshed.
const fpsRefresh = 0.5

// fpsOverlay prints FPS, TPS and the sprig frame cost in the top-left
// corner, refreshed every fpsRefresh seconds.
type fpsOverlay struct {
	elapsed float64
	label   string
}

func (o *fpsOverlay) update(dt float64, nodes, commands int) {
	o.elapsed += dt
	if o.label != "" && o.elapsed < fpsRefresh {
		return
	}
	o.elapsed = 0
	o.label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nnodes: %d cmds: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), nodes, commands)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, o.label, 4, 4)
}
