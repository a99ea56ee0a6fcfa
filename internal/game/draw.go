package game

import (
	"fmt"

	"golang.org/x/image/colornames"

	"chosenoffset.com/pong/internal/render"
	"chosenoffset.com/pong/internal/simulation"
)

var (
	colorBackground = colornames.Black
	colorForeground = colornames.White
)

// Draw renders the game to the screen. It only reads the world.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(colorBackground)

	// Centerline
	g.Renderer.FillRect(screen, g.ScreenWidth/2, 0, 1, g.ScreenHeight, colorForeground)

	g.drawEntity(screen, g.World.Ball)
	g.drawEntity(screen, g.World.PaddleLeft)
	g.drawEntity(screen, g.World.PaddleRight)

	if g.ShowDebug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawEntity(screen render.Image, e simulation.Entity) {
	g.Renderer.FillRect(screen,
		int(e.Position.X), int(e.Position.Y),
		int(e.Extent.X), int(e.Extent.Y),
		colorForeground)
}

func (g *Game) drawDebug(screen render.Image) {
	text := fmt.Sprintf("steps/frame: %d\ndropped: %d\nsim: %v",
		g.Stats.LastFrame.Steps, g.Stats.TotalDropped, g.Stats.SimTime)
	g.Renderer.DrawText(screen, text, 8, 8)
}
