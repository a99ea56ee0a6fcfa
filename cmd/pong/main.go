package main

import (
	"log"

	"chosenoffset.com/pong/internal/game"
	ebitenrender "chosenoffset.com/pong/internal/render/ebiten"
	"chosenoffset.com/pong/internal/simulation"
)

func main() {
	cfg := simulation.DefaultConfig()

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	clock := ebitenrender.NewClock()
	inputMgr := ebitenrender.NewInputManager(clock)
	engine := ebitenrender.NewEngine()

	g, err := game.NewGame(cfg, renderer, inputMgr, clock)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	// Set up the window
	engine.SetWindowSize(g.ScreenWidth, g.ScreenHeight)
	engine.SetWindowTitle(cfg.Window.Title)

	log.Println("Starting game...")
	if err := engine.RunGame(g); err != nil {
		log.Fatal(err)
	}
	log.Printf("Stopped after %d steps (%d dropped)", g.Stats.TotalSteps, g.Stats.TotalDropped)
}
