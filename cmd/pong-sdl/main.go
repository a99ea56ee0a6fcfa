//go:build sdl

package main

import (
	"log"
	"runtime"

	"chosenoffset.com/pong/internal/game"
	sdlrender "chosenoffset.com/pong/internal/render/sdl"
	"chosenoffset.com/pong/internal/simulation"
)

func init() {
	// SDL must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := simulation.DefaultConfig()

	backend, err := sdlrender.NewBackend(cfg.Window.Title, int(cfg.Window.Width), int(cfg.Window.Height))
	if err != nil {
		return err
	}
	defer backend.Close()

	g, err := game.NewGame(cfg, backend, backend, backend)
	if err != nil {
		return err
	}

	log.Println("Starting game...")
	if err := backend.RunGame(g); err != nil {
		return err
	}
	log.Printf("Stopped after %d steps (%d dropped)", g.Stats.TotalSteps, g.Stats.TotalDropped)
	return nil
}
