package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/pong/internal/game"
	"chosenoffset.com/pong/internal/render/terminal"
	"chosenoffset.com/pong/internal/simulation"
)

const (
	logDir      = "logs"
	logFileName = "pong-term.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging points the standard logger at logs/pong-term.log when debug
// is set and discards log output otherwise, since the terminal is the game
// screen. A log file over maxLogSize is rotated aside first.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("pong-term-%s.log", time.Now().Format("20060102-150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func main() {
	debug := flag.Bool("debug", false, "write logs to "+filepath.Join(logDir, logFileName))
	flag.Parse()

	if logFile := setupLogging(*debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := simulation.DefaultConfig()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}

	backend, err := terminal.NewBackend(screen, int(cfg.Window.Width), int(cfg.Window.Height))
	if err != nil {
		return err
	}
	defer backend.Close()

	g, err := game.NewGame(cfg, backend.Renderer, backend.Input, backend.Clock)
	if err != nil {
		return err
	}

	backend.Engine.SetWindowSize(g.ScreenWidth, g.ScreenHeight)
	backend.Engine.SetWindowTitle(cfg.Window.Title)

	log.Println("Starting game...")
	if err := backend.Engine.RunGame(g); err != nil {
		return err
	}
	log.Printf("Stopped after %d steps (%d dropped)", g.Stats.TotalSteps, g.Stats.TotalDropped)
	return nil
}
