package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

var debugMode = os.Getenv("SLIDESHOW_DEBUG") != ""

func debugLog(format string, args ...interface{}) {
	if debugMode {
		log.Printf("DEBUG: "+format, args...)
	}
}

// Game is the ebiten shell around the Player
type Game struct {
	player       *Player
	renderer     *Renderer
	inputHandler *InputHandler

	// set by the player goroutine whenever the frame changes
	redraw       atomic.Bool
	lastSnapshot *RenderStateSnapshot
}

func (g *Game) Update() error {
	g.renderer.ReleasePending()

	select {
	case <-g.player.Done():
		g.renderer.Release()
		return ebiten.Termination
	default:
	}

	g.inputHandler.HandleInput()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	snapshot := NewRenderStateSnapshot(g.player, screen.Bounds().Size())
	if !g.redraw.Swap(false) && snapshot.Equals(g.lastSnapshot) {
		// Screen is not cleared every frame, last paint is still valid
		return
	}
	g.lastSnapshot = snapshot
	g.renderer.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// applyFlags overlays command line values on the loaded config
func applyFlags(config *Config, delayMs int, debug bool, sortName string) error {
	if delayMs > 0 {
		if delayMs < minPerImageSleepMs {
			return fmt.Errorf("delay must be at least %dms", minPerImageSleepMs)
		}
		config.PerImageSleepMs = delayMs
	}
	if debug {
		config.Debug = true
	}
	if sortName != "" {
		method, ok := parseSortMethod(sortName)
		if !ok {
			return fmt.Errorf("unknown sort method %q", sortName)
		}
		config.SortMethod = method
	}
	return nil
}

func main() {
	configPath := flag.String("config", getConfigPath(), "path to the JSON config file")
	delayMs := flag.Int("delay", 0, "milliseconds per image (overrides config)")
	debug := flag.Bool("debug", false, "windowed mode with visible cursor and debug logging")
	sortName := flag.String("sort", "", "sort method: simple, natural or entry")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [directory|archive]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	configResult := loadConfigFromPath(*configPath)
	for _, w := range configResult.Warnings {
		log.Printf("Warning: %s", w)
	}
	config := configResult.Config
	if err := applyFlags(&config, *delayMs, *debug, *sortName); err != nil {
		log.Fatalf("Error: %v", err)
	}
	if config.Debug {
		debugMode = true
	}

	source := config.SourceDirectory
	if flag.NArg() > 0 {
		source = flag.Arg(0)
	}
	if source == "" {
		flag.Usage()
		os.Exit(2)
	}

	playlist, err := LoadPlaylist(source, config.SortMethod, config.SupportedOnly)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyPlaylist):
			log.Fatalf("Error: nothing to show: %v", err)
		default:
			log.Fatalf("Error: cannot start slideshow: %v", err)
		}
	}

	if err := InitGraphics(); err != nil {
		log.Fatalf("Error: Failed to load font: %v", err)
	}

	loader := NewImageLoader(config.CacheSize, config.PreloadEnabled)
	defer loader.Stop()

	g := &Game{}
	g.player = NewPlayer(playlist, loader, PlayerOptions{
		Delay: config.PerImageDelay(),
		OnFrame: func(*Frame) {
			g.redraw.Store(true)
		},
	})
	g.renderer = NewRenderer(g.player, config.Background(), config.LabelFontSize)
	g.inputHandler = NewInputHandler(g.player, NewKeybindingManager(config.Keybindings))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := g.player.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Error: Player stopped: %v", err)
		}
	}()

	ebiten.SetWindowTitle("Slideshow - " + source)
	ebiten.SetScreenClearedEveryFrame(false)
	if config.Debug {
		ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetFullscreen(true)
		ebiten.SetWindowFloating(true)
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	debugLog("Starting slideshow: %d images, %v per image", playlist.Count(), config.PerImageDelay())
	if err := ebiten.RunGame(g); err != nil {
		log.Printf("Error: %v", err)
	}

	// Window closed by the system rather than Escape
	g.player.Exit()
	select {
	case <-g.player.Done():
	case <-time.After(time.Second):
		log.Printf("Warning: Player did not stop in time")
	}
}
