package main

import (
	"context"
	"image"
	"log"
	"sync/atomic"
	"time"
)

const (
	defaultPerImageDelay = 4 * time.Second
	commandQueueSize     = 16
)

// PlayerState is the playback state machine
type PlayerState int

const (
	Running PlayerState = iota
	Paused
	Stopped
)

func (s PlayerState) String() string {
	switch s {
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// PlaybackState is a snapshot of the player flags
type PlaybackState struct {
	Mode          PlayerState
	Paused        bool
	ExitRequested bool
	Delay         time.Duration
}

// Frame is the image currently on display. A frame whose load failed has Err set
// and a nil Image; Index still names the entry that was attempted.
type Frame struct {
	Index int
	Count int
	Path  string
	Image image.Image
	Err   error
}

// PlayerOptions configures a Player
type PlayerOptions struct {
	Delay time.Duration
	Clock Clock
	// OnFrame is called from the player goroutine after every frame change
	OnFrame func(*Frame)
}

type command int

const (
	cmdTogglePause command = iota
	cmdStepForward
	cmdStepBackward
	cmdExit
)

func (c command) String() string {
	switch c {
	case cmdTogglePause:
		return "toggle_pause"
	case cmdStepForward:
		return "next"
	case cmdStepBackward:
		return "previous"
	case cmdExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Player advances through a Playlist on a fixed delay. Run owns the cursor and the
// current frame; every other method is safe to call from the UI goroutine.
type Player struct {
	playlist *Playlist
	loader   FrameLoader
	delay    time.Duration
	clock    Clock
	onFrame  func(*Frame)

	// cursor is only touched by the Run goroutine
	cursor int

	paused        atomic.Bool
	exitRequested atomic.Bool
	stopped       atomic.Bool
	frame         atomic.Pointer[Frame]

	commands chan command
	done     chan struct{}
}

// NewPlayer creates a Player positioned one entry before the first image
func NewPlayer(playlist *Playlist, loader FrameLoader, opts PlayerOptions) *Player {
	if opts.Delay <= 0 {
		opts.Delay = defaultPerImageDelay
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}

	return &Player{
		playlist: playlist,
		loader:   loader,
		delay:    opts.Delay,
		clock:    opts.Clock,
		onFrame:  opts.OnFrame,
		cursor:   -1,
		commands: make(chan command, commandQueueSize),
		done:     make(chan struct{}),
	}
}

// Run shows the first image, then advances once per delay while running.
// It returns nil after Exit and ctx.Err() if ctx is cancelled.
func (p *Player) Run(ctx context.Context) error {
	defer close(p.done)
	defer p.stopped.Store(true)

	ticker := p.clock.NewTicker(p.delay)
	defer ticker.Stop()

	if p.playlist.Count() == 0 {
		log.Printf("Warning: %v, nothing to display", ErrEmptyPlaylist)
	} else if !p.exitRequested.Load() {
		p.advance(1)
	}

	for !p.exitRequested.Load() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-p.commands:
			p.handleCommand(cmd)
		case <-ticker.C():
			// The ticker keeps its cadence while paused; a tick just has no effect
			if !p.paused.Load() {
				p.advance(1)
			}
		}
	}

	debugLog("Player stopped at index %d", p.cursor)
	return nil
}

func (p *Player) handleCommand(cmd command) {
	debugLog("Player command: %s", cmd)
	switch cmd {
	case cmdTogglePause:
		p.paused.Store(!p.paused.Load())
		p.advance(0)
	case cmdStepForward:
		p.paused.Store(true)
		p.advance(1)
	case cmdStepBackward:
		p.paused.Store(true)
		p.advance(-1)
	case cmdExit:
		p.exitRequested.Store(true)
	}
}

// advance moves the cursor by delta and shows the entry it lands on
func (p *Player) advance(delta int) {
	if p.playlist.Count() == 0 {
		return
	}

	idx, imagePath, err := p.playlist.At(p.cursor + delta)
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	p.cursor = idx

	frame := &Frame{
		Index: idx,
		Count: p.playlist.Count(),
		Path:  imagePath.Path,
	}

	img, err := p.loader.Load(imagePath)
	if err != nil {
		log.Printf("Warning: Skipping image [%d/%d] %s: %v", idx+1, frame.Count, imagePath.Path, err)
		frame.Err = err
	} else {
		frame.Image = img
	}

	p.frame.Store(frame)
	if p.onFrame != nil {
		p.onFrame(frame)
	}

	if frame.Err == nil {
		p.preloadNext()
	}
}

func (p *Player) preloadNext() {
	preloader, ok := p.loader.(Preloader)
	if !ok || p.playlist.Count() <= 1 {
		return
	}
	if _, next, err := p.playlist.At(p.cursor + 1); err == nil {
		preloader.Preload(next)
	}
}

func (p *Player) send(cmd command) {
	if p.stopped.Load() {
		return
	}
	select {
	case p.commands <- cmd:
	default:
		debugLog("Player command queue full, dropping %s", cmd)
	}
}

// TogglePause switches between running and paused and redisplays the current image
func (p *Player) TogglePause() {
	p.send(cmdTogglePause)
}

// StepForward pauses and shows the next image
func (p *Player) StepForward() {
	p.send(cmdStepForward)
}

// StepBackward pauses and shows the previous image
func (p *Player) StepBackward() {
	p.send(cmdStepBackward)
}

// Exit stops the player. The request is latched so a full queue cannot lose it.
func (p *Player) Exit() {
	p.exitRequested.Store(true)
	p.send(cmdExit)
}

// Frame returns the frame on display, or nil if nothing has been shown yet
func (p *Player) Frame() *Frame {
	return p.frame.Load()
}

// Count returns the playlist length
func (p *Player) Count() int {
	return p.playlist.Count()
}

func (p *Player) State() PlaybackState {
	s := PlaybackState{
		Paused:        p.paused.Load(),
		ExitRequested: p.exitRequested.Load(),
		Delay:         p.delay,
	}
	switch {
	case p.stopped.Load():
		s.Mode = Stopped
	case s.Paused:
		s.Mode = Paused
	default:
		s.Mode = Running
	}
	return s
}

// Done is closed when Run returns
func (p *Player) Done() <-chan struct{} {
	return p.done
}
