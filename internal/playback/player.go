// Package playback replays a solved path crossing by crossing.
package playback

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"svw.info/rivercrossing/internal/domain"
)

const (
	DefaultStepDuration = 2 * time.Second
	MinSpeed            = 0.5
	MaxSpeed            = 3.0
)

var ErrNoPath = errors.New("playback: no path loaded")

// Phase of the crossing currently shown.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseBoarding Phase = "boarding"
	PhaseCrossing Phase = "crossing"
)

// Frame is what a display shows at one instant.
type Frame struct {
	Index    int               `json:"index"`
	Total    int               `json:"total"`
	State    domain.State      `json:"state"`
	Label    string            `json:"label"`
	Left     domain.Population `json:"left"`
	Right    domain.Population `json:"right"`
	Boat     domain.Population `json:"boat"`
	BoatSide domain.Side       `json:"boatSide"`
	Position float64           `json:"position"` // 0 at the left bank, 1 at the right
	Phase    Phase             `json:"phase"`
	Progress float64           `json:"progress"`
	Speed    float64           `json:"speed"`
	Running  bool              `json:"running"`
	Paused   bool              `json:"paused"`
	Done     bool              `json:"done"`
}

type Option func(*Player)

// WithStepDuration sets the time one crossing takes at speed 1.
func WithStepDuration(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.base = d
		}
	}
}

// Player is safe for concurrent use.
type Player struct {
	mu      sync.Mutex
	path    domain.Path
	index   int
	elapsed time.Duration
	speed   float64
	base    time.Duration
	running bool
	paused  bool
}

func NewPlayer(opts ...Option) *Player {
	p := &Player{speed: 1, base: DefaultStepDuration}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Load replaces the path and rewinds to its first step.
func (p *Player) Load(path domain.Path) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.path = append(domain.Path(nil), path...)
	p.rewind()
}

func (p *Player) rewind() {
	p.index = 0
	p.elapsed = 0
	p.running = false
	p.paused = false
}

func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.path) == 0 {
		return ErrNoPath
	}
	p.rewind()
	p.running = p.index < len(p.path)-1
	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		p.paused = true
	}
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running && p.paused {
		p.paused = false
	}
}

func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rewind()
}

// Step jumps to the next step without animating. It reports whether it moved.
func (p *Player) Step() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index >= len(p.path)-1 {
		return false
	}
	p.index++
	p.elapsed = 0
	if p.index == len(p.path)-1 {
		p.running = false
		p.paused = false
	}
	return true
}

func (p *Player) JumpTo(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.path) == 0 {
		return ErrNoPath
	}
	if i < 0 || i >= len(p.path) {
		return fmt.Errorf("playback: step %d out of range [0,%d]", i, len(p.path)-1)
	}
	p.index = i
	p.elapsed = 0
	if i == len(p.path)-1 {
		p.running = false
		p.paused = false
	}
	return nil
}

// SetSpeed clamps s to [MinSpeed, MaxSpeed] and returns the speed applied.
func (p *Player) SetSpeed(s float64) float64 {
	if math.IsNaN(s) {
		s = 1
	}
	s = math.Min(MaxSpeed, math.Max(MinSpeed, s))
	p.mu.Lock()
	p.speed = s
	p.mu.Unlock()
	return s
}

func (p *Player) StepDuration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stepDuration()
}

func (p *Player) stepDuration() time.Duration {
	return time.Duration(float64(p.base) / p.speed)
}

// Advance moves the animation forward by d and returns the resulting frame.
// Nothing moves unless the player is running and not paused.
func (p *Player) Advance(d time.Duration) Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running && !p.paused && d > 0 {
		p.elapsed += d
		dur := p.stepDuration()
		for p.elapsed >= dur {
			p.elapsed -= dur
			p.index++
			if p.index >= len(p.path)-1 {
				p.index = len(p.path) - 1
				p.elapsed = 0
				p.running = false
				break
			}
		}
	}
	return p.frame()
}

// Frame returns the current frame without advancing.
func (p *Player) Frame() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame()
}

func (p *Player) frame() Frame {
	f := Frame{
		Index:   p.index,
		Total:   len(p.path),
		Speed:   p.speed,
		Running: p.running,
		Paused:  p.paused,
		Phase:   PhaseIdle,
	}
	if len(p.path) == 0 {
		return f
	}
	f.Done = p.index == len(p.path)-1
	cur := p.path[p.index]
	f.State = cur.State
	f.Label = cur.Label
	f.Left = cur.State.On(domain.Left)
	f.Right = cur.State.On(domain.Right)
	f.BoatSide = cur.State.Boat
	f.Position = bank(cur.State.Boat)
	if !p.running || f.Done {
		return f
	}

	next := p.path[p.index+1]
	f.Progress = math.Min(float64(p.elapsed)/float64(p.stepDuration()), 1)
	from := cur.State.Boat
	load := next.Move
	if f.Progress < 0.5 {
		// people step from the departure shore into the boat
		share := f.Progress / 0.5
		f.Phase = PhaseBoarding
		f.Boat = domain.Population{
			Missionaries: int(math.Round(float64(load.Missionaries) * share)),
			Cannibals:    int(math.Round(float64(load.Cannibals) * share)),
		}
	} else {
		f.Phase = PhaseCrossing
		f.Boat = domain.Population{Missionaries: load.Missionaries, Cannibals: load.Cannibals}
		travel := (f.Progress - 0.5) / 0.5
		if from == domain.Left {
			f.Position = travel
		} else {
			f.Position = 1 - travel
		}
	}
	shore := &f.Left
	if from == domain.Right {
		shore = &f.Right
	}
	shore.Missionaries -= f.Boat.Missionaries
	shore.Cannibals -= f.Boat.Cannibals
	f.Label = next.Label
	return f
}

func bank(s domain.Side) float64 {
	if s == domain.Right {
		return 1
	}
	return 0
}
