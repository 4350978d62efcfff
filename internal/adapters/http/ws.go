package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/playback"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 16 * 1024,
}

type sessionMsg struct {
	Type      string            `json:"type"`
	SessionID string            `json:"sessionId"`
	Variant   domain.VariantID  `json:"variant"`
	Strategy  string            `json:"strategy"`
	Found     bool              `json:"found"`
	Moves     int               `json:"moves"`
	Totals    domain.Population `json:"totals"`
	Path      domain.Path       `json:"path"`
}

type frameMsg struct {
	Type  string         `json:"type"`
	Frame playback.Frame `json:"frame"`
}

type wsErrorMsg struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// controlMsg is sent by the client: start, pause, resume, reset, step, jump or speed.
type controlMsg struct {
	Action string  `json:"action"`
	Index  int     `json:"index,omitempty"`
	Speed  float64 `json:"speed,omitempty"`
}

// playSession serialises writes; gorilla connections allow one writer at a time.
type playSession struct {
	mu   sync.Mutex
	conn *websocket.Conn
	wake chan struct{}
}

func (s *playSession) send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *playSession) sendFrame(f playback.Frame) error {
	return s.send(frameMsg{Type: "frame", Frame: f})
}

func (s *playSession) poke() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// handlePlay solves the requested variant and streams playback frames
// until the client disconnects.
func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	id := h.variant(q.Get("variant"))
	strategy, err := h.strategy(q.Get("strategy"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	speed := h.PlaySpeed
	if v := q.Get("speed"); v != "" {
		if speed, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(w, http.StatusBadRequest, "invalid speed: "+v)
			return
		}
	}
	res, _, err := h.UC.FindPath(r.Context(), id, strategy)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rs, err := h.UC.RuleSet(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	log := h.Logger.With("session", sessionID, "variant", id, "strategy", strategy)
	log.Info("playback session started")

	s := &playSession{conn: conn, wake: make(chan struct{}, 1)}
	path := res.Path
	if path == nil {
		path = domain.Path{}
	}
	if err := s.send(sessionMsg{
		Type:      "session",
		SessionID: sessionID,
		Variant:   id,
		Strategy:  strategy.String(),
		Found:     res.Found,
		Moves:     res.Path.Moves(),
		Totals:    rs.Totals(),
		Path:      path,
	}); err != nil {
		return
	}
	if !res.Found {
		_ = s.send(wsErrorMsg{Type: "error", Error: "no solution"})
		return
	}

	player := playback.NewPlayer(playback.WithStepDuration(h.playStep()))
	player.SetSpeed(speed)
	player.Load(res.Path)
	_ = player.Start()

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error { return h.readControls(ctx, s, player) })
	g.Go(func() error { return h.drive(ctx, s, player) })
	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Debug("playback session ended", "err", err)
		return
	}
	log.Info("playback session ended")
}

func (h *Handler) playStep() time.Duration {
	if h.PlayStep > 0 {
		return h.PlayStep
	}
	return playback.DefaultStepDuration
}

// drive runs the player whenever it is animating and sleeps until woken otherwise.
func (h *Handler) drive(ctx context.Context, s *playSession, p *playback.Player) error {
	interval := h.PlayInterval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	for {
		if err := playback.Run(ctx, p, interval, s.sendFrame); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
		}
	}
}

func (h *Handler) readControls(ctx context.Context, s *playSession, p *playback.Player) error {
	defer s.conn.Close()
	go func() {
		<-ctx.Done()
		_ = s.conn.Close()
	}()
	for {
		var msg controlMsg
		if err := s.conn.ReadJSON(&msg); err != nil {
			return err
		}
		switch msg.Action {
		case "start":
			_ = p.Start()
			s.poke()
		case "pause":
			p.Pause()
		case "resume":
			p.Resume()
		case "reset":
			p.Reset()
		case "step":
			p.Step()
		case "jump":
			if err := p.JumpTo(msg.Index); err != nil {
				if err := s.send(wsErrorMsg{Type: "error", Error: err.Error()}); err != nil {
					return err
				}
				continue
			}
		case "speed":
			p.SetSpeed(msg.Speed)
		default:
			if err := s.send(wsErrorMsg{Type: "error", Error: "unknown action: " + msg.Action}); err != nil {
				return err
			}
			continue
		}
		if err := s.sendFrame(p.Frame()); err != nil {
			return err
		}
	}
}
