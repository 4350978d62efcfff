package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/playback"
	"svw.info/rivercrossing/internal/usecase"
)

type Handler struct {
	UC              *usecase.Service
	Logger          *slog.Logger
	DefaultVariant  domain.VariantID
	DefaultStrategy domain.Strategy
	PlayInterval    time.Duration
	PlayStep        time.Duration // one crossing at speed 1
	PlaySpeed       float64
}

func New(uc *usecase.Service) *Handler {
	return &Handler{
		UC:              uc,
		Logger:          slog.Default(),
		DefaultVariant:  domain.VariantClassic,
		DefaultStrategy: domain.StrategyBFS,
		PlayInterval:    50 * time.Millisecond,
		PlayStep:        playback.DefaultStepDuration,
		PlaySpeed:       1,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/variants", h.handleVariants)
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/move", h.handleMove)
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/graph", h.handleGraph)
	mux.HandleFunc("/api/play", h.handlePlay)
}

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}

// statusFor maps use case errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrIllegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownVariant),
		errors.Is(err, domain.ErrUnknownStrategy),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeError(w, status, err.Error())
}

// decode reads a JSON body; an empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func (h *Handler) variant(id string) domain.VariantID {
	if id == "" {
		return h.DefaultVariant
	}
	return domain.VariantID(id)
}

func (h *Handler) strategy(s string) (domain.Strategy, error) {
	if s == "" {
		return h.DefaultStrategy, nil
	}
	return domain.ParseStrategy(s)
}

// ---- Variants ----

type variantsResp struct {
	Variants []domain.VariantMeta `json:"variants"`
}

func (h *Handler) handleVariants(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	vs, err := h.UC.Variants(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, variantsResp{Variants: vs})
}

// ---- Solve ----

type solveReq struct {
	Variant  string        `json:"variant,omitempty"`
	Strategy string        `json:"strategy,omitempty"`
	Start    *domain.State `json:"start,omitempty"`
}

type solveResp struct {
	Variant    domain.VariantID  `json:"variant"`
	Strategy   string            `json:"strategy"`
	Found      bool              `json:"found"`
	Path       domain.Path       `json:"path"`
	Moves      int               `json:"moves"`
	Totals     domain.Population `json:"totals"`
	DurationMs int64             `json:"durationMs"`
	Nodes      int               `json:"nodes"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req solveReq
	if !decode(w, r, &req) {
		return
	}
	strategy, err := h.strategy(req.Strategy)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id := h.variant(req.Variant)
	res, st, err := h.UC.SolveFrom(r.Context(), id, strategy, req.Start)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rs, err := h.UC.RuleSet(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	path := res.Path
	if path == nil {
		path = domain.Path{}
	}
	writeJSON(w, http.StatusOK, solveResp{
		Variant:    id,
		Strategy:   strategy.String(),
		Found:      res.Found,
		Path:       path,
		Moves:      res.Path.Moves(),
		Totals:     rs.Totals(),
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Validate ----

type validateReq struct {
	Variant string      `json:"variant,omitempty"`
	Path    domain.Path `json:"path"`
}

type validateResp struct {
	OK        bool              `json:"ok"`
	Conflicts []domain.Conflict `json:"conflicts,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req validateReq
	if !decode(w, r, &req) {
		return
	}
	ok, conflicts, err := h.UC.Validate(r.Context(), h.variant(req.Variant), req.Path)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResp{OK: ok, Conflicts: conflicts})
}

// ---- Hint ----

type hintReq struct {
	Variant string       `json:"variant,omitempty"`
	State   domain.State `json:"state"`
}

type hintResp struct {
	Found bool         `json:"found"`
	Hint  *domain.Hint `json:"hint,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req hintReq
	if !decode(w, r, &req) {
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), h.variant(req.Variant), req.State)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp := hintResp{Found: ok}
	if ok {
		resp.Hint = &hh
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Move ----

type moveReq struct {
	Variant string       `json:"variant,omitempty"`
	State   domain.State `json:"state"`
	Move    domain.Move  `json:"move"`
}

type moveResp struct {
	State domain.State `json:"state"`
	Label string       `json:"label"`
	Goal  bool         `json:"goal"`
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req moveReq
	if !decode(w, r, &req) {
		return
	}
	tr, err := h.UC.Move(r.Context(), h.variant(req.Variant), req.State, req.Move)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moveResp{State: tr.State, Label: tr.Label, Goal: tr.State.IsGoal()})
}

// ---- Generate ----

type generateReq struct {
	Variant    string `json:"variant,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}

type generateResp struct {
	Puzzle     *domain.Puzzle `json:"puzzle"`
	DurationMs int64          `json:"durationMs"`
	Nodes      int            `json:"nodes"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req generateReq
	if !decode(w, r, &req) {
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p, st, err := h.UC.Generate(r.Context(), h.variant(req.Variant), seed, domain.ParseDifficulty(req.Difficulty))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResp{Puzzle: p, DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
}

// ---- Graph ----

type graphNode struct {
	State domain.State `json:"state"`
	Key   domain.Key   `json:"key"`
	Depth int          `json:"depth"`
	Goal  bool         `json:"goal"`
}

// graphResp.Depth is the eccentricity of the start, which can lie past the
// goal; GoalDepth is the shortest solution length, or -1.
type graphResp struct {
	Variant   domain.VariantID `json:"variant"`
	States    int              `json:"states"`
	Edges     int              `json:"edges"`
	Depth     int              `json:"depth"`
	GoalDepth int              `json:"goalDepth"`
	Nodes     []graphNode      `json:"nodes"`
}

func (h *Handler) handleGraph(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	id := h.variant(r.URL.Query().Get("variant"))
	g, err := h.UC.Graph(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	goalDepth := -1
	nodes := make([]graphNode, 0, len(g.States))
	for _, s := range g.States {
		n := graphNode{State: s, Key: s.Key(), Depth: g.DepthOf(s), Goal: s.IsGoal()}
		if n.Goal {
			goalDepth = n.Depth
		}
		nodes = append(nodes, n)
	}
	writeJSON(w, http.StatusOK, graphResp{
		Variant:   id,
		States:    len(g.States),
		Edges:     len(g.Edges),
		Depth:     g.Eccentricity(),
		GoalDepth: goalDepth,
		Nodes:     nodes,
	})
}
