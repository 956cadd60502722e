package http

import (
	"context"
	"encoding/json"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lifepanel/internal/core"
	"lifepanel/internal/logging"
	"lifepanel/internal/ports"
	"lifepanel/internal/render"
	"lifepanel/internal/session"
	"lifepanel/pkg/life"
)

// Board is the controller surface exposed over HTTP.
type Board interface {
	Snapshot() session.Snapshot
	Grid() *life.Grid
	Parameters() core.ParameterSnapshot
	Start(ctx context.Context) error
	Pause()
	Toggle(x, y int) error
	Generate() error
	Clear() error
	StepOnce() error
	Load(g *life.Grid) error
}

var _ Board = (*session.Controller)(nil)

// Server serves the board API.
type Server struct {
	Board    Board
	Store    ports.BoardStore
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	// ctx scopes running periods started over HTTP. Request contexts end with
	// the response, so they cannot be used for Start.
	ctx context.Context
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables the /boards endpoints.
func WithStore(store ports.BoardStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithGatherer enables /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.Gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.Logger = l
		}
	}
}

// NewHandler creates the HTTP handler for board. Boards started through the
// API keep running until paused or until ctx is cancelled.
func NewHandler(ctx context.Context, board Board, opts ...Option) http.Handler {
	s := &Server{Board: board, Logger: logging.NewNop(), ctx: ctx}
	for _, opt := range opts {
		opt(s)
	}
	return s.Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/grid", s.getGrid)
	r.Get("/grid.png", s.getGridImage)
	r.Get("/parameters", s.getParameters)
	r.Get("/cells/{x}/{y}", s.getCell)
	r.Post("/cells/{x}/{y}/toggle", s.toggleCell)
	r.Post("/generate", s.command(s.Board.Generate))
	r.Post("/clear", s.command(s.Board.Clear))
	r.Post("/step", s.command(s.Board.StepOnce))
	r.Post("/start", s.command(func() error { return s.Board.Start(s.ctx) }))
	r.Post("/pause", s.command(func() error { s.Board.Pause(); return nil }))

	if s.Store != nil {
		r.Route("/boards", func(r chi.Router) {
			r.Get("/", s.listBoards)
			r.Put("/{name}", s.saveBoard)
			r.Post("/{name}/load", s.loadBoard)
			r.Delete("/{name}", s.deleteBoard)
		})
	}
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// GridResponse is the JSON form of a board snapshot.
type GridResponse struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Generation uint64   `json:"generation"`
	State      string   `json:"state"`
	Population int      `json:"population"`
	Rows       []string `json:"rows"`
}

// CellResponse is the JSON form of a single cell.
type CellResponse struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Alive bool `json:"alive"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newGridResponse(snap session.Snapshot) GridResponse {
	size := snap.Grid.Size()
	return GridResponse{
		Width:      size.W,
		Height:     size.H,
		Generation: snap.Generation,
		State:      snap.State.String(),
		Population: snap.Grid.Population(),
		Rows:       snap.Grid.Rows(),
	}
}

func (s *Server) getGrid(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, newGridResponse(s.Board.Snapshot()))
}

// getGridImage renders the current generation as a PNG. The optional scale
// query parameter sets pixels per cell (1..64, default 8).
func (s *Server) getGridImage(w http.ResponseWriter, r *http.Request) {
	scale := 8
	if v := r.URL.Query().Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 64 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "scale must be an integer in [1,64]"})
			return
		}
		scale = n
	}
	img := render.Image(s.Board.Grid(), render.DefaultPalette, scale)
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.Logger.Error("png encode failed", "error", err)
	}
}

func (s *Server) getParameters(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Board.Parameters())
}

func (s *Server) getCell(w http.ResponseWriter, r *http.Request) {
	x, y, ok := s.coords(w, r)
	if !ok {
		return
	}
	g := s.Board.Grid()
	if !g.Size().Contains(x, y) {
		s.writeError(w, errors.Wrapf(life.ErrOutOfBounds, "cell (%d,%d)", x, y))
		return
	}
	s.writeJSON(w, http.StatusOK, CellResponse{X: x, Y: y, Alive: g.Alive(x, y)})
}

func (s *Server) toggleCell(w http.ResponseWriter, r *http.Request) {
	x, y, ok := s.coords(w, r)
	if !ok {
		return
	}
	if err := s.Board.Toggle(x, y); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newGridResponse(s.Board.Snapshot()))
}

func (s *Server) command(fn func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(); err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, newGridResponse(s.Board.Snapshot()))
	}
}

func (s *Server) listBoards(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"boards": names})
}

func (s *Server) saveBoard(w http.ResponseWriter, r *http.Request) {
	name, ok := s.boardName(w, r)
	if !ok {
		return
	}
	g := s.Board.Grid()
	if err := s.Store.Save(r.Context(), name, g); err != nil {
		s.writeError(w, err)
		return
	}
	s.Logger.Info("board saved", "name", name, "population", g.Population())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadBoard(w http.ResponseWriter, r *http.Request) {
	name, ok := s.boardName(w, r)
	if !ok {
		return
	}
	g, err := s.Store.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Board.Load(g); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newGridResponse(s.Board.Snapshot()))
}

func (s *Server) deleteBoard(w http.ResponseWriter, r *http.Request) {
	name, ok := s.boardName(w, r)
	if !ok {
		return
	}
	if err := s.Store.Delete(r.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) coords(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	x, errX := strconv.Atoi(chi.URLParam(r, "x"))
	y, errY := strconv.Atoi(chi.URLParam(r, "y"))
	if errX != nil || errY != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "coordinates must be integers"})
		return 0, 0, false
	}
	return x, y, true
}

func (s *Server) boardName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if !ports.ValidName(name) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid board name"})
		return "", false
	}
	return name, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrRunning):
		return http.StatusConflict
	case errors.Is(err, session.ErrSizeMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, life.ErrOutOfBounds), errors.Is(err, ports.ErrBoardNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
