// Package server streams the lattice to browsers over a websocket and
// applies their input.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	gocube "github.com/SeamusWaldron/gocube_lattice"
)

//go:embed static
var staticFiles embed.FS

// Command types sent by the browser.
const (
	CmdPick  = "pick"
	CmdClear = "clear"
	CmdKey   = "key"
	CmdTurn  = "turn"
	CmdReset = "reset"
)

// CameraMsg is the browser camera at the time of a pick.
type CameraMsg struct {
	Eye    [3]float64 `json:"eye"`
	Target [3]float64 `json:"target"`
	Up     [3]float64 `json:"up"`
	Fov    float64    `json:"fov"` // vertical, degrees
	Aspect float64    `json:"aspect"`
	Near   float64    `json:"near"`
	Far    float64    `json:"far"`
}

// Camera converts the message to a gocube camera, filling gaps with
// the default camera.
func (m CameraMsg) Camera(target mgl64.Vec3) gocube.Camera {
	cam := gocube.DefaultCamera(target, m.Aspect)
	cam.Eye = mgl64.Vec3(m.Eye)
	cam.Target = mgl64.Vec3(m.Target)
	if m.Up != ([3]float64{}) {
		cam.Up = mgl64.Vec3(m.Up)
	}
	if m.Fov > 0 {
		cam.FovY = m.Fov
	}
	if m.Near > 0 {
		cam.Near = m.Near
	}
	if m.Far > cam.Near {
		cam.Far = m.Far
	}
	return cam
}

// Command is one message from the browser.
type Command struct {
	Type     string     `json:"type"`
	X        float64    `json:"x,omitempty"` // normalised device coordinates
	Y        float64    `json:"y,omitempty"`
	Camera   *CameraMsg `json:"camera,omitempty"`
	Code     string     `json:"code,omitempty"`
	Notation string     `json:"notation,omitempty"`
}

// FrameMsg is what the browser receives every frame.
type FrameMsg struct {
	Type string `json:"type"`
	gocube.Frame
	Center   [3]float64 `json:"center"`
	CubeSize float64    `json:"cube_size"`
	T        int64      `json:"t"`
}

// Server owns a controller. Only the loop goroutine touches it; websocket
// readers hand their commands over a channel.
type Server struct {
	ctrl *gocube.Controller
	fps  int

	cmds chan Command

	mu        sync.RWMutex
	clients   map[*websocket.Conn]bool
	frameID   uint64
	state     string
	startTime time.Time

	upgrader websocket.Upgrader
}

// New creates a server around ctrl that renders fps frames per second.
func New(ctrl *gocube.Controller, fps int) *Server {
	if fps <= 0 {
		fps = 60
	}
	return &Server{
		ctrl:      ctrl,
		fps:       fps,
		cmds:      make(chan Command, 64),
		clients:   map[*websocket.Conn]bool{},
		state:     ctrl.State().String(),
		startTime: time.Now(),
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Handler returns the HTTP routes: the page, /ws and /health.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/ws", s.HandleWS)
	mux.HandleFunc("/health", s.HandleHealth)
	return withCORS(mux)
}

// Run drives the frame loop until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.closeClients()
			return ctx.Err()
		case now := <-ticker.C:
			s.Step(now.Sub(last))
			last = now
		}
	}
}

// Step applies queued commands, advances the animation by dt and
// broadcasts the frame. It must only be called from the loop goroutine.
func (s *Server) Step(dt time.Duration) {
	s.drain()
	s.ctrl.Tick(dt)

	f := s.ctrl.Snapshot()
	s.mu.Lock()
	s.frameID = f.FrameID
	s.state = f.State
	s.mu.Unlock()

	c := s.ctrl.Lattice().Center()
	msg := FrameMsg{
		Type:     "frame",
		Frame:    f,
		Center:   [3]float64{c[0], c[1], c[2]},
		CubeSize: s.ctrl.Lattice().CubeSize(),
		T:        time.Now().UnixNano(),
	}
	b, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("encode frame")
		return
	}
	s.broadcast(b)
}

func (s *Server) drain() {
	for {
		select {
		case cmd := <-s.cmds:
			s.apply(cmd)
		default:
			return
		}
	}
}

// apply runs one command against the controller. Rejections are dropped
// input and only logged at debug level.
func (s *Server) apply(cmd Command) {
	var err error
	switch cmd.Type {
	case CmdPick:
		var cam gocube.Camera
		if cmd.Camera != nil {
			cam = cmd.Camera.Camera(s.ctrl.Lattice().Center())
		} else {
			cam = gocube.DefaultCamera(s.ctrl.Lattice().Center(), 1)
		}
		if c, ok := s.ctrl.Pick(mgl64.Vec2{cmd.X, cmd.Y}, cam); ok {
			log.Debug().Str("cube", c.String()).Msg("picked")
		}
	case CmdClear:
		s.ctrl.ClearSelection()
	case CmdKey:
		err = s.ctrl.HandleKey(cmd.Code)
	case CmdTurn:
		var t gocube.LayerTurn
		t, err = gocube.ParseTurn(cmd.Notation)
		if err == nil {
			err = s.ctrl.Turn(t)
		}
	case CmdReset:
		s.ctrl.Reset()
		log.Info().Msg("lattice reset")
	default:
		log.Debug().Str("type", cmd.Type).Msg("unknown command")
	}
	if err != nil {
		log.Debug().Err(err).Str("type", cmd.Type).Msg("input dropped")
	}
}

// Enqueue hands a command to the loop. A full queue drops it.
func (s *Server) Enqueue(cmd Command) bool {
	select {
	case s.cmds <- cmd:
		return true
	default:
		log.Debug().Str("type", cmd.Type).Msg("command queue full")
		return false
	}
}

// HandleWS upgrades the connection and feeds its commands to the loop.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade")
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	n := len(s.clients)
	s.mu.Unlock()
	log.Info().Str("remote", r.RemoteAddr).Int("clients", n).Msg("client connected")

	go func() {
		defer s.drop(conn)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var cmd Command
			if err := json.Unmarshal(data, &cmd); err != nil {
				log.Debug().Err(err).Msg("bad command")
				continue
			}
			s.Enqueue(cmd)
		}
	}()
}

// HandleHealth reports loop progress as JSON.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"state":    s.state,
		"clients":  len(s.clients),
		"fps":      s.fps,
		"uptime_s": time.Since(s.startTime).Seconds(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// ListenAndServe serves the handler on addr until ctx is cancelled, running
// the frame loop alongside.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Int("fps", s.fps).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		cancel()
	}()

	loopErr := s.Run(ctx)

	shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	_ = srv.Shutdown(shutdownCtx)

	select {
	case err := <-errc:
		return err
	default:
	}
	if errors.Is(loopErr, context.Canceled) {
		return nil
	}
	return loopErr
}

func (s *Server) broadcast(b []byte) {
	s.mu.RLock()
	var dead []*websocket.Conn
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
			dead = append(dead, c)
		}
	}
	s.mu.RUnlock()

	for _, c := range dead {
		s.drop(c)
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	_, ok := s.clients[conn]
	delete(s.clients, conn)
	s.mu.Unlock()
	if ok {
		conn.Close()
		log.Info().Msg("client disconnected")
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
			time.Now().Add(100*time.Millisecond))
		c.Close()
		delete(s.clients, c)
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
