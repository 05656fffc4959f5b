package server

import (
	"fmt"
	"net/http"
	"runtime"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lumina3d/voxelmesh/internal/config"
	"github.com/lumina3d/voxelmesh/internal/logger"
	"github.com/lumina3d/voxelmesh/internal/mesher"
	"github.com/lumina3d/voxelmesh/internal/pool"
	"github.com/lumina3d/voxelmesh/internal/terrain"
)

// chunkRequest is what a connected viewer sends to ask for one more chunk
// beyond the initial streamed square.
type chunkRequest struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Z    int    `json:"z"`
}

// Server accepts websocket viewers and streams them chunk mesh frames.
type Server struct {
	addr    string
	radius  int
	workers int
	mesh    mesher.Config
	gen     *terrain.Generator
	codec   *Codec

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex
}

// New builds a server from the loaded configuration.
func New(cfg *config.Config) (*Server, error) {
	mesh, err := cfg.Mesh.MesherConfig()
	if err != nil {
		return nil, fmt.Errorf("resolving mesh config: %w", err)
	}
	workers := cfg.Server.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}
	return &Server{
		addr:    cfg.Server.Addr,
		radius:  cfg.Server.Radius,
		workers: workers,
		mesh:    mesh,
		gen:     terrain.New(cfg.Terrain.Settings(), mesh),
		codec:   codec,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Local viewer tooling connects from file:// and dev servers.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}, nil
}

// Handler exposes the websocket endpoint; split out so tests can mount it
// on an httptest server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	logger.Log.Info("mesh server listening",
		zap.String("addr", s.addr),
		zap.Int("radius", s.radius),
		zap.Int("workers", s.workers))
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	wl := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = wl
	n := len(s.clients)
	s.mu.Unlock()
	logger.Log.Info("viewer connected",
		zap.String("remote", conn.RemoteAddr().String()), zap.Int("viewers", n))

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		n := len(s.clients)
		s.mu.Unlock()
		conn.Close()
		logger.Log.Info("viewer disconnected",
			zap.String("remote", conn.RemoteAddr().String()), zap.Int("viewers", n))
	}()

	if err := s.streamInitial(conn, wl); err != nil {
		logger.Log.Warn("initial stream aborted", zap.Error(err))
		return
	}

	for {
		var req chunkRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Warn("viewer read failed", zap.Error(err))
			}
			return
		}
		if req.Type != "chunk" {
			logger.Log.Debug("ignoring unknown message", zap.String("type", req.Type))
			continue
		}
		if err := s.sendChunk(conn, wl, req.X, req.Z); err != nil {
			logger.Log.Warn("chunk send failed",
				zap.Int("x", req.X), zap.Int("z", req.Z), zap.Error(err))
			return
		}
	}
}

// streamInitial meshes the (2r+1)^2 chunk square around the origin on the
// worker pool and ships each result as it completes.
func (s *Server) streamInitial(conn *websocket.Conn, wl *sync.Mutex) error {
	r := s.radius
	total := (2*r + 1) * (2*r + 1)
	p := pool.New(s.workers, total, s.mesh)

	go func() {
		for x := -r; x <= r; x++ {
			for z := -r; z <= r; z++ {
				p.Submit(pool.Job{X: x, Z: z, Grid: s.gen.Grid(x, z)})
			}
		}
		p.Shutdown()
	}()

	for res := range p.Results() {
		if res.Err != nil {
			return fmt.Errorf("meshing chunk (%d,%d): %w", res.X, res.Z, res.Err)
		}
		if err := s.writeFrame(conn, wl, res.X, res.Z, res.Mesh); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) sendChunk(conn *websocket.Conn, wl *sync.Mutex, x, z int) error {
	g := s.gen.Grid(x, z)
	mesh, err := mesher.Generate(g, s.mesh)
	if err != nil {
		return fmt.Errorf("meshing chunk (%d,%d): %w", x, z, err)
	}
	return s.writeFrame(conn, wl, x, z, mesh)
}

func (s *Server) writeFrame(conn *websocket.Conn, wl *sync.Mutex, x, z int, mesh *mesher.ChunkMesh) error {
	frame, err := s.codec.Encode(int32(x), int32(z), mesh)
	if err != nil {
		return err
	}
	wl.Lock()
	defer wl.Unlock()
	return conn.WriteMessage(websocket.BinaryMessage, frame)
}
