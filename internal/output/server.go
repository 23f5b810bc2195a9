package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/jpeg"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Trailblaze-work/frame-player/internal/playback"
)

// ServerName identifies the share server to clients.
const ServerName = "Frame Player Output"

const (
	clientQueue  = 4
	writeTimeout = 10 * time.Second
)

// client is one connected WebSocket viewer.
type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Status is the JSON document served at the server root.
type Status struct {
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Frame     string `json:"frame"`
	Clients   int    `json:"clients"`
	Published uint64 `json:"published"`
}

// Server publishes output frames: the latest frame as a JPEG snapshot and
// a live stream of JPEG frames over WebSocket. It implements Sink.
type Server struct {
	name      string
	quality   int
	logger    *log.Logger
	onCommand func(playback.Command)
	upgrader  websocket.Upgrader
	pending   chan Frame

	mu        sync.RWMutex
	clients   map[uuid.UUID]*client
	latest    []byte
	label     string
	width     int
	height    int
	published uint64
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithName overrides the advertised server name.
func WithName(name string) ServerOption {
	return func(s *Server) { s.name = name }
}

// WithQuality sets the JPEG quality (1-100).
func WithQuality(q int) ServerOption {
	return func(s *Server) {
		if q >= 1 && q <= 100 {
			s.quality = q
		}
	}
}

// WithServerLogger sets the logger.
func WithServerLogger(l *log.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithCommandHandler receives transport commands sent by clients. The
// handler is called from connection goroutines and must hand the command
// over to the goroutine that owns the playback state.
func WithCommandHandler(fn func(playback.Command)) ServerOption {
	return func(s *Server) { s.onCommand = fn }
}

// NewServer creates a share server.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		name:    ServerName,
		quality: 85,
		pending: make(chan Frame, 1),
		clients: make(map[uuid.UUID]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local tool; any page may consume the feed
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default().WithPrefix("share")
	}
	return s
}

// Publish queues a frame for encoding. Only the newest pending frame is
// kept; Publish never blocks.
func (s *Server) Publish(f Frame) {
	select {
	case s.pending <- f:
		return
	default:
	}
	select {
	case <-s.pending:
	default:
	}
	select {
	case s.pending <- f:
	default:
	}
}

// Run encodes and fans out published frames until ctx is done.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case f := <-s.pending:
			if err := s.broadcast(f); err != nil {
				s.logger.Error("encoding frame", "err", err)
			}
		}
	}
}

func (s *Server) broadcast(f Frame) error {
	if f.Image == nil {
		return errors.New("nil frame")
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, f.Image, &jpeg.Options{Quality: s.quality}); err != nil {
		return err
	}
	data := buf.Bytes()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = data
	s.label = f.Label
	s.width = f.Image.Bounds().Dx()
	s.height = f.Image.Bounds().Dy()
	s.published++

	for _, c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.logger.Debug("client behind, dropping frame", "client", c.id)
		}
	}
	return nil
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Status returns a snapshot of the server state.
func (s *Server) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Name:      s.name,
		Width:     s.width,
		Height:    s.height,
		Frame:     s.label,
		Clients:   len(s.clients),
		Published: s.published,
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleStatus)
	mux.HandleFunc("GET /frame.jpg", s.handleFrame)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled. It also runs the
// frame encoder, so published frames reach clients only while serving.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler()}

	go s.Run(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("sharing output", "addr", ln.Addr().String(), "name", s.name)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Status())
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data := s.latest
	s.mu.RUnlock()

	if data == nil {
		http.Error(w, "no frame published yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "err", err)
		return
	}

	c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, clientQueue)}
	s.register(c)
	defer s.unregister(c)

	go c.writePump()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read", "client", c.id, "err", err)
			}
			return
		}
		if messageType != websocket.TextMessage || s.onCommand == nil {
			continue
		}
		cmd, err := ParseCommand(data)
		if err != nil {
			s.logger.Warn("bad control message", "client", c.id, "err", err)
			continue
		}
		s.onCommand(cmd)
	}
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.id] = c
	if s.latest != nil {
		c.send <- s.latest
	}
	s.logger.Info("client connected", "client", c.id, "total", len(s.clients))
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.id]; !ok {
		return
	}
	delete(s.clients, c.id)
	close(c.send)
	s.logger.Info("client disconnected", "client", c.id, "total", len(s.clients))
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.clients {
		delete(s.clients, id)
		close(c.send)
	}
}

// writePump is the only goroutine writing to the connection; gorilla
// connections do not support concurrent writers.
func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}
