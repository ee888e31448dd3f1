package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/1broseidon/pixeldrift/internal/config"
	"github.com/1broseidon/pixeldrift/internal/runtimepath"
	"github.com/1broseidon/pixeldrift/internal/shift"
	"github.com/1broseidon/pixeldrift/internal/xrandr"
)

// Server handles IPC requests from CLI and MCP clients over a unix
// socket. Shift operations are delegated to the daemon's single engine so
// scheduler state stays in one process.
type Server struct {
	socketPath string
	listener   net.Listener

	cfg   *config.Config
	cfgMu sync.RWMutex

	engine *shift.Scheduler
	runner xrandr.Runner

	startTime  time.Time
	reloadChan chan<- struct{}

	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates an IPC server wired to the shift engine. reloadChan
// is signalled after a RELOAD request swapped the config.
func NewServer(cfg *config.Config, engine *shift.Scheduler, runner xrandr.Runner, reloadChan chan<- struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine socket path: %w", err)
	}

	// Remove a stale socket from a previous run.
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		engine:     engine,
		runner:     runner,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// Start begins listening on the unix socket.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket %s: %w", s.socketPath, err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Info().Str("socket", s.socketPath).Msg("IPC server listening")
	go s.acceptLoop()
	return nil
}

// Stop shuts down the server and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) isShuttingDown() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// GetConfig returns the current configuration.
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig swaps the configuration.
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isShuttingDown() {
				return
			}
			log.Warn().Err(err).Msg("IPC accept failed")
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil {
		log.Warn().Err(err).Msg("IPC read failed")
		return
	}

	req, err := ParseRequest(data)
	var resp *Response
	if err != nil {
		resp = NewErrorResponse(fmt.Sprintf("invalid request: %v", err))
	} else {
		resp = s.handleCommand(req)
	}

	out, err := resp.Marshal()
	if err != nil {
		log.Error().Err(err).Msg("IPC response marshal failed")
		return
	}
	out = append(out, '\n')
	if _, err := conn.Write(out); err != nil {
		log.Warn().Err(err).Msg("IPC write failed")
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListDisplays:
		return s.handleListDisplays()
	case CommandShiftOnce:
		return s.handleShiftOnce(req.Payload)
	case CommandStartShift:
		return s.handleStartShift(req.Payload)
	case CommandStopShift:
		return okMessage(s.engine.Stop())
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	st := s.engine.State()
	data := StatusData{
		Running:         st.Running,
		Display:         st.Display,
		Strategy:        string(st.Strategy),
		ShiftAmount:     st.Amount,
		IntervalSeconds: int(st.Interval / time.Second),
		Pattern:         st.Pattern,
		TickCount:       st.TickCount,
		LastStatus:      st.LastStatus,
		UptimeSeconds:   int64(time.Since(s.startTime).Seconds()),
		DaemonRunning:   true,
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("failed to build status: %v", err))
	}
	return resp
}

func (s *Server) handleListDisplays() *Response {
	displays := xrandr.ListDisplays(s.runner)
	data := DisplaysData{Displays: make([]DisplayInfo, 0, len(displays))}
	for _, d := range displays {
		data.Displays = append(data.Displays, DisplayInfo{
			Name:      d.Name,
			Width:     d.Width,
			Height:    d.Height,
			RefreshHz: d.RefreshHz,
			Primary:   d.Primary,
		})
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("failed to build display list: %v", err))
	}
	return resp
}

func (s *Server) handleShiftOnce(payload json.RawMessage) *Response {
	var p ShiftOncePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("invalid payload: %v", err))
		}
	}

	cfg := s.GetConfig()
	if p.Display == "" {
		p.Display = cfg.Display
	}
	if p.Amount == 0 {
		p.Amount = cfg.ShiftAmount
	}
	if p.Strategy == "" {
		p.Strategy = cfg.Strategy
	}

	if p.Amount < 1 || p.Amount > 20 {
		return NewErrorResponse(fmt.Sprintf("amount must be between 1 and 20, got %d", p.Amount))
	}
	strategy, err := shift.ParseStrategy(p.Strategy)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	d, err := xrandr.ResolveDisplay(s.runner, p.Display)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	return okMessage(s.engine.ShiftOnce(d, p.Amount, strategy))
}

func (s *Server) handleStartShift(payload json.RawMessage) *Response {
	var p StartShiftPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("invalid payload: %v", err))
		}
	}

	cfg := s.GetConfig()
	if p.Display == "" {
		p.Display = cfg.Display
	}
	if p.Amount == 0 {
		p.Amount = cfg.ShiftAmount
	}
	if p.IntervalSeconds == 0 {
		p.IntervalSeconds = cfg.IntervalSeconds
	}
	if p.Strategy == "" {
		p.Strategy = cfg.Strategy
	}
	usePattern := cfg.Pattern
	if p.Pattern != nil {
		usePattern = *p.Pattern
	}

	if p.Amount < 1 || p.Amount > 20 {
		return NewErrorResponse(fmt.Sprintf("amount must be between 1 and 20, got %d", p.Amount))
	}
	if p.IntervalSeconds < 1 || p.IntervalSeconds > 86400 {
		return NewErrorResponse(fmt.Sprintf("interval must be between 1 and 86400 seconds, got %d", p.IntervalSeconds))
	}
	strategy, err := shift.ParseStrategy(p.Strategy)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	d, err := xrandr.ResolveDisplay(s.runner, p.Display)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	interval := time.Duration(p.IntervalSeconds) * time.Second
	return okMessage(s.engine.Start(d, p.Amount, interval, strategy, usePattern))
}

func (s *Server) handleReload() *Response {
	cfg, err := config.Load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("failed to reload config: %v", err))
	}
	s.UpdateConfig(cfg)

	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	log.Info().Msg("configuration reloaded")
	return okMessage("Configuration reloaded.")
}

func okMessage(status string) *Response {
	resp, err := NewOKResponse(MessageData{Message: status})
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("failed to build response: %v", err))
	}
	return resp
}
