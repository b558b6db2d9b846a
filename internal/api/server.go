// Package api provides the HTTP API that remote clients use to drive input.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"astra/internal/action"
	"astra/internal/activity"
	"astra/internal/protocol"
	"astra/internal/translate"
	"astra/internal/voice"
)

// HealthMessage is returned by GET / and GET /ping
const HealthMessage = "Astra Gesture Control Server"

const maxBodyBytes = 64 << 10

// Actuator applies canonical actions to the host
type Actuator interface {
	Apply(ctx context.Context, act action.Action) error
}

// Server provides HTTP API for remote control
type Server struct {
	actuator Actuator
	activity *activity.Log
	wsMgr    *WSManager

	mu         sync.Mutex
	httpServer *http.Server
}

// NewServer creates a new API server. The actuator is shared by every request.
func NewServer(act Actuator, recent *activity.Log) *Server {
	if recent == nil {
		recent = activity.New(activity.DefaultCapacity)
	}
	s := &Server{
		actuator: act,
		activity: recent,
	}
	s.wsMgr = newWSManager(s)
	return s
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHealth)
	mux.HandleFunc("/ping", s.handleHealth)
	mux.HandleFunc("/mouse", s.handleMouse)
	mux.HandleFunc("/click", s.handleClick)
	mux.HandleFunc("/scroll", s.handleScroll)
	mux.HandleFunc("/key", s.handleKey)
	mux.HandleFunc("/voice", s.handleVoice)
	mux.HandleFunc("/activity", s.handleActivity)
	mux.HandleFunc("/ws", s.wsMgr.handleWebSocket)

	return s.logMiddleware(s.corsMiddleware(s.recoverMiddleware(mux)))
}

// Start listens on addr and serves until Shutdown is called.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp4", addr)
	if err != nil {
		log.Printf("ERROR: API server failed to listen on %s: %v", addr, err)
		return err
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener. It blocks.
func (s *Server) Serve(ln net.Listener) error {
	go s.wsMgr.start()

	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = server
	s.mu.Unlock()

	log.Printf("API: Listening on %s", ln.Addr())
	if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Printf("ERROR: API server stopped: %v", err)
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and closes WebSocket clients
func (s *Server) Shutdown(ctx context.Context) error {
	s.wsMgr.stop()

	s.mu.Lock()
	server := s.httpServer
	s.mu.Unlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC RECOV: %v", err)
				writeError(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware allows browser clients served from any origin
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("API: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, protocol.Response{Status: protocol.StatusError, Message: msg})
}

// decode reads a JSON body into v. The returned error is an InvalidRequest.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return action.Invalid("Invalid request body: %v", err)
	}
	return nil
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

// respond writes the outcome of a command and records it in the activity log
func (s *Server) respond(w http.ResponseWriter, r *http.Request, command string, err error, success string) {
	entry := activity.Entry{Remote: r.RemoteAddr, Command: command}
	if err != nil {
		log.Printf("API: %s failed: %v", command, err)
		entry.Status, entry.Message = protocol.StatusError, err.Error()
		s.activity.Add(entry)
		writeError(w, action.HTTPStatus(err), err.Error())
		return
	}
	entry.Status, entry.Message = protocol.StatusSuccess, success
	s.activity.Add(entry)
	writeJSON(w, http.StatusOK, protocol.Response{Status: protocol.StatusSuccess, Message: success})
}

// handleHealth handles GET / and GET /ping
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/ping" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, protocol.Response{Status: protocol.StatusOK, Message: HealthMessage})
}

// handleMouse handles POST /mouse {"dx":..,"dy":..}
func (s *Server) handleMouse(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req protocol.MouseRequest
	if err := decode(w, r, &req); err != nil {
		s.respond(w, r, "/mouse", err, "")
		return
	}
	if req.DX == nil || req.DY == nil {
		s.respond(w, r, "/mouse", action.Invalid("Missing field: dx and dy are required"), "")
		return
	}

	move := translate.Mouse(*req.DX, *req.DY)
	err := s.actuator.Apply(r.Context(), move)
	s.respond(w, r, move.String(), err, "Mouse moved")
}

// handleClick handles POST /click {"type":..}
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req protocol.ClickRequest
	if err := decode(w, r, &req); err != nil {
		s.respond(w, r, "/click", err, "")
		return
	}
	if req.Type == nil {
		s.respond(w, r, "/click", action.Invalid("Missing field: type"), "")
		return
	}

	click, err := translate.Click(*req.Type)
	if err == nil {
		err = s.actuator.Apply(r.Context(), click)
	}
	s.respond(w, r, "/click "+*req.Type, err, fmt.Sprintf("%s performed", *req.Type))
}

// handleScroll handles POST /scroll {"direction":..,"amount":..}
func (s *Server) handleScroll(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req protocol.ScrollRequest
	if err := decode(w, r, &req); err != nil {
		s.respond(w, r, "/scroll", err, "")
		return
	}
	if req.Direction == nil {
		s.respond(w, r, "/scroll", action.Invalid("Missing field: direction"), "")
		return
	}

	scroll, err := translate.Scroll(*req.Direction, req.Amount)
	if err == nil {
		err = s.actuator.Apply(r.Context(), scroll)
	}
	s.respond(w, r, "/scroll "+*req.Direction, err, "Scrolled")
}

// handleKey handles POST /key {"key":..,"modifiers":[..]}
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req protocol.KeyRequest
	if err := decode(w, r, &req); err != nil {
		s.respond(w, r, "/key", err, "")
		return
	}
	if req.Key == nil {
		s.respond(w, r, "/key", action.Invalid("Missing field: key"), "")
		return
	}

	press := translate.Key(*req.Key, req.Modifiers)
	err := s.actuator.Apply(r.Context(), press)
	s.respond(w, r, press.String(), err, fmt.Sprintf("Key '%s' pressed", *req.Key))
}

// handleVoice handles POST /voice {"command":..}
func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req protocol.VoiceRequest
	if err := decode(w, r, &req); err != nil {
		s.respond(w, r, "/voice", err, "")
		return
	}
	if req.Command == nil {
		s.respond(w, r, "/voice", action.Invalid("Missing field: command"), "")
		return
	}

	intent := voice.Parse(*req.Command)
	act, err := voice.ToAction(intent)
	if err == nil {
		err = s.actuator.Apply(r.Context(), act)
	}
	s.respond(w, r, "voice: "+*req.Command, err, voice.Describe(intent))
}

// handleActivity handles GET /activity
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.activity.Snapshot())
}
