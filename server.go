package main

//go:generate go tool mockgen -source=server.go -destination=mock_radio_test.go -package=main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"i4.energy/across/gsmradio/at"
	"i4.energy/across/gsmradio/pdu"
	"i4.energy/across/gsmradio/radio"
	"i4.energy/across/gsmradio/sms"
)

// Radio is the part of radio.Client the HTTP server uses.
type Radio interface {
	GetMessages(ctx context.Context) ([]sms.Message, error)
	SendMessage(ctx context.Context, dest, content string) (sms.SendResult, error)
	SignalQuality(ctx context.Context) (at.SignalQuality, error)
	Operator(ctx context.Context) (at.Operator, error)
	NetworkMode(ctx context.Context) (at.NetworkMode, error)
	ServiceCenter(ctx context.Context) (pdu.Address, error)
}

var _ Radio = radio.Client{}

// Server handles incoming HTTP requests for interacting with the radio
type Server struct {
	logger *slog.Logger
	radio  Radio
	router chi.Router
}

// NewServer builds the router for r.
func NewServer(logger *slog.Logger, r Radio) *Server {
	s := &Server{logger: logger, radio: r}

	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	router.Get("/health", s.handleHealth)
	router.Get("/status", s.handleStatus)
	router.Route("/messages", func(r chi.Router) {
		r.Get("/", s.handleGetMessages)
		r.Post("/", s.handleSendMessage)
	})

	s.router = router
	return s
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	s.sendJSON(w, ErrorResponse{Message: message}, statusCode)
}

// statusFor maps radio errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, sms.ErrMessageTooLong):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, sms.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, sms.ErrSendTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, at.ErrResultCode):
		return http.StatusBadGateway
	case errors.Is(err, sms.ErrManagerStopped), errors.Is(err, radio.ErrClosed), errors.Is(err, at.ErrWorkerStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.radio.GetMessages(r.Context())
	if err != nil {
		s.logger.Error("Failed to get messages", "error", err)
		s.sendError(w, err.Error(), statusFor(err))
		return
	}
	if msgs == nil {
		msgs = []sms.Message{}
	}
	s.sendJSON(w, msgs, http.StatusOK)
}

// SendRequest is the body of POST /messages.
type SendRequest struct {
	DestinationAddress string `json:"destination_address"`
	Content            string `json:"content"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.DestinationAddress == "" || req.Content == "" {
		s.sendError(w, "both 'destination_address' and 'content' fields are required", http.StatusBadRequest)
		return
	}

	res, err := s.radio.SendMessage(r.Context(), req.DestinationAddress, req.Content)
	if err != nil {
		s.logger.Error("Failed to send SMS", "error", err, "destination", req.DestinationAddress)
		s.sendError(w, err.Error(), statusFor(err))
		return
	}

	s.logger.Info("SMS sent successfully", "destination", req.DestinationAddress, "reference", res.Reference)
	s.sendJSON(w, res, http.StatusAccepted)
}

// StatusResponse is the body of GET /status. Fields the modem did not
// answer are omitted.
type StatusResponse struct {
	SignalRSSI    *int    `json:"signal_rssi,omitempty"`
	SignalDBm     *int    `json:"signal_dbm,omitempty"`
	Operator      *string `json:"operator,omitempty"`
	NetworkMode   *string `json:"network_mode,omitempty"`
	ServiceCenter *string `json:"service_center,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var resp StatusResponse

	if sq, err := s.radio.SignalQuality(ctx); err != nil {
		s.logger.Warn("Signal quality unavailable", "error", err)
	} else {
		resp.SignalRSSI = &sq.RSSI
		if dbm, ok := sq.DBm(); ok {
			resp.SignalDBm = &dbm
		}
	}

	if op, err := s.radio.Operator(ctx); err != nil {
		s.logger.Warn("Operator unavailable", "error", err)
	} else if op.Name != "" {
		resp.Operator = &op.Name
	}

	if mode, err := s.radio.NetworkMode(ctx); err != nil {
		s.logger.Warn("Network mode unavailable", "error", err)
	} else {
		name := mode.String()
		resp.NetworkMode = &name
	}

	if smsc, err := s.radio.ServiceCenter(ctx); err != nil {
		s.logger.Warn("Service centre unavailable", "error", err)
	} else {
		addr := smsc.String()
		resp.ServiceCenter = &addr
	}

	s.sendJSON(w, resp, http.StatusOK)
}
