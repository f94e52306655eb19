package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"i4.energy/across/gsmradio/at"
	"i4.energy/across/gsmradio/pdu"
	"i4.energy/across/gsmradio/sms"
)

func newTestServer(t *testing.T) (*Server, *MockRadio) {
	t.Helper()
	ctrl := gomock.NewController(t)
	r := NewMockRadio(ctrl)
	return NewServer(slog.New(slog.DiscardHandler), r), r
}

func TestServer_GetMessages(t *testing.T) {
	s, r := newTestServer(t)
	r.EXPECT().GetMessages(gomock.Any()).Return([]sms.Message{{
		Sender:    "+15551234567",
		Timestamp: time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC),
		Contents:  "Hi",
	}}, nil)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/messages", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `[{"sender":"+15551234567","time_stamp":"2026-01-15T10:30:00Z","contents":"Hi"}]`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestServer_GetMessagesEmpty(t *testing.T) {
	s, r := newTestServer(t)
	r.EXPECT().GetMessages(gomock.Any()).Return(nil, nil)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/messages", nil))

	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestServer_SendMessage(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		sendErr    error
		wantSend   bool
		wantStatus int
	}{
		{name: "Accepted", body: `{"destination_address":"+15551234567","content":"Hi"}`, wantSend: true, wantStatus: http.StatusAccepted},
		{name: "Bad JSON", body: `{"destination_address":`, wantStatus: http.StatusBadRequest},
		{name: "Missing content", body: `{"destination_address":"+15551234567"}`, wantStatus: http.StatusBadRequest},
		{name: "Too long", body: `{"destination_address":"+15551234567","content":"x"}`, sendErr: sms.ErrMessageTooLong, wantSend: true, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "Invalid address", body: `{"destination_address":"abc","content":"x"}`, sendErr: fmt.Errorf("%w: abc", sms.ErrInvalidAddress), wantSend: true, wantStatus: http.StatusBadRequest},
		{name: "Modem error", body: `{"destination_address":"+15551234567","content":"x"}`, sendErr: fmt.Errorf("%w: +CMS ERROR: 500", at.ErrResultCode), wantSend: true, wantStatus: http.StatusBadGateway},
		{name: "Timeout", body: `{"destination_address":"+15551234567","content":"x"}`, sendErr: sms.ErrSendTimeout, wantSend: true, wantStatus: http.StatusGatewayTimeout},
		{name: "Stopped", body: `{"destination_address":"+15551234567","content":"x"}`, sendErr: sms.ErrManagerStopped, wantSend: true, wantStatus: http.StatusServiceUnavailable},
		{name: "Other", body: `{"destination_address":"+15551234567","content":"x"}`, sendErr: errors.New("boom"), wantSend: true, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, r := newTestServer(t)
			if tt.wantSend {
				r.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(sms.SendResult{Reference: 9}, tt.sendErr)
			}

			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body)
			}
			if tt.wantStatus == http.StatusAccepted {
				var res sms.SendResult
				if err := json.NewDecoder(rec.Body).Decode(&res); err != nil || res.Reference != 9 {
					t.Errorf("body = %+v, %v", res, err)
				}
				return
			}
			var body struct{ Message string }
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body.Message == "" {
				t.Errorf("expected an error message, got %+v, %v", body, err)
			}
		})
	}
}

func TestServer_Status(t *testing.T) {
	s, r := newTestServer(t)
	r.EXPECT().SignalQuality(gomock.Any()).Return(at.SignalQuality{RSSI: 20, BER: 99}, nil)
	r.EXPECT().Operator(gomock.Any()).Return(at.Operator{}, errors.New("no reply"))
	r.EXPECT().NetworkMode(gomock.Any()).Return(at.NetworkMode{Mode: 8}, nil)
	r.EXPECT().ServiceCenter(gomock.Any()).Return(pdu.Address{Format: pdu.FormatInternational, Digits: "31654000000"}, nil)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `{"signal_rssi":20,"signal_dbm":-73,"network_mode":"LTE","service_center":"+31654000000"}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/messages", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /messages status = %d", rec.Code)
	}
}
