package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/scythe504/imposter-backend/internal"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Apply CORS middleware
	r.Use(s.corsMiddleware)

	r.HandleFunc("/", s.HelloWorldHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/rooms-available", s.GetRoomToJoin).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/rooms/{code}", s.GetRoomInfo).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/ws", s.hub.ServeWS)

	return r
}

// CORS middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "false")

		// The upgrader checks the origin of websocket handshakes itself.
		if strings.ToLower(r.Header.Get("Upgrade")) == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) HelloWorldHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, time.Now().UnixMilli(), http.StatusOK, map[string]string{"message": "Hello World"})
}

type healthData struct {
	Status    string `json:"status"`
	Rooms     int    `json:"rooms"`
	Clients   int    `json:"clients"`
	UptimeSec int64  `json:"uptime_sec"`
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, time.Now().UnixMilli(), http.StatusOK, healthData{
		Status:    "ok",
		Rooms:     s.registry.Len(),
		Clients:   s.hub.ClientCount(),
		UptimeSec: int64(time.Since(s.started).Seconds()),
	})
}

func (s *Server) GetRoomToJoin(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now().UnixMilli()

	if code, ok := s.registry.JoinableRoom(); ok {
		s.writeJSON(w, startTime, http.StatusOK, code)
		return
	}
	s.writeJSON(w, startTime, http.StatusNotFound, "No joinable rooms available")
}

type roomInfo struct {
	Code      string             `json:"room_code"`
	Phase     internal.GamePhase `json:"phase"`
	Players   int                `json:"players"`
	Connected int                `json:"connected"`
	Joinable  bool               `json:"joinable"`
}

// GetRoomInfo backs the join screen: it says whether a code exists and can
// still be joined, without exposing the roster.
func (s *Server) GetRoomInfo(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now().UnixMilli()

	room, ok := s.registry.GetRoom(mux.Vars(r)["code"])
	if !ok {
		s.writeJSON(w, startTime, http.StatusNotFound, "Room not found")
		return
	}
	snap := room.Snapshot()
	s.writeJSON(w, startTime, http.StatusOK, roomInfo{
		Code:      snap.Code,
		Phase:     snap.Phase,
		Players:   len(snap.Players),
		Connected: snap.ConnectedCount(),
		Joinable:  room.Joinable(),
	})
}

// writeJSON wraps data in the Response envelope with its timing fields.
func (s *Server) writeJSON(w http.ResponseWriter, startTime int64, status int, data any) {
	endTime := time.Now().UnixMilli()
	resp := internal.Response{
		StatusCode:    status,
		RespStartTime: startTime,
		RespEndTime:   endTime,
		NetRespTime:   endTime - startTime,
		Data:          data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.WithError(err).Error("[WriteJSON] encoding response")
	}
}
