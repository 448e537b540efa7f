package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/posecare/posecare/pkg/perfstats"
)

// SetupHTTP builds the router and starts listening. port example: ":8080"
func (s *Server) SetupHTTP(port string) error {
	router := httprouter.New()

	handle := func(method, route string, handler httprouter.Handle) {
		www.Handle(s.Log, router, method, route, handler)
	}

	handle("GET", "/api/ping", s.httpPing)
	handle("GET", "/api/stats", s.httpStats)

	// Session lifecycle
	handle("POST", "/api/session", s.httpSessionCreate)
	handle("DELETE", "/api/session/:id", s.httpSessionClose)

	// Per-frame processing (keypoint source pushes, rendering layer reads)
	handle("POST", "/api/session/:id/frame", s.httpSessionFrame)
	handle("GET", "/api/session/:id/counter", s.httpSessionCounter)
	handle("GET", "/api/session/:id/history", s.httpSessionHistory)

	// Control surface
	handle("POST", "/api/session/:id/reset", s.httpSessionReset)
	handle("POST", "/api/session/:id/exercise/:name", s.httpSessionSwitchExercise)

	// Live results stream
	handle("GET", "/api/ws/session/:id", s.httpSessionLive)

	s.Log.Infof("Listening on %v", port)
	return http.ListenAndServe(port, router)
}

func (s *Server) httpPing(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	www.SendOK(w)
}

func (s *Server) httpStats(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	www.SendText(w, perfstats.Stats.String())
}
