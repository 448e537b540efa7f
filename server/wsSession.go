package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The keypoint source and viewers are local tooling, not browsers from
	// arbitrary origins
	CheckOrigin: func(r *http.Request) bool { return true },
}

// httpSessionLive streams every frame result of a session over a websocket
// as JSON text messages, until the client goes away or the session closes.
func (s *Server) httpSessionLive(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	ses := s.getSession(params)

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Log.Warnf("Session %v: websocket upgrade failed: %v", ses.ID, err)
		return
	}

	results := ses.AddWatcher()
	defer ses.RemoveWatcher(results)

	// Reader goroutine, just to notice when the client disconnects
	closed := make(chan bool)
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.Log.Infof("Session %v: live watcher connected", ses.ID)
	defer conn.Close()

	for {
		select {
		case result, ok := <-results:
			if !ok {
				return
			}
			if err := conn.WriteJSON(result); err != nil {
				s.Log.Infof("Session %v: live watcher gone: %v", ses.ID, err)
				return
			}
		case <-closed:
			return
		}
	}
}
