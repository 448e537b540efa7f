package server

import (
	"sync"

	"github.com/cyclopcam/logs"

	"github.com/posecare/posecare/pkg/idgen"
	"github.com/posecare/posecare/server/exercise"
	"github.com/posecare/posecare/server/session"
)

// Server hosts the rep-counting sessions behind an HTTP/WebSocket API.
// The heavy lifting happens in the session package; this layer is thin
// transport glue for the keypoint source, the control surface and the
// rendering layer.
type Server struct {
	Log logs.Log

	sessionConfig session.Config

	sessionsLock  sync.Mutex
	sessions      map[int64]*session.Session
	nextSessionID idgen.Int64
}

func NewServer(log logs.Log, cfg session.Config) *Server {
	return &Server{
		Log:           log,
		sessionConfig: cfg,
		sessions:      map[int64]*session.Session{},
	}
}

// CreateSession starts a new session for one camera stream.
func (s *Server) CreateSession(ex exercise.Exercise) *session.Session {
	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	id := s.nextSessionID.Next()
	ses := session.NewSession(id, ex, s.sessionConfig, s.Log)
	s.sessions[id] = ses
	s.Log.Infof("Session %v started (%v)", id, ex)
	return ses
}

// Session returns the session with the given ID, or nil.
func (s *Server) Session(id int64) *session.Session {
	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	return s.sessions[id]
}

// CloseSession ends a session. Returns false if it does not exist.
func (s *Server) CloseSession(id int64) bool {
	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	s.Log.Infof("Session %v closed", id)
	return true
}
