package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/posecare/posecare/server/exercise"
	"github.com/posecare/posecare/server/session"
)

// Largest frame payload we're willing to parse. A frame is a handful of
// candidates with 17 keypoints each, so 1MB is generous.
const maxFrameBodySize = 1024 * 1024

// getSession panics with a 404 if the session does not exist.
func (s *Server) getSession(params httprouter.Params) *session.Session {
	id := www.ParseID(params.ByName("id"))
	ses := s.Session(id)
	if ses == nil {
		www.PanicNotFound()
	}
	return ses
}

func (s *Server) httpSessionCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	ex := exercise.Squat
	if name := www.QueryValue(r, "exercise"); name != "" {
		var ok bool
		ex, ok = exercise.ParseExercise(name)
		if !ok {
			www.PanicBadRequestf("Unknown exercise '%v'", name)
		}
	}
	ses := s.CreateSession(ex)
	www.SendID(w, ses.ID)
}

func (s *Server) httpSessionClose(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	if !s.CloseSession(www.ParseID(params.ByName("id"))) {
		www.PanicNotFound()
	}
	www.SendOK(w)
}

func (s *Server) httpSessionFrame(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	ses := s.getSession(params)
	input := session.FrameInput{}
	www.ReadJSON(w, r, &input, maxFrameBodySize)
	if input.FrameWidth <= 0 || input.FrameHeight <= 0 {
		www.PanicBadRequestf("Invalid frame dimensions %vx%v", input.FrameWidth, input.FrameHeight)
	}
	result := ses.ProcessFrame(&input)
	www.SendJSON(w, result)
}

func (s *Server) httpSessionCounter(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	ses := s.getSession(params)
	www.SendJSON(w, ses.Counter())
}

func (s *Server) httpSessionHistory(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	ses := s.getSession(params)
	maxItems := www.QueryInt(r, "max") // 0 = everything we have
	www.SendJSON(w, ses.History(maxItems))
}

func (s *Server) httpSessionReset(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	ses := s.getSession(params)
	ses.Reset()
	s.Log.Infof("Session %v: counter reset", ses.ID)
	www.SendOK(w)
}

func (s *Server) httpSessionSwitchExercise(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	ses := s.getSession(params)
	name := params.ByName("name")
	ex, ok := exercise.ParseExercise(name)
	if !ok {
		www.PanicBadRequestf("Unknown exercise '%v'", name)
	}
	ses.SwitchExercise(ex)
	s.Log.Infof("Session %v: switched to %v", ses.ID, ex)
	www.SendOK(w)
}
