package server

import (
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"

	"github.com/posecare/posecare/server/exercise"
	"github.com/posecare/posecare/server/session"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewServer(logs.NewTestingLog(t), session.DefaultConfig())

	ses := s.CreateSession(exercise.Squat)
	require.NotNil(t, ses)
	require.NotZero(t, ses.ID)
	require.Equal(t, exercise.Squat, ses.Exercise())

	require.Same(t, ses, s.Session(ses.ID))
	require.Nil(t, s.Session(9999))

	// Session IDs are unique
	ses2 := s.CreateSession(exercise.LegRaise)
	require.NotEqual(t, ses.ID, ses2.ID)

	require.True(t, s.CloseSession(ses.ID))
	require.Nil(t, s.Session(ses.ID))
	require.False(t, s.CloseSession(ses.ID))
}
