package conversation

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateToken(t *testing.T) {
	s := NewState(ModeGuided)
	s.QuestionIndex = 2
	s.Answers.Cuisine = "thai"
	s.Answers.MaxBudget = "15"
	s = s.log(RoleUser, "15")

	token, err := Encode(s)
	require.NoError(t, err)
	assert.NotContains(t, token, "=")

	got, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestDecodeInvalid(t *testing.T) {
	encode := func(raw string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(raw))
	}

	tests := map[string]string{
		"not base64":     "%%%",
		"not json":       encode("hello"),
		"unknown mode":   encode(`{"session_id":"x","mode":"chaos"}`),
		"index too high": encode(`{"session_id":"x","mode":"guided","question_index":99}`),
		"negative index": encode(`{"session_id":"x","mode":"guided","question_index":-1}`),
		"no session":     encode(`{"mode":"guided"}`),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(token)
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestMessageLogIsBounded(t *testing.T) {
	s := NewState(ModeOneShot)
	for i := 0; i < maxLogMessages*2; i++ {
		s = s.log(RoleUser, "hi")
	}

	assert.Len(t, s.Messages, maxLogMessages)
}

func TestNewStateDefaultsToGuided(t *testing.T) {
	s := NewState("")

	assert.Equal(t, ModeGuided, s.Mode)
	assert.NotEmpty(t, s.SessionID)
}
