package conversation

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/imkonsowa/makansini/prefs"
)

var ErrInvalidState = errors.New("invalid conversation state")

type Mode string

const (
	ModeGuided  Mode = "guided"
	ModeOneShot Mode = "one_shot"
)

func (m Mode) Valid() bool {
	return m == ModeGuided || m == ModeOneShot
}

type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// maxLogMessages bounds the message log carried in a state token.
const maxLogMessages = 40

// State is everything a conversation needs between turns. It is a plain
// value: turns return a new State and never modify the one passed in.
type State struct {
	SessionID     string        `json:"session_id"`
	Mode          Mode          `json:"mode"`
	QuestionIndex int           `json:"question_index"`
	Answers       prefs.Answers `json:"answers"`
	Messages      []Message     `json:"messages"`
	Done          bool          `json:"done"`
}

// NewState starts a conversation in mode with the greeting already logged.
func NewState(mode Mode) State {
	if !mode.Valid() {
		mode = ModeGuided
	}

	s := State{
		SessionID: uuid.New().String(),
		Mode:      mode,
		Messages:  []Message{},
	}
	for _, line := range greeting(mode) {
		s = s.log(RoleAssistant, line)
	}

	return s
}

// Reset returns a fresh state in the same mode.
func Reset(s State) State {
	return NewState(s.Mode)
}

func (s State) clone() State {
	s.Messages = append([]Message(nil), s.Messages...)
	return s
}

func (s State) log(role Role, text string) State {
	s.Messages = append(s.Messages, Message{Role: role, Text: text})
	if n := len(s.Messages); n > maxLogMessages {
		s.Messages = append([]Message(nil), s.Messages[n-maxLogMessages:]...)
	}

	return s
}

// Encode serializes s into an opaque URL-safe token.
func Encode(s State) (string, error) {
	data, err := sonic.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses a token produced by Encode.
func Decode(token string) (State, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	var s State
	if err := sonic.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if !s.Mode.Valid() {
		return State{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidState, s.Mode)
	}
	if s.QuestionIndex < 0 || s.QuestionIndex > len(questions) {
		return State{}, fmt.Errorf("%w: question index %d out of range", ErrInvalidState, s.QuestionIndex)
	}
	if s.SessionID == "" {
		return State{}, fmt.Errorf("%w: missing session id", ErrInvalidState)
	}
	if s.Messages == nil {
		s.Messages = []Message{}
	}

	return s, nil
}
