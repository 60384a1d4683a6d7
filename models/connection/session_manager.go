package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	HandleAbnormalClosureSession(session *Session) error

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	Count() int
}

type MechSessionManager struct {
	cleanupInterval time.Duration
	gracePeriod     time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*MechSessionManager)(nil)

func NewMechSessionManager() *MechSessionManager {
	return &MechSessionManager{
		sessions:        make(map[string]*Session, 10),
		cleanupInterval: time.Minute * 20,
		gracePeriod:     gracePeriod,
	}
}

func (msm *MechSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString()))
	session := NewSession(sessionId, conn)

	msm.mu.Lock()
	msm.sessions[sessionId] = session
	msm.mu.Unlock()
	return session
}

func (msm *MechSessionManager) FindSession(sessionId string) (*Session, error) {
	msm.mu.RLock()
	defer msm.mu.RUnlock()

	session, prs := msm.sessions[sessionId]
	if !prs || session == nil {
		return nil, cerr.ErrSessionNotExists(sessionId)
	}
	return session, nil
}

func (msm *MechSessionManager) TerminateSession(sessionId string) {
	msm.mu.Lock()
	delete(msm.sessions, sessionId)
	msm.mu.Unlock()
}

func (msm *MechSessionManager) Count() int {
	msm.mu.RLock()
	defer msm.mu.RUnlock()
	return len(msm.sessions)
}

func (msm *MechSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := msm.FindSession(sessionId)
	if err != nil {
		return err
	}
	session.reconnect(conn)
	log.Info().Str("session", sessionId).Msg("session reconnected")
	return nil
}

func (msm *MechSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(msm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			msm.removeStale(now)
		}
	}
}

// removeStale drops sessions older than the cleanup interval. A session
// with a bout in progress stays so its client can still reconnect.
func (msm *MechSessionManager) removeStale(now time.Time) int {
	msm.mu.Lock()
	defer msm.mu.Unlock()

	removed := 0
	for id, session := range msm.sessions {
		if now.Sub(session.createdAt) <= msm.cleanupInterval || session.Bout() != nil {
			continue
		}
		delete(msm.sessions, id)
		removed++
		log.Debug().Str("session", id).Msg("removed stale session")
	}
	return removed
}

// Waits for the client to come back with its session id. A session
// without a bout has nothing to resume and ends right away.
func (msm *MechSessionManager) HandleAbnormalClosureSession(s *Session) error {
	if s.Bout() == nil {
		return NewConnErr(ConnLoopBreak).ForSession(s.id).AddDesc("no bout to resume")
	}

	timer := time.NewTimer(msm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		log.Info().Str("session", s.id).Msg("grace period over; session terminated")
		return NewConnErr(ConnLoopBreak).ForSession(s.id).AddDesc("grace period is over")

	case <-s.reconnected():
		log.Info().Str("session", s.id).Msg("player reconnected")
		return nil
	}
}

func (msm *MechSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	err := session.writeToConnWithRetry(msg, msgType)
	if err == nil {
		return nil
	}

	var connErr ConnErr
	if !errors.As(err, &connErr) {
		return err
	}

	switch connErr.Action() {
	case ConnLoopAbnormalClosureRetry:
		if err := msm.HandleAbnormalClosureSession(session); err != nil {
			return connErr
		}
		return session.writeToConnWithRetry(msg, msgType)

	default:
		return connErr
	}
}

func (msm *MechSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.Conn().ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := msm.HandleAbnormalClosureSession(session); err != nil {
				return -1, []byte{}, err
			}

		default:
			return -1, []byte{}, err
		}
	}
}

const randomInvalidCode uint8 = 255

func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}
	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}
	if signal.Code == nil {
		return randomInvalidCode, errors.New("code field is absent")
	}
	return *signal.Code, nil
}
