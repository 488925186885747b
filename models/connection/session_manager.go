package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
)

const defaultCleanupInterval = time.Minute * 20

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	FetchCodeFromMsg(payload []byte) (uint8, error)
	Count() int
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

func NewBattleshipSessionManager(cleanupInterval time.Duration) *BattleshipSessionManager {
	initMapSize := 10
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: cleanupInterval,
	}
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
	log.Info("session deleted", "session", sessionId)
}

func (bsm *BattleshipSessionManager) Count() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// To ensure that there is no dangling connections,
// server session manager marks the connections that sent nothing
// for longer than the cleanup interval as stale, closes and deletes them.
// A game in progress keeps its session alive however long it runs.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	assumedClosedConns := 10
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		bsm.mu.Lock()
		toDelete := make([]*Session, 0, assumedClosedConns)
		for _, session := range bsm.sessions {
			if session.IdleFor() > bsm.cleanupInterval {
				toDelete = append(toDelete, session)
			}
		}

		for _, session := range toDelete {
			delete(bsm.sessions, session.id)
		}
		bsm.mu.Unlock()

		// closing makes the reader of each session fail and unwind its loop
		for _, session := range toDelete {
			session.Close()
			log.Info("removed stale session", "session", session.id)
		}
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	if session == nil {
		return cerr.ErrSessionIsNil("")
	}
	return session.writeToConnWithRetry(msg, msgType)
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			session.touch()
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		default:
			return -1, []byte{}, err
		}
	}
}

func (bsm *BattleshipSessionManager) FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}
	if signal.Code == nil {
		return randomInvalidCode, cerr.ErrSignalAbsent()
	}

	return *signal.Code, nil
}
