package connection

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one websocket client. Writes are serialized; reads
// belong to a single reader goroutine.
type Session struct {
	id        string
	conn      *websocket.Conn
	createdAt time.Time
	writeMu   sync.Mutex
	closeOnce sync.Once

	// unix nanos of the last frame read from the client
	lastActivity atomic.Int64
}

func NewSession(id string, conn *websocket.Conn) *Session {
	now := time.Now()
	s := &Session{
		id:        id,
		conn:      conn,
		createdAt: now,
	}
	s.lastActivity.Store(now.UnixNano())
	return s
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) LastActivity() time.Time {
	return time.Unix(0, s.lastActivity.Load())
}

func (s *Session) touch() {
	s.lastActivity.Store(time.Now().UnixNano())
}

// IdleFor reports how long the client has been silent.
func (s *Session) IdleFor() time.Duration {
	return time.Since(s.LastActivity())
}

// Close is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
}

func (s *Session) remoteAddr() string {
	if s.conn == nil {
		return ""
	}
	return s.conn.RemoteAddr().String()
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Warn("timeout error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Warn("high server load/traffic error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	// a single player game has nobody to wait for, so an abnormal
	// closure ends the session like any other close
	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		log.Info("close error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Error("critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	/*
		This might mean that the client is not from the application.
		Breaking not to overwhelm the server with invalid payloads (e.g. binary data)
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Warn("non-critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	log.Error("unexpected error", "session", s.id, "err", err)
	return ConnLoopBreak
}

// Writes to the connection of that session and retries
// timeouts with a linear back off.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var retries uint8

writeJsonLoop:
	for {
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = s.conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = s.conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				log.Warn("writing json failed to ws; retrying", "addr", s.remoteAddr(), "retry", retries)
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue writeJsonLoop
			}
			log.Error("max retries reached for writing to ws", "addr", s.remoteAddr(), "err", err)
			return NewConnErr(ConnLoopBreak)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking writeJsonLoop due to:" + err.Error())
		}
	}
}

// Handles the errors that occur when reading from
// ws connection. `ConnLoopBreak` terminates the session.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopRetry:
		if retries < maxWriteWsRetries {
			log.Warn("failed to read from ws conn; retrying", "addr", s.remoteAddr(), "retry", retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		log.Info("break ws conn loop", "addr", s.remoteAddr(), "err", err)
		return ConnLoopBreak
	}
}

var _ ConnectionHandler = (*Session)(nil)
