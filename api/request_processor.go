package api

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/saeidalz13/battleship-cpu/db/sqlc"
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
	mc "github.com/saeidalz13/battleship-cpu/models/connection"
)

func (s *Server) HandleWs(c *gin.Context) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("could not upgrade connection", "err", err)
		// Upgrade already replied to the client
		return
	}

	log.Info("a new connection established", "addr", conn.RemoteAddr().String())
	session := s.SessionManager.GenerateNewSession(conn)
	go s.processSessionRequests(s.baseCtx, session)
}

func (s *Server) newController(outbox *Outbox) *mb.GameController {
	opts := []mb.ControllerOption{
		mb.WithPresenter(outbox),
		mb.WithSoundPlayer(outbox),
		mb.WithRand(s.newRand()),
		mb.WithMarkVerifiedEmpty(s.game.MarkVerifiedEmpty),
	}
	if s.DbManager != nil {
		opts = append(opts, mb.WithGameRecorder(NewAsyncRecorder(s.DbManager, s.serverInet())))
	}

	return mb.NewGameController(
		mb.NewPlayer(mb.ParticipantPlayer),
		mb.NewPlayer(mb.ParticipantComputer),
		opts...,
	)
}

// readSession forwards every frame to incoming until the connection
// fails or the loop is gone.
func (s *Server) readSession(session *mc.Session, incoming chan<- []byte, done <-chan struct{}) {
	defer close(incoming)

	for {
		_, payload, err := s.SessionManager.ReadFromSessionConn(session)
		if err != nil {
			return
		}

		select {
		case incoming <- payload:
		case <-done:
			return
		}
	}
}

func (s *Server) countGameCreated() {
	if s.DbManager == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()
	if err := s.DbManager.Analytics.IncrementGamesCreatedCount(ctx, s.serverInet()); err != nil {
		// for now not killing the game for it
		log.Warn("failed to increment created games", "err", err)
	}
}

// flush writes everything the controller rendered, in order.
func (s *Server) flush(session *mc.Session, outbox *Outbox) error {
	for _, msg := range outbox.Drain() {
		if err := s.SessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
			return err
		}
	}
	return nil
}

// processSessionRequests is the only goroutine touching the controller
// of the session. Client frames and the pending computer move are
// multiplexed with a select, so they never run concurrently.
func (s *Server) processSessionRequests(ctx context.Context, session *mc.Session) {
	sessionId := session.Id()
	outbox := NewOutbox(s.game.SoundEnabled)
	gc := s.newController(outbox)

	incoming := make(chan []byte)
	done := make(chan struct{})

	defer func() {
		close(done)
		// cancel the pending move before the session goes away
		gc.Cleanup()
		s.GameManager.TerminateGame(sessionId)
		s.SessionManager.TerminateSession(sessionId)
		session.Close()
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := s.SessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

	if err := gc.NewRound(); err != nil {
		log.Error("failed to deal fleets", "session", sessionId, "err", err)
		return
	}
	s.GameManager.AddGame(sessionId, gc)

	if err := s.SessionManager.WriteToSessionConn(session, newFleetMessage(gc), mc.MessageTypeJSON); err != nil {
		return
	}

	go s.readSession(session, incoming, done)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

sessionLoop:
	for {
		var computerMove <-chan time.Time
		if due, ok := gc.NextDue(); ok {
			timer.Reset(time.Until(due))
			computerMove = timer.C
		}

		select {
		case <-ctx.Done():
			break sessionLoop

		case now := <-computerMove:
			gc.Tick(now)

		case payload, ok := <-incoming:
			if !ok {
				break sessionLoop
			}
			if reply := s.handlePayload(gc, outbox, payload); reply != nil {
				outbox.Push(reply)
			}
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}

		if err := s.flush(session, outbox); err != nil {
			log.Info("write failed, closing session", "session", sessionId, "err", err)
			break sessionLoop
		}
	}
}

// handlePayload dispatches one client frame and returns the direct
// reply, if any.
func (s *Server) handlePayload(gc *mb.GameController, outbox *Outbox, payload []byte) interface{} {
	code, err := s.SessionManager.FetchCodeFromMsg(payload)
	if err != nil {
		msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
		msg.AddError(err.Error(), "incoming req payload must contain 'code' field")
		return msg
	}

	req := NewRequest(payload)

	switch code {
	case mc.CodeRandomizeFleet:
		return req.HandleRandomizeFleet(gc)

	case mc.CodeMoveShip:
		return req.HandleMoveShip(gc)

	case mc.CodeRotateShip:
		return req.HandleRotateShip(gc)

	case mc.CodeStartGame:
		if errMsg := req.HandleStartGame(gc); errMsg != nil {
			return *errMsg
		}
		go s.countGameCreated()
		return nil

	case mc.CodeAttack:
		if errMsg := req.HandleAttack(gc); errMsg != nil {
			return *errMsg
		}
		return nil

	case mc.CodeCancelGame:
		return req.HandleCancelGame(gc)

	case mc.CodeSoundToggle:
		if errMsg := req.HandleSoundToggle(outbox); errMsg != nil {
			return *errMsg
		}
		return nil

	default:
		respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
		respInvalidSignal.AddError("", "invalid code in the incoming payload")
		return respInvalidSignal
	}
}
