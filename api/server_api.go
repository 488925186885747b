package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-cpu/db/sqlc"
	"github.com/saeidalz13/battleship-cpu/internal/config"
	mc "github.com/saeidalz13/battleship-cpu/models/connection"
	"github.com/sqlc-dev/pqtype"
)

const (
	URLQueryLimitKeyword string = "limit"

	shutdownTimeout = time.Second * 5
)

var (
	defaultPort int = 8000
	upgrader        = websocket.Upgrader{

		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// probably more that enough but this is a good average size
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type Server struct {
	port            int
	stage           string
	game            config.Game
	sessionLifetime time.Duration
	newRand         func() *rand.Rand
	baseCtx         context.Context

	Db             *sql.DB
	DbManager      *sqlc.DbManager
	SessionManager mc.SessionManager
	GameManager    *GameManager
	ipnet          net.IPNet
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) *Server {
	server := Server{
		game: config.Game{MarkVerifiedEmpty: true, SoundEnabled: true},
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		baseCtx: context.Background(),
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.port == 0 {
		server.port = defaultPort
	}
	if server.stage == "" {
		server.stage = config.StageDev
	}

	server.SessionManager = mc.NewBattleshipSessionManager(server.sessionLifetime)
	server.GameManager = NewGameManager()
	server.ipnet = getServerIpNet()

	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != config.StageProd && stage != config.StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func WithDb(db *sql.DB) Option {
	return func(s *Server) error {
		if db == nil {
			return errors.New("db is nil")
		}
		s.Db = db
		dbManager := sqlc.NewDbManager(sqlc.New(db))
		s.DbManager = &dbManager
		return nil
	}
}

func WithGameConfig(game config.Game) Option {
	return func(s *Server) error {
		s.game = game
		return nil
	}
}

func WithSessionLifetime(d time.Duration) Option {
	return func(s *Server) error {
		s.sessionLifetime = d
		return nil
	}
}

// WithRandSeed makes every new game draw from the same seed.
func WithRandSeed(seed int64) Option {
	return func(s *Server) error {
		s.newRand = func() *rand.Rand {
			return rand.New(rand.NewSource(seed))
		}
		return nil
	}
}

func WithConfig(cfg config.Config) Option {
	return func(s *Server) error {
		for _, opt := range []Option{
			WithPort(cfg.Port),
			WithStage(cfg.Stage),
			WithGameConfig(cfg.Game),
			WithSessionLifetime(cfg.SessionLifetime),
		} {
			if err := opt(s); err != nil {
				return err
			}
		}
		return nil
	}
}

func (s *Server) serverInet() pqtype.Inet {
	return pqtype.Inet{IPNet: s.ipnet, Valid: s.ipnet.IP != nil}
}

func (s *Server) Router() *gin.Engine {
	if s.stage == config.StageProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/battleship", s.HandleWs)
	r.GET("/health", s.HandleHealth)

	games := r.Group("/games")
	games.GET("", s.HandleListGames)
	games.DELETE("/:id", s.HandleDeleteGame)

	return r
}

// Run serves until ctx is cancelled and then shuts down gracefully.
// Session loops stop with ctx as well.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx
	go s.SessionManager.CleanupPeriodically(ctx)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", s.port),
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "port", s.port, "stage", s.stage)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// getServerIpNet finds the first non loopback IPv4 address of the
// host. Containers with loopback only fall back to 127.0.0.1.
func getServerIpNet() net.IPNet {
	fallback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Warn("failed to list interfaces", "err", err)
		return fallback
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	return fallback
}
