package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/saeidalz13/battleship-cpu/db/sqlc"
	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
)

func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": s.SessionManager.Count(),
		"games":    s.GameManager.Count(),
		"db":       s.DbManager != nil,
	})
}

func (s *Server) HandleListGames(c *gin.Context) {
	if s.DbManager == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "game history is disabled"})
		return
	}

	var limit int32
	if raw := c.Query(URLQueryLimitKeyword); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = int32(parsed)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	games, err := s.DbManager.Games.ListGames(ctx, limit)
	if err != nil {
		log.Error("failed to list games", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list games"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (s *Server) HandleDeleteGame(c *gin.Context) {
	if s.DbManager == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "game history is disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	gameId := c.Param("id")
	if err := s.DbManager.Games.DeleteGame(ctx, gameId); err != nil {
		switch {
		case errors.Is(err, cerr.ErrKindInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, cerr.ErrKindNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			log.Error("failed to delete game", "id", gameId, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete game"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
