package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// NewRouter mounts the websocket game, the leaderboard and the operational
// endpoints.
func NewRouter(service *app.QuizService, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	pprof.Register(r, "/debug/pprof")

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/leaderboard", func(c *gin.Context) {
		n, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(app.LeaderboardSize)))
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		top, err := service.Leaderboard(c.Request.Context(), n)
		if err != nil {
			log.Error().Err(err).Msg("load leaderboard failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
			return
		}
		if top == nil {
			top = []domain.ScoreRecord{}
		}
		c.JSON(http.StatusOK, gin.H{"entries": top})
	})

	ws := NewWSHandler(service, log)
	r.GET("/ws", gin.WrapF(ws.ServeWS))

	return r
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("http")
	}
}
