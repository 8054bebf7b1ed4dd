package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-n/internal/config"
	"github.com/iamasit07/connect-n/internal/domain"
	"github.com/iamasit07/connect-n/internal/service/bot"
	"github.com/iamasit07/connect-n/internal/service/game"
	"github.com/iamasit07/connect-n/internal/transport/http/middleware"
)

type GameHandler struct {
	GameService *game.Service
	Config      *config.Config
}

func NewGameHandler(gs *game.Service, cfg *config.Config) *GameHandler {
	return &GameHandler{GameService: gs, Config: cfg}
}

type createGameRequest struct {
	Columns         int    `json:"columns"`
	Rows            int    `json:"rows"`
	ConnectLength   int    `json:"connectLength"`
	Difficulty      string `json:"difficulty"`
	Depth           *int   `json:"depth"`
	Player1Name     string `json:"player1Name"`
	Player2Name     string `json:"player2Name"`
	Player1Computer bool   `json:"player1Computer"`
	Player2Computer *bool  `json:"player2Computer"`
	RandomFirst     bool   `json:"randomFirst"`
	Seed            int64  `json:"seed"`
}

type createGameResponse struct {
	GameID string              `json:"gameId"`
	Token  string              `json:"token"`
	Depth  int                 `json:"depth"`
	State  domain.GameSnapshot `json:"state"`
}

type moveRequest struct {
	Column *int `json:"column"`
}

// options fills the request's gaps from configuration. Player 2 is the computer unless told otherwise.
func (h *GameHandler) options(req createGameRequest) game.Options {
	opts := game.Options{
		Columns:       h.Config.Columns,
		Rows:          h.Config.Rows,
		ConnectLength: h.Config.ConnectLength,
		Depth:         bot.DepthFor(req.Difficulty, h.Config.SearchDepth),
		Seed:          req.Seed,
		RandomFirst:   req.RandomFirst,
	}
	if req.Columns > 0 {
		opts.Columns = req.Columns
	}
	if req.Rows > 0 {
		opts.Rows = req.Rows
	}
	if req.ConnectLength > 0 {
		opts.ConnectLength = req.ConnectLength
	}
	if req.Depth != nil {
		opts.Depth = *req.Depth
	}
	if opts.Seed == 0 {
		opts.Seed = h.Config.AISeed
	}

	player2Computer := true
	if req.Player2Computer != nil {
		player2Computer = *req.Player2Computer
	}

	opts.Players = [2]domain.Player{
		{Name: playerName(req.Player1Name, req.Player1Computer, "Player 1"), Piece: domain.Player1, IsComputer: req.Player1Computer},
		{Name: playerName(req.Player2Name, player2Computer, "Player 2"), Piece: domain.Player2, IsComputer: player2Computer},
	}
	return opts
}

func playerName(name string, computer bool, fallback string) string {
	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}
	if computer {
		return "Computer"
	}
	return fallback
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	opts := h.options(req)
	if opts.Players[0].IsComputer && opts.Players[1].IsComputer && opts.Players[0].Name == opts.Players[1].Name {
		opts.Players[0].Name, opts.Players[1].Name = "Computer 1", "Computer 2"
	}

	session, token, err := h.GameService.StartGame(opts)
	if err != nil {
		log.Printf("[HTTP] Failed to create game: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, createGameResponse{
		GameID: session.GameID,
		Token:  token,
		Depth:  session.Depth,
		State:  session.State(),
	})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, err := h.GameService.Sessions.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gameId": session.GameID, "state": session.State()})
}

func (h *GameHandler) MakeMove(c *gin.Context) {
	session := sessionFrom(c)

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Column == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	row, err := session.HandleMove(*req.Column)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"row": row, "column": *req.Column, "state": session.State()})
}

func (h *GameHandler) Hint(c *gin.Context) {
	session := sessionFrom(c)

	column, score, err := session.Hint()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"column": column, "score": score})
}

func (h *GameHandler) Restart(c *gin.Context) {
	session := sessionFrom(c)

	if err := session.Restart(); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gameId": session.GameID, "state": session.State()})
}

// GetConfig exposes the defaults a client needs to build its new-game form
func (h *GameHandler) GetConfig(c *gin.Context) {
	difficulties := gin.H{}
	for _, d := range []bot.Difficulty{bot.DifficultyEasy, bot.DifficultyMedium, bot.DifficultyHard, bot.DifficultyExpert} {
		difficulties[string(d)] = bot.DepthFor(string(d), h.Config.SearchDepth)
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":       h.Config.Columns,
		"rows":          h.Config.Rows,
		"connectLength": h.Config.ConnectLength,
		"depth":         h.Config.SearchDepth,
		"maxColumns":    h.Config.MaxColumns,
		"maxRows":       h.Config.MaxRows,
		"maxDepth":      h.Config.MaxSearchDepth,
		"difficulties":  difficulties,
	})
}

func sessionFrom(c *gin.Context) *game.GameSession {
	return c.MustGet(middleware.SessionKey).(*game.GameSession)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidColumn):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrGameOver), errors.Is(err, domain.ErrComputerTurn), errors.Is(err, domain.ErrNotYourTurn):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[HTTP] Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// RegisterRoutes mounts the game API on router
func (h *GameHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	api.GET("/config", h.GetConfig)
	api.POST("/games", h.CreateGame)
	api.GET("/games/:id", h.GetGame)

	protected := api.Group("/games/:id")
	protected.Use(middleware.GameAuthMiddleware(h.GameService))
	{
		protected.POST("/moves", h.MakeMove)
		protected.POST("/hint", h.Hint)
		protected.POST("/restart", h.Restart)
	}
}
