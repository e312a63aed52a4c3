package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"twitch-giveaway-backend/internal/common/errors"
	"twitch-giveaway-backend/internal/common/middleware"
	"twitch-giveaway-backend/internal/features/giveaway/models"
	"twitch-giveaway-backend/internal/features/giveaway/service"
)

const defaultWinnersLimit = 50

// ChannelController manages which chat channels the bot listens to.
type ChannelController interface {
	Join(channel string) error
	Part(channel string) error
	Channels() []string
}

type GiveawayHandler struct {
	manager  service.GiveawayManager
	channels ChannelController
}

func NewGiveawayHandler(manager service.GiveawayManager, channels ChannelController) *GiveawayHandler {
	return &GiveawayHandler{manager: manager, channels: channels}
}

// RegisterRoutes mounts the giveaway API. Everything is scoped to the channel
// of the authenticated session.
func (h *GiveawayHandler) RegisterRoutes(router *gin.RouterGroup, requireSession gin.HandlerFunc) {
	giveaways := router.Group("/giveaways", requireSession)
	{
		giveaways.POST("/start", h.StartGiveaway)
		giveaways.POST("/end", h.EndGiveaway)
		giveaways.POST("/select-winner", h.SelectWinner)
		giveaways.GET("/active", h.GetActive)
		giveaways.GET("/winners", h.ListWinners)
		giveaways.GET("/history", h.ListHistory)
		giveaways.PUT("/winners/telegram", h.UpdateWinnerTelegram)
	}

	channels := router.Group("/channels", requireSession)
	{
		channels.GET("", h.ListChannels)
		channels.POST("/join", h.JoinChannel)
		channels.POST("/leave", h.LeaveChannel)
	}
}

// StartGiveaway godoc
// @Summary Start a giveaway
// @Description Starts a giveaway for the session's channel. An already active giveaway is ended without a winner and replaced.
// @Tags giveaways
// @Accept json
// @Produce json
// @Param request body models.StartGiveawayRequest true "Keyword and optional prize"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /giveaways/start [post]
func (h *GiveawayHandler) StartGiveaway(c *gin.Context) {
	var req models.StartGiveawayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.SendError(c, errors.NewValidationError("body", err.Error()))
		return
	}

	session, err := h.manager.StartGiveaway(c.Request.Context(), middleware.Channel(c), req.Keyword, req.Prize)
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "giveaway": session})
}

// EndGiveaway godoc
// @Summary End the active giveaway
// @Description Ends the session channel's active giveaway and draws a winner if anyone entered. Ending with no active giveaway is a no-op.
// @Tags giveaways
// @Produce json
// @Success 200 {object} models.EndGiveawayResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /giveaways/end [post]
func (h *GiveawayHandler) EndGiveaway(c *gin.Context) {
	resp, err := h.manager.EndGiveaway(c.Request.Context(), middleware.Channel(c))
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SelectWinner godoc
// @Summary Draw a winner
// @Description Draws a winner from the active giveaway without ending it. Repeated calls reroll. An explicit participants list overrides the draw pool for this call only.
// @Tags giveaways
// @Accept json
// @Produce json
// @Param request body models.SelectWinnerRequest false "Optional draw pool override"
// @Success 200 {object} map[string]string
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /giveaways/select-winner [post]
func (h *GiveawayHandler) SelectWinner(c *gin.Context) {
	var req models.SelectWinnerRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.SendError(c, errors.NewValidationError("body", err.Error()))
			return
		}
	}

	winner, err := h.manager.SelectWinner(c.Request.Context(), middleware.Channel(c), req.Participants)
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "winner": winner})
}

// GetActive godoc
// @Summary Get the active giveaway
// @Produce json
// @Tags giveaways
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /giveaways/active [get]
func (h *GiveawayHandler) GetActive(c *gin.Context) {
	session := h.manager.GetActive(middleware.Channel(c))
	if session == nil {
		middleware.SendError(c, errors.NewNoActiveGiveawayError(middleware.Channel(c)))
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListWinners godoc
// @Summary List past winners
// @Description Newest first, capped by limit (default 50).
// @Tags giveaways
// @Produce json
// @Param limit query int false "Maximum records to return"
// @Success 200 {array} models.WinnerRecord
// @Failure 503 {object} middleware.ErrorResponse
// @Router /giveaways/winners [get]
func (h *GiveawayHandler) ListWinners(c *gin.Context) {
	limit := defaultWinnersLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			middleware.SendError(c, errors.NewValidationError("limit", "must be a positive integer"))
			return
		}
		limit = parsed
	}

	winners, err := h.manager.ListWinners(c.Request.Context(), middleware.Channel(c), limit)
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, winners)
}

// ListHistory godoc
// @Summary List past giveaways
// @Tags giveaways
// @Produce json
// @Success 200 {array} models.GiveawayRecord
// @Failure 503 {object} middleware.ErrorResponse
// @Router /giveaways/history [get]
func (h *GiveawayHandler) ListHistory(c *gin.Context) {
	giveaways, err := h.manager.ListGiveaways(c.Request.Context(), middleware.Channel(c))
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, giveaways)
}

// UpdateWinnerTelegram godoc
// @Summary Attach a Telegram handle to a winner
// @Description Lets a winner leave contact details for prize delivery.
// @Tags giveaways
// @Accept json
// @Produce json
// @Param request body models.UpdateTelegramRequest true "Winner username and Telegram handle"
// @Success 200 {object} models.WinnerRecord
// @Failure 404 {object} middleware.ErrorResponse
// @Router /giveaways/winners/telegram [put]
func (h *GiveawayHandler) UpdateWinnerTelegram(c *gin.Context) {
	var req models.UpdateTelegramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.SendError(c, errors.NewValidationError("body", err.Error()))
		return
	}

	record, err := h.manager.UpdateWinnerTelegram(c.Request.Context(), req.Username, middleware.Channel(c), req.Telegram)
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListChannels godoc
// @Summary List joined chat channels
// @Tags channels
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /channels [get]
func (h *GiveawayHandler) ListChannels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"channels": h.channels.Channels()})
}

type channelRequest struct {
	Channel string `json:"channel" binding:"required"`
}

// JoinChannel godoc
// @Summary Join a chat channel
// @Tags channels
// @Accept json
// @Produce json
// @Param request body channelRequest true "Channel name"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} middleware.ErrorResponse
// @Router /channels/join [post]
func (h *GiveawayHandler) JoinChannel(c *gin.Context) {
	var req channelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.SendError(c, errors.NewValidationError("channel", "must not be empty"))
		return
	}
	if err := h.channels.Join(req.Channel); err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LeaveChannel godoc
// @Summary Leave a chat channel
// @Tags channels
// @Accept json
// @Produce json
// @Param request body channelRequest true "Channel name"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} middleware.ErrorResponse
// @Router /channels/leave [post]
func (h *GiveawayHandler) LeaveChannel(c *gin.Context) {
	var req channelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.SendError(c, errors.NewValidationError("channel", "must not be empty"))
		return
	}
	if err := h.channels.Part(req.Channel); err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
