package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "twitch-giveaway-backend/internal/common/errors"
	"twitch-giveaway-backend/internal/features/giveaway/models"
)

type stubManager struct {
	startFn   func(ctx context.Context, channel, keyword, prize string) (*models.SessionResponse, error)
	endFn     func(ctx context.Context, channel string) (*models.EndGiveawayResponse, error)
	selectFn  func(ctx context.Context, channel string, override []string) (string, error)
	activeFn  func(channel string) *models.SessionResponse
	winnersFn func(ctx context.Context, channel string, limit int) ([]*models.WinnerRecord, error)
}

func (s *stubManager) StartGiveaway(ctx context.Context, channel, keyword, prize string) (*models.SessionResponse, error) {
	return s.startFn(ctx, channel, keyword, prize)
}
func (s *stubManager) EndGiveaway(ctx context.Context, channel string) (*models.EndGiveawayResponse, error) {
	return s.endFn(ctx, channel)
}
func (s *stubManager) SelectWinner(ctx context.Context, channel string, override []string) (string, error) {
	return s.selectFn(ctx, channel, override)
}
func (s *stubManager) GetActive(channel string) *models.SessionResponse {
	if s.activeFn == nil {
		return nil
	}
	return s.activeFn(channel)
}
func (s *stubManager) TryAddParticipant(context.Context, string, string) (bool, int) { return false, 0 }
func (s *stubManager) ListWinners(ctx context.Context, channel string, limit int) ([]*models.WinnerRecord, error) {
	return s.winnersFn(ctx, channel, limit)
}
func (s *stubManager) ListGiveaways(context.Context, string) ([]*models.GiveawayRecord, error) {
	return nil, nil
}
func (s *stubManager) UpdateWinnerTelegram(context.Context, string, string, string) (*models.WinnerRecord, error) {
	return nil, nil
}

type stubChannels struct {
	joined  []string
	joinErr error
}

func (s *stubChannels) Join(channel string) error {
	if s.joinErr != nil {
		return s.joinErr
	}
	s.joined = append(s.joined, channel)
	return nil
}
func (s *stubChannels) Part(channel string) error { return nil }
func (s *stubChannels) Channels() []string        { return s.joined }

func fakeSession(channel string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("channel", channel)
		c.Next()
	}
}

func newTestRouter(manager *stubManager, channels *stubChannels) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewGiveawayHandler(manager, channels).RegisterRoutes(router.Group("/api/v1"), fakeSession("somechannel"))
	return router
}

func TestStartGiveaway_OK(t *testing.T) {
	var gotChannel, gotKeyword string
	manager := &stubManager{
		startFn: func(_ context.Context, channel, keyword, prize string) (*models.SessionResponse, error) {
			gotChannel, gotKeyword = channel, keyword
			return &models.SessionResponse{Channel: channel, Keyword: keyword, Prize: prize, State: models.SessionStateActive}, nil
		},
	}
	router := newTestRouter(manager, &stubChannels{})

	body := strings.NewReader(`{"keyword":"!enter","prize":"Steam key"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways/start", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "somechannel", gotChannel)
	assert.Equal(t, "!enter", gotKeyword)

	var resp struct {
		Success  bool                    `json:"success"`
		Giveaway *models.SessionResponse `json:"giveaway"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Giveaway)
	assert.Equal(t, models.SessionStateActive, resp.Giveaway.State)
}

func TestStartGiveaway_MissingKeyword(t *testing.T) {
	router := newTestRouter(&stubManager{}, &stubChannels{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways/start", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEndGiveaway_OK(t *testing.T) {
	winner := "alice"
	manager := &stubManager{
		endFn: func(_ context.Context, channel string) (*models.EndGiveawayResponse, error) {
			return &models.EndGiveawayResponse{Success: true, EndedCount: 1, Winner: &winner}, nil
		},
	}
	router := newTestRouter(manager, &stubChannels{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways/end", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alice"`)
}

func TestSelectWinner_NoActiveGiveaway(t *testing.T) {
	manager := &stubManager{
		selectFn: func(_ context.Context, channel string, _ []string) (string, error) {
			return "", apperrors.NewNoActiveGiveawayError(channel)
		},
	}
	router := newTestRouter(manager, &stubChannels{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways/select-winner", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_ACTIVE_GIVEAWAY")
}

func TestSelectWinner_WithOverridePool(t *testing.T) {
	var gotOverride []string
	manager := &stubManager{
		selectFn: func(_ context.Context, _ string, override []string) (string, error) {
			gotOverride = override
			return "dave", nil
		},
	}
	router := newTestRouter(manager, &stubChannels{})

	body := strings.NewReader(`{"participants":["dave","erin"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways/select-winner", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"dave", "erin"}, gotOverride)
	assert.Contains(t, rec.Body.String(), `"dave"`)
}

func TestGetActive_NotFound(t *testing.T) {
	router := newTestRouter(&stubManager{}, &stubChannels{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/giveaways/active", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListWinners_PassesLimit(t *testing.T) {
	var gotLimit int
	manager := &stubManager{
		winnersFn: func(_ context.Context, _ string, limit int) ([]*models.WinnerRecord, error) {
			gotLimit = limit
			return []*models.WinnerRecord{}, nil
		},
	}
	router := newTestRouter(manager, &stubChannels{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/giveaways/winners?limit=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, gotLimit)
}

func TestListWinners_RejectsBadLimit(t *testing.T) {
	router := newTestRouter(&stubManager{}, &stubChannels{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/giveaways/winners?limit=zero", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJoinChannel(t *testing.T) {
	channels := &stubChannels{}
	router := newTestRouter(&stubManager{}, channels)

	body := strings.NewReader(`{"channel":"newchannel"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/channels/join", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"newchannel"}, channels.joined)
}

func TestJoinChannel_MissingName(t *testing.T) {
	router := newTestRouter(&stubManager{}, &stubChannels{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/channels/join", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
