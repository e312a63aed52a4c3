package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twitch-giveaway-backend/internal/features/giveaway/models"
	"twitch-giveaway-backend/internal/features/giveaway/repository/memory"
)

type mockManager struct {
	mu sync.Mutex

	active     map[string]*models.SessionResponse
	addCalls   []string // "channel/username"
	startCalls []string // "channel/keyword/prize"
	endCalls   []string
	GiveawayManager
}

func (m *mockManager) GetActive(channel string) *models.SessionResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active[channel]
}

func (m *mockManager) TryAddParticipant(_ context.Context, channel, username string) (bool, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCalls = append(m.addCalls, channel+"/"+username)
	return true, len(m.addCalls)
}

func (m *mockManager) StartGiveaway(_ context.Context, channel, keyword, prize string) (*models.SessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startCalls = append(m.startCalls, channel+"/"+keyword+"/"+prize)
	return &models.SessionResponse{Channel: channel, Keyword: models.NormalizeKeyword(keyword)}, nil
}

func (m *mockManager) EndGiveaway(_ context.Context, channel string) (*models.EndGiveawayResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.endCalls = append(m.endCalls, channel)
	return &models.EndGiveawayResponse{Success: true, EndedCount: 1}, nil
}

func newRouterFixture() (*ChatEventRouter, *mockManager, *fakeBroadcaster) {
	manager := &mockManager{active: make(map[string]*models.SessionResponse)}
	broadcaster := &fakeBroadcaster{}
	return NewChatEventRouter(manager, broadcaster), manager, broadcaster
}

func event(channel, username, text string) models.ChatEvent {
	return models.ChatEvent{Channel: channel, Username: username, Text: text}
}

func modEvent(channel, username, text string) models.ChatEvent {
	e := event(channel, username, text)
	e.Tags = map[string]string{"mod": "1"}
	return e
}

func TestOnMessage_RelaysChatToObservers(t *testing.T) {
	router, _, broadcaster := newRouterFixture()

	router.OnMessage(context.Background(), event("somechannel", "alice", "hello there"))

	payload := broadcaster.last(EventChatMessage)
	require.NotNil(t, payload)
	assert.Equal(t, "somechannel", payload["channel"])
	assert.Equal(t, "alice", payload["username"])
	assert.Equal(t, "hello there", payload["message"])
}

func TestOnMessage_SuppressesSystemEvents(t *testing.T) {
	router, manager, broadcaster := newRouterFixture()
	manager.active["somechannel"] = &models.SessionResponse{Keyword: "!enter"}

	router.OnMessage(context.Background(), event("somechannel", models.SystemUsername, "!enter"))

	assert.Empty(t, broadcaster.names())
	assert.Empty(t, manager.addCalls)
}

func TestOnMessage_RegistersKeywordMatch(t *testing.T) {
	router, manager, _ := newRouterFixture()
	manager.active["somechannel"] = &models.SessionResponse{Keyword: "!enter"}

	router.OnMessage(context.Background(), event("somechannel", "alice", "!enter"))

	assert.Equal(t, []string{"somechannel/alice"}, manager.addCalls)
}

func TestOnMessage_MatchIsCaseInsensitive(t *testing.T) {
	router, manager, _ := newRouterFixture()
	manager.active["somechannel"] = &models.SessionResponse{Keyword: "!enter"}

	router.OnMessage(context.Background(), event("somechannel", "alice", "  !ENTER  "))

	assert.Len(t, manager.addCalls, 1)
}

func TestOnMessage_SubstringIsNotAMatch(t *testing.T) {
	router, manager, _ := newRouterFixture()
	manager.active["somechannel"] = &models.SessionResponse{Keyword: "!enter"}

	router.OnMessage(context.Background(), event("somechannel", "alice", "should i type !enter now?"))
	router.OnMessage(context.Background(), event("somechannel", "bob", "!entering"))

	assert.Empty(t, manager.addCalls)
}

func TestOnMessage_NoActiveGiveawayIgnoresKeyword(t *testing.T) {
	router, manager, _ := newRouterFixture()

	router.OnMessage(context.Background(), event("somechannel", "alice", "!enter"))

	assert.Empty(t, manager.addCalls)
}

func TestOnMessage_ModeratorStartsGiveaway(t *testing.T) {
	router, manager, _ := newRouterFixture()

	router.OnMessage(context.Background(), modEvent("somechannel", "streamer", "!startgiveaway !go Steam key"))

	require.Len(t, manager.startCalls, 1)
	assert.Equal(t, "somechannel/!go/Steam key", manager.startCalls[0])
}

func TestOnMessage_ModeratorEndsGiveaway(t *testing.T) {
	router, manager, _ := newRouterFixture()

	router.OnMessage(context.Background(), modEvent("somechannel", "streamer", "!endgiveaway"))

	assert.Equal(t, []string{"somechannel"}, manager.endCalls)
}

func TestOnMessage_BroadcasterBadgeCountsAsModerator(t *testing.T) {
	router, manager, _ := newRouterFixture()

	e := event("somechannel", "somechannel", "!endgiveaway")
	e.Tags = map[string]string{"badges": "broadcaster/1,subscriber/12"}
	router.OnMessage(context.Background(), e)

	assert.Len(t, manager.endCalls, 1)
}

func TestOnMessage_NonModeratorCommandIgnored(t *testing.T) {
	router, manager, _ := newRouterFixture()
	manager.active["somechannel"] = &models.SessionResponse{Keyword: "!startgiveaway"}

	router.OnMessage(context.Background(), event("somechannel", "viewer", "!startgiveaway !go prize"))

	assert.Empty(t, manager.startCalls)
	assert.Empty(t, manager.endCalls)
	// Command words never double as keyword entries.
	assert.Empty(t, manager.addCalls)
}

func TestOnMessage_CommandWordsDoNotEnterGiveaways(t *testing.T) {
	router, manager, _ := newRouterFixture()
	manager.active["somechannel"] = &models.SessionResponse{Keyword: "!endgiveaway"}

	router.OnMessage(context.Background(), modEvent("somechannel", "streamer", "!endgiveaway"))

	assert.Len(t, manager.endCalls, 1)
	assert.Empty(t, manager.addCalls)
}

func TestRouterEndToEnd_WithRealManager(t *testing.T) {
	repo := memory.NewRepository()
	broadcaster := &fakeBroadcaster{}
	manager := NewGiveawayManager(repo, broadcaster, &fakeAnnouncer{}, testConfig())
	router := NewChatEventRouter(manager, broadcaster)
	ctx := context.Background()

	router.OnMessage(ctx, modEvent("somechannel", "streamer", "!startgiveaway !enter Steam key"))
	router.OnMessage(ctx, event("somechannel", "alice", "!enter"))
	router.OnMessage(ctx, event("somechannel", "bob", "!ENTER"))
	router.OnMessage(ctx, event("somechannel", "alice", "!enter"))
	router.OnMessage(ctx, event("somechannel", "carol", "nice giveaway"))

	active := manager.GetActive("somechannel")
	require.NotNil(t, active)
	assert.Equal(t, []string{"alice", "bob"}, active.Participants)

	router.OnMessage(ctx, modEvent("somechannel", "streamer", "!endgiveaway"))

	assert.Nil(t, manager.GetActive("somechannel"))
	payload := broadcaster.last(EventGiveawayEnded)
	require.NotNil(t, payload)
	assert.Contains(t, []interface{}{"alice", "bob"}, payload["winner"])
}
