package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_NormalizesKeyword(t *testing.T) {
	s := NewSession("id-1", "somechannel", "  !ENTER ", "prize")
	assert.Equal(t, "!enter", s.Keyword)
	assert.True(t, s.IsActive())
}

func TestMatches(t *testing.T) {
	s := NewSession("id-1", "somechannel", "!enter", "prize")

	assert.True(t, s.Matches("!enter"))
	assert.True(t, s.Matches("!ENTER"))
	assert.True(t, s.Matches("  !enter  "))
	assert.False(t, s.Matches("!entering"))
	assert.False(t, s.Matches("please !enter"))
	assert.False(t, s.Matches(""))
}

func TestAddParticipant_DedupesAndKeepsOrder(t *testing.T) {
	s := NewSession("id-1", "somechannel", "!enter", "prize")

	assert.True(t, s.AddParticipant("alice"))
	assert.True(t, s.AddParticipant("bob"))
	assert.False(t, s.AddParticipant("alice"))

	assert.Equal(t, []string{"alice", "bob"}, s.Participants())
	assert.Equal(t, 2, s.ParticipantCount())
	assert.True(t, s.HasParticipant("alice"))
	assert.False(t, s.HasParticipant("carol"))
}

func TestParticipants_ReturnsCopy(t *testing.T) {
	s := NewSession("id-1", "somechannel", "!enter", "prize")
	s.AddParticipant("alice")

	got := s.Participants()
	got[0] = "mallory"
	assert.Equal(t, []string{"alice"}, s.Participants())
}

func TestRecordWin_AccumulatesDraws(t *testing.T) {
	s := NewSession("id-1", "somechannel", "!enter", "prize")
	s.RecordWin("alice")
	s.RecordWin("bob")

	assert.Equal(t, "bob", s.Winner)
	assert.Equal(t, []string{"alice", "bob"}, s.Winners)
	assert.True(t, s.IsActive(), "drawing a winner does not end the session")
}

func TestEnd(t *testing.T) {
	s := NewSession("id-1", "somechannel", "!enter", "prize")
	s.End()

	assert.False(t, s.IsActive())
	assert.Equal(t, SessionStateEnded, s.State)
	assert.False(t, s.EndedAt.IsZero())
}

func TestSnapshot(t *testing.T) {
	s := NewSession("id-1", "somechannel", "!enter", "prize")
	s.AddParticipant("alice")

	snap := s.Snapshot()
	assert.Equal(t, "id-1", snap.ID)
	assert.Equal(t, []string{"alice"}, snap.Participants)
	assert.Equal(t, 1, snap.ParticipantsCount)
	assert.Nil(t, snap.EndedAt)

	s.End()
	snap = s.Snapshot()
	require.NotNil(t, snap.EndedAt)
	assert.Equal(t, s.EndedAt, *snap.EndedAt)
}

func TestChatEvent_IsSystem(t *testing.T) {
	assert.True(t, ChatEvent{Username: SystemUsername}.IsSystem())
	assert.False(t, ChatEvent{Username: "alice"}.IsSystem())
}

func TestChatEvent_IsModerator(t *testing.T) {
	assert.False(t, ChatEvent{Username: "alice"}.IsModerator())
	assert.False(t, ChatEvent{Tags: map[string]string{"mod": "0"}}.IsModerator())
	assert.True(t, ChatEvent{Tags: map[string]string{"mod": "1"}}.IsModerator())
	assert.True(t, ChatEvent{Tags: map[string]string{"badges": "broadcaster/1,subscriber/12"}}.IsModerator())
	assert.False(t, ChatEvent{Tags: map[string]string{"badges": "subscriber/12,vip/1"}}.IsModerator())
}
