package discord

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Vote choices for a session announcement
const (
	VoteYes   = "yes"
	VoteNo    = "no"
	VoteMaybe = "maybe"
)

// session is one announced role-play session and its votes. Sessions live in
// memory only; a restart clears them. They never touch player records.
type session struct {
	ID     string
	Title  string
	When   string
	HostID string

	// votes maps voter ID to a choice
	votes map[string]string
}

// sessionStore is the in-memory keyed store for announced sessions
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
	}
}

// Create registers a new session under the given ID
func (s *sessionStore) Create(id, title, when, hostID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &session{
		ID:     id,
		Title:  title,
		When:   when,
		HostID: hostID,
		votes:  make(map[string]string),
	}
	s.sessions[id] = sess
	return sess
}

// Vote records a voter's choice, replacing any earlier vote. Returns false
// when the session is unknown (expired or from before a restart).
func (s *sessionStore) Vote(id, voterID, choice string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}

	sess.votes[voterID] = choice
	return sess, true
}

// Remove drops a session, returning it if it existed
func (s *sessionStore) Remove(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return sess, ok
}

// voterLine renders the mentions of everyone who voted a given choice
func (sess *session) voterLine(choice string) string {
	var ids []string
	for voterID, v := range sess.votes {
		if v == choice {
			ids = append(ids, voterID)
		}
	}
	if len(ids) == 0 {
		return "—"
	}
	sort.Strings(ids)

	mentions := make([]string, len(ids))
	for i, id := range ids {
		mentions[i] = fmt.Sprintf("<@%s>", id)
	}
	return strings.Join(mentions, " ")
}

// renderSessionEmbed renders the announcement with the current tallies
func renderSessionEmbed(sess *session) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       sess.Title,
		Description: fmt.Sprintf("Session hosted by <@%s>\n**When:** %s", sess.HostID, sess.When),
		Color:       colorLedger,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Attending ✅",
				Value:  sess.voterLine(VoteYes),
				Inline: false,
			},
			{
				Name:   "Maybe 🤔",
				Value:  sess.voterLine(VoteMaybe),
				Inline: false,
			},
			{
				Name:   "Can't Make It ❌",
				Value:  sess.voterLine(VoteNo),
				Inline: false,
			},
		},
	}
}

// sessionButtons builds the vote row for an announcement
func sessionButtons(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Attending",
			Style:    discordgo.SuccessButton,
			CustomID: fmt.Sprintf("%s:%s:%s", ButtonSessionVote, sessionID, VoteYes),
		},
		discordgo.Button{
			Label:    "Maybe",
			Style:    discordgo.SecondaryButton,
			CustomID: fmt.Sprintf("%s:%s:%s", ButtonSessionVote, sessionID, VoteMaybe),
		},
		discordgo.Button{
			Label:    "Can't Make It",
			Style:    discordgo.DangerButton,
			CustomID: fmt.Sprintf("%s:%s:%s", ButtonSessionVote, sessionID, VoteNo),
		},
	}
}
