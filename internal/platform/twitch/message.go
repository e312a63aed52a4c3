package twitch

import (
	"strings"
	"time"
)

// Message is one chat line received from Twitch.
type Message struct {
	Channel   string
	Username  string
	Text      string
	Tags      map[string]string
	Timestamp time.Time
}

// IsModerator reports whether the sender can run moderator commands. Twitch
// sets mod=1 for moderators but not for the broadcaster, who instead carries
// a broadcaster badge.
func (m Message) IsModerator() bool {
	if m.Tags["mod"] == "1" {
		return true
	}
	for _, badge := range strings.Split(m.Tags["badges"], ",") {
		name, _, _ := strings.Cut(badge, "/")
		if name == "broadcaster" {
			return true
		}
	}
	return false
}

// ircLine is a parsed IRC protocol line: @tags :prefix COMMAND params :trailing
type ircLine struct {
	tags    map[string]string
	prefix  string
	command string
	params  []string
}

// nick extracts the sender nickname from the prefix (nick!user@host).
func (l ircLine) nick() string {
	nick, _, _ := strings.Cut(l.prefix, "!")
	return nick
}

func (l ircLine) param(i int) string {
	if i < len(l.params) {
		return l.params[i]
	}
	return ""
}

func parseLine(raw string) ircLine {
	line := ircLine{}
	rest := strings.TrimRight(raw, "\r\n")

	if strings.HasPrefix(rest, "@") {
		var rawTags string
		rawTags, rest, _ = strings.Cut(rest[1:], " ")
		line.tags = parseTags(rawTags)
	}
	if strings.HasPrefix(rest, ":") {
		line.prefix, rest, _ = strings.Cut(rest[1:], " ")
	}

	line.command, rest, _ = strings.Cut(rest, " ")
	for rest != "" {
		if strings.HasPrefix(rest, ":") {
			line.params = append(line.params, rest[1:])
			break
		}
		var param string
		param, rest, _ = strings.Cut(rest, " ")
		line.params = append(line.params, param)
	}
	return line
}

func parseTags(raw string) map[string]string {
	tags := make(map[string]string)
	for _, pair := range strings.Split(raw, ";") {
		key, value, _ := strings.Cut(pair, "=")
		tags[key] = unescapeTag(value)
	}
	return tags
}

// unescapeTag reverses IRCv3 tag value escaping.
func unescapeTag(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	replacer := strings.NewReplacer(
		`\:`, ";",
		`\s`, " ",
		`\\`, `\`,
		`\r`, "\r",
		`\n`, "\n",
	)
	return replacer.Replace(value)
}
