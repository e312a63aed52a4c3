// Package twitch connects to Twitch chat over the IRC-over-websocket
// gateway, delivers inbound messages to the application, and sends outgoing
// chat lines on its behalf.
package twitch

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"twitch-giveaway-backend/internal/common/config"
	"twitch-giveaway-backend/internal/common/errors"
	"twitch-giveaway-backend/internal/common/logger"
)

const (
	gatewayURL = "wss://irc-ws.chat.twitch.tv:443"

	dialTimeout        = 10 * time.Second
	writeTimeout       = 10 * time.Second
	reconnectBaseDelay = 2 * time.Second
	reconnectMaxDelay  = time.Minute
)

// StatusNotifier receives connection lifecycle events for relaying to
// observers: "twitchConnected", "channelJoined", "channelLeft".
type StatusNotifier func(event string, payload map[string]interface{})

// MessageHandler receives every PRIVMSG from joined channels.
type MessageHandler func(msg Message)

// Client maintains one chat connection and reconnects on failure. Joined
// channels survive reconnects.
type Client struct {
	username  string
	token     string
	anonymous bool

	mu     sync.Mutex
	conn   *websocket.Conn
	joined map[string]struct{}

	onMessage MessageHandler
	onStatus  StatusNotifier
	log       zerolog.Logger
}

// NewClient builds a chat client from config. Missing or placeholder
// credentials put the client in anonymous read-only mode, which can receive
// chat but not speak.
func NewClient(cfg config.TwitchConfig) *Client {
	c := &Client{
		username: strings.ToLower(cfg.BotUsername),
		token:    cfg.OAuthToken,
		joined:   make(map[string]struct{}),
		log:      logger.Component("twitch"),
	}
	if c.username == "" || c.token == "" || isPlaceholder(cfg.BotUsername) || isPlaceholder(cfg.OAuthToken) {
		c.anonymous = true
		c.username = fmt.Sprintf("justinfan%d", 10000+rand.Intn(80000))
		c.log.Warn().Msg("no valid chat credentials, connecting anonymously (read-only)")
	}
	for _, channel := range cfg.Channels {
		c.joined[normalizeChannel(channel)] = struct{}{}
	}
	return c
}

func isPlaceholder(value string) bool {
	value = strings.ToLower(value)
	return strings.Contains(value, "your_bot_username") || strings.Contains(value, "your_token_here")
}

func normalizeChannel(channel string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(channel), "#"))
}

// OnMessage installs the inbound message handler. Must be called before Run.
func (c *Client) OnMessage(handler MessageHandler) { c.onMessage = handler }

// OnStatus installs the lifecycle notifier. Must be called before Run.
func (c *Client) OnStatus(notifier StatusNotifier) { c.onStatus = notifier }

// Anonymous reports whether the client runs without credentials.
func (c *Client) Anonymous() bool { return c.anonymous }

// Channels returns the channels the client is joined to.
func (c *Client) Channels() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	channels := make([]string, 0, len(c.joined))
	for channel := range c.joined {
		channels = append(channels, channel)
	}
	return channels
}

// Run connects and reads chat until the context is cancelled, reconnecting
// with exponential backoff on any connection failure.
func (c *Client) Run(ctx context.Context) {
	delay := reconnectBaseDelay
	for {
		err := c.connectAndRead(ctx)
		if ctx.Err() != nil {
			c.log.Info().Msg("chat connection shutting down")
			return
		}
		c.log.Warn().Err(err).Dur("retry_in", delay).Msg("chat connection lost")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > reconnectMaxDelay {
			delay = reconnectMaxDelay
		}
	}
}

func (c *Client) connectAndRead(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, gatewayURL, nil)
	cancel()
	if err != nil {
		return fmt.Errorf("dial chat gateway: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	rejoin := make([]string, 0, len(c.joined))
	for channel := range c.joined {
		rejoin = append(rejoin, channel)
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		conn.Close()
	}()

	pass := c.token
	if c.anonymous {
		pass = "SCHMOOPIIE"
	} else if !strings.HasPrefix(pass, "oauth:") {
		pass = "oauth:" + pass
	}
	if err := c.writeRaw("CAP REQ :twitch.tv/tags twitch.tv/commands"); err != nil {
		return err
	}
	if err := c.writeRaw("PASS " + pass); err != nil {
		return err
	}
	if err := c.writeRaw("NICK " + c.username); err != nil {
		return err
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read chat gateway: %w", err)
		}
		// The gateway batches several IRC lines into one websocket frame.
		for _, raw := range strings.Split(string(data), "\r\n") {
			if raw == "" {
				continue
			}
			c.handleLine(parseLine(raw), rejoin)
		}
	}
}

func (c *Client) handleLine(line ircLine, rejoin []string) {
	switch line.command {
	case "PING":
		if err := c.writeRaw("PONG :" + line.param(0)); err != nil {
			c.log.Warn().Err(err).Msg("pong failed")
		}

	case "001": // welcome, authentication accepted
		c.log.Info().Str("username", c.username).Bool("anonymous", c.anonymous).Msg("connected to chat")
		c.notify("twitchConnected", map[string]interface{}{
			"username":  c.username,
			"anonymous": c.anonymous,
		})
		for _, channel := range rejoin {
			if err := c.writeRaw("JOIN #" + channel); err != nil {
				c.log.Warn().Err(err).Str("channel", channel).Msg("rejoin failed")
			}
		}

	case "JOIN":
		if line.nick() == c.username {
			channel := normalizeChannel(line.param(0))
			c.log.Info().Str("channel", channel).Msg("joined channel")
			c.notify("channelJoined", map[string]interface{}{"channel": channel})
		}

	case "PART":
		if line.nick() == c.username {
			channel := normalizeChannel(line.param(0))
			c.log.Info().Str("channel", channel).Msg("left channel")
			c.notify("channelLeft", map[string]interface{}{"channel": channel})
		}

	case "PRIVMSG":
		if c.onMessage == nil {
			return
		}
		username := line.nick()
		if displayName := line.tags["display-name"]; displayName != "" {
			username = strings.ToLower(displayName)
		}
		c.onMessage(Message{
			Channel:   normalizeChannel(line.param(0)),
			Username:  username,
			Text:      line.param(1),
			Tags:      line.tags,
			Timestamp: time.Now().UTC(),
		})

	case "NOTICE":
		c.log.Warn().Str("notice", line.param(1)).Msg("server notice")

	case "RECONNECT":
		// Server asks us to reconnect; closing the socket sends Run back
		// through its backoff loop.
		c.mu.Lock()
		if c.conn != nil {
			c.conn.Close()
		}
		c.mu.Unlock()
	}
}

// Join subscribes the client to a channel's chat. Safe before the connection
// is up: joined channels are replayed after every (re)connect.
func (c *Client) Join(channel string) error {
	channel = normalizeChannel(channel)
	if channel == "" {
		return errors.NewValidationError("channel", "must not be empty")
	}

	c.mu.Lock()
	_, already := c.joined[channel]
	c.joined[channel] = struct{}{}
	connected := c.conn != nil
	c.mu.Unlock()

	if already || !connected {
		return nil
	}
	return c.writeRaw("JOIN #" + channel)
}

// Part unsubscribes the client from a channel's chat.
func (c *Client) Part(channel string) error {
	channel = normalizeChannel(channel)

	c.mu.Lock()
	_, joined := c.joined[channel]
	delete(c.joined, channel)
	connected := c.conn != nil
	c.mu.Unlock()

	if !joined || !connected {
		return nil
	}
	return c.writeRaw("PART #" + channel)
}

// Say sends a chat message to a channel. Anonymous clients cannot speak; the
// attempt is logged and dropped so gameplay never depends on chat output.
func (c *Client) Say(channel, text string) error {
	if c.anonymous {
		c.log.Debug().Str("channel", channel).Str("text", text).Msg("anonymous mode, message not sent")
		return nil
	}
	channel = normalizeChannel(channel)
	return c.writeRaw(fmt.Sprintf("PRIVMSG #%s :%s", channel, text))
}

func (c *Client) writeRaw(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return errors.New(errors.ErrCodeChatTransport, "not connected to chat")
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
		return errors.Wrap(err, errors.ErrCodeChatTransport, "chat write failed")
	}
	return nil
}

func (c *Client) notify(event string, payload map[string]interface{}) {
	if c.onStatus != nil {
		c.onStatus(event, payload)
	}
}
