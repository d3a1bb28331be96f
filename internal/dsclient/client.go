package dsclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// код закрытия gateway при неверном токене
const closeAuthenticationFailed = 4004

var (
	ErrAuthenticationFailed = errors.New("discord: authentication failed, check BOT_TOKEN")
	ErrEmptyToken           = errors.New("discord: empty token")
)

const intents = discordgo.IntentGuildMessages |
	discordgo.IntentDirectMessages |
	discordgo.IntentMessageContent

type Client struct {
	session *discordgo.Session
	logger  *log.Logger

	connected atomic.Bool
	closeOnce sync.Once
	removers  []func()

	// "События"
	OnConnecting   func()
	OnConnected    func(username string)
	OnMessage      func(*discordgo.MessageCreate)
	OnDisconnected func()
	OnError        func(error)
}

func New(token string, logger *log.Logger) (*Client, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	if logger == nil {
		logger = log.Default()
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	s.Identify.Intents = intents
	routeLibraryLogs(logger)

	c := &Client{session: s, logger: logger}
	c.removers = append(c.removers,
		s.AddHandler(c.onReady),
		s.AddHandler(c.onDisconnect),
		s.AddHandler(c.onMessageCreate),
	)
	return c, nil
}

// Connect открывает gateway. Отмена ctx закрывает сессию.
func (c *Client) Connect(ctx context.Context) error {
	if c.OnConnecting != nil {
		c.OnConnecting()
	}
	if err := c.session.Open(); err != nil {
		return classifyOpenError(err)
	}

	go func() {
		<-ctx.Done()
		c.Disconnect()
	}()
	return nil
}

// Disconnect можно звать сколько угодно раз.
func (c *Client) Disconnect() {
	c.closeOnce.Do(func() {
		for _, remove := range c.removers {
			remove()
		}
		if err := c.session.Close(); err != nil {
			c.logger.Warn("discord close", "err", err)
		}
		c.connected.Store(false)
		if c.OnDisconnected != nil {
			c.OnDisconnected()
		}
	})
}

func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

func classifyOpenError(err error) error {
	if websocket.IsCloseError(err, closeAuthenticationFailed) {
		return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	return fmt.Errorf("discord open: %w", err)
}
