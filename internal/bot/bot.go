package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/EgorLis/ypbot/internal/dsclient"
)

// Sender — ответ в канал, из которого пришла команда.
type Sender interface {
	SendText(ctx context.Context, channelID, text string) error
}

// DirectSender — личные сообщения (нужны только для рассылки).
type DirectSender interface {
	SendDirect(ctx context.Context, userID, text string) error
}

// Message — входящее сообщение чата в том виде, в каком его понимает бот.
type Message struct {
	AuthorID  string
	AuthorBot bool
	Content   string
	ChannelID string
	Timestamp time.Time
}

type YearProgressBot struct {
	opts   Options
	logger *log.Logger
	now    func() time.Time

	client *dsclient.Client
	out    Sender
	dm     DirectSender

	runCtx context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex

	bc broadcast
}

func New(opts Options, logger *log.Logger) *YearProgressBot {
	if logger == nil {
		logger = log.Default()
	}
	return &YearProgressBot{
		opts:   opts.withDefaults(),
		logger: logger,
		now:    time.Now,
		bc:     broadcast{last: -1},
	}
}

// UseClient подключает discord-клиент: входящие сообщения идут в
// HandleMessage, ответы и личка уходят через него же.
func (bot *YearProgressBot) UseClient(c *dsclient.Client) {
	bot.client = c
	bot.out = c
	bot.dm = c

	c.OnConnecting = func() { bot.logger.Info("connecting...") }
	c.OnConnected = func(name string) { bot.logger.Info("connected", "as", name) }
	c.OnDisconnected = func() { bot.logger.Info("disconnected") }
	c.OnError = func(err error) { bot.logger.Warn("client", "err", err) }
	c.OnMessage = func(m *discordgo.MessageCreate) {
		bot.HandleMessage(bot.context(), fromDiscord(m))
	}
}

// HandleMessage отправляет не больше одного ответа. Ошибка отправки только
// логируется.
func (bot *YearProgressBot) HandleMessage(ctx context.Context, msg Message) {
	reply, ok := bot.Reply(msg)
	if !ok {
		return
	}
	if bot.out == nil {
		bot.logger.Error("no sender configured, reply dropped", "channel", msg.ChannelID)
		return
	}
	if err := bot.out.SendText(ctx, msg.ChannelID, reply); err != nil {
		bot.logger.Error("Error sending message", "channel", msg.ChannelID, "err", err)
	}
}

func (bot *YearProgressBot) Start() error {
	if bot == nil {
		return errors.New("бот не инициализирован")
	}
	if bot.out == nil {
		return errors.New("клиент не подключен")
	}

	bot.mu.Lock()
	if bot.runCtx != nil {
		bot.mu.Unlock()
		return errors.New("уже запущен")
	}
	ctx, cancel := context.WithCancel(context.Background())
	bot.runCtx, bot.cancel = ctx, cancel
	bot.mu.Unlock()

	if bot.client != nil {
		if err := bot.client.Connect(ctx); err != nil {
			bot.mu.Lock()
			bot.runCtx, bot.cancel = nil, nil
			bot.mu.Unlock()
			cancel()
			return err
		}
	}
	return nil
}

func (bot *YearProgressBot) Stop() {
	bot.StopBroadcast()

	bot.mu.Lock()
	cancel := bot.cancel
	bot.cancel = nil
	bot.mu.Unlock()

	if cancel != nil {
		cancel()
		if bot.client != nil {
			bot.client.Disconnect()
		}
	}
	bot.wg.Wait()
}

func (bot *YearProgressBot) context() context.Context {
	bot.mu.Lock()
	defer bot.mu.Unlock()
	if bot.runCtx == nil {
		return context.Background()
	}
	return bot.runCtx
}

func fromDiscord(m *discordgo.MessageCreate) Message {
	msg := Message{
		Content:   m.Content,
		ChannelID: m.ChannelID,
		Timestamp: m.Timestamp,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorBot = m.Author.Bot
	}
	return msg
}
