package dsclient

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

func (c *Client) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	c.connected.Store(true)
	name := ""
	if r.User != nil {
		name = r.User.Username
	}
	c.logger.Info(fmt.Sprintf("%s is connected!", name), "guilds", len(r.Guilds))
	if c.OnConnected != nil {
		c.OnConnected(name)
	}
}

// discordgo сам переподключается; тут только отмечаем состояние
func (c *Client) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	c.connected.Store(false)
	c.logger.Warn("gateway disconnected")
	if c.OnError != nil {
		c.OnError(fmt.Errorf("gateway disconnected"))
	}
}

func (c *Client) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil {
		return
	}
	if c.OnMessage != nil {
		c.OnMessage(m)
	}
}

var routeOnce sync.Once

// routeLibraryLogs перенаправляет внутренние логи discordgo в наш логгер.
func routeLibraryLogs(logger *log.Logger) {
	routeOnce.Do(func() {
		discordgo.Logger = func(msgL, _ int, format string, a ...interface{}) {
			msg := fmt.Sprintf(format, a...)
			switch msgL {
			case discordgo.LogError:
				logger.Error(msg, "src", "discordgo")
			case discordgo.LogWarning:
				logger.Warn(msg, "src", "discordgo")
			case discordgo.LogInformational:
				logger.Info(msg, "src", "discordgo")
			default:
				logger.Debug(msg, "src", "discordgo")
			}
		}
	})
}
