package dsclient

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ========================= high-level API =========================

func (c *Client) SendText(ctx context.Context, channelID, text string) error {
	if channelID == "" {
		return fmt.Errorf("send: empty channel id")
	}
	_, err := c.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send to channel %s: %w", channelID, err)
	}
	c.logger.Debug("sent", "channel", channelID, "text", text)
	return nil
}

// SendDirect отправляет личное сообщение пользователю userID.
func (c *Client) SendDirect(ctx context.Context, userID, text string) error {
	if userID == "" {
		return fmt.Errorf("dm: empty user id")
	}
	ch, err := c.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("dm channel for %s: %w", userID, err)
	}
	return c.SendText(ctx, ch.ID, text)
}
