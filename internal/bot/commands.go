package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/EgorLis/ypbot/internal/progress"
)

// Subcommand — закрытый набор веток команды !yp.
type Subcommand int

const (
	SubProgress Subcommand = iota // !yp
	SubPing                       // !yp ping
	SubHelp                       // !yp help
	SubUnknown                    // всё остальное
)

func (s Subcommand) String() string {
	switch s {
	case SubProgress:
		return "progress"
	case SubPing:
		return "ping"
	case SubHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Invocation — разобранная команда одного сообщения.
type Invocation struct {
	Name string
	Args []string
}

// ParseInvocation отрезает префикс и режет остаток по одиночным пробелам.
// Двойные и хвостовые пробелы дают пустые аргументы: "!yp " -> Args [""].
func ParseInvocation(prefix, text string) (Invocation, bool) {
	if !strings.HasPrefix(text, prefix) {
		return Invocation{}, false
	}
	fields := strings.Split(text[len(prefix):], " ")
	return Invocation{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
	}, true
}

func (inv Invocation) Subcommand() Subcommand {
	if len(inv.Args) == 0 {
		return SubProgress
	}
	switch inv.Args[0] {
	case "ping":
		return SubPing
	case "help":
		return SubHelp
	default:
		return SubUnknown
	}
}

// Reply возвращает ответ на сообщение; false — отвечать не нужно.
func (bot *YearProgressBot) Reply(msg Message) (string, bool) {
	if msg.AuthorBot {
		return "", false
	}
	inv, ok := ParseInvocation(bot.opts.Prefix, msg.Content)
	if !ok || inv.Name != bot.opts.Trigger {
		return "", false
	}

	now := bot.now()
	sub := inv.Subcommand()
	bot.logger.Debug("command", "author", msg.AuthorID, "channel", msg.ChannelID, "sub", sub)

	switch sub {
	case SubProgress:
		return progress.YearProgress(now).String(), true
	case SubPing:
		return fmt.Sprintf("Pong! This message had a latency of %dms.", latency(now, msg.Timestamp)), true
	case SubHelp:
		return bot.helpText(), true
	default:
		return bot.unknownText(), true
	}
}

func (bot *YearProgressBot) helpText() string {
	cmd := bot.opts.command()
	return strings.Join([]string{
		"Available commands:",
		"1. " + cmd,
		"2. " + cmd + " ping",
		"-> " + cmd + " help",
	}, "\n")
}

func (bot *YearProgressBot) unknownText() string {
	return fmt.Sprintf("Unknown arguments. Try '%s help' for more information.", bot.opts.command())
}

func latency(now, sentAt time.Time) int64 {
	return now.Sub(sentAt).Milliseconds()
}
