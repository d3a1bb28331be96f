package bot

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

type sent struct {
	to   string
	text string
}

type fakeTransport struct {
	mu     sync.Mutex
	texts  []sent
	direct []sent
	err    error
	dmCh   chan sent
}

func (f *fakeTransport) SendText(_ context.Context, channelID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, sent{channelID, text})
	return nil
}

func (f *fakeTransport) SendDirect(_ context.Context, userID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	s := sent{userID, text}
	f.direct = append(f.direct, s)
	if f.dmCh != nil {
		select {
		case f.dmCh <- s:
		default:
		}
	}
	return nil
}

var fixedNow = time.Date(2024, time.July, 2, 12, 0, 0, 0, time.UTC)

func newTestBot(t *testing.T, logBuf *bytes.Buffer) (*YearProgressBot, *fakeTransport) {
	t.Helper()
	logger := log.New(logBuf)
	logger.SetLevel(log.DebugLevel)
	b := New(DefaultOptions(), logger)
	b.now = func() time.Time { return fixedNow }
	tr := &fakeTransport{}
	b.out = tr
	b.dm = tr
	return b, tr
}

func TestHandleMessageDispatch(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		want    string
		noReply bool
	}{
		{
			name: "progress",
			msg:  Message{Content: "!yp"},
			want: "[▓▓▓▓▓▓▓░░░░░░░░] 50%",
		},
		{
			name: "trigger is case insensitive",
			msg:  Message{Content: "!YP"},
			want: "[▓▓▓▓▓▓▓░░░░░░░░] 50%",
		},
		{
			name: "ping",
			msg:  Message{Content: "!yp ping", Timestamp: fixedNow.Add(-200 * time.Millisecond)},
			want: "Pong! This message had a latency of 200ms.",
		},
		{
			name: "help",
			msg:  Message{Content: "!yp help"},
			want: "Available commands:\n1. !yp\n2. !yp ping\n-> !yp help",
		},
		{
			name: "unknown argument",
			msg:  Message{Content: "!yp foo"},
			want: "Unknown arguments. Try '!yp help' for more information.",
		},
		{
			name: "arguments are case sensitive",
			msg:  Message{Content: "!yp PING"},
			want: "Unknown arguments. Try '!yp help' for more information.",
		},
		{
			name: "trailing space is an empty argument",
			msg:  Message{Content: "!yp "},
			want: "Unknown arguments. Try '!yp help' for more information.",
		},
		{
			name:    "other command",
			msg:     Message{Content: "!other"},
			noReply: true,
		},
		{
			name:    "bot author",
			msg:     Message{Content: "!yp", AuthorBot: true},
			noReply: true,
		},
		{
			name:    "bot author with trailing space",
			msg:     Message{Content: "!yp ", AuthorBot: true},
			noReply: true,
		},
		{
			name:    "no prefix",
			msg:     Message{Content: "yp"},
			noReply: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			b, tr := newTestBot(t, &buf)
			tt.msg.ChannelID = "chan-1"

			b.HandleMessage(context.Background(), tt.msg)

			if tt.noReply {
				if len(tr.texts) != 0 {
					t.Fatalf("expected no reply, got %+v", tr.texts)
				}
				return
			}
			if len(tr.texts) != 1 {
				t.Fatalf("expected exactly one reply, got %+v", tr.texts)
			}
			if got := tr.texts[0]; got.to != "chan-1" || got.text != tt.want {
				t.Fatalf("reply = %+v, want %q to chan-1", got, tt.want)
			}
		})
	}
}

func TestHandleMessageCustomOptions(t *testing.T) {
	var buf bytes.Buffer
	b, tr := newTestBot(t, &buf)
	b.opts = Options{Prefix: "?", Trigger: "Year"}.withDefaults()

	b.HandleMessage(context.Background(), Message{Content: "?year nope", ChannelID: "c"})
	b.HandleMessage(context.Background(), Message{Content: "!yp", ChannelID: "c"})

	if len(tr.texts) != 1 {
		t.Fatalf("replies = %+v", tr.texts)
	}
	if want := "Unknown arguments. Try '?year help' for more information."; tr.texts[0].text != want {
		t.Fatalf("reply = %q, want %q", tr.texts[0].text, want)
	}
}

func TestHandleMessageSendErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	b, tr := newTestBot(t, &buf)
	tr.err = errors.New("503 Service Unavailable")

	b.HandleMessage(context.Background(), Message{Content: "!yp", ChannelID: "chan-9"})

	out := buf.String()
	if !strings.Contains(out, "Error sending message") || !strings.Contains(out, "503 Service Unavailable") {
		t.Fatalf("send error not logged: %q", out)
	}
}

func TestParseInvocation(t *testing.T) {
	inv, ok := ParseInvocation("!", "!Yp  help")
	if !ok {
		t.Fatal("prefix not recognized")
	}
	if inv.Name != "yp" || len(inv.Args) != 2 || inv.Args[0] != "" || inv.Args[1] != "help" {
		t.Fatalf("unexpected invocation: %#v", inv)
	}
	if inv.Subcommand() != SubUnknown {
		t.Fatalf("double space must not reach help, got %s", inv.Subcommand())
	}

	if _, ok := ParseInvocation("!", "hello"); ok {
		t.Fatal("text without prefix must be rejected")
	}
}

func TestSubcommand(t *testing.T) {
	tests := []struct {
		args []string
		want Subcommand
	}{
		{nil, SubProgress},
		{[]string{"ping"}, SubPing},
		{[]string{"help"}, SubHelp},
		{[]string{"help", "me"}, SubHelp},
		{[]string{"foo"}, SubUnknown},
	}
	for _, tt := range tests {
		if got := (Invocation{Name: "yp", Args: tt.args}).Subcommand(); got != tt.want {
			t.Errorf("Subcommand(%q) = %s, want %s", tt.args, got, tt.want)
		}
	}
}

func TestFromDiscord(t *testing.T) {
	ts := fixedNow.Add(-time.Second)
	m := &discordgo.MessageCreate{Message: &discordgo.Message{
		Content:   "!yp ping",
		ChannelID: "c1",
		Timestamp: ts,
		Author:    &discordgo.User{ID: "u1", Bot: true},
	}}

	got := fromDiscord(m)
	want := Message{AuthorID: "u1", AuthorBot: true, Content: "!yp ping", ChannelID: "c1", Timestamp: ts}
	if got != want {
		t.Fatalf("fromDiscord = %+v, want %+v", got, want)
	}

	noAuthor := fromDiscord(&discordgo.MessageCreate{Message: &discordgo.Message{Content: "x"}})
	if noAuthor.AuthorBot || noAuthor.AuthorID != "" {
		t.Fatalf("unexpected author: %+v", noAuthor)
	}
}

func TestStartWithoutClient(t *testing.T) {
	b := New(DefaultOptions(), nil)
	if err := b.Start(); err == nil {
		t.Fatal("Start without a client must fail")
	}
}

func TestStartStop(t *testing.T) {
	var buf bytes.Buffer
	b, _ := newTestBot(t, &buf)

	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	if err := b.Start(); err == nil {
		t.Fatal("second Start must fail")
	}
	b.Stop()
	b.Stop()
}
