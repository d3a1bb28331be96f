package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/EgorLis/ypbot/internal/progress"
)

// broadcast — периодическая рассылка прогресса года в личку одному
// пользователю. Шлём только когда процент изменился.
type broadcast struct {
	mu      sync.Mutex
	userID  string
	running bool
	cancel  context.CancelFunc
	every   time.Duration

	sentMu sync.Mutex
	last   int // последний доставленный процент, -1 — ещё ничего не слали
}

func (bot *YearProgressBot) SetBroadcast(userID string) {
	bot.bc.mu.Lock()
	defer bot.bc.mu.Unlock()
	bot.bc.userID = userID
}

func (bot *YearProgressBot) StartBroadcast(every time.Duration) error {
	if every <= 0 {
		return fmt.Errorf("broadcast: bad interval %s", every)
	}

	bot.bc.mu.Lock()
	defer bot.bc.mu.Unlock()

	if bot.bc.userID == "" {
		return errors.New("broadcast: получатель не задан (вызови SetBroadcast)")
	}
	if bot.dm == nil {
		return errors.New("broadcast: transport can't send direct messages")
	}
	if bot.bc.running {
		// интервал меняем на лету, петля подхватит на следующем тике
		bot.bc.every = every
		return nil
	}

	ctx, cancel := context.WithCancel(bot.context())
	bot.bc.cancel = cancel
	bot.bc.every = every
	bot.bc.running = true

	bot.wg.Add(1)
	go func() {
		defer bot.wg.Done()
		bot.broadcastLoop(ctx)
	}()
	bot.logger.Info("broadcast started", "every", every, "user", bot.bc.userID)
	return nil
}

func (bot *YearProgressBot) StopBroadcast() {
	bot.bc.mu.Lock()
	defer bot.bc.mu.Unlock()
	if !bot.bc.running {
		return
	}
	bot.bc.running = false
	if bot.bc.cancel != nil {
		bot.bc.cancel()
		bot.bc.cancel = nil
	}
}

func (bot *YearProgressBot) broadcastEvery() time.Duration {
	bot.bc.mu.Lock()
	defer bot.bc.mu.Unlock()
	return bot.bc.every
}

// broadcastLoop живёт, пока не вызовут StopBroadcast() или Stop().
func (bot *YearProgressBot) broadcastLoop(ctx context.Context) {
	every := bot.broadcastEvery()
	t := time.NewTicker(every)
	defer t.Stop()

	// первый прогресс сразу, не дожидаясь тика
	bot.broadcastTick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if e := bot.broadcastEvery(); e != every {
				every = e
				t.Reset(every)
			}
			bot.broadcastTick(ctx)
		}
	}
}

// broadcastTick шлёт прогресс, если процент сменился с прошлой доставки.
// При ошибке отправки процент не запоминаем — повторим на следующем тике.
func (bot *YearProgressBot) broadcastTick(ctx context.Context) {
	bar := progress.YearProgress(bot.now())

	bot.bc.sentMu.Lock()
	defer bot.bc.sentMu.Unlock()
	if bar.Percent == bot.bc.last {
		return
	}

	bot.bc.mu.Lock()
	userID := bot.bc.userID
	bot.bc.mu.Unlock()

	if err := bot.dm.SendDirect(ctx, userID, bar.String()); err != nil {
		bot.logger.Error("broadcast: send failed", "user", userID, "err", err)
		return
	}
	bot.bc.last = bar.Percent
}
