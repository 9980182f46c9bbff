package alerts

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rafaelvm/surebetops/internal/consolidation"
	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

// Min interval between any two Telegram messages to the same chat to avoid
// 429 Too Many Requests (~30/min limit).
const telegramSendInterval = 2 * time.Second

// Notifier pushes operational alerts to a Telegram chat: consolidations that
// degraded to raw unconverted values, and imported slips that need human
// review. Messages go through an async queue so alerting never blocks a
// render or import path.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time

	queue chan string
	done  chan struct{}
	wg    sync.WaitGroup
}

func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	n := &Notifier{
		bot:    bot,
		chatID: chatID,
		queue:  make(chan string, 100),
		done:   make(chan struct{}),
	}
	n.wg.Add(1)
	go n.sender()

	slog.Info("Telegram notifier started", "chat_id", chatID)
	return n, nil
}

func (n *Notifier) sender() {
	defer n.wg.Done()
	for {
		select {
		case text := <-n.queue:
			n.send(text)
		case <-n.done:
			// Drain what is already queued before stopping.
			for {
				select {
				case text := <-n.queue:
					n.send(text)
				default:
					return
				}
			}
		}
	}
}

func (n *Notifier) send(text string) {
	n.mu.Lock()
	wait := telegramSendInterval - time.Since(n.lastSend)
	n.mu.Unlock()
	if wait > 0 {
		time.Sleep(wait)
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Failed to send telegram alert", "error", err)
		return
	}

	n.mu.Lock()
	n.lastSend = time.Now()
	n.mu.Unlock()
}

// enqueue drops the alert when the queue is full; alerting is best-effort.
func (n *Notifier) enqueue(text string) {
	select {
	case n.queue <- text:
	default:
		slog.Warn("Telegram alert queue full, dropping alert")
	}
}

// NotifyDegradedConsolidation reports a bet whose displayed value fell back
// to the raw unconverted amount. These figures are silently wrong for
// cross-currency totals and operators should fix the missing rate. figure
// names which value degraded ("stake" or "profit") so a bet with both
// degraded produces two distinguishable alerts.
func (n *Notifier) NotifyDegradedConsolidation(betID, figure, currency, consolidationCurrency string, value consolidation.ConsolidatedValue) {
	if !value.Degraded() {
		return
	}
	n.enqueue(fmt.Sprintf(
		"⚠️ Degraded consolidation\n\nBet: %s\nFigure: %s\nRecorded in %s, reported in %s without conversion (tier: %s).\nCheck the %s rate in the rate table.",
		betID, figure, currency, consolidationCurrency, value.Tier, currency,
	))
}

// NotifySlipReview reports an imported slip flagged for human review.
func (n *Notifier) NotifySlipReview(slip models.ParsedSlip) {
	if !slip.NeedsReview {
		return
	}
	reason := "default domain used"
	if slip.OddsDerived {
		reason = "odds derived from settled payout"
		if slip.HasHiddenDecimal {
			reason += " (hidden decimal)"
		}
	}
	n.enqueue(fmt.Sprintf(
		"📋 Slip needs review\n\nID: %s\nSport: %s\nMarket: %s\nReason: %s",
		slip.ID, slip.Sport.GetSportInfo().Name, slip.Market.DisplayName, reason,
	))
}

// Stop flushes queued alerts and shuts the sender down.
func (n *Notifier) Stop() {
	close(n.done)
	n.wg.Wait()
}
