package usecase

import (
	"fmt"
	"log"
	"strings"
	"time"

	"swingboard-backend/internal/domain"
)

// notificationCooldown suppresses repeat alerts for the same coin.
const notificationCooldown = 30 * time.Minute

// notifyHighQualitySignals pushes an FCM alert for every fresh
// high-quality BUY signal to all registered devices.
func (uc *ScreenerUsecase) notifyHighQualitySignals(analyzed []domain.AnalyzedCoin) {
	if uc.fcmClient == nil || !uc.fcmClient.IsEnabled() {
		return
	}

	tokens := uc.tokenRepo.ActiveTokens()
	if len(tokens) == 0 {
		return
	}

	now := time.Now()
	for _, coin := range HighQualitySignals(analyzed) {
		uc.mu.RLock()
		lastNotified, exists := uc.notifiedCoins[coin.ID]
		uc.mu.RUnlock()
		if exists && now.Sub(lastNotified) < notificationCooldown {
			continue
		}

		title := fmt.Sprintf("🚀 %s BUY signal", strings.ToUpper(coin.Symbol))
		body := fmt.Sprintf("Score: %.0f | Price: $%.5g | 24h: %+.2f%% | Hold: %s",
			coin.Analysis.SwingTradingScore, coin.CurrentPrice,
			coin.PriceChange24h, coin.Analysis.HoldingPeriod.Period)

		data := map[string]string{
			"coinId": coin.ID,
			"symbol": coin.Symbol,
			"score":  fmt.Sprintf("%.2f", coin.Analysis.SwingTradingScore),
			"price":  fmt.Sprintf("%.8f", coin.CurrentPrice),
			"signal": string(coin.Analysis.Signal),
		}

		if err := uc.fcmClient.SendMulticast(tokens, title, body, data); err != nil {
			log.Printf("Error sending notification for %s: %v", coin.ID, err)
			continue
		}
		log.Printf("Sent BUY alert for %s to %d devices", coin.ID, len(tokens))

		uc.mu.Lock()
		uc.notifiedCoins[coin.ID] = now
		uc.mu.Unlock()
	}

	// Drop stale cooldown bookkeeping.
	uc.mu.Lock()
	for coinID, ts := range uc.notifiedCoins {
		if now.Sub(ts) > notificationCooldown*2 {
			delete(uc.notifiedCoins, coinID)
		}
	}
	uc.mu.Unlock()
}
