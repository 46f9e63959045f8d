package usecase

import (
	"fmt"
	"time"

	"swingboard-backend/internal/domain"
)

// ComputeTradeStats summarizes a set of journal entries. Win rate and
// P/L aggregates consider closed trades only.
func ComputeTradeStats(entries []*domain.TradeEntry) domain.TradeStats {
	stats := domain.TradeStats{TotalTrades: len(entries)}

	settled := 0
	for _, entry := range entries {
		if entry.Status != "closed" {
			stats.OpenTrades++
			continue
		}
		stats.ClosedTrades++
		if entry.ProfitLoss == nil {
			// Imported entries may be closed without a recorded P/L;
			// they count as closed but stay out of the aggregates.
			continue
		}
		pl := *entry.ProfitLoss
		settled++
		stats.TotalPL += pl
		if pl > 0 {
			stats.Wins++
		} else {
			stats.Losses++
		}
		if settled == 1 {
			stats.BestTradePL = pl
			stats.WorstTradePL = pl
			continue
		}
		if pl > stats.BestTradePL {
			stats.BestTradePL = pl
		}
		if pl < stats.WorstTradePL {
			stats.WorstTradePL = pl
		}
	}

	if settled > 0 {
		stats.WinRate = float64(stats.Wins) / float64(settled) * 100
		stats.AveragePL = stats.TotalPL / float64(settled)
	}
	return stats
}

// BuildJournalExport wraps all entries in the versioned envelope.
func BuildJournalExport(entries []*domain.TradeEntry) domain.TradeJournalExport {
	trades := make([]domain.TradeEntry, 0, len(entries))
	for _, entry := range entries {
		trades = append(trades, *entry)
	}
	return domain.TradeJournalExport{
		Version:    domain.JournalExportVersion,
		ExportDate: time.Now(),
		Trades:     trades,
	}
}

// ImportJournal loads entries from an export envelope, overwriting any
// entry that shares an id. Returns how many entries were imported.
func ImportJournal(repo domain.TradeEntryRepository, export domain.TradeJournalExport) (int, error) {
	if export.Version != domain.JournalExportVersion {
		return 0, fmt.Errorf("unsupported journal export version %d", export.Version)
	}

	imported := 0
	for i := range export.Trades {
		entry := export.Trades[i]
		if entry.ID == "" {
			continue
		}
		if err := repo.UpdateEntry(&entry); err != nil {
			if err := repo.CreateEntry(&entry); err != nil {
				continue
			}
		}
		imported++
	}
	return imported, nil
}
