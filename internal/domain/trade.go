package domain

import "time"

// TradeEntry is one manually journaled hypothetical trade. The signal
// engine never writes here; UI glue may copy a signal's suggested
// levels into a new entry.
type TradeEntry struct {
	ID          string     `json:"id"`
	CoinID      string     `json:"coinId"`
	Symbol      string     `json:"symbol"`
	IsLong      bool       `json:"isLong"`
	EntryPrice  float64    `json:"entryPrice"`
	StopLoss    float64    `json:"stopLoss"`
	TakeProfit  float64    `json:"takeProfit"`
	Units       float64    `json:"units"`
	EntryTime   time.Time  `json:"entryTime"`
	Status      string     `json:"status"` // open, closed
	ExitPrice   *float64   `json:"exitPrice,omitempty"`
	ExitTime    *time.Time `json:"exitTime,omitempty"`
	ProfitLoss  *float64   `json:"profitLoss,omitempty"`
	EntryReason string     `json:"entryReason"`
}

// TradeJournalExport is the import/export envelope for the journal.
type TradeJournalExport struct {
	Version    int          `json:"version"`
	ExportDate time.Time    `json:"exportDate"`
	Trades     []TradeEntry `json:"trades"`
}

// JournalExportVersion is the current envelope version.
const JournalExportVersion = 1

// TradeStats summarizes closed journal entries.
type TradeStats struct {
	TotalTrades   int     `json:"totalTrades"`
	OpenTrades    int     `json:"openTrades"`
	ClosedTrades  int     `json:"closedTrades"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"winRate"` // 0-100, over closed trades
	TotalPL       float64 `json:"totalPl"`
	AveragePL     float64 `json:"averagePl"`
	BestTradePL   float64 `json:"bestTradePl"`
	WorstTradePL  float64 `json:"worstTradePl"`
}

// TradeEntryRepository defines journal storage operations.
type TradeEntryRepository interface {
	CreateEntry(entry *TradeEntry) error
	GetEntryByID(id string) (*TradeEntry, error)
	GetOpenEntries() []*TradeEntry
	GetAllEntries() []*TradeEntry
	UpdateEntry(entry *TradeEntry) error
	DeleteEntry(id string) error
	ClearAll() error
}
