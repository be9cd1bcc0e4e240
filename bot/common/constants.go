package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
	ColorGold    = 0xFFD700
)

// Paging constants
const (
	LeaderboardPageSize = 10
	MarketPageSize      = 5
	MaxModLogLimit      = 25
	DefaultModLogLimit  = 10
)

// CoinEmoji prefixes balances in embeds
const CoinEmoji = "💰"
