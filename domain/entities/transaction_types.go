package entities

// TransactionType represents the type of balance change
type TransactionType string

// All transaction types supported by the system
const (
	// Income
	TransactionTypeEarn          TransactionType = "earn"
	TransactionTypeDaily         TransactionType = "daily"
	TransactionTypeWeekly        TransactionType = "weekly"
	TransactionTypeCrimeReward   TransactionType = "crime_reward"
	TransactionTypeReferralBonus TransactionType = "referral_bonus"
	TransactionTypeInterest      TransactionType = "interest"

	// Losses
	TransactionTypeCrimeFine TransactionType = "crime_fine"

	// Gambling-related transactions
	TransactionTypeInvestWin  TransactionType = "invest_win"
	TransactionTypeInvestLoss TransactionType = "invest_loss"
	TransactionTypeGambleWin  TransactionType = "gamble_win"
	TransactionTypeGambleLoss TransactionType = "gamble_loss"
	TransactionTypeGambleBet  TransactionType = "gamble_bet"

	// Transfer transactions
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdraw    TransactionType = "withdraw"

	// Trade transactions
	TransactionTypeMarketPurchase TransactionType = "market_purchase"
	TransactionTypeMarketSale     TransactionType = "market_sale"
	TransactionTypeStorePurchase  TransactionType = "store_purchase"

	// System transactions
	TransactionTypeAdminSet TransactionType = "admin_set"
	TransactionTypeNuke     TransactionType = "nuke"
)

// IsWinType returns true if the transaction type represents a win
func (tt TransactionType) IsWinType() bool {
	return tt == TransactionTypeInvestWin ||
		tt == TransactionTypeGambleWin
}

// IsLossType returns true if the transaction type represents a loss
func (tt TransactionType) IsLossType() bool {
	return tt == TransactionTypeInvestLoss ||
		tt == TransactionTypeGambleLoss ||
		tt == TransactionTypeCrimeFine
}

// IsTransferType returns true if the transaction type moves coins between holders
func (tt TransactionType) IsTransferType() bool {
	return tt == TransactionTypeTransferIn ||
		tt == TransactionTypeTransferOut ||
		tt == TransactionTypeDeposit ||
		tt == TransactionTypeWithdraw
}

// IsGamblingRelated returns true if the transaction type is gambling-related
func (tt TransactionType) IsGamblingRelated() bool {
	return tt.IsWinType() || tt == TransactionTypeInvestLoss || tt == TransactionTypeGambleLoss || tt == TransactionTypeGambleBet
}

// IsSystemGenerated returns true if the transaction type is system-generated
func (tt TransactionType) IsSystemGenerated() bool {
	return tt == TransactionTypeInterest ||
		tt == TransactionTypeAdminSet ||
		tt == TransactionTypeNuke
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
