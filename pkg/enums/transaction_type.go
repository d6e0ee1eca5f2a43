package enums

import "fmt"

// TransactionType maps to the transaction_type_enum type in Postgres and names
// the cause of a currency movement. Every subsystem that touches a balance
// records one of these through the ledger primitive.
type TransactionType string

const (
	TransactionTypeDailyChallengeReward TransactionType = "daily_challenge_reward"
	TransactionTypeChallengeWin         TransactionType = "challenge_win"
	TransactionTypeChallengeLoss        TransactionType = "challenge_loss"
	TransactionTypeChallengeWager       TransactionType = "challenge_wager"
	TransactionTypeChallengeRefund      TransactionType = "challenge_refund"
	TransactionTypeAdminAdjustment      TransactionType = "admin_adjustment"
	TransactionTypeGameEntry            TransactionType = "game_entry"
	TransactionTypeGameReward           TransactionType = "game_reward"
	TransactionTypeCompanyInvestment    TransactionType = "company_investment"
	TransactionTypeCompanyIncome        TransactionType = "company_income"
	TransactionTypeCompanyTax           TransactionType = "company_tax"
	TransactionTypeCompanySlotUnlock    TransactionType = "company_slot_unlock"
	TransactionTypeCompanyUpgrade       TransactionType = "company_upgrade"
	TransactionTypeDebit                TransactionType = "debit"
	TransactionTypeCredit               TransactionType = "credit"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeDailyChallengeReward,
	TransactionTypeChallengeWin,
	TransactionTypeChallengeLoss,
	TransactionTypeChallengeWager,
	TransactionTypeChallengeRefund,
	TransactionTypeAdminAdjustment,
	TransactionTypeGameEntry,
	TransactionTypeGameReward,
	TransactionTypeCompanyInvestment,
	TransactionTypeCompanyIncome,
	TransactionTypeCompanyTax,
	TransactionTypeCompanySlotUnlock,
	TransactionTypeCompanyUpgrade,
	TransactionTypeDebit,
	TransactionTypeCredit,
}

// IsValid reports whether the value matches the canonical transaction type enum.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
