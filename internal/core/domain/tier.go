package domain

import "github.com/shopspring/decimal"

// Tier classifies an account from its owner's declared daily withdrawal limit.
type Tier string

const (
	TierSavings  Tier = "savings"
	TierChecking Tier = "checking"
	TierPremium  Tier = "premium"
)

var (
	savingsCeiling  = decimal.NewFromInt(50000)
	checkingCeiling = decimal.NewFromInt(100000)
)

// TierFor maps a withdrawal limit to a tier. Premium is only reachable with a
// limit above MaxWithdrawalLimit, which registration never accepts.
func TierFor(limit decimal.Decimal) Tier {
	switch {
	case limit.LessThanOrEqual(savingsCeiling):
		return TierSavings
	case limit.LessThanOrEqual(checkingCeiling):
		return TierChecking
	default:
		return TierPremium
	}
}

// Label is the French name printed to customers.
func (t Tier) Label() string {
	switch t {
	case TierSavings:
		return "Compte épargne"
	case TierChecking:
		return "Compte courant"
	case TierPremium:
		return "Compte premium"
	default:
		return string(t)
	}
}

// ParseTier accepts the stored code of a tier.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierSavings, TierChecking, TierPremium:
		return Tier(s), true
	}
	return "", false
}
