package domain

import (
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	minNameLength = 3

	MsgInvalidName    = "Nom invalide"
	MsgInvalidPhone   = "Numéro de téléphone invalide"
	MsgInvalidNatID   = "CNIC invalide"
	MsgInvalidLimit   = "Limite de retrait invalide"
	MsgInformationOK  = "Informations valides"
	MsgAccountCreated = "Compte créé avec succès, numéro de carte attribué."
)

var (
	phonePattern      = regexp.MustCompile(`^\+?[1-9][0-9]{1,14}$`)
	nationalIDPattern = regexp.MustCompile(`^[0-9]{13}$`)

	// MaxWithdrawalLimit is the registration ceiling for the daily limit.
	MaxWithdrawalLimit = decimal.NewFromInt(100000)
)

// ValidName reports whether name has at least three characters.
func ValidName(name string) bool {
	return utf8.RuneCountInString(name) >= minNameLength
}

// ValidPhone accepts international numbers: optional '+', a leading 1-9 digit
// and 1 to 14 more digits.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidNationalID accepts exactly 13 decimal digits.
func ValidNationalID(id string) bool {
	return nationalIDPattern.MatchString(id)
}

// ValidWithdrawalLimit accepts 0 < limit <= MaxWithdrawalLimit.
func ValidWithdrawalLimit(limit decimal.Decimal) bool {
	return limit.IsPositive() && limit.LessThanOrEqual(MaxWithdrawalLimit)
}
