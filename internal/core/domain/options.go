package domain

import "time"

// Features toggles the behaviours that differed between the historical
// variants of the account.
type Features struct {
	// Freezable enables Freeze/Unfreeze and the frozen check on money operations.
	Freezable bool
	// KeepHistory retains entries for HistoryMessage/Entries. Observers are
	// notified either way.
	KeepHistory bool
}

// DefaultFeatures enables everything.
func DefaultFeatures() Features {
	return Features{Freezable: true, KeepHistory: true}
}

// Observer receives every entry a ledger records, in order, while the ledger
// lock is held. It must not call back into the ledger.
type Observer func(Entry)

type accountConfig struct {
	features Features
	cardGen  func() string
	observer Observer
	now      func() time.Time
}

// AccountOption customises accounts built by NewAccount, Client.CreateAccount
// and NewCorporateAccount.
type AccountOption func(*accountConfig)

func WithFeatures(f Features) AccountOption {
	return func(c *accountConfig) { c.features = f }
}

// WithCardGenerator replaces GenerateCardNumber.
func WithCardGenerator(gen func() string) AccountOption {
	return func(c *accountConfig) {
		if gen != nil {
			c.cardGen = gen
		}
	}
}

func WithObserver(o Observer) AccountOption {
	return func(c *accountConfig) { c.observer = o }
}

func WithClock(now func() time.Time) AccountOption {
	return func(c *accountConfig) {
		if now != nil {
			c.now = now
		}
	}
}

func buildConfig(opts []AccountOption) accountConfig {
	cfg := accountConfig{
		features: DefaultFeatures(),
		cardGen:  GenerateCardNumber,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
