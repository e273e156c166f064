package service

import (
	"sync"
	"time"

	"github.com/banque/registration-system/internal/core/domain"
	"github.com/banque/registration-system/internal/core/ports"
)

type clientEntry struct {
	client    *domain.Client
	status    string
	createdAt time.Time

	// set while RegisterClient still holds the entry
	registering bool

	// orders snapshot+save so storage never goes back to an older state
	saveMu sync.Mutex
}

type companyEntry struct {
	account   *domain.CorporateAccount
	createdAt time.Time

	saveMu sync.Mutex
}

// registry indexes the in-memory bank state. Account and company values are
// safe for concurrent use on their own; mu guards the maps and the entry
// status fields.
type registry struct {
	mu           sync.RWMutex
	clients      map[string]*clientEntry
	clientOrder  []string
	cards        map[string]*domain.Account // nil value = reserved card
	companies    map[string]*companyEntry
	companyOrder []string
}

func newRegistry() *registry {
	return &registry{
		clients:   make(map[string]*clientEntry),
		cards:     make(map[string]*domain.Account),
		companies: make(map[string]*companyEntry),
	}
}

// reserveClient inserts a pending entry unless the login is taken. The entry
// stays registering until finishRegistration.
func (r *registry) reserveClient(c *domain.Client, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.Login()]; ok {
		return false
	}
	r.clients[c.Login()] = &clientEntry{client: c, status: ports.ClientPending, createdAt: now, registering: true}
	r.clientOrder = append(r.clientOrder, c.Login())
	return true
}

func (r *registry) finishRegistration(login string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.clients[login]; ok {
		e.registering = false
	}
}

func (r *registry) dropClient(login string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, login)
	for i, l := range r.clientOrder {
		if l == login {
			r.clientOrder = append(r.clientOrder[:i], r.clientOrder[i+1:]...)
			break
		}
	}
}

func (r *registry) putClient(e *clientEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	login := e.client.Login()
	if _, ok := r.clients[login]; !ok {
		r.clientOrder = append(r.clientOrder, login)
	}
	r.clients[login] = e
	if acct := e.client.Account(); acct != nil {
		r.cards[acct.CardNumber()] = acct
	}
}

func (r *registry) client(login string) (*clientEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.clients[login]
	return e, ok
}

// registeredClient returns the entry once its registration has finished.
func (r *registry) registeredClient(login string) (*clientEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.clients[login]
	if !ok || e.registering {
		return nil, false
	}
	return e, true
}

// clientMeta reads the mutable entry fields under the lock.
func (r *registry) clientMeta(e *clientEntry) (status string, createdAt time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return e.status, e.createdAt
}

func (r *registry) setStatus(login, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.clients[login]; ok {
		e.status = status
	}
}

// clientList returns clients in registration order.
func (r *registry) clientList() []*domain.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Client, 0, len(r.clientOrder))
	for _, login := range r.clientOrder {
		out = append(out, r.clients[login].client)
	}
	return out
}

// reserveCard draws card numbers from gen until one is unused, and holds it
// until registerCard.
func (r *registry) reserveCard(gen func() string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		card := gen()
		if _, taken := r.cards[card]; !taken {
			r.cards[card] = nil
			return card
		}
	}
}

func (r *registry) registerCard(acct *domain.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[acct.CardNumber()] = acct
}

func (r *registry) account(card string) (*domain.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct := r.cards[card]
	return acct, acct != nil
}

func (r *registry) addCompany(acct *domain.CorporateAccount, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[acct.AccountID()]; ok {
		return false
	}
	r.companies[acct.AccountID()] = &companyEntry{account: acct, createdAt: now}
	r.companyOrder = append(r.companyOrder, acct.AccountID())
	return true
}

func (r *registry) dropCompany(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.companies, id)
	for i, v := range r.companyOrder {
		if v == id {
			r.companyOrder = append(r.companyOrder[:i], r.companyOrder[i+1:]...)
			break
		}
	}
}

func (r *registry) company(id string) (*companyEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.companies[id]
	return e, ok
}

// ledger resolves a transfer destination: card numbers first, then company
// account ids.
func (r *registry) ledger(id string) (domain.Ledger, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if acct := r.cards[id]; acct != nil {
		return acct, true
	}
	if e, ok := r.companies[id]; ok {
		return e.account, true
	}
	return nil, false
}
