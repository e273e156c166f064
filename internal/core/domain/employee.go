package domain

import "crypto/subtle"

// MsgAccountAlreadyCreated answers a request to open a second account.
const MsgAccountAlreadyCreated = "Le compte est déjà créé."

const (
	msgAccountApproved = "Demande de compte approuvée."
	msgAccountRejected = "Demande de compte rejetée."
)

// Credentials is the username/password pair an employee logs in with.
type Credentials struct {
	Username string
	Password string
}

// EmployeeOptions tunes approval behaviour.
type EmployeeOptions struct {
	// LegacyApproval reports "approved" even when the client's information
	// fails verification and no account is created.
	LegacyApproval bool
}

// Employee is a bank operator acting on clients and companies.
type Employee struct {
	creds Credentials
	opts  EmployeeOptions
}

func NewEmployee(creds Credentials, opts EmployeeOptions) *Employee {
	return &Employee{creds: creds, opts: opts}
}

func (e *Employee) Username() string { return e.creds.Username }

// Login reports whether both fields match the employee's credentials.
func (e *Employee) Login(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(e.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(e.creds.Password)) == 1
	return userOK && passOK
}

// ListClientCards returns the card numbers of clients that have an account,
// in input order.
func (e *Employee) ListClientCards(clients []*Client) []string {
	cards := make([]string, 0, len(clients))
	for _, c := range clients {
		if acct := c.Account(); acct != nil {
			cards = append(cards, acct.CardNumber())
		}
	}
	return cards
}

// ApproveAccountRequest opens the client's account. The HasAccount check and
// the creation are not atomic: callers must serialise account opening per client.
func (e *Employee) ApproveAccountRequest(client *Client) (string, error) {
	if client.HasAccount() {
		return "", reject("approve_account", ErrAccountExists, MsgAccountAlreadyCreated)
	}
	if _, err := client.CreateAccount(); err != nil && !e.opts.LegacyApproval {
		return "", err
	}
	return msgAccountApproved, nil
}

// RejectAccountRequest changes nothing.
func (e *Employee) RejectAccountRequest(_ *Client) string {
	return msgAccountRejected
}

func (e *Employee) ApproveLoanRequest(company *CorporateAccount) string {
	return "Demande de prêt pour l'entreprise " + company.Name() + " approuvée."
}

func (e *Employee) RejectLoanRequest(company *CorporateAccount) string {
	return "Demande de prêt pour l'entreprise " + company.Name() + " rejetée."
}
