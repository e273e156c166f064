package handler

import (
	"github.com/banque/registration-system/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterClientInput(req registerClientRequest) ports.RegisterClientInput {
	return ports.RegisterClientInput{
		Name:            req.Name,
		Address:         req.Address,
		Phone:           req.Phone,
		NationalID:      req.NationalID,
		Login:           req.Login,
		Password:        req.Password,
		WithdrawalLimit: req.WithdrawalLimit,
	}
}

func toRegisterCompanyInput(req registerCompanyRequest) ports.RegisterCompanyInput {
	return ports.RegisterCompanyInput{
		Name:            req.Name,
		Address:         req.Address,
		TaxID:           req.TaxID,
		WithdrawalLimit: req.WithdrawalLimit,
		AccountID:       req.AccountID,
		Password:        req.Password,
	}
}

// --- Service output → Response ---

func toAccountResponse(v *ports.AccountView) accountResponse {
	return accountResponse{
		Owner:      v.Owner,
		CardNumber: v.CardNumber,
		Tier:       string(v.Tier),
		TierLabel:  v.TierLabel,
		Balance:    v.Balance,
		Frozen:     v.Frozen,
		PINSet:     v.PINSet,
	}
}

func toRegistrationResponse(r *ports.RegistrationResult) registrationResponse {
	resp := registrationResponse{
		Message: r.Message,
		Login:   r.Login,
		Status:  r.Status,
	}
	if r.Account != nil {
		acct := toAccountResponse(r.Account)
		resp.Account = &acct
	}
	return resp
}

func toOpResponse(r *ports.OpResult) opResponse {
	return opResponse{Message: r.Message, Balance: r.Balance}
}

func toHistoryResponse(h *ports.HistoryView) historyResponse {
	entries := make([]entryResponse, 0, len(h.Entries))
	for _, e := range h.Entries {
		entries = append(entries, entryResponse{
			ID:           e.ID.String(),
			Kind:         string(e.Kind),
			Amount:       e.Amount,
			Counterparty: e.Counterparty,
			At:           e.At,
			Description:  e.Description,
		})
	}
	return historyResponse{Message: h.Message, Entries: entries}
}

func toCompanyResponse(msg string, v *ports.CompanyView) companyResponse {
	return companyResponse{
		Message:         msg,
		AccountID:       v.AccountID,
		Name:            v.Name,
		TaxID:           v.TaxID,
		WithdrawalLimit: v.WithdrawalLimit,
		Balance:         v.Balance,
	}
}
