package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/banque/registration-system/internal/core/domain"
)

var errInvalidLimit = errors.New(domain.MsgInvalidLimit)

func registerCmd() *cobra.Command {
	var noHistory bool

	c := &cobra.Command{
		Use:   "register",
		Short: "Register a client interactively (in memory, nothing is stored)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			features := domain.DefaultFeatures()
			features.KeepHistory = !noHistory
			return runRegister(cmd.InOrStdin(), cmd.OutOrStdout(), features)
		},
	}
	c.SilenceErrors = true

	c.Flags().BoolVar(&noHistory, "no-history", false, "do not keep the transaction history of the new account")
	return c
}

// prompter reads one answer per line.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) ask(label string) string {
	fmt.Fprint(p.out, label+" : ")
	if !p.in.Scan() {
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

// runRegister walks a client through the registration form, opens the
// account and sets its PIN.
func runRegister(in io.Reader, out io.Writer, features domain.Features) error {
	p := &prompter{in: bufio.NewScanner(in), out: out}

	input := domain.ClientInput{
		Name:       p.ask("Nom"),
		Address:    p.ask("Adresse"),
		Phone:      p.ask("Numéro de téléphone"),
		NationalID: p.ask("CNIC"),
		Login:      p.ask("Identifiant"),
		Password:   p.ask("Mot de passe"),
	}
	limit, err := decimal.NewFromString(p.ask("Limite de retrait journalière"))
	if err != nil {
		fmt.Fprintln(out, domain.MsgInvalidLimit)
		return errInvalidLimit
	}
	input.WithdrawalLimit = limit

	client := domain.NewClient(input, domain.WithFeatures(features))
	msg, err := client.CreateAccount()
	if err != nil {
		fmt.Fprintln(out, domain.Message(err))
		return nil
	}
	fmt.Fprintln(out, msg)

	acct := client.Account()
	pinMsg, err := acct.SetPIN(p.ask("Choisissez un PIN à 4 chiffres"))
	if err != nil {
		pinMsg = domain.Message(err)
	}
	fmt.Fprintln(out, pinMsg)
	fmt.Fprintln(out, "Numéro de carte : "+acct.CardNumber())
	fmt.Fprintln(out, "Type de compte : "+acct.Tier().Label())
	return nil
}
