package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/mpavlovs/parkgate/internal/client/api"
)

func (a *App) ProfileCmd(ctx context.Context) {
	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	profile, err := a.auth.Profile(ctx)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	c := profile.Customer
	fmt.Fprintf(a.out, "%s %s <%s> phone %s\n", c.Contact.FirstName, c.Contact.LastName, c.Contact.Email, c.Contact.Phone)
	fmt.Fprintf(a.out, "Orders: %d, vehicles: %d, cards: %d\n", len(profile.Orders), len(c.Vehicles), len(c.PaymentMethods.Cards))
	for _, o := range profile.Orders {
		fmt.Fprintf(a.out, "  %s  %-30s %s  %.2f (%s)\n", o.ShortID, o.Offer.Name, o.Validity.From, o.Price.Total, o.Result.Status)
	}
}

func (a *App) StatementsCmd(ctx context.Context) {
	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	statements, err := a.account.Statements(ctx)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	for _, s := range statements {
		fmt.Fprintf(a.out, "%s  %s  %-30s %.2f\n", s.ShortID, s.Date, s.Name, s.Total.IncVat)
	}
}

func (a *App) DownloadStatementCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: download <invoiceId>")
		return
	}

	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	data, err := a.account.DownloadStatement(ctx, args[0])
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	name := args[0] + ".pdf"
	if err := os.WriteFile(name, data, 0o600); err != nil {
		fmt.Fprintf(a.out, "error saving file: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", name, len(data))
}

func (a *App) TransactionsCmd(ctx context.Context) {
	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	transactions, err := a.account.Transactions(ctx)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	for _, tr := range transactions {
		fmt.Fprintf(a.out, "%s  %s -> %s  %-20s %s  %.2f\n", tr.ID, tr.Enter, tr.Exit, tr.Spot.Name, tr.VehicleNumber, tr.Amount.IncVat)
	}
}

func (a *App) TopUpCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: topup <amount>")
		return
	}

	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid amount:", args[0])
		return
	}

	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	if _, err := a.account.WalletTopUp(ctx, amount); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}
	fmt.Fprintf(a.out, "Wallet topped up by %.2f\n", amount)
}

func (a *App) CardsCmd(ctx context.Context) {
	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	profile, err := a.auth.Profile(ctx)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	for _, card := range profile.Customer.PaymentMethods.Cards {
		def := " "
		if card.IsDefault {
			def = "*"
		}
		fmt.Fprintf(a.out, "%s %s  **** %s  exp %s  (%s)\n", def, card.Type, card.Last4D, card.Expiry, card.Token)
	}
}

// AddCardCmd opens a hosted payment page session and polls its status.
// The user completes the card form in a browser, then confirms here.
func (a *App) AddCardCmd(ctx context.Context) {
	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	initResp, err := a.account.InitCard(ctx)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	fmt.Fprintf(a.out, "Open this URL to enter card details:\n  %s\n", initResp.URL)
	if _, err := GetSimpleText(a.reader, "Press Enter when done", a.out); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	status, err := a.account.HppStatus(ctx, initResp.Sid)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}
	if status.Status != "completed" {
		fmt.Fprintf(a.out, "Payment page session is %s, card not added\n", status.Status)
		return
	}

	if _, err := a.account.AddCard(ctx, initResp.Sid); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}
	fmt.Fprintln(a.out, "Card added")
}

func (a *App) VehiclesCmd(ctx context.Context) {
	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	profile, err := a.auth.Profile(ctx)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	for _, v := range profile.Customer.Vehicles {
		plate := "(none)"
		if v.Plate != nil {
			plate = *v.Plate
		}
		def := " "
		if v.IsDefault {
			def = "*"
		}
		fmt.Fprintf(a.out, "%s %s\n", def, plate)
	}
}
