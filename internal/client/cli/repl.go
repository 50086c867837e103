package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	LoginCmd(ctx context.Context)
	OtpLoginCmd(ctx context.Context)
	RegisterCmd(ctx context.Context)
	LogoutCmd(ctx context.Context)
	ProfileCmd(ctx context.Context)
	OffersCmd(ctx context.Context, args []string)
	OfferCmd(ctx context.Context, args []string)
	StatementsCmd(ctx context.Context)
	DownloadStatementCmd(ctx context.Context, args []string)
	TransactionsCmd(ctx context.Context)
	TopUpCmd(ctx context.Context, args []string)
	CardsCmd(ctx context.Context)
	AddCardCmd(ctx context.Context)
	VehiclesCmd(ctx context.Context)
	FilesCmd(ctx context.Context)
	AddFileCmd(ctx context.Context, args []string)
	RemoveFileCmd(ctx context.Context, args []string)
	ClearFilesCmd(ctx context.Context)
	CheckoutCmd(ctx context.Context, args []string)
	OrderCmd(ctx context.Context, args []string)
}

// runREPL reads a line at a time, parses the first token as the command,
// and dispatches to methods on a. The loop exits on scanner EOF or when
// the user types "exit" or "quit". Command handlers report their own
// errors; the loop stays focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprintf(w, "pg %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: profile, offers, offer, statements, download, transactions, topup, cards, addcard, vehicles, files, addfile, rmfile, clearfiles, checkout, order, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, otp, register, offers, offer, files, addfile, rmfile, clearfiles, checkout, order, exit")
			}

		case "login":
			a.LoginCmd(ctx)
		case "otp":
			a.OtpLoginCmd(ctx)
		case "register":
			a.RegisterCmd(ctx)
		case "logout":
			a.LogoutCmd(ctx)
		case "profile":
			a.ProfileCmd(ctx)
		case "offers":
			a.OffersCmd(ctx, args)
		case "offer":
			a.OfferCmd(ctx, args)
		case "statements":
			a.StatementsCmd(ctx)
		case "download":
			a.DownloadStatementCmd(ctx, args)
		case "transactions":
			a.TransactionsCmd(ctx)
		case "topup":
			a.TopUpCmd(ctx, args)
		case "cards":
			a.CardsCmd(ctx)
		case "addcard":
			a.AddCardCmd(ctx)
		case "vehicles":
			a.VehiclesCmd(ctx)
		case "files":
			a.FilesCmd(ctx)
		case "addfile":
			a.AddFileCmd(ctx, args)
		case "rmfile":
			a.RemoveFileCmd(ctx, args)
		case "clearfiles":
			a.ClearFilesCmd(ctx)
		case "checkout":
			a.CheckoutCmd(ctx, args)
		case "order":
			a.OrderCmd(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
