package cli

import (
	"context"
	"fmt"

	"github.com/mpavlovs/parkgate/internal/client/api"
)

func (a *App) LoginCmd(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	if err := a.auth.Login(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}
	fmt.Fprintln(a.out, "Login successful")
}

func (a *App) OtpLoginCmd(ctx context.Context) {
	to, err := GetSimpleText(a.reader, "Enter phone or email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	channel, err := GetSimpleText(a.reader, "Channel (sms/email)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	challenge, err := a.auth.OtpSend(ctx, to, channel)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	code, err := GetSimpleText(a.reader, "Enter the code you received", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.auth.OtpVerify(ctx, challenge.Sid, code); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}
	fmt.Fprintln(a.out, "Login successful")
}

func (a *App) RegisterCmd(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	firstName, err := GetSimpleText(a.reader, "First name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	lastName, err := GetSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	if err := a.auth.Register(ctx, email, password, firstName, lastName); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}
	fmt.Fprintln(a.out, "Registration successful, you can now log in")
}

func (a *App) LogoutCmd(ctx context.Context) {
	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}
	fmt.Fprintln(a.out, "Logged out")
}
