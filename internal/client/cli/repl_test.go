package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
	args     map[string][]string
}

func newStubExec(loggedIn bool) *stubExec {
	return &stubExec{loggedIn: loggedIn, args: map[string][]string{}}
}

func (s *stubExec) record(name string, args []string) {
	s.calls = append(s.calls, name)
	s.args[name] = args
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) LoginCmd(ctx context.Context)    { s.record("login", nil) }
func (s *stubExec) OtpLoginCmd(ctx context.Context) { s.record("otp", nil) }
func (s *stubExec) RegisterCmd(ctx context.Context) { s.record("register", nil) }
func (s *stubExec) LogoutCmd(ctx context.Context)   { s.record("logout", nil) }
func (s *stubExec) ProfileCmd(ctx context.Context)  { s.record("profile", nil) }
func (s *stubExec) OffersCmd(ctx context.Context, args []string) {
	s.record("offers", args)
}
func (s *stubExec) OfferCmd(ctx context.Context, args []string) {
	s.record("offer", args)
}
func (s *stubExec) StatementsCmd(ctx context.Context) { s.record("statements", nil) }
func (s *stubExec) DownloadStatementCmd(ctx context.Context, args []string) {
	s.record("download", args)
}
func (s *stubExec) TransactionsCmd(ctx context.Context) { s.record("transactions", nil) }
func (s *stubExec) TopUpCmd(ctx context.Context, args []string) {
	s.record("topup", args)
}
func (s *stubExec) CardsCmd(ctx context.Context)    { s.record("cards", nil) }
func (s *stubExec) AddCardCmd(ctx context.Context)  { s.record("addcard", nil) }
func (s *stubExec) VehiclesCmd(ctx context.Context) { s.record("vehicles", nil) }
func (s *stubExec) FilesCmd(ctx context.Context)    { s.record("files", nil) }
func (s *stubExec) AddFileCmd(ctx context.Context, args []string) {
	s.record("addfile", args)
}
func (s *stubExec) RemoveFileCmd(ctx context.Context, args []string) {
	s.record("rmfile", args)
}
func (s *stubExec) ClearFilesCmd(ctx context.Context) { s.record("clearfiles", nil) }
func (s *stubExec) CheckoutCmd(ctx context.Context, args []string) {
	s.record("checkout", args)
}
func (s *stubExec) OrderCmd(ctx context.Context, args []string) {
	s.record("order", args)
}

func runWithInput(t *testing.T, exec *stubExec, input string) string {
	t.Helper()
	var out bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), exec, func() string { return "" }, scanner, &out)
	return out.String()
}

func TestREPL_DispatchesCommands(t *testing.T) {
	exec := newStubExec(true)
	out := runWithInput(t, exec, "offers subscription\naddfile doc.pdf photo.png\ncheckout offer-1\nexit\n")

	assert.Equal(t, []string{"offers", "addfile", "checkout"}, exec.calls)
	assert.Equal(t, []string{"subscription"}, exec.args["offers"])
	assert.Equal(t, []string{"doc.pdf", "photo.png"}, exec.args["addfile"])
	assert.Equal(t, []string{"offer-1"}, exec.args["checkout"])
	assert.Contains(t, out, "Bye!")
}

func TestREPL_UnknownCommand(t *testing.T) {
	exec := newStubExec(false)
	out := runWithInput(t, exec, "frobnicate\nquit\n")

	assert.Empty(t, exec.calls)
	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestREPL_HelpDependsOnLoginState(t *testing.T) {
	out := runWithInput(t, newStubExec(false), "help\nexit\n")
	assert.Contains(t, out, "login, otp, register")

	out = runWithInput(t, newStubExec(true), "help\nexit\n")
	assert.Contains(t, out, "logout")
	assert.Contains(t, out, "statements")
}

func TestREPL_EmptyLinesAndEOF(t *testing.T) {
	exec := newStubExec(true)
	out := runWithInput(t, exec, "\n\nfiles\n")

	assert.Equal(t, []string{"files"}, exec.calls)
	assert.NotContains(t, out, "Unknown command")
}
