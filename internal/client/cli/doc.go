// Package cli implements the interactive parkgate client: a REPL that
// plays the role of the customer web UI. It signs in (password or one-time
// code), browses the offer catalog, manages the account, stages supporting
// documents in the local file cache and drives the checkout flow.
package cli
