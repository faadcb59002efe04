// Package cli provides the interactive storekeeper shell.
//
// It wires configuration, the record store, the authentication service and
// the command dispatcher, then runs two loops: a login loop that repeats
// until the operator is accepted, and a menu loop that reads a choice,
// collects its parameters, executes it and renders the result as text.
//
// Entering 9 logs out and ends the session; end of input does the same.
// The shell never exits on a command error; it reports the error and shows
// the menu again.
package cli
