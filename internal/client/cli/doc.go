// Package cli provides the interactive fittrack command-line client.
//
// It wires configuration, the local credential database, the REST transport,
// the domain services and the session and goals hooks, then runs a REPL on
// top of them. On start the session is restored from the stored credential
// and, when logged in, the goal list is fetched.
//
// Key features:
//   - Register / Login / Logout / whoami
//   - List, add, edit and delete goals
//   - Record progress, share a goal, show a completion summary
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
