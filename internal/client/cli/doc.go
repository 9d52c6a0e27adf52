// Package cli provides the interactive SysPark admin command-line client.
//
// It wires configuration, the local session database, the API gateway and
// the users orchestrator, and runs a REPL over them. Typical flow: restore
// the previous session (or log in), list accounts page by page, then
// create, edit or delete them.
//
// Key features:
//   - Login / Logout with a persisted bearer token
//   - Paged account list with next/prev/page/size navigation
//   - Show, create and edit accounts with per-field validation
//   - Delete with an explicit confirmation step
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
