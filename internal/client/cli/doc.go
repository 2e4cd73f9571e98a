// Package cli provides the interactive fmcli client of the files manager.
//
// It keeps the session token in a local file between runs and tracks the
// current folder so mkdir, upload and ls work relative to it. The REPL is
// started via App.Run(ctx), which blocks until the user exits.
package cli
