// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/tilecast-ctl/main.go
// Summary: Sends control commands to a running tilecast.
// Usage: `tilecast-ctl toggle|clipboard|reload|quit`. Bind these to
// hotkeys in your window manager.

package main

import (
	"flag"
	"fmt"
	"os"

	"tilecast/config"
	"tilecast/ipc"
)

func main() {
	fs := flag.NewFlagSet("tilecast-ctl", flag.ContinueOnError)
	socketPath := fs.String("socket", "", "Control socket path")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tilecast-ctl [-socket path] <toggle|clipboard|reload|quit>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	if *socketPath == "" {
		*socketPath = config.SocketPath()
	}
	if err := ipc.Send(*socketPath, fs.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
