// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"os"

	"github.com/homelab/homelab/cmd/homelab/commands"
)

func main() {
	commands.Main(os.Args)
}
