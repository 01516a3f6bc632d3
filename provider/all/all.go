// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package all registers every cloud provider.
package all

import (
	// Register the providers.
	_ "github.com/homelab/homelab/provider/aws"
	_ "github.com/homelab/homelab/provider/azure"
	_ "github.com/homelab/homelab/provider/gce"
)
