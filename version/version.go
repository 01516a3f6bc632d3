// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package version holds the version of the homelab binary.
package version

import (
	"github.com/juju/version/v2"
)

// Current is the version of the running binary. It is set at build
// time for release builds.
var Current = version.MustParse("0.3.0")
