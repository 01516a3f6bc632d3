// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package gce

import (
	"github.com/homelab/homelab/environs"
)

func init() {
	prov, err := NewProvider(ProviderConfig{
		NewBucketService: defaultBucketService,
	})
	if err != nil {
		panic(err)
	}
	environs.RegisterProvider("gce", prov, "gcp")
}
