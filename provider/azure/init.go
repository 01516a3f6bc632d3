// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"github.com/juju/clock"

	"github.com/homelab/homelab/environs"
)

func init() {
	prov, err := NewProvider(ProviderConfig{
		NewCredential: defaultCredential,
		NewClients:    NewClients,
		RetryClock:    clock.WallClock,
	})
	if err != nil {
		panic(err)
	}
	environs.RegisterProvider("azure", prov)
}
