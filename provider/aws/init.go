// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package aws

import (
	"github.com/homelab/homelab/environs"
)

func init() {
	prov, err := NewProvider(ProviderConfig{
		NewS3Client: defaultS3Client,
	})
	if err != nil {
		panic(err)
	}
	environs.RegisterProvider("aws", prov)
}
