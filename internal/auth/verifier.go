// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"context"
	"fmt"
)

// StaticVerifier maps credentials to identities from a fixed table.
// It stands in for a real identity provider in development and tests —
// never deploy it.
type StaticVerifier struct {
	identities map[string]Identity // credential → identity
}

// NewStaticVerifier creates a verifier over a fixed credential table.
func NewStaticVerifier(identities map[string]Identity) *StaticVerifier {
	return &StaticVerifier{identities: identities}
}

func (v *StaticVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	identity, ok := v.identities[credential]
	if !ok {
		return nil, fmt.Errorf("unknown credential")
	}
	return &identity, nil
}
