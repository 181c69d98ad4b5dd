package auth

import "time"

// CapabilityValidator turns a query-supplied content token into a
// normal session credential when, and only when, the token's embedded
// scope exactly matches the requested resource.
//
// It never rejects a request itself. Every failure (absent token,
// malformed token, bad signature, expiry, schema violation, scope
// mismatch) degrades identically to "no grant", and the caller falls
// back to ordinary session authentication.
type CapabilityValidator struct {
	signer *Signer
}

// NewCapabilityValidator creates a CapabilityValidator over the
// process-wide signer.
func NewCapabilityValidator(signer *Signer) *CapabilityValidator {
	return &CapabilityValidator{signer: signer}
}

// TryGrant verifies queryToken and, on an exact scope match with the
// requested route, re-signs a plain session credential for the embedded
// username at the token's original issuance time. The returned token is
// not itself an access decision: the caller must push it through the
// same mandatory session verification used for cookies, so the
// capability path shares the single trust root and enforcement point.
func (v *CapabilityValidator) TryGrant(routeHash, routeIndices, queryToken string) (string, bool) {
	if queryToken == "" {
		return "", false
	}

	claims, err := v.signer.parse(queryToken)
	if err != nil {
		return "", false
	}

	// Schema validation: string sub/hash/indices, integer-seconds iat.
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}
	hash, ok := claims["hash"].(string)
	if !ok {
		return "", false
	}
	indices, ok := claims["indices"].(string)
	if !ok {
		return "", false
	}
	iat, ok := numericClaim(claims, "iat")
	if !ok {
		return "", false
	}

	// Exact byte equality. No normalization, no prefix or range
	// semantics: a token minted for one resource never unlocks another.
	if hash != routeHash || indices != routeIndices {
		return "", false
	}

	// Keep the original issuance time so the grant cannot outlive the
	// session it was derived from.
	cred, err := v.signer.Sign(sub, time.Unix(iat, 0))
	if err != nil {
		return "", false
	}
	return cred, true
}
