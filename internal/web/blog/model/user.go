package model

// AdminIdentity is the single statically configured admin. It is an
// injected configuration value, not a persisted document: exactly one
// exists, identified by a fixed id.
type AdminIdentity struct {
	// ID fixed identifier, the only key ever used in the session store
	ID string
	// Email login email, compared after canonicalization
	Email string
	// PasswordHash one-way adaptive hash of the admin secret
	//
	//  `gcrypto.VerifyHashedPassword`
	PasswordHash string
}
