package ports

// PasswordHasher is the one-way credential hashing contract. Hash salts
// internally, so two hashes of the same secret differ; Verify is the only way
// to check a secret against a stored digest.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}
