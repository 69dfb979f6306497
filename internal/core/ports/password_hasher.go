package ports

// PasswordHasher is the one-way hashing primitive shared by every partition.
// Hash embeds a fresh random salt per call, so two hashes of the same
// plaintext differ; Verify recomputes with the embedded salt and compares in
// constant time.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
