// Package encryption seals small secrets at rest, such as the bearer token
// the voicefeedback CLI keeps between runs.
//
// Keys are derived from a passphrase with HKDF-SHA256 and used with either
// AES-256-GCM or ChaCha20-Poly1305. Associated data binds a ciphertext to
// its context, so a token sealed for one endpoint does not open for another.
//
//	enc, err := encryption.New(passphrase, encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
//	sealed, err := enc.Encrypt([]byte(token), []byte(endpoint))
//	token, err := enc.Decrypt(sealed, []byte(endpoint))
package encryption
