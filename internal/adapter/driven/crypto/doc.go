// Package crypto implements the key derivation, authenticated encryption, and
// text encoding ports used by the password store.
//
// Envelopes are NaCl secretbox boxes (XSalsa20-Poly1305) laid out as
// nonce (24 bytes) || tag (16 bytes) || ciphertext, the same layout PyNaCl's
// SecretBox.encrypt produces. Keys are SHA-256 digests of the passphrase.
// The digest is unsalted and computed once, so it offers no resistance to
// offline guessing; it is kept for compatibility with existing databases.
package crypto
