package driven

// KeyDeriver turns a passphrase into a fixed-length symmetric key. The same
// passphrase must always produce the same key.
type KeyDeriver interface {
	DeriveKey(passphrase string) ([]byte, error)
}

// Cipher performs authenticated encryption under a single session key.
// Every Encrypt call uses a fresh random nonce. Decrypt returns
// ErrAuthentication when the envelope does not verify.
type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(envelope []byte) ([]byte, error)

	// Wipe discards the key. Any later Encrypt or Decrypt fails with ErrStoreClosed.
	Wipe()
}

// CipherFactory builds a Cipher around key. Implementations take ownership of
// key and may zero it.
type CipherFactory func(key []byte) (Cipher, error)

// TextCodec converts binary envelopes to and from a text-safe form. Decode
// returns ErrMalformedEncoding for input Encode could not have produced.
type TextCodec interface {
	Encode(data []byte) string
	Decode(text string) ([]byte, error)
}
