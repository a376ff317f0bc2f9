package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// Cipher seals small secrets (TOTP seeds) with AES-GCM before they reach
// the database. An empty key disables sealing, which keeps local setups
// working without configuration; production validation rejects that.
type Cipher struct {
	key []byte
}

func NewCipher(rawKey string) (*Cipher, error) {
	if rawKey == "" {
		return &Cipher{}, nil
	}
	key, err := decodeKey(rawKey)
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("DATA_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(key))
	}
	return &Cipher{key: key}, nil
}

func (c *Cipher) Enabled() bool {
	return len(c.key) == 32
}

// SealString returns nonce||ciphertext, or the plaintext bytes unchanged
// when no key is configured.
func (c *Cipher) SealString(plain string) ([]byte, error) {
	if plain == "" {
		return nil, nil
	}
	if !c.Enabled() {
		return []byte(plain), nil
	}
	gcm, err := c.gcm()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, []byte(plain), nil), nil
}

func (c *Cipher) OpenString(sealed []byte) (string, error) {
	if len(sealed) == 0 {
		return "", nil
	}
	if !c.Enabled() {
		return string(sealed), nil
	}
	gcm, err := c.gcm()
	if err != nil {
		return "", err
	}
	if len(sealed) < gcm.NonceSize() {
		return "", errors.New("sealed value too short")
	}
	plain, err := gcm.Open(nil, sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():], nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func (c *Cipher) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// decodeKey accepts hex or base64; a raw 32-byte string also works.
func decodeKey(raw string) ([]byte, error) {
	if len(raw) == 64 {
		if key, err := hex.DecodeString(raw); err == nil {
			return key, nil
		}
	}
	if key, err := base64.StdEncoding.DecodeString(raw); err == nil {
		return key, nil
	}
	if key, err := base64.RawStdEncoding.DecodeString(raw); err == nil {
		return key, nil
	}
	return []byte(raw), nil
}
