// Package qr produces encrypted check-in codes for confirmed bookings.
package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/skip2/go-qrcode"
)

type Generator struct {
	key []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to a 32-byte AES key
	return &Generator{key: hashed[:]}
}

// Generate serializes the payload, encrypts it, and renders it as a PNG QR
// code suitable for door check-in scanners.
func (g *Generator) Generate(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	encrypted, err := g.encrypt(data)
	if err != nil {
		return nil, fmt.Errorf("encrypt payload: %w", err)
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func (g *Generator) encrypt(data []byte) (string, error) {
	block, err := aes.NewCipher(g.key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
