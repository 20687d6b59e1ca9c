package qr_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinefront/internal/qr"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateProducesPNG(t *testing.T) {
	gen := qr.NewGenerator("secret")

	code, err := gen.Generate(map[string]any{"booking_id": 7, "seats": []string{"A1"}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(code, pngHeader))
}

func TestGenerateIsRandomized(t *testing.T) {
	gen := qr.NewGenerator("secret")
	payload := map[string]int{"booking_id": 7}

	first, err := gen.Generate(payload)
	require.NoError(t, err)
	second, err := gen.Generate(payload)
	require.NoError(t, err)

	// A fresh IV per code keeps identical payloads from producing
	// identical ciphertext.
	assert.NotEqual(t, first, second)
}
