package utils

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signBody(t *testing.T, key *rsa.PrivateKey, body []byte) string {
	t.Helper()
	digest := sha256.Sum256(body)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(sig)
}

func TestVerifyContentSignature(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	body := []byte(`{"transaction":{"status":"successful"}}`)
	sig := signBody(t, key, body)

	assert.NoError(t, VerifyContentSignature(&key.PublicKey, body, sig))

	// Tampered payload no longer matches the digest.
	assert.ErrorIs(t, VerifyContentSignature(&key.PublicKey, []byte(`{"transaction":{"status":"failed"}}`), sig), ErrInvalidSignature)

	// Garbage that is not even base64.
	assert.ErrorIs(t, VerifyContentSignature(&key.PublicKey, body, "%%%not-base64%%%"), ErrInvalidSignature)

	// Signature from a different key.
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	assert.ErrorIs(t, VerifyContentSignature(&key.PublicKey, body, signBody(t, other, body)), ErrInvalidSignature)
}

func TestParseRSAPublicKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pkix, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pkixPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pkix})

	parsed, err := ParseRSAPublicKey(string(pkixPEM))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(&key.PublicKey))

	pkcs1PEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey)})
	parsed, err = ParseRSAPublicKey(string(pkcs1PEM))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(&key.PublicKey))

	_, err = ParseRSAPublicKey("not pem at all")
	assert.Error(t, err)
}
