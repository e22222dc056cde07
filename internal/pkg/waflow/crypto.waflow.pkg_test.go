package waflow

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// encryptAsClient builds a request the way the WhatsApp client does.
func encryptAsClient(t *testing.T, pub *rsa.PublicKey, payload DecryptedRequest) (EncryptedRequest, []byte, []byte) {
	t.Helper()

	aesKey := make([]byte, 16)
	iv := make([]byte, nonceSize)
	_, err := rand.Read(aesKey)
	require.NoError(t, err)
	_, err = rand.Read(iv)
	require.NoError(t, err)

	encKey, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, aesKey, nil)
	require.NoError(t, err)

	block, err := aes.NewCipher(aesKey)
	require.NoError(t, err)
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	require.NoError(t, err)

	plain, err := json.Marshal(payload)
	require.NoError(t, err)

	return EncryptedRequest{
		EncryptedFlowData: base64.StdEncoding.EncodeToString(gcm.Seal(nil, iv, plain, nil)),
		EncryptedAESKey:   base64.StdEncoding.EncodeToString(encKey),
		InitialVector:     base64.StdEncoding.EncodeToString(iv),
	}, aesKey, iv
}

func TestDecryptRequestAndEncryptResponse(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	body, aesKey, iv := encryptAsClient(t, &key.PublicKey, DecryptedRequest{
		Version: "3.0",
		Action:  ActionDataExchange,
		Screen:  "CHECKOUT",
		Data:    map[string]interface{}{"session_id": "sess-1"},
	})

	req, session, err := DecryptRequest(key, body)
	require.NoError(t, err)
	require.Equal(t, "sess-1", req.StringData("session_id"))
	require.False(t, req.IsPing())

	sealed, err := session.EncryptResponse(FlowResponse{Screen: ScreenOrderSummary, Data: map[string]interface{}{"total": "10,000 IDR"}})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	flipped := make([]byte, len(iv))
	for i := range iv {
		flipped[i] = ^iv[i]
	}
	block, err := aes.NewCipher(aesKey)
	require.NoError(t, err)
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	require.NoError(t, err)
	plain, err := gcm.Open(nil, flipped, raw, nil)
	require.NoError(t, err)

	var resp FlowResponse
	require.NoError(t, json.Unmarshal(plain, &resp))
	require.Equal(t, ScreenOrderSummary, resp.Screen)
	require.Equal(t, "10,000 IDR", resp.Data["total"])
}

func TestDecryptRequestRejectsBadBase64(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	_, _, err = DecryptRequest(key, EncryptedRequest{EncryptedAESKey: "%%%", InitialVector: "", EncryptedFlowData: ""})
	require.Error(t, err)
}

func TestLoadPrivateKeyPKCS1AndPKCS8(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	dir := t.TempDir()

	pkcs1 := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	p1 := filepath.Join(dir, "pkcs1.pem")
	require.NoError(t, os.WriteFile(p1, pkcs1, 0o600))
	loaded, err := LoadPrivateKey(p1)
	require.NoError(t, err)
	require.True(t, key.Equal(loaded))

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	p8 := filepath.Join(dir, "pkcs8.pem")
	require.NoError(t, os.WriteFile(p8, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), 0o600))
	loaded, err = LoadPrivateKey(p8)
	require.NoError(t, err)
	require.True(t, key.Equal(loaded))

	_, err = ParsePrivateKey([]byte("not pem"))
	require.Error(t, err)
}

func TestPingResponse(t *testing.T) {
	req := &DecryptedRequest{Action: "ping"}
	require.True(t, req.IsPing())
	require.Equal(t, "active", PingResponse().Data["status"])
	require.Equal(t, ScreenError, ErrorResponse("x").Screen)
}
