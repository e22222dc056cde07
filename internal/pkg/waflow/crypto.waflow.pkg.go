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
	"fmt"
	"os"
)

// WhatsApp sends a 128-bit IV, so GCM runs with a 16 byte nonce.
const nonceSize = 16

// EncryptedRequest is the body WhatsApp posts to the data exchange endpoint.
type EncryptedRequest struct {
	EncryptedFlowData string `json:"encrypted_flow_data" validate:"required"`
	EncryptedAESKey   string `json:"encrypted_aes_key" validate:"required"`
	InitialVector     string `json:"initial_vector" validate:"required"`
}

type DecryptedRequest struct {
	Version   string                 `json:"version"`
	Action    string                 `json:"action"`
	Screen    string                 `json:"screen"`
	Data      map[string]interface{} `json:"data"`
	FlowToken string                 `json:"flow_token"`
}

type FlowResponse struct {
	Screen string                 `json:"screen,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// Session carries the negotiated key material needed to answer one request.
type Session struct {
	aesKey []byte
	iv     []byte
}

func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file: %w", err)
	}
	return ParsePrivateKey(keyData)
}

// ParsePrivateKey accepts PKCS#8 or PKCS#1 PEM.
func ParsePrivateKey(keyData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(keyData)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		rsaKey, err2 := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err2 != nil {
			return nil, fmt.Errorf("failed to parse private key (PKCS#8: %v, PKCS#1: %v)", err, err2)
		}
		return rsaKey, nil
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}
	return rsaKey, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

func decodeField(name, value string) ([]byte, error) {
	out, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return out, nil
}

func DecryptRequest(privateKey *rsa.PrivateKey, body EncryptedRequest) (*DecryptedRequest, *Session, error) {
	encryptedAESKey, err := decodeField("encrypted_aes_key", body.EncryptedAESKey)
	if err != nil {
		return nil, nil, err
	}
	iv, err := decodeField("initial_vector", body.InitialVector)
	if err != nil {
		return nil, nil, err
	}
	flowData, err := decodeField("encrypted_flow_data", body.EncryptedFlowData)
	if err != nil {
		return nil, nil, err
	}

	aesKey, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, privateKey, encryptedAESKey, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decrypt AES key: %w", err)
	}

	gcm, err := newGCM(aesKey)
	if err != nil {
		return nil, nil, err
	}

	// flow data is ciphertext with the tag appended
	plaintext, err := gcm.Open(nil, iv, flowData, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decrypt flow data: %w", err)
	}

	var decrypted DecryptedRequest
	if err := json.Unmarshal(plaintext, &decrypted); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal decrypted data: %w", err)
	}

	return &decrypted, &Session{aesKey: aesKey, iv: iv}, nil
}

// EncryptResponse seals the response with the request key and the bitwise inverted IV.
func (s *Session) EncryptResponse(response FlowResponse) (string, error) {
	plaintext, err := json.Marshal(response)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}

	flippedIV := make([]byte, len(s.iv))
	for i := range s.iv {
		flippedIV[i] = ^s.iv[i]
	}

	gcm, err := newGCM(s.aesKey)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(gcm.Seal(nil, flippedIV, plaintext, nil)), nil
}
