// Package secure holds the beacon's static key material and seals
// envelopes for the collector using NaCl box: each party owns a
// long-lived X25519 key pair and learns the peer's public key
// out-of-band, with no certificate authority or handshake.
package secure

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/nacl/box"
	"gopkg.in/yaml.v3"
)

// KeySize is the length of both halves of a key pair.
const KeySize = 32

// ErrKeyLoad reports missing or corrupt key certificate files.
var ErrKeyLoad = errors.New("key material unreadable")

// KeyPair is a party's long-lived X25519 key pair, loaded once at
// startup and held for the process lifetime.
type KeyPair struct {
	Public *[KeySize]byte
	Secret *[KeySize]byte
}

// Generate creates a fresh key pair.
func Generate() (*KeyPair, error) {
	public, secret, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating key pair: %w", err)
	}
	return &KeyPair{Public: public, Secret: secret}, nil
}

// certificate is the on-disk form of key material: base64 keys in a
// small yaml document. The public certificate omits the secret key.
type certificate struct {
	PublicKey string `yaml:"public_key"`
	SecretKey string `yaml:"secret_key,omitempty"`
}

// WriteCertificates writes the pair as two files in dir: <name>.key
// holding only the public key (0644, safe to hand out) and
// <name>_secret.key holding both halves (0600). It returns the two
// paths, public first.
func WriteCertificates(dir, name string, pair *KeyPair) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating key directory: %w", err)
	}
	publicPath := filepath.Join(dir, name+".key")
	secretPath := filepath.Join(dir, name+"_secret.key")

	publicDoc, err := yaml.Marshal(certificate{
		PublicKey: base64.StdEncoding.EncodeToString(pair.Public[:]),
	})
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(publicPath, publicDoc, 0o644); err != nil {
		return "", "", fmt.Errorf("writing public certificate: %w", err)
	}

	secretDoc, err := yaml.Marshal(certificate{
		PublicKey: base64.StdEncoding.EncodeToString(pair.Public[:]),
		SecretKey: base64.StdEncoding.EncodeToString(pair.Secret[:]),
	})
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(secretPath, secretDoc, 0o600); err != nil {
		return "", "", fmt.Errorf("writing secret certificate: %w", err)
	}

	return publicPath, secretPath, nil
}

// LoadPublicKey reads a certificate and returns its public key. Works
// on both public and secret certificates.
func LoadPublicKey(path string) (*[KeySize]byte, error) {
	cert, err := loadCertificate(path)
	if err != nil {
		return nil, err
	}
	return decodeKey(path, "public_key", cert.PublicKey)
}

// LoadKeyPair reads a secret certificate and returns the full pair.
// A public-only certificate fails with ErrKeyLoad.
func LoadKeyPair(path string) (*KeyPair, error) {
	cert, err := loadCertificate(path)
	if err != nil {
		return nil, err
	}
	public, err := decodeKey(path, "public_key", cert.PublicKey)
	if err != nil {
		return nil, err
	}
	if cert.SecretKey == "" {
		return nil, fmt.Errorf("%w: %s: certificate has no secret_key", ErrKeyLoad, path)
	}
	secret, err := decodeKey(path, "secret_key", cert.SecretKey)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Public: public, Secret: secret}, nil
}

func loadCertificate(path string) (*certificate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrKeyLoad, path, err)
	}
	var cert certificate
	if err := yaml.Unmarshal(raw, &cert); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrKeyLoad, path, err)
	}
	if cert.PublicKey == "" {
		return nil, fmt.Errorf("%w: %s: certificate has no public_key", ErrKeyLoad, path)
	}
	return &cert, nil
}

func decodeKey(path, field, encoded string) (*[KeySize]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s: %v", ErrKeyLoad, path, field, err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: %s: %s has %d bytes, want %d", ErrKeyLoad, path, field, len(raw), KeySize)
	}
	var key [KeySize]byte
	copy(key[:], raw)
	return &key, nil
}
