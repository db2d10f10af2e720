package secure

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCertificateRoundTrip(t *testing.T) {
	pair, err := Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	dir := t.TempDir()
	publicPath, secretPath, err := WriteCertificates(dir, "client", pair)
	if err != nil {
		t.Fatalf("write certificates: %v", err)
	}

	public, err := LoadPublicKey(publicPath)
	if err != nil {
		t.Fatalf("load public: %v", err)
	}
	if !bytes.Equal(public[:], pair.Public[:]) {
		t.Fatalf("public key mismatch after round trip")
	}

	loaded, err := LoadKeyPair(secretPath)
	if err != nil {
		t.Fatalf("load key pair: %v", err)
	}
	if !bytes.Equal(loaded.Public[:], pair.Public[:]) || !bytes.Equal(loaded.Secret[:], pair.Secret[:]) {
		t.Fatalf("key pair mismatch after round trip")
	}
}

func TestSecretCertificatePermissions(t *testing.T) {
	pair, err := Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	_, secretPath, err := WriteCertificates(t.TempDir(), "client", pair)
	if err != nil {
		t.Fatalf("write certificates: %v", err)
	}

	info, err := os.Stat(secretPath)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("secret certificate mode %o, want 600", perm)
	}
}

func TestLoadKeyPairRejectsPublicOnlyCertificate(t *testing.T) {
	pair, err := Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	publicPath, _, err := WriteCertificates(t.TempDir(), "client", pair)
	if err != nil {
		t.Fatalf("write certificates: %v", err)
	}

	if _, err := LoadKeyPair(publicPath); !errors.Is(err, ErrKeyLoad) {
		t.Fatalf("expected ErrKeyLoad, got %v", err)
	}
}

func TestLoadRejectsMissingAndCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPublicKey(filepath.Join(dir, "missing.key")); !errors.Is(err, ErrKeyLoad) {
		t.Fatalf("missing file: expected ErrKeyLoad, got %v", err)
	}

	corrupt := filepath.Join(dir, "corrupt.key")
	if err := os.WriteFile(corrupt, []byte("public_key: not!base64\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadPublicKey(corrupt); !errors.Is(err, ErrKeyLoad) {
		t.Fatalf("corrupt key: expected ErrKeyLoad, got %v", err)
	}

	short := filepath.Join(dir, "short.key")
	if err := os.WriteFile(short, []byte("public_key: c2hvcnQ=\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadPublicKey(short); !errors.Is(err, ErrKeyLoad) {
		t.Fatalf("short key: expected ErrKeyLoad, got %v", err)
	}
}
