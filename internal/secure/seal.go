package secure

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/nacl/box"
)

// Algorithm identifies the sealing scheme in the message header.
const Algorithm = "x25519-xsalsa20-poly1305"

// SealedMessage is the wire form of an encrypted payload. The header
// carries the sender's public key so the collector can authenticate
// and open the box with its own secret key.
type SealedMessage struct {
	Header     Header `json:"header"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

type Header struct {
	Algorithm string `json:"algorithm"`
	PublicKey string `json:"public_key"`
}

// Sealer encrypts payloads for one peer using the beacon's own key
// pair and the peer's public key. Safe to reuse for the process
// lifetime; every Seal call draws a fresh nonce.
type Sealer struct {
	pair *KeyPair
	peer *[KeySize]byte
}

func NewSealer(pair *KeyPair, peerPublic *[KeySize]byte) *Sealer {
	return &Sealer{pair: pair, peer: peerPublic}
}

// Seal encrypts plaintext and returns the serialized SealedMessage.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("drawing nonce: %w", err)
	}
	ciphertext := box.Seal(nil, plaintext, &nonce, s.peer, s.pair.Secret)
	return json.Marshal(SealedMessage{
		Header: Header{
			Algorithm: Algorithm,
			PublicKey: base64.StdEncoding.EncodeToString(s.pair.Public[:]),
		},
		Nonce:      base64.StdEncoding.EncodeToString(nonce[:]),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	})
}

// Open is the collector-side inverse of Seal: it parses a serialized
// SealedMessage and decrypts it with the receiver's secret key, using
// the sender public key carried in the header.
func Open(raw []byte, secretKey *[KeySize]byte) ([]byte, error) {
	var msg SealedMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("parsing sealed message: %w", err)
	}
	if msg.Header.Algorithm != Algorithm {
		return nil, fmt.Errorf("unsupported algorithm %q", msg.Header.Algorithm)
	}
	senderPublic, err := decodeKey("message", "public_key", msg.Header.PublicKey)
	if err != nil {
		return nil, err
	}
	nonceRaw, err := base64.StdEncoding.DecodeString(msg.Nonce)
	if err != nil || len(nonceRaw) != 24 {
		return nil, errors.New("malformed nonce")
	}
	var nonce [24]byte
	copy(nonce[:], nonceRaw)
	ciphertext, err := base64.StdEncoding.DecodeString(msg.Ciphertext)
	if err != nil {
		return nil, errors.New("malformed ciphertext")
	}
	plaintext, ok := box.Open(nil, ciphertext, &nonce, senderPublic, secretKey)
	if !ok {
		return nil, errors.New("authentication failed")
	}
	return plaintext, nil
}
