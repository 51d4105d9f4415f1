// Package tokenstore persists the session token between launches.
package tokenstore

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/SscSPs/komunity_app/internal/core/ports"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// ErrCorrupt is returned when the stored token cannot be decrypted.
var ErrCorrupt = errors.New("token store is corrupt or the passphrase is wrong")

// FileStore keeps the token in a file sealed with a key derived from a passphrase.
// The file layout is salt | nonce | secretbox(token).
type FileStore struct {
	mu         sync.Mutex
	path       string
	passphrase []byte
}

// NewFileStore creates a store at path. The file is created on the first Save.
func NewFileStore(path, passphrase string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("token store path is required")
	}
	if passphrase == "" {
		return nil, errors.New("token store passphrase is required")
	}
	return &FileStore{path: path, passphrase: []byte(passphrase)}, nil
}

var _ ports.TokenStore = (*FileStore)(nil)

func (s *FileStore) deriveKey(salt []byte) *[keySize]byte {
	var key [keySize]byte
	copy(key[:], argon2.IDKey(s.passphrase, salt, argonTime, argonMemory, argonThreads, keySize))
	return &key
}

func (s *FileStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+nonceSize+len(token)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, []byte(token), &nonce, s.deriveKey(salt))

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace token: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if len(raw) < saltSize+nonceSize+secretbox.Overhead {
		return "", ErrCorrupt
	}

	salt := raw[:saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], raw[saltSize:saltSize+nonceSize])
	token, ok := secretbox.Open(nil, raw[saltSize+nonceSize:], &nonce, s.deriveKey(salt))
	if !ok {
		return "", ErrCorrupt
	}
	return string(token), nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}
