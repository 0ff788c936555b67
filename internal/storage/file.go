package storage

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/altkdf/schnorr-canister/pkg/sealing"
)

// sealingSalt binds the scrypt derivation to the seed store.
var sealingSalt = []byte("schnorr-seed-store-v1")

// FileStore keeps sealed seeds and the signature counter on the local
// filesystem, one file per seed, written with an atomic rename.
type FileStore struct {
	baseDir string
	sealer  *sealing.Sealer

	mu sync.Mutex // guards the counter file
}

// NewFileStore creates the base directory and the sealing key.
func NewFileStore(baseDir string, passphrase string) (*FileStore, error) {
	sealer, err := sealing.New(passphrase, sealingSalt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init sealer")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(err, "failed to create base directory")
	}

	return &FileStore{
		baseDir: baseDir,
		sealer:  sealer,
	}, nil
}

func (s *FileStore) seedPath(keyID string) string {
	// Key IDs contain ":" which is not filesystem-safe everywhere.
	return filepath.Join(s.baseDir, hex.EncodeToString([]byte(keyID))+".enc")
}

func (s *FileStore) counterPath() string {
	return filepath.Join(s.baseDir, "sig_count")
}

// PutSeedIfAbsent seals and stores the seed unless the key already has one.
func (s *FileStore) PutSeedIfAbsent(ctx context.Context, keyID string, seed []byte) (bool, error) {
	path := s.seedPath(keyID)

	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Wrap(err, "failed to stat seed file")
	}

	sealed, err := s.sealer.Seal(seed)
	if err != nil {
		return false, errors.Wrap(err, "failed to seal seed")
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, sealed, 0600); err != nil {
		return false, errors.Wrap(err, "failed to write sealed seed")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return false, errors.Wrap(err, "failed to rename temp file")
	}

	return true, nil
}

// GetSeed loads and unseals the seed for keyID.
func (s *FileStore) GetSeed(ctx context.Context, keyID string) ([]byte, error) {
	sealed, err := os.ReadFile(s.seedPath(keyID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSeedNotFound
		}
		return nil, errors.Wrap(err, "failed to read sealed seed")
	}

	seed, err := s.sealer.Open(sealed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unseal seed")
	}

	return seed, nil
}

// ListKeyIDs returns the IDs of all stored seeds.
func (s *FileStore) ListKeyIDs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read base directory")
	}

	var keyIDs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".enc") {
			continue
		}
		decoded, err := hex.DecodeString(strings.TrimSuffix(name, ".enc"))
		if err != nil {
			continue
		}
		keyIDs = append(keyIDs, string(decoded))
	}

	return keyIDs, nil
}

// Ping reports whether the base directory is accessible.
func (s *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.baseDir)
	return errors.Wrap(err, "base directory not accessible")
}

// IncrementSigCount adds one to the persisted counter and returns it.
func (s *FileStore) IncrementSigCount(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.readSigCount()
	if err != nil {
		return 0, err
	}
	count++

	tmpPath := s.counterPath() + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(strconv.FormatInt(count, 10)), 0600); err != nil {
		return 0, errors.Wrap(err, "failed to write counter")
	}
	if err := os.Rename(tmpPath, s.counterPath()); err != nil {
		return 0, errors.Wrap(err, "failed to rename counter file")
	}

	return count, nil
}

// GetSigCount returns the persisted counter value.
func (s *FileStore) GetSigCount(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readSigCount()
}

func (s *FileStore) readSigCount() (int64, error) {
	data, err := os.ReadFile(s.counterPath())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to read counter file")
	}

	count, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "failed to parse counter file")
	}
	return count, nil
}
