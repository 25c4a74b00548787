package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	fileSchemaVersion = 1

	cacheDirMode    os.FileMode = 0o700
	cacheFileMode   os.FileMode = 0o600
	tempFilePattern = ".state-*.toml.tmp"
)

var (
	fileLocksMu sync.Mutex
	fileLocks   = map[string]*sync.RWMutex{}
)

// FileStore guarda todas as chaves em um único documento TOML no dispositivo.
// Usado pelo cliente de terminal.
type FileStore struct {
	path string
	mu   *sync.RWMutex
	now  func() time.Time
}

type fileDocument struct {
	Version int                  `toml:"version"`
	Entries map[string]fileEntry `toml:"entries"`
}

type fileEntry struct {
	Value     string `toml:"value"`
	UpdatedAt string `toml:"updated_at"`
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("caminho do arquivo de cache é obrigatório")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve cache path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &FileStore{
		path: absPath,
		mu:   lockForPath(absPath),
		now:  time.Now,
	}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	entry, ok := doc.Entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(entry.Value), nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	doc.Entries[key] = fileEntry{
		Value:     string(value),
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
	}
	return s.write(doc)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	if _, ok := doc.Entries[key]; !ok {
		return nil
	}
	delete(doc.Entries, key)
	return s.write(doc)
}

func (s *FileStore) read() (fileDocument, error) {
	doc := fileDocument{Version: fileSchemaVersion, Entries: map[string]fileEntry{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read cache file: %w", err)
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode cache file: %w", err)
	}
	if doc.Version > fileSchemaVersion {
		return doc, fmt.Errorf("versão %d do arquivo de cache não suportada", doc.Version)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]fileEntry{}
	}
	doc.Version = fileSchemaVersion

	return doc, nil
}

// write substitui o arquivo de forma atômica (arquivo temporário + rename)
func (s *FileStore) write(doc fileDocument) error {
	if err := os.MkdirAll(filepath.Dir(s.path), cacheDirMode); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp cache file: %w", err)
	}

	if err := tempFile.Chmod(cacheFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp cache file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	fileLocksMu.Lock()
	defer fileLocksMu.Unlock()

	if mu, ok := fileLocks[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	fileLocks[path] = mu
	return mu
}
