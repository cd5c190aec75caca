package chunk

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Data is the persisted payload for one world-tile chunk: whatever the
// caller wants saved, keyed opaquely as bytes via gob so chunk contents
// stay generic across terrain/settlement/fauna chunk kinds.
type Data struct {
	WorldX, WorldY int32
	Payload        []byte
}

// CacheSize bounds the in-memory LRU, matching the original's fixed
// 64-chunk cache.
const CacheSize = 64

// Storage persists chunks to {baseDir}/world_{seed}/chunk_{x}_{y}.bin and
// fronts reads with an LRU cache. A chunk that was never saved loads as
// not found; Storage does not regenerate it.
type Storage struct {
	baseDir   string
	worldSeed uint64
	cache     *lru.Cache[[2]int32, *Data]
}

// NewStorage constructs a chunk store rooted at baseDir for the given
// world seed.
func NewStorage(baseDir string, worldSeed uint64) (*Storage, error) {
	cache, err := lru.New[[2]int32, *Data](CacheSize)
	if err != nil {
		return nil, err
	}
	return &Storage{baseDir: baseDir, worldSeed: worldSeed, cache: cache}, nil
}

func (s *Storage) worldDir() string {
	return filepath.Join(s.baseDir, fmt.Sprintf("world_%d", s.worldSeed))
}

func (s *Storage) chunkPath(worldX, worldY int32) string {
	return filepath.Join(s.worldDir(), fmt.Sprintf("chunk_%d_%d.bin", worldX, worldY))
}

// SaveChunk writes a chunk to disk and updates the cache.
func (s *Storage) SaveChunk(d *Data) error {
	if err := os.MkdirAll(s.worldDir(), 0o755); err != nil {
		return fmt.Errorf("chunk: create world dir: %w", err)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(d); err != nil {
		return fmt.Errorf("chunk: encode: %w", err)
	}
	if err := os.WriteFile(s.chunkPath(d.WorldX, d.WorldY), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("chunk: write: %w", err)
	}
	s.cache.Add([2]int32{d.WorldX, d.WorldY}, d)
	return nil
}

// LoadChunk returns a previously saved chunk, or (nil, false) if none
// exists on disk or in cache.
func (s *Storage) LoadChunk(worldX, worldY int32) (*Data, bool, error) {
	key := [2]int32{worldX, worldY}
	if d, ok := s.cache.Get(key); ok {
		return d, true, nil
	}

	raw, err := os.ReadFile(s.chunkPath(worldX, worldY))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("chunk: read: %w", err)
	}

	var d Data
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&d); err != nil {
		return nil, false, fmt.Errorf("chunk: decode: %w", err)
	}
	s.cache.Add(key, &d)
	return &d, true, nil
}

// DeleteChunk removes a chunk from disk and cache.
func (s *Storage) DeleteChunk(worldX, worldY int32) error {
	s.cache.Remove([2]int32{worldX, worldY})
	err := os.Remove(s.chunkPath(worldX, worldY))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("chunk: delete: %w", err)
	}
	return nil
}

// ListChunks enumerates every chunk file persisted for this world seed.
func (s *Storage) ListChunks() ([][2]int32, error) {
	entries, err := os.ReadDir(s.worldDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("chunk: list: %w", err)
	}
	var coords [][2]int32
	for _, e := range entries {
		var x, y int32
		if _, err := fmt.Sscanf(e.Name(), "chunk_%d_%d.bin", &x, &y); err == nil {
			coords = append(coords, [2]int32{x, y})
		}
	}
	return coords, nil
}

// TotalSize sums the on-disk size of every persisted chunk.
func (s *Storage) TotalSize() (int64, error) {
	entries, err := os.ReadDir(s.worldDir())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("chunk: total size: %w", err)
	}
	var total int64
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

// Clear removes every persisted chunk for this world seed and empties the
// cache.
func (s *Storage) Clear() error {
	s.cache.Purge()
	err := os.RemoveAll(s.worldDir())
	if err != nil {
		return fmt.Errorf("chunk: clear: %w", err)
	}
	return nil
}
