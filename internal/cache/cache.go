package cache

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/gzip"
)

// entry is the gzip-compressed, JSON-encoded value stored under each key.
type entry struct {
	Nodes uint64 `json:"nodes"`
}

// Cache is an on-disk memoization table for perft leaf counts, keyed by
// (FEN, depth). It is a CLI-level convenience for repeated perft runs
// against the same named positions, not a position-search transposition
// table: the core board package knows nothing about it.
type Cache struct {
	db *badger.DB
}

// Open opens (creating if necessary) a Cache backed by a BadgerDB directory.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func cacheKey(fen string, depth int) []byte {
	sum := xxhash.Sum64String(fmt.Sprintf("%s|%d", fen, depth))
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, sum)
	return key
}

// Get returns the cached leaf count for (fen, depth), if present.
func (c *Cache) Get(fen string, depth int) (nodes uint64, ok bool, err error) {
	key := cacheKey(fen, depth)
	err = c.db.View(func(txn *badger.Txn) error {
		item, txErr := txn.Get(key)
		if txErr == badger.ErrKeyNotFound {
			return nil
		}
		if txErr != nil {
			return txErr
		}
		return item.Value(func(val []byte) error {
			gr, gzErr := gzip.NewReader(bytes.NewReader(val))
			if gzErr != nil {
				return gzErr
			}
			defer gr.Close()

			raw, readErr := io.ReadAll(gr)
			if readErr != nil {
				return readErr
			}
			var e entry
			if jsonErr := json.Unmarshal(raw, &e); jsonErr != nil {
				return jsonErr
			}
			nodes = e.Nodes
			ok = true
			return nil
		})
	})
	return nodes, ok, err
}

// Put stores the leaf count for (fen, depth).
func (c *Cache) Put(fen string, depth int, nodes uint64) error {
	raw, err := json.Marshal(entry{Nodes: nodes})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(raw); err != nil {
		return err
	}
	if err := gw.Close(); err != nil {
		return err
	}

	key := cacheKey(fen, depth)
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, buf.Bytes())
	})
}
