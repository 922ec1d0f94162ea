package magicstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/M1Va1/Stockdoge/internal/board"
)

const (
	keyMagics      = "magics/v1"
	keyPerftPrefix = "perft/"

	numbersSize = 2 * 64 * 8
)

// ErrNoMagics is returned by Load when nothing has been saved yet.
var ErrNoMagics = errors.New("magicstore: no magic numbers stored")

// Store wraps BadgerDB.
type Store struct {
	db *badger.DB
}

// Open opens the database in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = badgerLogger{}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open magic store %q: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores the multipliers of both sliders.
func (s *Store) Save(n board.MagicNumbers) error {
	data := make([]byte, 0, numbersSize)
	for _, v := range n.Bishop {
		data = binary.LittleEndian.AppendUint64(data, v)
	}
	for _, v := range n.Rook {
		data = binary.LittleEndian.AppendUint64(data, v)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyMagics), data)
	})
}

// Load returns the stored multipliers, ErrNoMagics if there are none.
func (s *Store) Load() (board.MagicNumbers, error) {
	var n board.MagicNumbers

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyMagics))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoMagics
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != numbersSize {
				return fmt.Errorf("magicstore: stored numbers have %d bytes, want %d", len(val), numbersSize)
			}
			for i := range n.Bishop {
				n.Bishop[i] = binary.LittleEndian.Uint64(val[i*8:])
			}
			for i := range n.Rook {
				n.Rook[i] = binary.LittleEndian.Uint64(val[(64+i)*8:])
			}
			return nil
		})
	})

	return n, err
}

func perftKey(fen string, depth int) []byte {
	return []byte(keyPerftPrefix + strconv.Itoa(depth) + "/" + fen)
}

// SavePerft caches a perft node count for a position.
func (s *Store) SavePerft(fen string, depth int, nodes uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(fen, depth), binary.LittleEndian.AppendUint64(nil, nodes))
	})
}

// LookupPerft returns a cached perft count and whether one was found.
func (s *Store) LookupPerft(fen string, depth int) (uint64, bool, error) {
	var (
		nodes uint64
		found bool
	)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(fen, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("magicstore: perft entry has %d bytes", len(val))
			}
			nodes = binary.LittleEndian.Uint64(val)
			found = true
			return nil
		})
	})

	return nodes, found, err
}

// LoadOrBuild builds attack tables, reusing stored multipliers where they
// still verify. Newly searched numbers are written back.
func LoadOrBuild(ctx context.Context, s *Store, cfg board.MagicConfig) (*board.Magics, error) {
	logger := logx.WithContext(ctx)

	known, err := s.Load()
	switch {
	case errors.Is(err, ErrNoMagics):
		logger.Info("no stored magic numbers, searching")
	case err != nil:
		return nil, err
	default:
		cfg.Known = known
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	m, err := board.BuildMagics(cfg)
	if err != nil {
		return nil, err
	}
	logger.WithDuration(time.Since(start)).Infof("magic tables ready: %d squares searched, %d entries",
		m.Searched(), m.TableSize())

	if m.Searched() > 0 {
		if err := s.Save(m.Numbers()); err != nil {
			return nil, fmt.Errorf("save magic numbers: %w", err)
		}
	}
	return m, nil
}

// badgerLogger routes badger's log output through logx.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	logx.Errorf("badger: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...any) {
	logx.Infof("badger: "+format, args...)
}

func (badgerLogger) Infof(format string, args ...any) {
	logx.Debugf("badger: "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...any) {
	logx.Debugf("badger: "+format, args...)
}
