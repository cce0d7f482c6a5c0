package archive

import (
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
)

// gameKeyPrefix namespaces archived-game keys within the shared Badger
// keyspace, so the store can later hold other record kinds without key
// collisions.
const gameKeyPrefix = "game:"

// BadgerStore is the default on-disk Store, backed by an embedded Badger
// key-value database. An embedded store fits the archive's "append-only,
// its own concurrency is its concern" contract (spec §5) without standing
// up an external database.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if absent) a Badger database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Put(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gameKeyPrefix+rec.GameID), data)
	})
}

func (s *BadgerStore) List() ([]Summary, error) {
	var out []Summary
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var rec Record
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				out = append(out, Summary{
					GameID:     rec.GameID,
					ArchivedAt: rec.ArchivedAt,
					Result:     rec.View.Result,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortSummariesNewestFirst(out)
	return out, nil
}

func sortSummariesNewestFirst(out []Summary) {
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ArchivedAt.After(out[j-1].ArchivedAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
}

func (s *BadgerStore) Replay(gameID string) (Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gameKeyPrefix + gameID))
		if err == badger.ErrKeyNotFound {
			return &ErrNotFound{GameID: gameID}
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
