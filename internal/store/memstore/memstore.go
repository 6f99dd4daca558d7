// Package memstore is an in-memory key-value layer for tests and throwaway sessions.
package memstore

type Store struct {
	data map[string][]byte
}

func New() *Store { return &Store{data: make(map[string][]byte)} }

func (s *Store) Get(key string) ([]byte, bool, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) Set(key string, value []byte) error {
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Close() error { return nil }
