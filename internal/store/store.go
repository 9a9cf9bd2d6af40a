// Package store defines the key-value persistence boundary used by the task list.
package store

import "errors"

// Store is a string-keyed, string-valued store. A missing key is reported
// with ok == false and a nil error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("store closed")

// Memory keeps values in a map. Contents are lost when the process exits.
type Memory struct {
	values map[string]string
	closed bool
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

func (m *Memory) Close() error {
	m.closed = true
	return nil
}
