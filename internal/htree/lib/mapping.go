package lib

import (
	"fmt"
	"os"
)

// Mapping is a read-only view of a whole file. Bytes must not be modified;
// on unix the pages are mapped PROT_READ and a write faults.
type Mapping struct {
	data  []byte
	unmap func([]byte) error
}

// Bytes returns the mapped contents. The slice is invalid after Close.
func (m *Mapping) Bytes() []byte { return m.data }

// Close releases the mapping. It is safe to call more than once.
func (m *Mapping) Close() error {
	if m.data == nil || m.unmap == nil {
		m.data = nil
		return nil
	}
	err := m.unmap(m.data)
	m.data = nil
	return err
}

// OpenMapping opens path and maps its contents read-only. Empty files give
// an empty mapping.
func OpenMapping(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	if info.Size() == 0 {
		return &Mapping{data: []byte{}}, nil
	}
	return mapFile(f, info.Size())
}
