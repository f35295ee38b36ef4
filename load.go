package rhymer

import (
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

// Load memory-maps the dictionary and phone table at the given paths and builds
// a Rhymer from them.
func Load(dictionaryPath, phonesPath string, opts ...Option) (*Rhymer, error) {
	dictionary, err := mmap.Open(dictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("rhymer: open dictionary: %w", err)
	}
	defer dictionary.Close()

	phones, err := mmap.Open(phonesPath)
	if err != nil {
		return nil, fmt.Errorf("rhymer: open phones: %w", err)
	}
	defer phones.Close()

	return New(section(dictionary), section(phones), opts...)
}

func section(r *mmap.ReaderAt) io.Reader {
	return io.NewSectionReader(r, 0, int64(r.Len()))
}
