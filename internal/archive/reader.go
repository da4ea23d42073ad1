// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive reads named entries from a slicer project container,
// a plain zip archive with conventional internal paths.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrUnreadable means the path is not a readable zip container.
	ErrUnreadable = errors.New("container unreadable")

	// ErrEntryNotFound means a named entry is absent from the container.
	ErrEntryNotFound = errors.New("entry not found")
)

// Reader provides named-entry lookup over an open container. Entries
// are small configuration documents; reads are whole-entry only.
type Reader struct {
	rc    *zip.ReadCloser
	index map[string]*zip.File
	names []string
}

// Open opens the container at path. It fails with a wrapped
// ErrUnreadable when the file is missing or not a valid zip.
func Open(path string) (*Reader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	r := &Reader{
		rc:    rc,
		index: make(map[string]*zip.File, len(rc.File)),
	}
	for _, f := range rc.File {
		r.index[f.Name] = f
		r.names = append(r.names, f.Name)
	}
	return r, nil
}

// Entries returns the entry names in container order.
func (r *Reader) Entries() []string {
	return r.names
}

// Has reports whether the container holds an entry named name.
func (r *Reader) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// ReadBytes returns the full content of the named entry. It fails with
// a wrapped ErrEntryNotFound when the entry is absent.
func (r *Reader) ReadBytes(name string) ([]byte, error) {
	f, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening entry %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading entry %s: %w", name, err)
	}
	return data, nil
}

// ReadText returns the named entry as a UTF-8 string.
func (r *Reader) ReadText(name string) (string, error) {
	data, err := r.ReadBytes(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.rc.Close()
}
