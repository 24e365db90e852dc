package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotDirectory is returned when the output path exists but is a file.
var ErrNotDirectory = errors.New("output path is not a directory")

// Sink is a destination for rendered artifacts, addressed by file name.
type Sink interface {
	Create(name string) (io.WriteCloser, error)
}

// DirSink writes artifacts into an existing directory. It never creates the
// directory itself.
type DirSink struct {
	Dir string
}

// NewDirSink returns a sink writing into dir.
func NewDirSink(dir string) DirSink {
	return DirSink{Dir: dir}
}

// Create opens dir/name for writing, truncating any previous file.
func (d DirSink) Create(name string) (io.WriteCloser, error) {
	info, err := os.Stat(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("output directory %s: %w", d.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, d.Dir)
	}

	path := filepath.Join(d.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

// MemorySink keeps artifacts in memory. It is used by tests and dry runs.
type MemorySink struct {
	files map[string]*bytes.Buffer
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string]*bytes.Buffer)}
}

// Create starts a new, empty artifact called name.
func (m *MemorySink) Create(name string) (io.WriteCloser, error) {
	buf := &bytes.Buffer{}
	m.files[name] = buf
	return nopCloser{buf}, nil
}

// Bytes returns the content written to name, nil if it was never created.
func (m *MemorySink) Bytes(name string) []byte {
	buf, ok := m.files[name]
	if !ok {
		return nil
	}
	return buf.Bytes()
}

// Names lists created artifacts in lexical order.
func (m *MemorySink) Names() []string {
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
