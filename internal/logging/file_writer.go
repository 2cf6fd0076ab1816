package logging

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Past logLimit the file is cut back to at most its newest logTail bytes.
const (
	logLimit = 6 << 20
	logTail  = 5 << 20
)

// cappedFile is an append-only log file that never grows far past limit.
// Trimming keeps whole lines only, so every record left in the file parses.
type cappedFile struct {
	mu    sync.Mutex
	f     *os.File
	limit int64
	tail  int64
}

func openCappedFile(path string) (*cappedFile, error) {
	return openCappedFileSized(path, logLimit, logTail)
}

// openCappedFileSized requires tail < limit.
func openCappedFileSized(path string, limit, tail int64) (*cappedFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	c := &cappedFile{f: f, limit: limit, tail: tail}
	if err := c.trim(); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

func (c *cappedFile) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.f.Write(p)
	if err == nil {
		err = c.trim()
	}
	return n, err
}

func (c *cappedFile) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.f.Close()
}

// trim rewrites the file as its last tail bytes, minus any partial line at
// the front. One extra byte is read so a tail that already starts on a line
// boundary is kept whole.
func (c *cappedFile) trim() error {
	info, err := c.f.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= c.limit {
		return nil
	}

	buf := make([]byte, c.tail+1)
	n, err := c.f.ReadAt(buf, size-c.tail-1)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	buf = buf[:n]
	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		buf = buf[i+1:]
	} else {
		buf = buf[1:]
	}

	if err := c.f.Truncate(0); err != nil {
		return err
	}
	// Appends land at the new end whatever the offset.
	_, err = c.f.Write(buf)
	return err
}
