//go:build !unix

package serialization

import (
	"io"
	"os"
)

// mmapFile reads the whole file into memory on platforms without mmap support.
func mmapFile(f *os.File, size int64) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return data, nil
}

// munmapFile is a no-op; the buffer is reclaimed by the garbage collector.
func munmapFile([]byte) error {
	return nil
}
