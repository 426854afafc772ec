//go:build windows

package shm

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// windowsRegion maps a named Windows file mapping read-only.
type windowsRegion struct {
	mu     sync.Mutex
	handle windows.Handle
	view   uintptr
	size   int
	closed bool
}

// OpenRegion opens the named file mapping created by the producer and maps
// size bytes of it read-only. It fails with ErrNotFound when the producer
// has not created the mapping yet.
func OpenRegion(name string, size int) (Region, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("shm: invalid region name %q: %w", name, err)
	}

	handle, err := windows.OpenFileMapping(windows.FILE_MAP_READ, false, namePtr)
	if err != nil {
		if err == windows.ERROR_FILE_NOT_FOUND {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("shm: open file mapping %q: %w", name, err)
	}

	view, err := windows.MapViewOfFile(handle, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(handle)
		return nil, fmt.Errorf("shm: map view of %q: %w", name, err)
	}

	return &windowsRegion{handle: handle, view: view, size: size}, nil
}

// Read copies the current contents of the mapped view. The copy means the
// decoder never observes a page the producer is mid-rewrite on for longer
// than the memcpy itself.
func (r *windowsRegion) Read() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}

	buf := make([]byte, r.size)
	copy(buf, unsafe.Slice((*byte)(unsafe.Pointer(r.view)), r.size))
	return buf, nil
}

// Close unmaps the view and releases the mapping handle. Safe to call more
// than once.
func (r *windowsRegion) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if err := windows.UnmapViewOfFile(r.view); err != nil {
		windows.CloseHandle(r.handle)
		return fmt.Errorf("shm: unmap view: %w", err)
	}
	if err := windows.CloseHandle(r.handle); err != nil {
		return fmt.Errorf("shm: close mapping handle: %w", err)
	}
	return nil
}
