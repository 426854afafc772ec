//go:build !windows

package shm

import "fmt"

// OpenRegion fails on non-Windows platforms: the simulator only publishes
// its physics page as a Windows named file mapping. Use NewMockRegion (or
// the CLI's -dev mode) elsewhere.
func OpenRegion(name string, size int) (Region, error) {
	return nil, fmt.Errorf("%w (region %q)", ErrUnsupported, name)
}
