// Package storage stores product images on a configurable disk:
// local filesystem for development, S3-compatible object storage in
// production.
package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/micromarket/config"
)

// Disk is the surface every storage driver implements.
type Disk interface {
	PutStream(path string, r io.Reader) error
	Get(path string) ([]byte, error)
	Exists(path string) bool
	Delete(path string) error
	// URL returns the public URL for path on this disk.
	URL(path string) string
}

// Manager selects between configured disks.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// New boots the storage manager: the local disk is always available and the
// S3 disk is added when S3_BUCKET is configured.
func New() *Manager {
	m := &Manager{
		disks:       map[string]Disk{"local": newLocalDisk()},
		defaultDisk: "local",
	}

	if d, err := newS3Disk(); err == nil {
		m.disks["s3"] = d
	}

	m.SetDefault(config.StorageDefault())
	return m
}

// SetDefault sets the disk returned by Default.
// Unknown names keep the current default.
func (m *Manager) SetDefault(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.disks[name]; ok {
		m.defaultDisk = name
	}
}

// Use returns the named disk ("local" or "s3").
func (m *Manager) Use(name string) (Disk, error) {
	m.mu.RLock()
	d, ok := m.disks[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the disk selected by STORAGE_DISK.
func (m *Manager) Default() Disk {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.disks[m.defaultDisk]
}
