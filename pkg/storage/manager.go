package storage

import (
	"sync"

	"github.com/skbags/atelier/config"
	"github.com/skbags/atelier/pkg/logger"
)

var (
	managerMu sync.RWMutex
	local     *localDisk
	remote    Disk // nil unless S3 is configured and reachable
)

// Connect boots the storage drivers. Call once at application startup.
// The local disk is always available; S3 comes up only when S3_BUCKET is
// configured and the client can be built.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	local = newLocalDisk()

	if config.StorageS3Bucket() == "" {
		return
	}
	d, err := newS3Disk()
	if err != nil {
		logger.Warn("storage: s3 disabled", "error", err)
		return
	}
	remote = d
}

// Uploads returns the preferred disk for new uploads: S3 when configured,
// the local disk otherwise.
func Uploads() Disk {
	managerMu.RLock()
	defer managerMu.RUnlock()
	if remote != nil {
		return remote
	}
	return local
}

// Local always returns the local-filesystem disk. The upload service falls
// back to it when an S3 write fails mid-request.
func Local() Disk {
	managerMu.RLock()
	defer managerMu.RUnlock()
	return local
}

// LocalRoot is the absolute directory backing the local disk, mounted by the
// router at /uploads.
func LocalRoot() string {
	managerMu.RLock()
	defer managerMu.RUnlock()
	if local == nil {
		return config.StorageLocalRoot()
	}
	return local.Root()
}
