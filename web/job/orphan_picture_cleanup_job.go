// Package job holds the scheduled maintenance tasks run by the web server's
// cron instance.
package job

import (
	"os"
	"path/filepath"
	"time"

	"userhub/logger"
	"userhub/web/service"
)

// OrphanPictureCleanupJob removes uploaded profile pictures that no user row
// references. Registration writes the file before the insert, so an insert
// failure (typically a username/email conflict) leaves the file behind; this
// job reclaims it. The grace period keeps files from registrations still in
// flight.
type OrphanPictureCleanupJob struct {
	userService service.UserService

	picsDir string
	grace   time.Duration
}

func NewOrphanPictureCleanupJob(picsDir string, grace time.Duration) *OrphanPictureCleanupJob {
	return &OrphanPictureCleanupJob{
		picsDir: picsDir,
		grace:   grace,
	}
}

func (j *OrphanPictureCleanupJob) Run() {
	referenced, err := j.userService.ReferencedPictures()
	if err != nil {
		logger.Warning("orphan cleanup: list referenced pictures failed:", err)
		return
	}
	keep := make(map[string]bool, len(referenced))
	for _, name := range referenced {
		keep[name] = true
	}

	entries, err := os.ReadDir(j.picsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("orphan cleanup: read pics dir failed:", err)
		}
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || keep[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < j.grace {
			continue
		}
		if err := os.Remove(filepath.Join(j.picsDir, entry.Name())); err != nil {
			logger.Warning("orphan cleanup: remove failed:", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Infof("orphan cleanup: removed %d unreferenced picture(s)", removed)
	}
}
