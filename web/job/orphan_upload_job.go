// Package job contains the scheduled maintenance jobs run by the web server.
package job

import (
	"os"
	"path"
	"path/filepath"

	"secondplan/config"
	"secondplan/database"
	"secondplan/database/model"
	"secondplan/logger"
)

// OrphanUploadJob removes files in the uploads directory that no expense
// receipt, merchandise image or event poster references. Deletes never
// cascade to files inline, so unreferenced files accumulate until this sweep
// picks them up.
type OrphanUploadJob struct{}

func NewOrphanUploadJob() *OrphanUploadJob {
	return new(OrphanUploadJob)
}

// Run is an interface method of the cron Job interface.
func (j *OrphanUploadJob) Run() {
	referenced, err := j.referencedPaths()
	if err != nil {
		logger.Warning("orphan upload sweep: could not collect references:", err)
		return
	}

	folder := config.GetUploadFolder()
	entries, err := os.ReadDir(folder)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		logger.Warning("orphan upload sweep: could not read uploads dir:", err)
		return
	}

	base := path.Base(folder)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		rel := path.Join(base, entry.Name())
		if referenced[rel] {
			continue
		}
		if err := os.Remove(filepath.Join(folder, entry.Name())); err != nil {
			logger.Warning("orphan upload sweep: could not remove", rel, ":", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Infof("orphan upload sweep removed %d unreferenced file(s)", removed)
	}

	// Rows pointing at missing files are only reported; recreating the file
	// is a manual step.
	for rel := range referenced {
		full := filepath.Join(filepath.Dir(folder), filepath.FromSlash(rel))
		if _, err := os.Stat(full); os.IsNotExist(err) {
			logger.Warningf("orphan upload sweep: referenced file missing on disk: %s", rel)
		}
	}
}

func (j *OrphanUploadJob) referencedPaths() (map[string]bool, error) {
	db := database.GetDB()
	referenced := make(map[string]bool)

	collect := func(modelValue any, column string) error {
		var paths []string
		err := db.Model(modelValue).
			Where(column + " != ''").
			Pluck(column, &paths).Error
		if err != nil {
			return err
		}
		for _, p := range paths {
			referenced[path.Clean(p)] = true
		}
		return nil
	}

	if err := collect(&model.Expense{}, "receipt_path"); err != nil {
		return nil, err
	}
	if err := collect(&model.Merchandise{}, "image_path"); err != nil {
		return nil, err
	}
	if err := collect(&model.Event{}, "poster_path"); err != nil {
		return nil, err
	}
	return referenced, nil
}
