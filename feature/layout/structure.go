package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"comics-etl/core/failure"

	"go.uber.org/zap"
)

// CheckStructure returns the required folders that do not exist.
func CheckStructure(p Paths) ([]string, error) {
	var missing []string

	for _, folder := range p.RequiredFolders() {
		info, err := os.Stat(folder)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, folder)
		case err != nil:
			return nil, failure.New(failure.KindFilesystem, "check structure", err).WithPath(folder)
		case !info.IsDir():
			return nil, failure.New(failure.KindFilesystem, "check structure", fmt.Errorf("%s is not a directory", folder)).WithPath(folder)
		}
	}

	return missing, nil
}

// FixStructure creates the missing folders.
func FixStructure(logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		if err := os.MkdirAll(folder, 0o755); err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return failure.New(failure.KindFilesystem, "fix structure", err).WithPath(folder)
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}

// Ensure checks the structure and creates whatever is missing.
func Ensure(p Paths, logger *zap.Logger) error {
	missing, err := CheckStructure(p)
	if err != nil {
		return err
	}
	return FixStructure(logger, missing)
}
