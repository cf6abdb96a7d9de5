package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/costctl/internal/common"
	"github.com/Veraticus/costctl/internal/model"
)

// FileIntake validates candidate files and owns the single current selection.
type FileIntake struct {
	status   *StatusReporter
	trigger  *uploadTrigger
	selected *model.SelectedFile
	enabled  bool
}

// Select validates file and, if it passes, makes it the current selection.
// On failure the previous selection is kept.
func (f *FileIntake) Select(file model.SelectedFile) (model.SelectedFile, error) {
	if !f.enabled {
		return model.SelectedFile{}, fmt.Errorf("file selection: %w", common.ErrCapabilityMissing)
	}

	if !strings.HasSuffix(strings.ToLower(file.Name), model.AllowedExtension) {
		f.status.Error(msgWrongType)
		return model.SelectedFile{}, common.NewValidationError(common.ErrWrongType, msgWrongType)
	}
	if file.Size > model.MaxUploadSize {
		f.status.Error(msgTooLarge)
		return model.SelectedFile{}, common.NewValidationError(common.ErrTooLarge, msgTooLarge)
	}

	f.selected = &file
	f.trigger.arm(true)
	f.status.Info(msgFileSelected)
	return file, nil
}

// SelectPath selects a file on disk.
func (f *FileIntake) SelectPath(path string) (model.SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		f.status.Error(msgFileUnreadable)
		return model.SelectedFile{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		f.status.Error(msgWrongType)
		return model.SelectedFile{}, common.NewValidationError(common.ErrWrongType, msgWrongType)
	}

	return f.Select(model.SelectedFile{
		Name:   filepath.Base(path),
		Size:   info.Size(),
		Handle: model.FileOpener(path),
	})
}

// Current returns a snapshot of the selection.
func (f *FileIntake) Current() (model.SelectedFile, bool) {
	if f.selected == nil {
		return model.SelectedFile{}, false
	}
	return *f.selected, true
}

// Reset drops the selection and disables the upload trigger.
func (f *FileIntake) Reset() {
	f.selected = nil
	f.trigger.arm(false)
}
