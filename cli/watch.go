package cli

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/wghou/BeeVeeH/logging"
)

// watchFile calls onChange every time path is written or recreated, until ctx is done. Failures of
// onChange are logged and watching continues; files are often observed half written.
func watchFile(ctx context.Context, path string, logger logging.Logger, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "cannot create file watcher")
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Debugw("error closing file watcher", "error", err)
		}
	}()

	// Editors often replace a file rather than write it, which a watch on the file itself loses.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "cannot watch %q", path)
	}
	logger.Debugw("watching", "file", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if same, err := samePath(event.Name, path); err != nil || !same {
				continue
			}
			logger.Debugw("file changed", "file", path, "op", event.Op.String())
			if err := onChange(); err != nil {
				logger.Warnw("cannot reload file", "file", path, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("file watcher error", "error", err)
		}
	}
}
