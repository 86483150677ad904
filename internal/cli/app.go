package cli

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jacobusmeintjes/todo/internal/config"
	"github.com/jacobusmeintjes/todo/internal/service"
	"github.com/jacobusmeintjes/todo/internal/storage"
)

// app carries what every command needs once flags are parsed.
type app struct {
	opts    options
	verbose bool
	file    string

	cfg    *config.Config
	logger *slog.Logger
	repo   *storage.Repository
	svc    *service.Service
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.file != "" {
		cfg.Storage.Path = config.ExpandHome(a.file)
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.Log, a.verbose)
	return nil
}

// service opens the task file lazily so commands like `config path` work
// without touching it.
func (a *app) service(cmd *cobra.Command) (*service.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	repo, err := storage.Open(a.opts.fs, a.cfg.Storage.Path, a.logger)
	if err != nil {
		return nil, err
	}
	a.repo = repo
	var warnOnce sync.Once
	a.svc = service.New(repo,
		service.WithClock(a.opts.now),
		service.WithLogger(a.logger),
		service.WithRecoveryHandler(func(cause error) {
			// A command may load more than once (delete resolves, then deletes).
			warnOnce.Do(func() {
				fmt.Fprintf(cmd.ErrOrStderr(),
					"Warning: %s was unreadable; loaded tasks from backup %s. The damaged file is replaced on the next change.\n",
					repo.Path(), repo.BackupPath())
			})
		}),
	)
	return a.svc, nil
}
