package description

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/dbsmedya/topictables/internal/config"
	"github.com/dbsmedya/topictables/internal/logger"
	"github.com/dbsmedya/topictables/internal/supplier"
)

// FileProvider builds a table supplier from description files on disk.
// Each call starts from scratch; nothing is cached between calls.
type FileProvider struct {
	cfg    config.TableDescriptionConfig
	fs     afero.Fs
	logger *logger.Logger
}

// NewFileProvider creates a provider reading from the OS filesystem.
func NewFileProvider(cfg config.TableDescriptionConfig, log *logger.Logger) *FileProvider {
	return NewFileProviderWithFS(cfg, afero.NewOsFs(), log)
}

// NewFileProviderWithFS creates a provider over a custom filesystem.
// This is primarily useful for testing with in-memory filesystems.
func NewFileProviderWithFS(cfg config.TableDescriptionConfig, fs afero.Fs, log *logger.Logger) *FileProvider {
	if log == nil {
		log = logger.NewNop()
	}
	return &FileProvider{cfg: cfg, fs: fs, logger: log}
}

// Resolve scans the description directory and reconciles the result with
// the configured table names.
func (p *FileProvider) Resolve() ([]Resolution, error) {
	discovered, err := NewScanner(p.fs, p.cfg.DefaultSchema, p.logger).Scan(p.cfg.TableDescriptionDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load table descriptions: %w", err)
	}

	return NewReconciler(p.cfg.DefaultSchema, p.logger).Reconcile(discovered, p.cfg.Names()), nil
}

// Get resolves the tables and returns them as a supplier.
func (p *FileProvider) Get() (*supplier.MapSupplier, error) {
	resolutions, err := p.Resolve()
	if err != nil {
		return nil, err
	}
	return supplier.NewMapSupplier(Tables(resolutions)), nil
}
