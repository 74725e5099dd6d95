package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"dbsnap/internal/codec"
	"dbsnap/internal/config"
	"dbsnap/internal/dump"
	"dbsnap/internal/snap"
	"dbsnap/internal/storage"
)

// App is the application layer between the CLI and the snapshot service.
// It constructs all dependencies from config and manages their lifecycle on
// Close. Confirmation is injected by the CLI so the core never reads the
// terminal itself.
type App struct {
	cfg     *config.Config
	storage snap.Storage
	codec   snap.Codec
	dumper  *dump.SQLiteDumper
	service *snap.Service
	logFile *os.File
}

// New creates a fully wired App from the given config.
// The caller must call Close when done.
func New(cfg *config.Config, confirm snap.Confirmer) (*App, error) {
	st, err := storage.NewFromConfig(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("creating storage: %w", err)
	}

	cd, err := codec.NewFromConfig(cfg.Codec)
	if err != nil {
		return nil, fmt.Errorf("creating codec: %w", err)
	}

	dumper, err := dump.NewFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	runID := uuid.New().String()
	logger, logFile, err := newLogger(cfg.LogDir, runID)
	if err != nil {
		dumper.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = 4
	}

	svc := snap.NewService(st, dumper, cd, confirm, &slogAdapter{l: logger},
		snap.RealClock{}, naming(cfg), snap.DefaultPolicy(), workers)

	return &App{
		cfg:     cfg,
		storage: st,
		codec:   cd,
		dumper:  dumper,
		service: svc,
		logFile: logFile,
	}, nil
}

// naming derives the archive naming scheme from config. The extension
// defaults to .gz, or .gz.age when archives are encrypted, so encrypted and
// plain archives never shadow each other.
func naming(cfg *config.Config) snap.Naming {
	n := snap.DefaultNaming()
	if cfg.Codec.Type == "age" {
		n.Extension = ".gz.age"
	}
	if cfg.Naming.Prefix != "" {
		n.Prefix = cfg.Naming.Prefix
	}
	if cfg.Naming.Extension != "" {
		n.Extension = cfg.Naming.Extension
	}
	return n
}

// Create dumps every entity into a new snapshot set.
func (a *App) Create() (*snap.CreateReport, error) {
	return a.service.Create()
}

// History returns all snapshot sets in storage, newest first.
func (a *App) History() ([]snap.HistoryEntry, error) {
	return a.service.History()
}

// Restore loads one snapshot set back into the database.
func (a *App) Restore(idOrPrefix string) (*snap.RestoreReport, error) {
	return a.service.Restore(idOrPrefix)
}

// Remove deletes one snapshot set after confirmation.
func (a *App) Remove(idOrPrefix string) (*snap.DeleteReport, error) {
	return a.service.Remove(idOrPrefix)
}

// Autoclean applies the retention policy after confirmation.
func (a *App) Autoclean() (*snap.AutocleanReport, error) {
	return a.service.Autoclean()
}

// NeedsUnlock reports whether restoring requires a passphrase.
func (a *App) NeedsUnlock() bool {
	_, ok := a.codec.(*codec.AgeCodec)
	return ok
}

// UnlockCodec unlocks the encryption codec for the rest of the session.
func (a *App) UnlockCodec(passphrase string) error {
	ac, ok := a.codec.(*codec.AgeCodec)
	if !ok {
		return fmt.Errorf("codec %q does not require unlocking", a.cfg.Codec.Type)
	}
	return ac.Unlock(passphrase)
}

// SetupCodec performs one-time key generation for the encryption codec.
func (a *App) SetupCodec(passphrase string) error {
	ac, ok := a.codec.(*codec.AgeCodec)
	if !ok {
		return fmt.Errorf("codec %q does not use keys", a.cfg.Codec.Type)
	}
	if ac.IsConfigured() {
		return fmt.Errorf("key pair already exists")
	}
	return ac.Setup(passphrase)
}

// ValidateStorage verifies that the storage location is accessible.
func (a *App) ValidateStorage() error {
	return a.storage.ValidateSetup()
}

// Close closes the database connection and the log file.
func (a *App) Close() error {
	err := a.dumper.Close()
	if a.logFile != nil {
		a.logFile.Close()
	}
	return err
}
