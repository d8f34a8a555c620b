package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/opmodel/legacyui/internal/config"
	oerrors "github.com/opmodel/legacyui/internal/errors"
	"github.com/opmodel/legacyui/internal/fieldlogic"
	"github.com/opmodel/legacyui/internal/metadata"
	"github.com/opmodel/legacyui/internal/output"
	"github.com/opmodel/legacyui/internal/store"
	"github.com/opmodel/legacyui/internal/subpanel"
)

// Async process queue sizing.
const (
	processWorkers = 4
	processBuffer  = 64
)

// app bundles the collaborators a command needs. Close releases them.
type app struct {
	metadata   *metadata.Store
	fields     *store.SQLiteStore
	translator *subpanel.Translator
}

// openMetadata opens the metadata directory named by the configuration.
func openMetadata(g *GlobalConfig) (*metadata.Store, error) {
	return metadata.Open(g.Config.MetadataDir)
}

// openFieldStore opens the SQLite field definition store.
func openFieldStore(g *GlobalConfig, modules store.ModuleMapper) (*store.SQLiteStore, error) {
	path := g.Config.Store.Path
	if err := config.EnsureDir(path); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, oerrors.Permission("cannot create the store directory").InFile(path).
				WithHint("check store.path or pass --store-path").WithCause(err)
		}
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	s := store.NewSQLiteStore(modules)
	if err := s.Open(path); err != nil {
		return nil, oerrors.Connectivity("cannot open the field definition store").InFile(path).
			WithHint("check store.path or pass --store-path").WithCause(err)
	}
	return s, nil
}

// newApp wires the translator against the configured field definition source.
func newApp(g *GlobalConfig) (*app, error) {
	md, err := openMetadata(g)
	if err != nil {
		return nil, err
	}

	a := &app{metadata: md}
	deps := md.Deps()

	switch g.Config.FieldDefinitions.Source {
	case config.SourceFiles, "":
	case config.SourceSQLite:
		if a.fields, err = openFieldStore(g, md.Modules()); err != nil {
			return nil, err
		}
		deps = md.DepsWithFields(a.fields)
	default:
		return nil, oerrors.Validation(
			fmt.Sprintf("unknown field definition source %q", g.Config.FieldDefinitions.Source)).
			InFile(g.ConfigPath).AtField(config.KeyFieldDefinitions).WithHint("use files or sqlite")
	}

	output.Debug("translator ready",
		"metadata", md.Dir(),
		"fields", g.Config.FieldDefinitions.Source,
		"modules", md.Modules().Len(),
	)

	a.translator = subpanel.NewTranslator(deps)
	return a, nil
}

// legacyModule maps a module argument, frontend or legacy, to its legacy name.
func (a *app) legacyModule(module string) string {
	return a.metadata.Modules().ToLegacy(module)
}

// Close releases the field definition store, if any.
func (a *app) Close() {
	if a.fields != nil {
		if err := a.fields.Close(); err != nil {
			output.Warn("closing field store", "err", err)
		}
	}
}

// newDispatcher returns a dispatcher over the built-in actions. Async actions
// go to a process queue; the returned function drains it.
func newDispatcher() (*fieldlogic.Dispatcher, func()) {
	logger := output.ModuleLogger("process")
	queue := fieldlogic.NewProcessQueue(fieldlogic.ProcessHandlerFunc(
		func(_ context.Context, req fieldlogic.ProcessRequest) error {
			logger.Info("async action",
				"id", req.ID,
				"action", req.Action,
				"mode", req.Mode,
				"module", req.Module,
				"field", req.Field.Name,
				"record", req.Record.ID,
			)
			return nil
		}), processWorkers, processBuffer)

	d := fieldlogic.NewDispatcher(fieldlogic.NewDefaultRegistry(), fieldlogic.WithAsyncRunner(queue))
	return d, queue.Close
}
