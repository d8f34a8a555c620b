// Package metadata reads legacy subpanel metadata from a directory tree and
// serves it through the collaborator interfaces of the subpanel translator.
//
// Layout of a metadata directory:
//
//	modules.yaml                              legacy to frontend module names
//	layouts/<LegacyModule>.yaml               subpanel_setup and available_tabs
//	subpanels/<LegacyModule>/<subpanel>.yaml  panel definitions
//	vardefs/<LegacyModule>.yaml               field definitions
//
// Every file is validated against the embedded CUE schema before it is decoded.
package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	oerrors "github.com/opmodel/legacyui/internal/errors"
	"github.com/opmodel/legacyui/internal/legacy"
	"github.com/opmodel/legacyui/internal/output"
)

// DefaultSubpanelName is loaded when a tab or collection entry names no subpanel.
const DefaultSubpanelName = "default"

// Store is a file-backed, caching metadata source. It is safe for concurrent use.
type Store struct {
	dir       string
	validator *Validator
	modules   *ModuleMap

	mu      sync.Mutex
	layouts map[string]*legacy.Layout
	panels  map[string]*legacy.PanelDefinition
	vardefs map[string]legacy.FieldDefinitions
}

// Open returns a Store over dir. The module map is read eagerly; a missing
// modules.yaml yields an identity map.
func Open(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, oerrors.ReadFailure(err, "metadata directory", dir,
			"set metadataDir in the config file or pass --metadata-dir")
	}
	if !info.IsDir() {
		return nil, oerrors.Validation("metadata path is not a directory").InFile(dir)
	}

	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}

	s := &Store{
		dir:       dir,
		validator: validator,
	}
	s.resetCache()

	if s.modules, err = s.loadModules(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the metadata root.
func (s *Store) Dir() string {
	return s.dir
}

// Modules returns the module name mapper.
func (s *Store) Modules() *ModuleMap {
	return s.modules
}

// Reload drops every cached layout, panel and vardefs file. The module map
// read by Open is kept.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetCache()
}

func (s *Store) resetCache() {
	s.layouts = make(map[string]*legacy.Layout)
	s.panels = make(map[string]*legacy.PanelDefinition)
	s.vardefs = make(map[string]legacy.FieldDefinitions)
}

// LayoutModules returns the legacy modules that declare a layout, sorted.
func (s *Store) LayoutModules() ([]string, error) {
	return s.listModules("layouts")
}

// VardefsModules returns the legacy modules that declare field definitions, sorted.
func (s *Store) VardefsModules() ([]string, error) {
	return s.listModules("vardefs")
}

func (s *Store) listModules(sub string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, sub))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", sub, err)
	}

	var modules []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		modules = append(modules, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(modules)
	return modules, nil
}

// Layout implements subpanel.LayoutSource. Unreadable layouts are logged and
// reported as missing.
func (s *Store) Layout(module string) (*legacy.Layout, bool) {
	layout, err := s.LoadLayout(module)
	if err != nil {
		if !errors.Is(err, oerrors.ErrNotFound) {
			output.Warn("skipping layout", "module", module, "err", err)
		}
		return nil, false
	}
	return layout, true
}

// LoadLayout reads the layout of a legacy module.
func (s *Store) LoadLayout(module string) (*legacy.Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.layouts[module]; ok {
		return l, nil
	}

	var layout legacy.Layout
	if err := s.decode(KindLayout, &layout, "layouts", module+".yaml"); err != nil {
		return nil, oerrors.WithModule(err, module)
	}
	layout.Module = module
	s.layouts[module] = &layout
	return &layout, nil
}

// AvailableTabs implements subpanel.TabFilter. A layout without an
// available_tabs list exposes every declared tab.
func (s *Store) AvailableTabs(module string) []string {
	layout, ok := s.Layout(module)
	if !ok {
		return nil
	}
	if layout.AvailableTabs != nil {
		return layout.AvailableTabs
	}
	keys := make([]string, len(layout.Tabs))
	for i, t := range layout.Tabs {
		keys[i] = t.Key
	}
	return keys
}

// LoadSubpanel implements subpanel.PanelLoader.
//
// A collection tab loads one sub-panel per collection entry and keeps the
// ones that could be read. The tab's own top_buttons override the panel's.
func (s *Store) LoadSubpanel(module string, tab legacy.TabDescriptor) (*legacy.Subpanel, bool) {
	var sp *legacy.Subpanel

	if tab.IsCollection() {
		panels := make([]*legacy.Subpanel, 0, len(tab.CollectionList))
		for _, entry := range tab.CollectionList {
			def, err := s.LoadPanel(entry.Module, entry.SubpanelName)
			if err != nil {
				output.Debug("skipping collection entry", "module", module, "tab", tab.Key, "entry", entry.Key, "err", err)
				continue
			}
			panels = append(panels, &legacy.Subpanel{Name: entry.Key, Module: entry.Module, Definition: *def})
		}
		sp = legacy.NewCollection(tab.Key, tab.Module, tab.HeaderDefinitionFromSubpanel, panels)
	} else {
		def, err := s.LoadPanel(tab.Module, tab.SubpanelName)
		if err != nil {
			output.Debug("subpanel not loaded", "module", module, "tab", tab.Key, "err", err)
			return nil, false
		}
		sp = &legacy.Subpanel{Name: tab.Key, Module: tab.Module, Definition: *def}
	}

	if tab.TopButtons != nil {
		sp.TopButtons = tab.TopButtons
	}
	return sp, true
}

// LoadPanel reads a panel definition of a legacy module.
func (s *Store) LoadPanel(module, name string) (*legacy.PanelDefinition, error) {
	if module == "" {
		return nil, oerrors.NotFound("subpanel has no module").WithHint("set module on the tab or collection entry")
	}
	if name == "" {
		name = DefaultSubpanelName
	}
	cacheKey := module + "/" + name

	s.mu.Lock()
	defer s.mu.Unlock()

	if def, ok := s.panels[cacheKey]; ok {
		return def, nil
	}

	var def legacy.PanelDefinition
	if err := s.decode(KindPanel, &def, "subpanels", module, name+".yaml"); err != nil {
		return nil, oerrors.WithModule(err, module)
	}
	s.panels[cacheKey] = &def
	return &def, nil
}

// FieldDefinitions implements subpanel.FieldDefinitionGateway for a frontend
// module name. Missing or invalid vardefs yield no definitions.
func (s *Store) FieldDefinitions(module string) legacy.FieldDefinitions {
	defs, err := s.LoadVardefs(s.modules.ToLegacy(module))
	if err != nil {
		if !errors.Is(err, oerrors.ErrNotFound) {
			output.Warn("skipping vardefs", "module", module, "err", err)
		}
		return legacy.FieldDefinitions{}
	}
	return defs
}

type vardefsFile struct {
	Fields legacy.FieldDefinitions `yaml:"fields"`
}

// LoadVardefs reads the field definitions of a legacy module.
func (s *Store) LoadVardefs(module string) (legacy.FieldDefinitions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if defs, ok := s.vardefs[module]; ok {
		return defs, nil
	}

	var file vardefsFile
	if err := s.decode(KindVardefs, &file, "vardefs", module+".yaml"); err != nil {
		return nil, oerrors.WithModule(err, module)
	}
	if file.Fields == nil {
		file.Fields = legacy.FieldDefinitions{}
	}
	s.vardefs[module] = file.Fields
	return file.Fields, nil
}

type modulesFile struct {
	Modules map[string]string `yaml:"modules"`
}

func (s *Store) loadModules() (*ModuleMap, error) {
	var file modulesFile
	err := s.decode(KindModules, &file, "modules.yaml")
	if err != nil && !errors.Is(err, oerrors.ErrNotFound) {
		return nil, err
	}
	return NewModuleMap(file.Modules), nil
}

// decode reads, validates and decodes one metadata file. A missing file is
// a not-found DetailError.
func (s *Store) decode(kind Kind, into any, elem ...string) error {
	path := filepath.Join(append([]string{s.dir}, elem...)...)

	data, err := os.ReadFile(path)
	if err != nil {
		return oerrors.ReadFailure(err, "metadata file", path, "")
	}

	if err := s.validator.Validate(kind, path, data); err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, into); err != nil {
		return oerrors.Validation(err.Error()).InFile(path)
	}
	return nil
}

// Vet validates every metadata file under the store root and returns one
// error per invalid file.
func (s *Store) Vet() []error {
	var errs []error

	check := func(kind Kind, path string) {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading %s: %w", path, err))
			return
		}
		if err := s.validator.Validate(kind, path, data); err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := os.Stat(filepath.Join(s.dir, "modules.yaml")); err == nil {
		check(KindModules, filepath.Join(s.dir, "modules.yaml"))
	}

	for _, sub := range []struct {
		dir  string
		kind Kind
	}{
		{"layouts", KindLayout},
		{"subpanels", KindPanel},
		{"vardefs", KindVardefs},
	} {
		root := filepath.Join(s.dir, sub.dir)
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					errs = append(errs, err)
				}
				return nil
			}
			if d.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}
			check(sub.kind, path)
			return nil
		})
	}
	return errs
}
