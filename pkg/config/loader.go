package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/contractd/pkg/contract"
	"github.com/getmockd/contractd/pkg/logging"
)

// Extensions lists the file extensions Discover picks up in directories.
var Extensions = []string{".yml", ".yaml", ".json"}

// LoadError is a failure to load one contract document.
type LoadError struct {
	Path     string
	Document int // 1-based, 0 when the whole file failed
	Err      error
}

func (e *LoadError) Error() string {
	if e.Document > 0 {
		return fmt.Sprintf("%s (document %d): %v", e.Path, e.Document, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader reads contract files.
type Loader struct {
	// Logger receives debug records per loaded document. Nil discards them.
	Logger *slog.Logger

	// Options are passed to contract.Make for every document.
	Options []contract.Option
}

// LoadFile loads every contract document in the file at path.
func (l *Loader) LoadFile(path string) ([]*contract.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Path: path, Err: errors.New("file not found")}
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return l.Parse(path, data)
}

// Parse loads every contract document in data. path names the source in
// errors and supplies default contract names.
func (l *Loader) Parse(path string, data []byte) ([]*contract.Contract, error) {
	logger := logging.OrNop(l.Logger)

	decode := decodeYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		decode = decodeJSON
	}
	docs, err := decode(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(docs) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("file contains no contracts")}
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var (
		out  []*contract.Contract
		errs []error
	)
	for i, doc := range docs {
		f, err := file(doc)
		if err != nil {
			errs = append(errs, &LoadError{Path: path, Document: i + 1, Err: err})
			continue
		}
		if f.Name == "" {
			f.Name = stem
			if len(docs) > 1 {
				f.Name = fmt.Sprintf("%s_%d", stem, i)
			}
		}
		c, err := f.Contract(l.Options...)
		if err != nil {
			errs = append(errs, &LoadError{Path: path, Document: i + 1, Err: err})
			continue
		}
		logger.Debug("contract loaded", "file", path, "document", i+1, "name", c.Name())
		out = append(out, c)
	}
	return out, errors.Join(errs...)
}

// LoadAll loads every file in paths. It keeps going past failing files and
// returns the contracts that loaded together with the joined errors.
func (l *Loader) LoadAll(paths []string) ([]*contract.Contract, error) {
	var (
		out  []*contract.Contract
		errs []error
	)
	for _, p := range paths {
		cs, err := l.LoadFile(p)
		out = append(out, cs...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	logging.OrNop(l.Logger).Info("contracts loaded", "files", len(paths), "contracts", len(out), "errors", len(errs))
	return out, errors.Join(errs...)
}

// document is one undecoded contract document.
type document interface {
	raw() (any, error)
	decode(*File) error
}

type yamlDocument struct{ node *yaml.Node }

func (d yamlDocument) raw() (any, error) {
	var v any
	err := d.node.Decode(&v)
	return v, err
}

func (d yamlDocument) decode(f *File) error { return d.node.Decode(f) }

type jsonDocument struct{ data json.RawMessage }

func (d jsonDocument) raw() (any, error) {
	var v any
	err := json.Unmarshal(d.data, &v)
	return v, err
}

func (d jsonDocument) decode(f *File) error {
	dec := json.NewDecoder(bytes.NewReader(d.data))
	dec.DisallowUnknownFields()
	return dec.Decode(f)
}

// file checks the document against the schema and decodes it.
func file(d document) (*File, error) {
	raw, err := d.raw()
	if err != nil {
		return nil, err
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}
	var f File
	if err := d.decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// decodeYAML splits a multi-document YAML stream, skipping empty documents.
func decodeYAML(data []byte) ([]document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []document
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		if len(node.Content) == 0 || node.Content[0].Tag == "!!null" {
			continue
		}
		docs = append(docs, yamlDocument{node: &node})
	}
}

// decodeJSON accepts a single contract object or an array of them.
func decodeJSON(data []byte) ([]document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, errors.New("parsing JSON: invalid document")
		}
		return []document{jsonDocument{data: trimmed}}, nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	docs := make([]document, len(list))
	for i, raw := range list {
		docs[i] = jsonDocument{data: raw}
	}
	return docs, nil
}

// Discover expands file paths, directories and doublestar globs
// ("contracts/**/*.yml") into a sorted, de-duplicated list of files.
// Directories are searched recursively for Extensions.
func Discover(patterns ...string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, pattern := range patterns {
		if info, err := os.Stat(pattern); err == nil {
			if !info.IsDir() {
				add(pattern)
				continue
			}
			matches, err := doublestar.FilepathGlob(filepath.Join(pattern, "**", "*"), doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", pattern, err)
			}
			for _, m := range matches {
				if hasExtension(m) {
					add(m)
				}
			}
			continue
		}

		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(out)
	return out, nil
}

func hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
