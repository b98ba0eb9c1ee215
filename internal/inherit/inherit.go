// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package inherit resolves configuration inheritance: a JSON document may
// splice in another file, a whole directory of files, or a subtree of the
// document itself, recursively, before any resource synthesis begins.
package inherit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/theory/jsonpath"
)

// SpliceKey is the reserved mapping key that names a splice target.
const SpliceKey = "__inherits__"

var jsonpathParser = jsonpath.NewParser()

// LoadFile loads a root JSON document and resolves every splice in it.
// Splice file and directory targets are interpreted relative to the
// document's own directory.
func LoadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading configuration %s: %w", path, err)
	}

	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing configuration %s: %w", path, err)
	}

	return Resolve(root, filepath.Dir(path))
}

// Resolve returns a new tree with every splice replaced by its target,
// resolved recursively against the same root document. The input tree is
// never mutated; an already splice-free tree resolves to an equal copy.
func Resolve(root map[string]any, baseDir string) (map[string]any, error) {
	r := &resolver{root: root, baseDir: baseDir, inFlight: make(map[string]bool)}
	resolved, err := r.resolveNode(root)
	if err != nil {
		return nil, err
	}
	return resolved.(map[string]any), nil
}

type resolver struct {
	// root is the document splice lookups run against; it stays the
	// original, unresolved tree for the whole resolution pass.
	root    map[string]any
	baseDir string

	// inFlight holds the splice targets on the current resolution path,
	// so a target that splices itself back in fails instead of recursing
	// forever.
	inFlight map[string]bool
}

// resolveNode rebuilds the tree bottom-up. Replacing a node while
// iterating the original is what made the in-place variant fragile, so
// every branch returns a fresh value.
func (r *resolver) resolveNode(node any) (any, error) {
	switch n := node.(type) {
	case map[string]any:
		if _, ok := n[SpliceKey]; ok {
			return r.resolveSplice(n)
		}

		out := make(map[string]any, len(n))
		for key, value := range n {
			resolved, err := r.resolveNode(value)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil

	case []any:
		out := make([]any, len(n))
		for i, value := range n {
			resolved, err := r.resolveNode(value)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil

	default:
		return node, nil
	}
}

func (r *resolver) resolveSplice(node map[string]any) (any, error) {
	target, ok := node[SpliceKey].(string)
	if !ok {
		return nil, fmt.Errorf("splice key %q must name a file, directory or document path, got %T", SpliceKey, node[SpliceKey])
	}

	if r.inFlight[target] {
		return nil, fmt.Errorf("splice target %q is part of an inheritance cycle", target)
	}
	r.inFlight[target] = true
	defer delete(r.inFlight, target)

	loaded, err := r.loadTarget(target)
	if err != nil {
		return nil, err
	}

	// Transitively nested splices resolve against the same root.
	spliced, err := r.resolveNode(loaded)
	if err != nil {
		return nil, err
	}

	if len(node) == 1 {
		return spliced, nil
	}

	return r.mergeSiblings(node, spliced, target)
}

// mergeSiblings shallow-merges the splice node's sibling keys on top of
// the spliced-in mapping; locally defined siblings win over same-named
// keys from the splice. Merging into a spliced-in list has no defensible
// ordering semantics and is rejected.
func (r *resolver) mergeSiblings(node map[string]any, spliced any, target string) (any, error) {
	base, ok := spliced.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("splice target %q produced a %T; sibling keys cannot be merged into a non-mapping", target, spliced)
	}

	out := make(map[string]any, len(base)+len(node)-1)
	for key, value := range base {
		out[key] = value
	}

	for key, value := range node {
		if key == SpliceKey {
			continue
		}
		resolved, err := r.resolveNode(value)
		if err != nil {
			return nil, err
		}
		out[key] = resolved
	}

	return out, nil
}

func (r *resolver) loadTarget(target string) (any, error) {
	if strings.HasPrefix(target, "$") {
		return r.lookupDocumentPath(target)
	}

	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, target)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("splice target %q not found: %w", target, err)
	}

	if info.IsDir() {
		return r.loadDirectory(path, target)
	}
	return r.loadFile(path, target)
}

func (r *resolver) loadFile(path, target string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("splice target %q: %w", target, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("splice target %q is not valid JSON: %w", target, err)
	}

	slog.Debug("Spliced configuration file", "target", target)
	return doc, nil
}

// loadDirectory loads every JSON file in the directory, in name order,
// and collects the documents into a list.
func (r *resolver) loadDirectory(path, target string) (any, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("splice target %q: %w", target, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	docs := make([]any, 0, len(names))
	for _, name := range names {
		doc, err := r.loadFile(filepath.Join(path, name), filepath.Join(target, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	slog.Debug("Spliced configuration directory", "target", target, "documents", len(docs))
	return docs, nil
}

// lookupDocumentPath splices a subtree of the root document itself,
// addressed with a dotted/bracketed path such as $.defaults.network or
// $["stacks"][0].
func (r *resolver) lookupDocumentPath(target string) (any, error) {
	path, err := jsonpathParser.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("splice target %q is not a valid document path: %w", target, err)
	}

	nodes := path.Select(r.root)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("splice target %q matches nothing in the document", target)
	}

	slog.Debug("Spliced document subtree", "target", target)
	return nodes[0], nil
}
