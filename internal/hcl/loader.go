package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/qcsched/internal/config"
	"github.com/specialistvlad/qcsched/internal/ctxlog"
	"github.com/specialistvlad/qcsched/internal/fsutil"
)

// Extension is the file extension picked up when a directory is loaded.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every given file, and every .hcl file below every given
// directory, and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		fileModel, diags := l.decodeFile(hclFile.Body)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("file %s: %w", file, err)
		}
	}

	logger.Debug("HCL loading complete.", "platform", model.Platform != nil, "kernels", len(model.Kernels))
	return model, nil
}

// LoadBytes decodes a single in-memory HCL document.
func (l *Loader) LoadBytes(src []byte, filename string) (*config.Model, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	model, diags := l.decodeFile(hclFile.Body)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return model, nil
}

func (l *Loader) decodeFile(body hcl.Body) (*config.Model, hcl.Diagnostics) {
	content, diags := body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	model := &config.Model{}
	if block, d := findPlatform(content.Blocks); d.HasErrors() {
		return nil, append(diags, d...)
	} else if block != nil {
		p, d := l.decodePlatform(block)
		diags = append(diags, d...)
		model.Platform = p
	}

	for _, block := range content.Blocks {
		if block.Type != "kernel" {
			continue
		}
		k, d := l.decodeKernel(block)
		diags = append(diags, d...)
		if k != nil {
			model.Kernels = append(model.Kernels, k)
		}
	}
	return model, diags
}

// findAllHCLFiles returns the files named in paths plus every .hcl file
// below the named directories, each once, in a stable order.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, Extension)
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		for _, f := range found {
			add(filepath.Clean(f))
		}
	}
	return all, nil
}
