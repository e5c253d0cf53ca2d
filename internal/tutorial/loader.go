package tutorial

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinPack []byte

func LoadBuiltin() (Pack, error) {
	pack, err := decodePack(builtinPack)
	if err != nil {
		return pack, fmt.Errorf("builtin pack: %w", err)
	}
	pack.Path = "builtin"
	return pack, nil
}

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// LoadPacks reads every <root>/<dir>/pack.yaml. A missing root yields no packs.
func (l *FSLoader) LoadPacks(ctx context.Context, root string) ([]Pack, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	packs := make([]Pack, 0)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		packPath := filepath.Join(root, entry.Name())
		packYAML := filepath.Join(packPath, "pack.yaml")
		if _, err := os.Stat(packYAML); err != nil {
			continue
		}
		pack, err := readPack(packYAML)
		if err != nil {
			return nil, fmt.Errorf("load pack %s: %w", packPath, err)
		}
		pack.Path = packPath
		packs = append(packs, pack)
	}

	sort.Slice(packs, func(i, j int) bool { return packs[i].PackID < packs[j].PackID })
	return packs, nil
}

func readPack(path string) (Pack, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, err
	}
	return decodePack(b)
}

func decodePack(b []byte) (Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return pack, fmt.Errorf("parse: %w", err)
	}
	if err := pack.Validate(); err != nil {
		return pack, fmt.Errorf("validate: %w", err)
	}
	return pack, nil
}

// LoadLibrary builds a library from the builtin pack followed by the packs under root.
func LoadLibrary(ctx context.Context, loader Loader, root string) (*Library, error) {
	builtin, err := LoadBuiltin()
	if err != nil {
		return nil, err
	}
	packs := []Pack{builtin}
	if root != "" {
		extra, err := loader.LoadPacks(ctx, root)
		if err != nil {
			return nil, err
		}
		packs = append(packs, extra...)
	}
	return NewLibrary(packs...)
}
