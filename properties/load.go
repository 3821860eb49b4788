package properties

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/a-peyrard/propchain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Spec describes a file to load as a named source.
type Spec struct {
	Name string
	Path string
}

// LoadFile loads path with the loader matching its extension.
func LoadFile(name, path string) (*propchain.MapSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties":
		return LoadProperties(name, path)
	case ".yaml", ".yml":
		return LoadYAML(name, path)
	default:
		return LoadViper(name, path)
	}
}

// LoadAll loads the files concurrently.
//
// The sources are returned in the order of specs, the first one is meant to have the highest priority.
// The first failure cancels the loads not yet started and is returned.
func LoadAll(ctx context.Context, specs ...Spec) ([]propchain.Source, error) {
	logger := zerolog.Ctx(ctx)
	sources := make([]propchain.Source, len(specs))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			name := spec.Name
			if name == "" {
				name = spec.Path
			}
			source, err := LoadFile(name, spec.Path)
			if err != nil {
				return err
			}
			logger.Debug().Str("source", name).Int("keys", source.Len()).Msg("property file loaded")
			sources[i] = source
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("unable to load property files:\n\t%w", err)
	}
	return sources, nil
}
