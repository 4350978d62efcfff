package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"svw.info/rivercrossing/internal/domain"
)

//go:embed variants/*.yaml
var builtin embed.FS

var validate = validator.New()

type moveEntry struct {
	Missionaries int `yaml:"missionaries" validate:"gte=0"`
	Cannibals    int `yaml:"cannibals" validate:"gte=0"`
}

type variantFile struct {
	ID           string      `yaml:"id" validate:"required"`
	Name         string      `yaml:"name" validate:"required"`
	Description  string      `yaml:"description"`
	Missionaries int         `yaml:"missionaries" validate:"gte=0,lte=255"`
	Cannibals    int         `yaml:"cannibals" validate:"gte=0,lte=255"`
	Capacity     int         `yaml:"capacity" validate:"gte=1"`
	Moves        []moveEntry `yaml:"moves" validate:"omitempty,dive"`
}

type entry struct {
	rules       *domain.RuleSet
	description string
}

// FS serves rule sets from YAML files named <id>.yaml under dir.
// Parsed rule sets are cached; they are immutable and safe to share.
type FS struct {
	fsys fs.FS
	dir  string

	mu    sync.RWMutex
	cache map[domain.VariantID]entry
}

// New reads variants from dir inside fsys.
func New(fsys fs.FS, dir string) *FS {
	return &FS{fsys: fsys, dir: dir, cache: make(map[domain.VariantID]entry)}
}

// Builtin serves the variants compiled into the binary.
func Builtin() *FS { return New(builtin, "variants") }

func (s *FS) pathFor(id domain.VariantID) string {
	return path.Join(s.dir, strings.TrimSpace(string(id))+".yaml")
}

func (s *FS) Load(ctx context.Context, id domain.VariantID) (*domain.RuleSet, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.rules, nil
}

func (s *FS) load(ctx context.Context, id domain.VariantID) (entry, error) {
	if err := ctx.Err(); err != nil {
		return entry{}, err
	}
	s.mu.RLock()
	e, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return e, nil
	}
	if id == "" || strings.ContainsAny(string(id), "/\\") {
		return entry{}, fmt.Errorf("%w: %q", domain.ErrUnknownVariant, id)
	}

	data, err := fs.ReadFile(s.fsys, s.pathFor(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entry{}, fmt.Errorf("%w: %q", domain.ErrUnknownVariant, id)
		}
		return entry{}, err
	}
	e, err = parse(data)
	if err != nil {
		return entry{}, fmt.Errorf("variant %s: %w", id, err)
	}
	if e.rules.ID() != id {
		return entry{}, fmt.Errorf("variant %s: %w: file declares id %q", id, domain.ErrInvalidConfiguration, e.rules.ID())
	}

	s.mu.Lock()
	s.cache[id] = e
	s.mu.Unlock()
	return e, nil
}

func parse(data []byte) (entry, error) {
	var vf variantFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return entry{}, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	if err := validate.Struct(vf); err != nil {
		return entry{}, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	moves := make([]domain.Move, 0, len(vf.Moves))
	for _, m := range vf.Moves {
		moves = append(moves, domain.Move{Missionaries: m.Missionaries, Cannibals: m.Cannibals})
	}
	if len(moves) == 0 {
		moves = domain.StandardMoves(vf.Capacity)
	}
	rs, err := domain.NewRuleSet(domain.VariantID(vf.ID), vf.Name,
		domain.Population{Missionaries: vf.Missionaries, Cannibals: vf.Cannibals}, vf.Capacity, moves)
	if err != nil {
		return entry{}, err
	}
	return entry{rules: rs, description: vf.Description}, nil
}

// List returns every variant in the directory, sorted by ID. Files that do
// not parse are skipped.
func (s *FS) List(ctx context.Context) ([]domain.VariantMeta, error) {
	ents, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, err
	}
	var out []domain.VariantMeta
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}
		got, err := s.load(ctx, domain.VariantID(strings.TrimSuffix(name, ".yaml")))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		meta := got.rules.Meta()
		meta.Description = got.description
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
