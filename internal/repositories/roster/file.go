package roster

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

const filePerm = 0o600

type fileRepository struct {
	path string
}

// FileConfig contains configuration for the file roster repository
type FileConfig struct {
	Dir string
	Key string
}

// Validate validates the FileConfig
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Dir", cfg.Dir, vb)
	return vb.Build()
}

// NewFile creates a repository that keeps the record in <dir>/<key>.json.
// Saves write a temporary file and rename it over the old record, so a crash
// leaves either the previous or the new record on disk.
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	return &fileRepository{
		path: filepath.Join(cfg.Dir, fileName(key)),
	}, nil
}

// fileName maps a store key to a safe file name
func fileName(key string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
	return name + ".json"
}

func (r *fileRepository) Load(ctx context.Context, _ LoadInput) (*LoadOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "load canceled")
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.DebugContext(ctx, "roster file not found", "path", r.path)
			return &LoadOutput{Record: &Record{}}, nil
		}
		return nil, errors.Wrapf(err, "failed to read roster file").WithMeta("path", r.path)
	}

	record, err := Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode roster").WithMeta("path", r.path)
	}

	return &LoadOutput{Record: record, Found: true}, nil
}

func (r *fileRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "save canceled")
	}

	data, err := Encode(input.Record)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return nil, errors.Wrapf(err, "failed to create roster directory").WithMeta("path", r.path)
	}
	if err := renameio.WriteFile(r.path, data, filePerm); err != nil {
		return nil, errors.Wrapf(err, "failed to write roster file").WithMeta("path", r.path)
	}

	slog.DebugContext(ctx, "saved roster",
		"path", r.path,
		"plants", len(input.Record.Plants),
		"bytes", len(data))

	return &SaveOutput{Bytes: len(data)}, nil
}
