package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
	"github.com/pelletier/go-toml"

	"github.com/OCharnyshevich/voxel-core/internal/engine/config"
)

// Config file names looked up in the data directory, in order of preference.
const (
	ConfigTOML = "config.toml"
	ConfigJSON = "config.json"
)

// Storage handles the files of a data directory: engine config and fetched
// world presets.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating it as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Storage{dir: dir, log: log}, nil
}

// Dir returns the data directory.
func (s *Storage) Dir() string {
	return s.dir
}

// LoadConfig reads config.toml, or config.json if there is no TOML file, into
// cfg. Keys the file does not set keep their current values. If neither file
// exists, cfg is unchanged.
func (s *Storage) LoadConfig(cfg *config.Config) error {
	for _, name := range []string{ConfigTOML, ConfigJSON} {
		p := filepath.Join(s.dir, name)
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("read config: %w", err)
		}
		if err := decodeConfig(name, data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", name, err)
		}
		s.log.Info("loaded config from file", "path", p)
		return nil
	}
	return nil
}

func decodeConfig(name string, data []byte, cfg *config.Config) error {
	if name == ConfigJSON {
		return json.Unmarshal(data, cfg)
	}
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return err
	}
	// The TOML and JSON keys are the same, and decoding JSON into cfg leaves
	// absent keys alone.
	js, err := json.Marshal(tree.ToMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(js, cfg)
}

// SaveConfig writes cfg to config.toml atomically.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	data, err := toml.Marshal(*cfg)
	if err != nil {
		return fmt.Errorf("marshal toml: %w", err)
	}
	return atomicWrite(filepath.Join(s.dir, ConfigTOML), data)
}

// FetchConfig downloads a config preset from src into the data directory,
// replacing any config file of the same format. src is anything go-getter
// understands: a local path, an HTTP URL, a git or S3 address. Sources whose
// path ends in .json are stored as config.json, everything else as
// config.toml. It returns the path written.
func (s *Storage) FetchConfig(ctx context.Context, src string) (string, error) {
	name := ConfigTOML
	if u, err := url.Parse(src); err == nil && strings.EqualFold(path.Ext(u.Path), ".json") {
		name = ConfigJSON
	}
	dst := filepath.Join(s.dir, name)
	tmp := dst + ".download"
	_ = os.Remove(tmp)

	s.log.Info("fetching config preset", "src", src)
	if err := getter.GetFile(tmp, src, getter.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("fetch %s: %w", src, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename fetched file: %w", err)
	}
	s.log.Info("fetched config preset", "path", dst)
	return dst, nil
}

// atomicWrite writes data to name using a temp file + rename.
func atomicWrite(name string, data []byte) error {
	tmp := name + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, name); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
