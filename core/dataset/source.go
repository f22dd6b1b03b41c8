package dataset

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"order-features/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Source loads every table it can find, eagerly, as a fresh snapshot.
type Source interface {
	Load(ctx context.Context) (Tables, error)
}

// LoadTables loads every *.csv file directly inside dir using the default naming.
func LoadTables(dir string) (Tables, error) {
	return NewDirSource(afero.NewOsFs(), dir, DefaultNaming, zap.NewNop()).Load(context.Background())
}

// NewSource builds the source selected by the configuration.
func NewSource(cfg Config, fs afero.Fs, client storage.Client, bucket string, logger *zap.Logger) (Source, error) {
	switch cfg.Source {
	case "dir", "":
		return NewDirSource(fs, cfg.Dir, cfg.Naming(), logger), nil
	case "bucket":
		if client == nil {
			return nil, fmt.Errorf("bucket source requires a storage client")
		}
		return NewBucketSource(client, bucket, cfg.Prefix, cfg.Naming(), logger), nil
	default:
		return nil, fmt.Errorf("unknown dataset source: %s", cfg.Source)
	}
}

// DirSource reads tables from a single directory level of a filesystem.
type DirSource struct {
	fs     afero.Fs
	dir    string
	naming Naming
	logger *zap.Logger
}

// NewDirSource creates a directory source.
func NewDirSource(fs afero.Fs, dir string, naming Naming, logger *zap.Logger) *DirSource {
	return &DirSource{fs: fs, dir: dir, naming: naming, logger: logger}
}

// Load reads every *.csv file in the directory. Subdirectories are ignored.
func (s *DirSource) Load(ctx context.Context) (Tables, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory %s: %w", s.dir, err)
	}

	tables := make(Tables)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := filepath.Join(s.dir, entry.Name())
		f, err := s.fs.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file, err)
		}
		df, err := ReadTable(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}

		name := s.naming.TableName(entry.Name())
		if _, dup := tables[name]; dup {
			s.logger.Warn("Table name derived twice, keeping the later file", zap.String("table", name), zap.String("file", file))
		}
		s.logger.Debug("Loaded table", zap.String("table", name), zap.String("file", file), zap.Int("rows", df.Nrow()), zap.Int("cols", df.Ncol()))
		tables[name] = df
	}

	return tables, nil
}

// BucketSource reads tables stored as objects directly under a prefix.
type BucketSource struct {
	client storage.Client
	bucket string
	prefix string
	naming Naming
	logger *zap.Logger
}

// NewBucketSource creates a bucket source.
func NewBucketSource(client storage.Client, bucket, prefix string, naming Naming, logger *zap.Logger) *BucketSource {
	return &BucketSource{client: client, bucket: bucket, prefix: prefix, naming: naming, logger: logger}
}

// Load lists the prefix non-recursively and reads every *.csv object.
func (s *BucketSource) Load(ctx context.Context) (Tables, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	keys, err := ListTableObjects(ctx, s.client, s.bucket, s.prefix)
	if err != nil {
		return nil, err
	}

	tables := make(Tables)
	for _, key := range keys {
		obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get object %s: %w", key, err)
		}
		df, err := ReadTable(obj)
		obj.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", key, err)
		}

		base := path.Base(key)
		name := s.naming.TableName(base)
		if _, dup := tables[name]; dup {
			s.logger.Warn("Table name derived twice, keeping the later object", zap.String("table", name), zap.String("object", key))
		}
		s.logger.Debug("Loaded table", zap.String("table", name), zap.String("object", key), zap.Int("rows", df.Nrow()), zap.Int("cols", df.Ncol()))
		tables[name] = df
	}

	return tables, nil
}

// ListTableObjects returns the sorted keys of *.csv objects directly under prefix.
func ListTableObjects(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}

	var keys []string
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, obj.Err)
		}
		rest := strings.TrimPrefix(obj.Key, prefix)
		if strings.Contains(rest, "/") || !strings.HasSuffix(rest, Extension) {
			continue
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}
