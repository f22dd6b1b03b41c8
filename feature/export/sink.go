package export

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"order-features/core/database"
	"order-features/core/frame"
	"order-features/core/storage"
	"order-features/feature/orders/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// Sink persists a derived table and returns the number of rows written.
type Sink interface {
	Write(ctx context.Context, df dataframe.DataFrame) (int, error)
	// Target describes the destination for logs (e.g. a path or bucket/key).
	Target() string
}

// Deps carries the connections a sink may need. Only the one matching the
// configured sink has to be set.
type Deps struct {
	Fs     afero.Fs
	DB     *gorm.DB
	Client storage.Client
	Bucket string
}

// NewSink creates the sink selected by cfg.Sink.
func NewSink(cfg Config, deps Deps) (Sink, error) {
	switch cfg.Sink {
	case SinkCSV:
		fs := deps.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		return NewCSVSink(fs, cfg.Path), nil
	case SinkDB:
		if deps.DB == nil {
			return nil, fmt.Errorf("db sink requires a database connection")
		}
		return NewDBSink(deps.DB, cfg.Table, cfg.BatchSize, cfg.Migrate), nil
	case SinkBucket:
		if deps.Client == nil {
			return nil, fmt.Errorf("bucket sink requires a storage client")
		}
		return NewBucketSink(deps.Client, deps.Bucket, cfg.Object), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
	}
}

// CSVSink writes the table as a CSV file.
type CSVSink struct {
	fs   afero.Fs
	path string
}

// NewCSVSink creates a sink writing to path on fs.
func NewCSVSink(fs afero.Fs, path string) *CSVSink {
	return &CSVSink{fs: fs, path: path}
}

// Target returns the output path.
func (s *CSVSink) Target() string { return s.path }

// Write replaces the file with the table, header included.
func (s *CSVSink) Write(ctx context.Context, df dataframe.DataFrame) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := s.fs.Create(s.path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", s.path, err)
	}
	if err := csvFrame(df).WriteCSV(f); err != nil {
		f.Close()
		return 0, fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	return df.Nrow(), nil
}

// csvFrame renders float columns in their shortest exact form. gota prints
// floats with six fixed decimals, which rounds small day fractions away.
func csvFrame(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Err != nil || df.Ncol() == 0 {
		return df
	}
	names := df.Names()
	cols := make([]series.Series, len(names))
	for c, name := range names {
		s := df.Col(name)
		if s.Type() != series.Float {
			cols[c] = s
			continue
		}
		vals := make([]string, s.Len())
		for i := range vals {
			if frame.IsMissing(s, i) {
				vals[i] = "NaN"
				continue
			}
			vals[i] = strconv.FormatFloat(s.Elem(i).Float(), 'g', -1, 64)
		}
		cols[c] = series.New(vals, series.String, name)
	}
	return dataframe.New(cols...)
}

// BucketSink uploads the table as a CSV object.
type BucketSink struct {
	client storage.Client
	bucket string
	object string
}

// NewBucketSink creates a sink uploading to bucket/object.
func NewBucketSink(client storage.Client, bucket, object string) *BucketSink {
	return &BucketSink{client: client, bucket: bucket, object: object}
}

// Target returns bucket/object.
func (s *BucketSink) Target() string { return s.bucket + "/" + s.object }

// Write uploads the table, replacing any previous object.
func (s *BucketSink) Write(ctx context.Context, df dataframe.DataFrame) (int, error) {
	var buf bytes.Buffer
	if err := csvFrame(df).WriteCSV(&buf); err != nil {
		return 0, fmt.Errorf("failed to encode table: %w", err)
	}

	size := int64(buf.Len())
	_, err := s.client.PutObject(ctx, s.bucket, s.object, &buf, size, minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return 0, fmt.Errorf("failed to upload %s: %w", s.Target(), err)
	}
	return df.Nrow(), nil
}

// DBSink stores training rows in a database table.
type DBSink struct {
	db        *gorm.DB
	table     string
	batchSize int
	migrate   bool
}

// NewDBSink creates a sink writing to table. With migrate the table is
// created or extended to fit TrainingRow; otherwise it must already match.
func NewDBSink(db *gorm.DB, table string, batchSize int, migrate bool) *DBSink {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &DBSink{db: db, table: table, batchSize: batchSize, migrate: migrate}
}

// Target returns the table name.
func (s *DBSink) Target() string { return s.table }

// Write replaces the table contents with the rows of df in one transaction.
func (s *DBSink) Write(ctx context.Context, df dataframe.DataFrame) (int, error) {
	rows, err := models.FromFrame(df)
	if err != nil {
		return 0, err
	}

	db := s.db.WithContext(ctx)
	if s.migrate {
		if err := db.Table(s.table).AutoMigrate(&models.TrainingRow{}); err != nil {
			return 0, fmt.Errorf("failed to migrate %s: %w", s.table, err)
		}
	} else {
		missing, err := database.MissingColumns(db, s.table, models.Columns)
		if err != nil {
			return 0, err
		}
		if len(missing) > 0 {
			return 0, fmt.Errorf("table %s is missing columns %v", s.table, missing)
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(s.table).Where("1 = 1").Delete(&models.TrainingRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", s.table, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Table(s.table).CreateInBatches(rows, s.batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert into %s: %w", s.table, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
