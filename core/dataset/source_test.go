package dataset

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"order-features/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestDirSource_Load(t *testing.T) {
	fs := memFs(t, map[string]string{
		"data/csv/olist_orders_dataset.csv":              "order_id,customer_id\no1,c1\no2,c2\n",
		"data/csv/olist_sellers_dataset.csv":             "seller_id,seller_zip_code_prefix\ns1,01037\n",
		"data/csv/README.md":                             "not a table",
		"data/csv/archive/olist_old_dataset.csv":         "x\n1\n",
		"data/csv/product_category_name_translation.csv": "product_category_name,product_category_name_english\nbeleza_saude,health_beauty\n",
	})

	src := NewDirSource(fs, "data/csv", DefaultNaming, zap.NewNop())
	tables, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"orders", "product_category_name_translation", "sellers"}, tables.Names())
	assert.Equal(t, 2, tables["orders"].Nrow())
	assert.Equal(t, 2, tables["orders"].Ncol())
	assert.NotContains(t, tables, "old")
}

func TestDirSource_HeaderOnlyTable(t *testing.T) {
	fs := memFs(t, map[string]string{
		"d/olist_orders_dataset.csv":      "order_id,customer_id\no1,c1\n",
		"d/olist_order_items_dataset.csv": "order_id,order_item_id,seller_id\n",
	})

	tables, err := NewDirSource(fs, "d", DefaultNaming, zap.NewNop()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"order_items", "orders"}, tables.Names())
	assert.Equal(t, 0, tables["order_items"].Nrow())
	assert.Equal(t, 3, tables["order_items"].Ncol())
	assert.Equal(t, 1, tables["orders"].Nrow())
}

func TestDirSource_Reloads(t *testing.T) {
	fs := memFs(t, map[string]string{"d/olist_orders_dataset.csv": "order_id\no1\n"})
	src := NewDirSource(fs, "d", DefaultNaming, zap.NewNop())

	first, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first["orders"].Nrow())

	require.NoError(t, afero.WriteFile(fs, "d/olist_orders_dataset.csv", []byte("order_id\no1\no2\n"), 0o644))
	second, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second["orders"].Nrow())
}

func TestDirSource_Errors(t *testing.T) {
	t.Run("MissingDirectory", func(t *testing.T) {
		src := NewDirSource(afero.NewMemMapFs(), "nowhere", DefaultNaming, zap.NewNop())
		_, err := src.Load(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nowhere")
	})

	t.Run("MalformedFile", func(t *testing.T) {
		fs := memFs(t, map[string]string{"d/olist_orders_dataset.csv": "a,b\n1\n"})
		src := NewDirSource(fs, "d", DefaultNaming, zap.NewNop())
		_, err := src.Load(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "olist_orders_dataset.csv")
	})

	t.Run("CanceledContext", func(t *testing.T) {
		fs := memFs(t, map[string]string{"d/olist_orders_dataset.csv": "order_id\no1\n"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewDirSource(fs, "d", DefaultNaming, zap.NewNop()).Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLoadTables(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "olist_customers_dataset.csv"), []byte("customer_id,customer_zip_code_prefix\nc1,14409\n"), 0o644))

	tables, err := LoadTables(dir)
	require.NoError(t, err)
	require.Contains(t, tables, "customers")
	assert.Equal(t, "14409", tables["customers"].Col("customer_zip_code_prefix").Elem(0).String())
}

func TestBucketSource_Load(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "olist").Return(true, nil)
	client.On("ListObjects", mock.Anything, "olist", minio.ListObjectsOptions{Prefix: "csv/", Recursive: false}).
		Return(mocks.Objects("csv/olist_orders_dataset.csv", "csv/notes.txt", "csv/archive/", "csv/olist_sellers_dataset.csv"))
	client.On("GetObject", mock.Anything, "olist", "csv/olist_orders_dataset.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader("order_id\no1\n")), nil)
	client.On("GetObject", mock.Anything, "olist", "csv/olist_sellers_dataset.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader("seller_id\ns1\ns2\n")), nil)

	src := NewBucketSource(client, "olist", "csv/", DefaultNaming, zap.NewNop())
	tables, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"orders", "sellers"}, tables.Names())
	assert.Equal(t, 2, tables["sellers"].Nrow())
	client.AssertExpectations(t)
}

func TestBucketSource_Errors(t *testing.T) {
	t.Run("BucketMissing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "olist").Return(false, nil)
		_, err := NewBucketSource(client, "olist", "csv/", DefaultNaming, zap.NewNop()).Load(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("GetObjectFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "olist").Return(true, nil)
		client.On("ListObjects", mock.Anything, "olist", mock.Anything).Return(mocks.Objects("csv/olist_orders_dataset.csv"))
		client.On("GetObject", mock.Anything, "olist", "csv/olist_orders_dataset.csv", mock.Anything).Return(nil, errors.New("denied"))
		_, err := NewBucketSource(client, "olist", "csv/", DefaultNaming, zap.NewNop()).Load(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "denied")
	})

	t.Run("ListingFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "olist").Return(true, nil)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("timeout")}
		close(ch)
		client.On("ListObjects", mock.Anything, "olist", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))
		_, err := NewBucketSource(client, "olist", "csv/", DefaultNaming, zap.NewNop()).Load(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	})
}

func TestNewSource(t *testing.T) {
	fs := afero.NewMemMapFs()

	src, err := NewSource(Config{Source: "dir", Dir: "d"}, fs, nil, "", zap.NewNop())
	assert.NoError(t, err)
	assert.IsType(t, &DirSource{}, src)

	src, err = NewSource(Config{Source: "bucket", Prefix: "csv/"}, fs, new(mocks.Client), "olist", zap.NewNop())
	assert.NoError(t, err)
	assert.IsType(t, &BucketSource{}, src)

	_, err = NewSource(Config{Source: "bucket"}, fs, nil, "olist", zap.NewNop())
	assert.Error(t, err)

	_, err = NewSource(Config{Source: "ftp"}, fs, nil, "", zap.NewNop())
	assert.Error(t, err)
}
