package export

import (
	"bytes"
	"context"
	"io"
	"math"
	"strconv"
	"strings"
	"testing"

	"order-features/core/storage/mocks"
	"order-features/feature/orders/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func trainingFrame(ids ...string) dataframe.DataFrame {
	n := len(ids)
	floats := func(v float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}
	ints := func(v int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = v
		}
		return out
	}
	status := make([]string, n)
	for i := range status {
		status[i] = "delivered"
	}

	return dataframe.New(
		series.New(ids, series.String, "order_id"),
		series.New(floats(8.5), series.Float, "wait_time"),
		series.New(floats(15), series.Float, "expected_wait_time"),
		series.New(floats(0), series.Float, "delay_vs_expected"),
		series.New(status, series.String, "order_status"),
		series.New(ints(0), series.Int, "dim_is_one_star"),
		series.New(ints(1), series.Int, "dim_is_five_star"),
		series.New(ints(5), series.Int, "review_score"),
		series.New(ints(1), series.Int, "number_of_products"),
		series.New(ints(1), series.Int, "number_of_sellers"),
		series.New(floats(100), series.Float, "price"),
		series.New(floats(10), series.Float, "freight_value"),
	)
}

func TestNewSink(t *testing.T) {
	sink, err := NewSink(Config{Sink: SinkCSV, Path: "out/x.csv"}, Deps{Fs: afero.NewMemMapFs()})
	require.NoError(t, err)
	assert.IsType(t, &CSVSink{}, sink)
	assert.Equal(t, "out/x.csv", sink.Target())

	_, err = NewSink(Config{Sink: SinkDB}, Deps{})
	assert.Error(t, err)

	_, err = NewSink(Config{Sink: SinkBucket}, Deps{})
	assert.Error(t, err)

	sink, err = NewSink(Config{Sink: SinkBucket, Object: "f/t.csv"}, Deps{Client: new(mocks.Client), Bucket: "olist"})
	require.NoError(t, err)
	assert.Equal(t, "olist/f/t.csv", sink.Target())

	_, err = NewSink(Config{Sink: "parquet"}, Deps{})
	assert.ErrorContains(t, err, "unknown sink")
}

func TestCSVSink(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewCSVSink(fs, "out/training_data.csv")

	n, err := sink.Write(context.Background(), trainingFrame("o1", "o2"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := afero.ReadFile(fs, "out/training_data.csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "order_id,wait_time,"))
	assert.True(t, strings.HasPrefix(lines[1], "o1,8.5,15,0,delivered,0,1,5,1,1,100,10"))
}

func TestCSVSink_FloatPrecision(t *testing.T) {
	fs := afero.NewMemMapFs()
	df := dataframe.New(
		series.New([]string{"o1", "o2"}, series.String, "order_id"),
		series.New([]float64{1.0 / 86400, math.NaN()}, series.Float, "wait_time"),
		series.New([]int{5, 1}, series.Int, "review_score"),
	)

	_, err := NewCSVSink(fs, "t.csv").Write(context.Background(), df)
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "t.csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)

	first := strings.Split(lines[1], ",")
	require.Len(t, first, 3)
	wait, err := strconv.ParseFloat(first[1], 64)
	require.NoError(t, err)
	assert.Equal(t, 1.0/86400, wait)
	assert.Equal(t, "5", first[2])
	assert.Equal(t, "o2,NaN,1", lines[2])
}

func TestCSVSink_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCSVSink(afero.NewMemMapFs(), "x.csv").Write(ctx, trainingFrame("o1"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBucketSink(t *testing.T) {
	client := new(mocks.Client)
	var uploaded bytes.Buffer
	client.On("PutObject", mock.Anything, "olist", "features/training_data.csv", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == "text/csv" })).
		Run(func(args mock.Arguments) {
			_, _ = io.Copy(&uploaded, args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	n, err := NewBucketSink(client, "olist", "features/training_data.csv").Write(context.Background(), trainingFrame("o1"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, uploaded.String(), "o1,8.5,15,0,delivered,0,1,5,")
	client.AssertExpectations(t)
}

func TestBucketSink_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "olist", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	_, err := NewBucketSink(client, "olist", "t.csv").Write(context.Background(), trainingFrame("o1"))
	assert.ErrorIs(t, err, assert.AnError)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func showColumns(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, n := range names {
		rows.AddRow(n, "double", "YES", "", nil, "")
	}
	return rows
}

func TestDBSink_Replace(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `training_data`").WillReturnRows(showColumns(models.Columns...))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `training_data`").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO `training_data`").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := NewDBSink(db, "training_data", 10, false).Write(context.Background(), trainingFrame("o1", "o2"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBSink_Rollback(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `training_data`").WillReturnRows(showColumns(models.Columns...))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `training_data`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `training_data`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := NewDBSink(db, "training_data", 10, false).Write(context.Background(), trainingFrame("o1"))
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBSink_MissingColumns(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS FROM `training_data`").WillReturnRows(showColumns("order_id"))

	_, err := NewDBSink(db, "training_data", 10, false).Write(context.Background(), trainingFrame("o1"))
	assert.ErrorContains(t, err, "missing columns")
}

func TestDBSink_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	sink := NewDBSink(db, "features", 1, true)

	n, err := sink.Write(context.Background(), trainingFrame("o1", "o2", "o3"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// A second write replaces the first
	_, err = sink.Write(context.Background(), trainingFrame("o9"))
	require.NoError(t, err)

	var rows []models.TrainingRow
	require.NoError(t, db.Table("features").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "o9", rows[0].OrderID)
	assert.Equal(t, 100.0, rows[0].Price)
	assert.Nil(t, rows[0].DistanceSellerCustomer)
}
