package export

// Sink kinds.
const (
	SinkCSV    = "csv"
	SinkDB     = "db"
	SinkBucket = "bucket"
)

// Config holds configuration for persisting derived feature tables.
type Config struct {
	// Sink selects where tables are written (csv, db, bucket).
	Sink string `mapstructure:"sink" default:"csv" validate:"oneof=csv db bucket"`
	// Path is the output file of the csv sink.
	Path string `mapstructure:"path" default:"out/training_data.csv"`
	// Table is the database table of the db sink.
	Table string `mapstructure:"table" default:"training_data" validate:"required"`
	// Object is the object key of the bucket sink.
	Object string `mapstructure:"object" default:"features/training_data.csv"`
	// BatchSize is the number of rows per INSERT of the db sink.
	BatchSize int `mapstructure:"batch_size" default:"500" validate:"min=1"`
	// Migrate lets the db sink create or alter the table before writing.
	Migrate bool `mapstructure:"migrate" default:"true"`
}
