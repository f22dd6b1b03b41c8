package dataset

// Config holds configuration for locating the marketplace tables.
type Config struct {
	// Source selects where tables are read from (dir, bucket).
	Source string `mapstructure:"source" default:"dir" validate:"oneof=dir bucket"`
	// Dir is the local directory holding the CSV files.
	Dir string `mapstructure:"dir" default:"data/csv"`
	// Prefix is the object prefix holding the CSV files in the storage bucket.
	Prefix string `mapstructure:"prefix" default:"csv/"`
	// TablePrefix is stripped from file names to derive table names.
	TablePrefix string `mapstructure:"table_prefix" default:"olist_"`
	// TableSuffix is stripped from file names to derive table names.
	TableSuffix string `mapstructure:"table_suffix" default:"_dataset"`
	// ReviewsRows is the expected row count of the reviews table (dataset version sentinel).
	ReviewsRows int `mapstructure:"reviews_rows" default:"99224" validate:"min=0"`
	// ReviewsCols is the expected column count of the reviews table.
	ReviewsCols int `mapstructure:"reviews_cols" default:"7" validate:"min=0"`
}

// Naming returns the file naming tokens for this configuration.
func (c Config) Naming() Naming {
	return Naming{Prefix: c.TablePrefix, Suffix: c.TableSuffix}
}
