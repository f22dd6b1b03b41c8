// Package config provides configuration management for the feature builder.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from `default` struct tags and are
// checked against `validate` tags after unmarshalling.
//
// # Configuration Structure
//
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL or SQLite connection used by the db export sink
//   - Storage: S3/MinIO credentials and bucket settings
//   - Dataset: where the marketplace CSV tables live (directory or bucket prefix)
//   - Export: which sink receives a built training table
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Dataset.Dir)
package config
