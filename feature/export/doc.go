// Package export persists derived feature tables.
//
// A Sink writes one table and reports the rows written. Three sinks exist:
//
//   - csv: a local file through an afero filesystem.
//   - db: a gorm table holding models.TrainingRow rows. Contents are replaced
//     in a single transaction and inserted in batches.
//   - bucket: a text/csv object in the storage bucket.
//
// NewSink picks one from Config.
package export
