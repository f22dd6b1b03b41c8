// Package integrity validates the dataset and the export target.
//
// Feature builds fail on the first problem they meet; this package instead
// reports every problem at once so a broken dataset can be fixed in one pass.
//
// # Checks Provided
//
//   - Tables: every table the order features read is present.
//   - Schema: each of those tables carries the columns the derivations use.
//   - Reviews: the reviews table has the expected rows x columns, which pins
//     the dataset release.
//   - Bucket: the storage bucket exists and holds one CSV object per table
//     under the dataset prefix.
//   - Export: the database table the db sink writes to matches the
//     TrainingRow model.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/tables : Runs tables check.
//   - GET /integrity/schema : Runs schema check.
//   - GET /integrity/reviews : Runs reviews shape check.
//   - GET /integrity/bucket : Runs bucket check.
//   - GET /integrity/export : Runs export table check.
package integrity
