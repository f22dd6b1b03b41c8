// Package checks holds the individual dataset and export checks.
//
// Dataset checks work on loaded tables and never fail on bad data; they
// report it. Bucket and export checks talk to storage and the database and
// return an error when those cannot be reached.
package checks
