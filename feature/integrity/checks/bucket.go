package checks

import (
	"context"
	"fmt"
	"path"

	"order-features/core/dataset"
	"order-features/core/storage"
)

// BucketReport lists the tables found as objects under the dataset prefix.
type BucketReport struct {
	Bucket  string   `json:"bucket"`
	Prefix  string   `json:"prefix"`
	Objects []string `json:"objects"`
	Missing []string `json:"missing"`
}

// CheckBucket verifies that the bucket exists and holds one CSV object per
// required table directly under prefix.
func CheckBucket(ctx context.Context, client storage.Client, bucket, prefix string, naming dataset.Naming) (*BucketReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	keys, err := dataset.ListTableObjects(ctx, client, bucket, prefix)
	if err != nil {
		return nil, err
	}

	found := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		found[naming.TableName(path.Base(key))] = struct{}{}
	}

	report := &BucketReport{Bucket: bucket, Prefix: prefix, Objects: keys, Missing: []string{}}
	for _, name := range RequiredTables() {
		if _, ok := found[name]; !ok {
			report.Missing = append(report.Missing, name)
		}
	}
	return report, nil
}
