package ports

import (
	"context"

	"epistat/domain/dataset"
)

// DatasetReader loads a tabular dataset from a filesystem path.
// A missing or empty file is a fatal input error for the run; implementations
// do not retry.
type DatasetReader interface {
	Read(ctx context.Context, path string) (*dataset.Frame, error)
}
