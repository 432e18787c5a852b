package salescsv

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/soulfoods/sales-dashboard/pkg/sales"
)

// DefaultPattern matches the daily sales shards.
const DefaultPattern = "daily_sales_data_*.csv"

// Shard is the parsed content of one shard.
type Shard struct {
	Path string
	Rows []sales.RawRecord
}

// Discover returns the shards in dir matching pattern, sorted by name.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	fi, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return nil, LoadError.New("data directory %q does not exist", dir)
	case err != nil:
		return nil, LoadError.Wrap(err)
	case !fi.IsDir():
		return nil, LoadError.New("%q is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, LoadError.New("invalid pattern %q: %v", pattern, err)
	}
	if len(paths) == 0 {
		return nil, LoadError.New("no files matching %q in %q", pattern, dir)
	}
	slices.Sort(paths)
	return paths, nil
}

// LoadShards reads every path concurrently. The result is in the same order
// as paths; the first failure cancels the remaining reads.
func LoadShards(ctx context.Context, paths []string) ([]Shard, error) {
	shards := make([]Shard, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return LoadError.Wrap(err)
			}
			rows, err := Load(path)
			if err != nil {
				return err
			}
			shards[i] = Shard{Path: path, Rows: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return shards, nil
}

// Concat joins shard rows in order.
func Concat(shards []Shard) []sales.RawRecord {
	var n int
	for _, shard := range shards {
		n += len(shard.Rows)
	}
	rows := make([]sales.RawRecord, 0, n)
	for _, shard := range shards {
		rows = append(rows, shard.Rows...)
	}
	return rows
}
