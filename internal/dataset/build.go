package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aip-heidelberg/codeeval/internal/bop"
)

// Build reads every .d file in dir and writes a CSV dataset to out with
// columns id (filename without extension) and d_with_params (file content).
// Files are read concurrently; rows are emitted sorted by id.
func Build(ctx context.Context, dir, out string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var names []string

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".d") {
			names = append(names, entry.Name())
		}
	}

	if len(names) == 0 {
		return 0, fmt.Errorf("no .d files found in %s", dir)
	}

	var (
		mu      sync.Mutex
		records []bop.Record
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}

			rec := bop.Record{
				"id":            strings.TrimSuffix(name, ".d"),
				"d_with_params": string(content),
			}

			mu.Lock()
			records = append(records, rec)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i]["id"].(string) < records[j]["id"].(string)
	})

	bag, err := bop.FromRecords(CorpusSchema, records)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", out, err)
	}

	if err := bag.WriteCSV(f); err != nil {
		_ = f.Close()
		return 0, err
	}

	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing %s: %w", out, err)
	}

	return bag.Len(), nil
}
