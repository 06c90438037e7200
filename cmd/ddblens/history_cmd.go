package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/acksell/ddblens/history"
)

func runHistory() error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	tableName := fs.String("table", "", "table name to list runs for (required)")
	limit := fs.Int("limit", 20, "maximum number of runs to list, 0 for all")
	fs.Parse(os.Args[1:])

	if *tableName == "" {
		return fmt.Errorf("--table is required")
	}

	cfg := LoadConfig()
	store, err := history.Open(history.StoreOptions{Path: cfg.HistoryDir})
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(*tableName, *limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("no recorded runs for table %q\n", *tableName)
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  partitions=%-6d method=%s\n",
			rec.RunAt.Local().Format(time.RFC3339), rec.Partitions, rec.Method)
	}
	return nil
}
