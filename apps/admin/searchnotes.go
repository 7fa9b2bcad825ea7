package main

import (
	"context"
	"fmt"

	"github.com/trezcool/darasa/core/note"
)

func (cli *commandLine) searchNotes(query string, filters note.SearchFilters) error {
	results, err := cli.noteSvc.Search(context.Background(), query, filters)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(cli.out, "no notes found")
		return nil
	}
	for _, res := range results {
		fmt.Fprintf(cli.out, "%6.1f  %s  (%s)\n", res.Score, res.Note.Title, res.Note.ID)
		for _, m := range res.Matches {
			fmt.Fprintf(cli.out, "        %s: %s\n", m.Field, m.Snippet)
		}
	}
	return nil
}
