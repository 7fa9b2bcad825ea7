package main

import (
	"context"
	"fmt"
)

// sync warms both cache tiers with today's portal data so the app has
// something to show while offline.
func (cli *commandLine) sync() error {
	ctx := context.Background()

	notices, err := cli.noticeSvc.Today(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "notices: %d\n", len(notices))

	assessments, err := cli.assessSvc.Upcoming(ctx)
	if err != nil {
		return err
	}
	var marked int
	for i := range assessments {
		if assessments[i].IsMarked() {
			marked++
		}
	}
	fmt.Fprintf(cli.out, "upcoming assessments: %d (%d marked)\n", len(assessments), marked)

	years, err := cli.goalSvc.Years(ctx)
	if err != nil {
		return err
	}
	for _, year := range years {
		if _, err := cli.goalSvc.ForYear(ctx, year); err != nil {
			return err
		}
	}
	fmt.Fprintf(cli.out, "goal years: %d\n", len(years))

	entries, err := cli.folioSvc.All(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "folio entries: %d\n", len(entries))
	return nil
}
