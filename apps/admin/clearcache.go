package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) clearCache() error {
	ctx := context.Background()

	// the session lives in the same store; a cache flush must not log out
	token, expiresAt, hadSession, err := cli.store.Get(ctx, sessionKey)
	if err != nil {
		return err
	}
	if err := cli.loader.Flush(ctx); err != nil {
		return err
	}
	if hadSession {
		if err := cli.store.Set(ctx, sessionKey, token, expiresAt); err != nil {
			return err
		}
	}
	fmt.Fprintln(cli.out, "cache cleared")
	return nil
}
