package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const sessionKey = "session_jwt"

// login authenticates against the portal and persists the session token so
// the API server can restore it on next start.
func (cli *commandLine) login(uname, pwd string) error {
	ctx := context.Background()
	if err := cli.client.Login(ctx, uname, pwd); err != nil {
		return err
	}

	token := cli.client.Token()
	expiresAt := sessionExpiry(token)
	if err := cli.store.Set(ctx, sessionKey, []byte(token), expiresAt); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "logged in; session valid until %s\n", expiresAt.Format(time.RFC1123))
	return nil
}

func sessionExpiry(token string) time.Time {
	claims := new(jwt.StandardClaims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Now().Add(24 * time.Hour)
	}
	return time.Unix(claims.ExpiresAt, 0)
}
