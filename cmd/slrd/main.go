/*
Slrd starts the SLR(1) pipeline history server and begins listening for new
connections.

Usage:

	slrd [flags]
	slrd [flags] -l [[ADDRESS]:PORT]

Once started, slrd loads a single grammar, computes its FIRST/FOLLOW sets
and ACTION/GOTO table once, and then accepts HTTP requests that submit
source text to be scanned and parsed against it, recording each run for
later retrieval. By default it listens on localhost:8080; this can be
changed with the --listen/-l flag or the SLRD_LISTEN_ADDRESS environment
variable.

If a JWT token secret is not given, one will be automatically generated and
seeded from crypto/rand. As a consequence, in this mode of operation all
tokens are rendered invalid as soon as the server shuts down. This is
suitable for testing, but must be given via either CLI flags or environment
variable if running in production.

The flags are:

	-v, --version
		Give the current version and exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, defaults to the value of environment variable
		SLRD_LISTEN_ADDRESS, and if that is not given, defaults to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are fewer
		than 32 bytes in the secret, it is repeated until it is. The maximum
		size is 64 bytes. If not given, defaults to the value of environment
		variable SLRD_TOKEN_SECRET; if that is empty too, a random secret is
		generated.

	-g, --grammar FILE
		Use the provided TOML grammar description. Defaults to
		"grammar.toml" in the current working directory.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of: inmem,
		sqlite. inmem has no further params. sqlite needs the path to the
		data directory, e.g. sqlite:path/to/db_dir. If not given, defaults to
		the value of environment variable SLRD_DATABASE, and if that is
		empty too, an in-memory database is used.
*/
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/corvane/slrforge/internal/version"
	"github.com/corvane/slrforge/server"
	"github.com/corvane/slrforge/server/dao"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvListen = "SLRD_LISTEN_ADDRESS"
	EnvSecret = "SLRD_TOKEN_SECRET"
	EnvDB     = "SLRD_DATABASE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version and exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagGrammar = pflag.StringP("grammar", "g", "grammar.toml", "The TOML grammar description file.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if args := pflag.Args(); len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		listenAddr = "localhost:8080"
	}

	dbConnStr := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}
	if dbConnStr == "" {
		dbConnStr = "inmem"
	}
	dbCfg, err := server.ParseDBConnString(dbConnStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Not a valid DB string: %s\nDo -h for help.\n", err)
		os.Exit(1)
	}

	secretStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		secretStr = *flagSecret
	}
	secret, err := resolveSecret(secretStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	cfg := server.Config{
		TokenSecret: secret,
		DB:          dbCfg,
		GrammarFile: *flagGrammar,
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	log.Printf("DEBUG server initialized")

	if err := seedAdminUser(srv); err != nil {
		log.Printf("ERROR could not create initial admin user: %v", err)
		os.Exit(2)
	}

	log.Printf("INFO  starting slrd on %s...", listenAddr)
	if err := srv.ListenAndServe(listenAddr); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}

func resolveSecret(secretStr string) ([]byte, error) {
	if secretStr == "" {
		secret := make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("could not generate token secret: %w", err)
		}
		log.Printf("WARN  using generated token secret; all tokens issued will become invalid at shutdown")
		return secret, nil
	}

	secret := []byte(secretStr)
	for len(secret) < server.MinSecretSize {
		doubled := make([]byte, len(secret)*2)
		copy(doubled, secret)
		copy(doubled[len(secret):], secret)
		secret = doubled
	}
	if len(secret) > server.MaxSecretSize {
		return nil, fmt.Errorf("token secret is %d bytes, but it must be <= %d bytes", len(secret), server.MaxSecretSize)
	}
	return secret, nil
}

// seedAdminUser creates a default admin/password account so there is
// someone to log in as on a freshly initialized store. It is a no-op if
// that user already exists.
func seedAdminUser(srv *server.Server) error {
	ctx := context.Background()
	users := srv.Users()

	if _, err := users.GetByUsername(ctx, "admin"); err == nil {
		return nil
	} else if !errors.Is(err, dao.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash initial admin password: %w", err)
	}

	if _, err := users.Create(ctx, dao.User{Username: "admin", Password: string(hash)}); err != nil {
		return err
	}
	log.Printf("INFO  added initial admin user with password 'password'")
	return nil
}
