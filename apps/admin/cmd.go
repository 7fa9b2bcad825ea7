package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assessment"
	"github.com/trezcool/darasa/core/cache"
	"github.com/trezcool/darasa/core/folio"
	"github.com/trezcool/darasa/core/goal"
	"github.com/trezcool/darasa/core/note"
	"github.com/trezcool/darasa/core/notice"
	"github.com/trezcool/darasa/services/seqta"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out    io.Writer
	client *seqta.Client
	store  core.KVStore
	loader *cache.Loader

	noticeSvc *notice.Service
	assessSvc *assessment.Service
	goalSvc   *goal.Service
	folioSvc  *folio.Service
	noteSvc   *note.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME      - log into the portal; the password is prompted next")
	fmt.Fprintln(cli.out, "  sync                          - warm the cache with today's portal data for offline use")
	fmt.Fprintln(cli.out, "  searchnotes -query QUERY      - search local notes")
	fmt.Fprintln(cli.out, "  clearcache                    - drop both cache tiers; the login session is kept")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginUname := loginCmd.String("username", "", "The portal username. The password will be prompted next.")

	searchCmd := flag.NewFlagSet("searchnotes", flag.ExitOnError)
	searchQuery := searchCmd.String("query", "", "The search query.")
	searchTag := searchCmd.String("tag", "", "Only notes carrying this tag.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginUname == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginUname, string(pwd))
	case "sync":
		return cli.sync()
	case "searchnotes":
		if err := searchCmd.Parse(args[2:]); err != nil {
			return err
		}
		var filters note.SearchFilters
		if *searchTag != "" {
			filters.Tags = []string{*searchTag}
		}
		if *searchQuery == "" && filters.IsEmpty() {
			searchCmd.Usage()
			return errHelp
		}
		return cli.searchNotes(*searchQuery, filters)
	case "clearcache":
		return cli.clearCache()
	default:
		cli.printUsage()
		return errHelp
	}
}
