// Package cli is the operator-facing command line for the audio
// resolver: searching sale recordings, browsing a server's monitor
// tree, fetching files and driving the fast script-based search.
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sozarusac/callaudio/internal/config"
	"github.com/sozarusac/callaudio/internal/filex"
	"github.com/sozarusac/callaudio/internal/flagx"
	"github.com/sozarusac/callaudio/internal/logging"
	"github.com/sozarusac/callaudio/internal/models"
	"github.com/sozarusac/callaudio/internal/profile"
	"github.com/sozarusac/callaudio/internal/remote"
	"github.com/sozarusac/callaudio/internal/resolver"
)

const usage = `usage: callaudio <command> [flags]

commands:
  search   locate the recordings of a sale across the fleet
  browse   list a directory on one server
  fetch    download one or more files from one server
  fast     run the script-based duration-filtered search
  purge    remove a fast-search results directory
`

type App struct {
	cfg   *config.Config
	table *profile.Table
	log   logging.Logger
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	fillPasswords(cfg)

	table, err := profile.NewTable(cfg.Servers)
	if err != nil {
		return nil, fmt.Errorf("server table: %w", err)
	}

	return &App{cfg: cfg, table: table, log: logger}, nil
}

func (a *App) Run(ctx context.Context) error {
	// Global flags are parsed by the config layer; strip them so the
	// verb and its own flags remain.
	args := flagx.RemoveArgs(os.Args[1:], []string{"-b", "-s", "-c", "-config"})

	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "search":
		return a.runSearch(ctx, args[1:])
	case "browse":
		return a.runBrowse(ctx, args[1:])
	case "fetch":
		return a.runFetch(ctx, args[1:])
	case "fast":
		return a.runFast(ctx, args[1:])
	case "purge":
		return a.runPurge(ctx, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) client(serverID string) (*remote.Client, error) {
	p, err := a.table.Get(serverID)
	if err != nil {
		return nil, err
	}
	return remote.NewClient(p, a.log), nil
}

func (a *App) runSearch(ctx context.Context, args []string) error {
	fs := newFlagSet("search")
	server := fs.String("server", "", "logical server id")
	timestamp := fs.String("timestamp", "", "call timestamp, ISO-8601")
	contact := fs.String("contact", "", "contact number as stored by the CRM")
	agent := fs.String("agent", "", "agent code filter (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := resolver.NewService(a.table, a.cfg.BaseURL, a.log)
	res := svc.Resolve(ctx, newSearchRequest(*server, *timestamp, *contact, *agent))

	return printJSON(res)
}

func (a *App) runBrowse(ctx context.Context, args []string) error {
	fs := newFlagSet("browse")
	server := fs.String("server", "", "logical server id")
	path := fs.String("path", "", "sub-path under the monitor directory")
	find := fs.String("find", "", "name filter")
	from := fs.String("from", "", "modification date lower bound, YYYY-MM-DD")
	to := fs.String("to", "", "modification date upper bound, YYYY-MM-DD")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := a.client(*server)
	if err != nil {
		return err
	}

	pageSize := *size
	if pageSize < 1 {
		pageSize = a.cfg.ListPageSize
	}

	listing, err := client.ListPage(ctx, *path,
		remote.ListOptions{Search: *find, DateFrom: *from, DateTo: *to}, *page, pageSize)
	if err != nil {
		return err
	}

	return printJSON(listing)
}

func (a *App) runFetch(ctx context.Context, args []string) error {
	fs := newFlagSet("fetch")
	server := fs.String("server", "", "logical server id")
	path := fs.String("path", "", "sub-path under the monitor directory")
	files := fs.String("files", "", "comma-separated filenames; several are bundled into files.zip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	names := splitList(*files)
	if len(names) == 0 {
		return fmt.Errorf("no files requested")
	}

	client, err := a.client(*server)
	if err != nil {
		return err
	}

	dir, err := filex.EnsureSubDir("downloads")
	if err != nil {
		return err
	}

	var outName string
	var data []byte

	if len(names) == 1 {
		outName = names[0]
		data, err = client.Download(ctx, *path, names[0])
	} else {
		outName = "files.zip"
		data, err = client.DownloadZip(ctx, *path, names)
	}
	if err != nil {
		return err
	}

	out := filepath.Join(dir, outName)
	if err := os.WriteFile(out, data, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	a.log.Info(ctx, "saved download", "file", out, "bytes", len(data))
	return nil
}

func (a *App) runFast(ctx context.Context, args []string) error {
	fs := newFlagSet("fast")
	server := fs.String("server", "", "logical server id")
	number := fs.String("number", "", "phone number to pre-filter on the server")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 50, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := a.client(*server)
	if err != nil {
		return err
	}

	result, err := client.SearchByNumber(ctx, *number, *page, *size)
	if err != nil {
		return err
	}

	return printJSON(result)
}

func (a *App) runPurge(ctx context.Context, args []string) error {
	fs := newFlagSet("purge")
	server := fs.String("server", "", "logical server id")
	number := fs.String("number", "", "phone number whose results to remove")
	date := fs.String("date", "", "results day, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := a.client(*server)
	if err != nil {
		return err
	}

	return client.PurgeResults(ctx, *number, *date)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func newSearchRequest(server, timestamp, contact, agent string) models.SearchRequest {
	return models.SearchRequest{
		ServerID:      server,
		CallTimestamp: timestamp,
		ContactNumber: contact,
		AgentCode:     agent,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
