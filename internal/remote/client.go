// Package remote implements the per-server SSH/SFTP client used to
// locate, list and fetch call recordings. Every operation opens exactly
// one session, uses it, and releases it before returning; sessions are
// never pooled or shared.
package remote

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/sozarusac/callaudio/internal/logging"
	"github.com/sozarusac/callaudio/internal/models"
	"github.com/sozarusac/callaudio/internal/pagex"
	"github.com/sozarusac/callaudio/internal/profile"
	"github.com/sozarusac/callaudio/internal/shared"
)

const (
	connectTimeout     = 8 * time.Second
	keepAliveInterval  = 15 * time.Second
	keepAliveMaxMissed = 2
)

// Client talks to one remote recording server. It is stateless and safe
// for concurrent use; each call dials its own session.
type Client struct {
	profile profile.ServerProfile
	log     logging.Logger
	now     func() time.Time
}

func NewClient(p profile.ServerProfile, log logging.Logger) *Client {
	return &Client{
		profile: p,
		log:     log.With("server", p.ID, "host", p.Host),
		now:     time.Now,
	}
}

// ListOptions narrows a directory listing. Search is a case-insensitive
// substring match on the entry name; DateFrom/DateTo are inclusive
// YYYY-MM-DD bounds on the modification date.
type ListOptions struct {
	Search   string
	DateFrom string
	DateTo   string
}

// List resolves subPath against the monitor directory, lists it and
// returns the filtered entries, directories first, then files, both in
// case-insensitive name order.
func (c *Client) List(ctx context.Context, subPath string, opts ListOptions) ([]models.DirectoryEntry, error) {
	path, err := BuildPath(BaseMonitorDir, subPath)
	if err != nil {
		return nil, err
	}

	s, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	infos, err := s.sftp.ReadDir(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("list %s: %w", path, shared.ErrorNotFound)
		}
		return nil, fmt.Errorf("list %s: %v: %w", path, err, shared.ErrorRemoteUnavailable)
	}

	entries := mapEntries(infos, opts)
	sortEntries(entries)
	return entries, nil
}

// ListPage is List followed by stable pagination, for the browsing
// endpoints.
func (c *Client) ListPage(ctx context.Context, subPath string, opts ListOptions, page, size int) (pagex.Page[models.DirectoryEntry], error) {
	entries, err := c.List(ctx, subPath, opts)
	if err != nil {
		return pagex.Page[models.DirectoryEntry]{}, err
	}
	return pagex.Paginate(entries, page, size), nil
}

// Download fetches one file fully into memory. Any remote read failure
// is reported as not found.
func (c *Client) Download(ctx context.Context, subPath, filename string) ([]byte, error) {
	dir, err := BuildPath(BaseMonitorDir, subPath)
	if err != nil {
		return nil, err
	}

	s, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	data, err := readFile(s.sftp, dir+"/"+filename)
	if err != nil {
		return nil, fmt.Errorf("download %s: %v: %w", filename, err, shared.ErrorNotFound)
	}
	return data, nil
}

// DownloadZip bundles several files from one directory into a single
// in-memory zip archive. A member that fails to download is logged and
// skipped; the archive still succeeds as long as it can be finalized.
func (c *Client) DownloadZip(ctx context.Context, subPath string, filenames []string) ([]byte, error) {
	dir, err := BuildPath(BaseMonitorDir, subPath)
	if err != nil {
		return nil, err
	}

	s, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return c.buildZip(ctx, filenames, func(name string) ([]byte, error) {
		return readFile(s.sftp, dir+"/"+name)
	})
}

// buildZip assembles an in-memory archive from the named members, each
// fetched through read. A member whose read fails is logged and left
// out; the archive still finalizes with the surviving entries.
func (c *Client) buildZip(ctx context.Context, filenames []string, read func(name string) ([]byte, error)) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, name := range filenames {
		data, err := read(name)
		if err != nil {
			c.log.Warn(ctx, "skipping archive member", "file", name, "error", err)
			continue
		}

		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func readFile(client *sftp.Client, path string) ([]byte, error) {
	f, err := client.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// mapEntries converts raw listing rows into DirectoryEntry values,
// dropping dot entries and applying the name and date filters. An entry
// is never rejected for a date that fails to parse; only valid filter
// bounds narrow the listing.
func mapEntries(infos []os.FileInfo, opts ListOptions) []models.DirectoryEntry {
	var from, to time.Time
	if opts.DateFrom != "" {
		from, _ = time.Parse("2006-01-02", opts.DateFrom)
	}
	if opts.DateTo != "" {
		to, _ = time.Parse("2006-01-02", opts.DateTo)
	}

	search := strings.ToLower(opts.Search)

	entries := []models.DirectoryEntry{}
	for _, info := range infos {
		name := info.Name()
		if name == "." || name == ".." {
			continue
		}

		if search != "" && !strings.Contains(strings.ToLower(name), search) {
			continue
		}

		mtime := info.ModTime()
		date, _ := time.Parse("2006-01-02", mtime.Format("2006-01-02"))
		if !from.IsZero() && date.Before(from) {
			continue
		}
		if !to.IsZero() && date.After(to) {
			continue
		}

		entries = append(entries, models.DirectoryEntry{
			Name:      name,
			Date:      mtime.Format("2006-01-02"),
			Time:      mtime.Format("15:04:05"),
			SizeBytes: info.Size(),
			IsDir:     info.IsDir(),
		})
	}
	return entries
}

func sortEntries(entries []models.DirectoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}

// session bundles the SSH connection with its SFTP channel. Close is
// idempotent and releases both.
type session struct {
	conn *ssh.Client
	sftp *sftp.Client
	done chan struct{}
	once sync.Once
}

func (s *session) Close() {
	s.once.Do(func() {
		close(s.done)
		if s.sftp != nil {
			s.sftp.Close()
		}
		s.conn.Close()
	})
}

// connect dials the server and opens the SFTP channel. The returned
// session is closed automatically if ctx is canceled, so in-flight
// transfers unblock promptly.
func (c *Client) connect(ctx context.Context) (*session, error) {
	addr := net.JoinHostPort(c.profile.Host, strconv.Itoa(c.profile.Port))

	cfg := &ssh.ClientConfig{
		User: c.profile.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(c.profile.Password),
			ssh.KeyboardInteractive(func(name, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = c.profile.Password
				}
				return answers, nil
			}),
		},
		// The fleet lives on a private network and hosts are re-imaged
		// without key continuity, so host keys are not pinned.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         connectTimeout,
	}

	d := net.Dialer{Timeout: connectTimeout}
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, classifyConnectErr(err)
	}

	// The ssh package only bounds the TCP dial; bound the handshake too.
	_ = nc.SetDeadline(time.Now().Add(connectTimeout))
	sshConn, chans, reqs, err := ssh.NewClientConn(nc, addr, cfg)
	if err != nil {
		nc.Close()
		return nil, classifyConnectErr(err)
	}
	_ = nc.SetDeadline(time.Time{})

	conn := ssh.NewClient(sshConn, chans, reqs)

	sftpClient, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open sftp channel: %v: %w", err, shared.ErrorRemoteUnavailable)
	}

	s := &session{conn: conn, sftp: sftpClient, done: make(chan struct{})}

	go c.keepAlive(ctx, s)
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()

	return s, nil
}

// keepAlive probes the server while the session lives and closes it
// after too many consecutive missed probes.
func (c *Client) keepAlive(ctx context.Context, s *session) {
	t := time.NewTicker(keepAliveInterval)
	defer t.Stop()

	missed := 0
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			if _, _, err := s.conn.SendRequest("keepalive@openssh.com", true, nil); err != nil {
				missed++
				if missed > keepAliveMaxMissed {
					c.log.Warn(ctx, "keep-alive probes failing, closing session", "missed", missed)
					s.Close()
					return
				}
			} else {
				missed = 0
			}
		}
	}
}

// classifyConnectErr maps a connection failure onto the error taxonomy:
// timeout-flavored failures surface as a gateway timeout, everything
// else as bad gateway.
func classifyConnectErr(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout(),
		strings.Contains(strings.ToLower(err.Error()), "timeout"):
		return fmt.Errorf("connect: %v: %w", err, shared.ErrorTimeout)
	default:
		return fmt.Errorf("connect: %v: %w", err, shared.ErrorRemoteUnavailable)
	}
}
