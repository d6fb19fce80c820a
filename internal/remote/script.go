package remote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/sozarusac/callaudio/internal/models"
	"github.com/sozarusac/callaudio/internal/pagex"
	"github.com/sozarusac/callaudio/internal/recording"
	"github.com/sozarusac/callaudio/internal/shared"
)

// The fast path delegates pre-filtering to a script installed on every
// server. The script writes matching recordings into a per-day,
// per-number results directory which is then listed over the same
// session mechanism.
const (
	searchScript = "./buscar_audios2"
	resultsRoot  = "/BUSQUEDA/audios"

	// MinAudioBytes approximates a 3-minute lower bound at the GSM
	// codec's bitrate; shorter recordings are noise for the fast path.
	MinAudioBytes = 180 * 1024

	scriptPollInterval = time.Second
	scriptPollCeiling  = 30 * time.Second
	purgePollCeiling   = 10 * time.Second
)

var errScriptRunning = errors.New("script still running")

// SearchByNumber runs the remote pre-filter script for a number, waits
// for it, lists its results directory and returns the page of
// recordings at least MinAudioBytes long, most recent first.
func (c *Client) SearchByNumber(ctx context.Context, number string, page, size int) (pagex.Page[models.AudioDescriptor], error) {
	var zero pagex.Page[models.AudioDescriptor]

	s, err := c.connect(ctx)
	if err != nil {
		return zero, err
	}
	defer s.Close()

	cmd := fmt.Sprintf("cd .. && cd BUSQUEDA && %s %s", searchScript, number)
	if err := c.runCommand(ctx, s, cmd, scriptPollCeiling); err != nil {
		return zero, err
	}

	today := c.today()
	resultsDir := c.resultsDir(today, number)
	c.log.Debug(ctx, "listing script results", "path", resultsDir)

	infos, err := s.sftp.ReadDir(resultsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zero, fmt.Errorf("results %s: %w", resultsDir, shared.ErrorNotFound)
		}
		return zero, fmt.Errorf("results %s: %v: %w", resultsDir, err, shared.ErrorRemoteUnavailable)
	}

	audios := collectAudioFiles(infos, today, resultsDir, c.profile.ID)
	sortAudiosByRecency(audios)

	c.log.Info(ctx, "fast search finished", "number", number, "found", len(audios))
	return pagex.Paginate(audios, page, size), nil
}

// PurgeResults removes a number's results directory for one day. The
// directory may already be gone, so a non-zero exit is only logged.
func (c *Client) PurgeResults(ctx context.Context, number, date string) error {
	s, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	dir := c.resultsDir(date, number)
	c.log.Info(ctx, "purging script results", "path", dir)

	return c.runCommand(ctx, s, fmt.Sprintf("rm -rf %s", dir), purgePollCeiling)
}

// runCommand executes cmd on the session's exec channel and polls for
// completion once a second up to ceiling. The ceiling is soft: an
// overrun or a non-zero exit is logged as a warning, not treated as a
// failure, since the script may still have produced partial output
// worth listing.
func (c *Client) runCommand(ctx context.Context, s *session, cmd string, ceiling time.Duration) error {
	execSess, err := s.conn.NewSession()
	if err != nil {
		return fmt.Errorf("open exec channel: %v: %w", err, shared.ErrorRemoteUnavailable)
	}
	defer execSess.Close()

	c.log.Debug(ctx, "executing remote command", "cmd", cmd)

	if err := execSess.Start(cmd); err != nil {
		return fmt.Errorf("start %q: %v: %w", cmd, err, shared.ErrorRemoteUnavailable)
	}

	exited := make(chan error, 1)
	go func() { exited <- execSess.Wait() }()

	b := retry.WithMaxDuration(ceiling, retry.NewConstant(scriptPollInterval))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		select {
		case werr := <-exited:
			if werr != nil {
				c.log.Warn(ctx, "remote command exited abnormally", "cmd", cmd, "error", werr)
			}
			return nil
		default:
			return retry.RetryableError(errScriptRunning)
		}
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn(ctx, "remote command still running after polling window", "cmd", cmd)
	}
	return nil
}

// today is the results-directory day, taken from the client clock so
// tests can pin it.
func (c *Client) today() string {
	return c.now().Format("2006-01-02")
}

// resultsDir is where the search script drops its output for one day
// and number.
func (c *Client) resultsDir(date, number string) string {
	return fmt.Sprintf("%s/%s/%s", resultsRoot, date, number)
}

// sortAudiosByRecency orders descriptors most recent first by their
// date and time fields; ties keep their listing order.
func sortAudiosByRecency(audios []models.AudioDescriptor) {
	sort.SliceStable(audios, func(i, j int) bool {
		return audios[i].Date+audios[i].Time > audios[j].Date+audios[j].Time
	})
}

// collectAudioFiles keeps the plain files big enough to matter and maps
// them into descriptors with an estimated duration.
func collectAudioFiles(infos []os.FileInfo, date, sourcePath, serverID string) []models.AudioDescriptor {
	audios := []models.AudioDescriptor{}

	for _, info := range infos {
		name := info.Name()
		if name == "." || name == ".." || info.IsDir() {
			continue
		}
		if info.Size() < MinAudioBytes {
			continue
		}

		audios = append(audios, models.AudioDescriptor{
			Filename:   name,
			Date:       date,
			Time:       info.ModTime().Format("15:04:05"),
			Size:       recording.FormatSize(info.Size()),
			SizeBytes:  info.Size(),
			Duration:   recording.EstimateDuration(info.Size()),
			SourcePath: sourcePath,
			ServerID:   serverID,
		})
	}

	return audios
}
