// Package resolver implements the multi-server search for the call
// recordings of a sale. Given a server id, a call timestamp and a
// contact number in whatever shape the CRM stored it, it scans the
// candidate directories on the target server and, when that yields
// nothing, retries against the designated fallback servers.
package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/sozarusac/callaudio/internal/logging"
	"github.com/sozarusac/callaudio/internal/models"
	"github.com/sozarusac/callaudio/internal/phone"
	"github.com/sozarusac/callaudio/internal/profile"
	"github.com/sozarusac/callaudio/internal/recording"
	"github.com/sozarusac/callaudio/internal/remote"
)

// Recordings are split by call type under the monitor directory, one
// subtree per day.
var scanRoots = []string{"GSM/spain/celulares", "GSM/spain/fijos"}

// Lister is the listing capability the resolver needs from a remote
// client.
type Lister interface {
	List(ctx context.Context, subPath string, opts remote.ListOptions) ([]models.DirectoryEntry, error)
}

// Service resolves search requests against the server fleet. It keeps
// no state between calls; two Resolve calls with the same input and the
// same remote contents return the same result.
type Service struct {
	table    *profile.Table
	clients  map[string]Lister
	baseURL  string
	log      logging.Logger
	validate *validator.Validate
}

// NewService builds a Service with one remote client per configured
// server profile.
func NewService(table *profile.Table, baseURL string, log logging.Logger) *Service {
	clients := make(map[string]Lister)
	for _, id := range table.IDs() {
		p, _ := table.Get(id)
		clients[id] = remote.NewClient(p, log)
	}
	return newService(table, clients, baseURL, log)
}

func newService(table *profile.Table, clients map[string]Lister, baseURL string, log logging.Logger) *Service {
	return &Service{
		table:    table,
		clients:  clients,
		baseURL:  baseURL,
		log:      log,
		validate: validator.New(),
	}
}

// Resolve runs the full search. It never fails on "nothing found",
// which is a successful empty result; Success is false only when the
// request itself is unusable.
func (s *Service) Resolve(ctx context.Context, req models.SearchRequest) models.SearchResult {
	log := s.log.With("search_id", uuid.NewString())
	log.Info(ctx, "searching sale audio",
		"server", req.ServerID, "timestamp", req.CallTimestamp, "contact", req.ContactNumber)

	if err := s.validate.Struct(req); err != nil {
		return models.SearchResult{
			Success: false,
			Message: "missing required fields: serverId, callTimestamp or contactNumber",
			Audios:  []models.AudioDescriptor{},
		}
	}

	dateSeg := dateSegment(req.CallTimestamp)
	if dateSeg == "" {
		// Degraded, not fatal: the scans will simply find nothing.
		log.Warn(ctx, "could not derive date segment", "timestamp", req.CallTimestamp)
	}

	numbers := phone.ExtractAll(req.ContactNumber)

	audios := s.searchServers(ctx, log, []string{req.ServerID}, dateSeg, numbers)

	fromFallback := false
	if len(audios) == 0 {
		log.Info(ctx, "no audio on primary server, trying fallbacks",
			"server", req.ServerID, "fallbacks", profile.FallbackServerIDs)
		audios = s.searchServers(ctx, log, profile.FallbackServerIDs, dateSeg, numbers)
		fromFallback = len(audios) > 0
	}

	audios = lo.UniqBy(audios, models.AudioDescriptor.Key)

	if req.AgentCode != "" {
		audios = lo.Filter(audios, func(a models.AudioDescriptor, _ int) bool {
			return recording.AgentCodesEqual(a.AgentCode, req.AgentCode)
		})
	}

	var msg string
	switch {
	case len(audios) == 0:
		msg = "no audio found on any server"
	case fromFallback:
		msg = "search completed using fallback servers"
	default:
		msg = "search completed on primary server"
	}

	log.Info(ctx, "search finished", "total", len(audios), "fallback", fromFallback)

	return models.SearchResult{
		Success:     true,
		Message:     msg,
		Audios:      audios,
		TotalAudios: len(audios),
	}
}

// searchServers scans several servers concurrently, one worker per
// server target. Per-server failures are absorbed inside searchServer,
// so the group never fails as a whole. Each worker writes into its own
// slot and the slots are concatenated in serverIDs order, so the result
// ordering does not depend on which server answered first.
func (s *Service) searchServers(ctx context.Context, log logging.Logger, serverIDs []string, dateSeg string, numbers []string) []models.AudioDescriptor {
	if len(serverIDs) == 0 {
		return nil
	}

	results := make([][]models.AudioDescriptor, len(serverIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(len(serverIDs))

	for i, id := range serverIDs {
		g.Go(func() error {
			results[i] = s.searchServer(ctx, log, id, dateSeg, numbers)
			return nil
		})
	}

	_ = g.Wait()

	var audios []models.AudioDescriptor
	for _, found := range results {
		audios = append(audios, found...)
	}
	return audios
}

// searchServer scans both call-type directories for every candidate
// variant of every number. A failed scan is logged and skipped; it only
// narrows the result.
func (s *Service) searchServer(ctx context.Context, log logging.Logger, serverID, dateSeg string, numbers []string) []models.AudioDescriptor {
	client, ok := s.clients[serverID]
	if !ok {
		log.Warn(ctx, "no client configured for server", "server", serverID)
		return nil
	}

	p, err := s.table.Get(serverID)
	if err != nil {
		log.Warn(ctx, "unknown server", "server", serverID, "error", err)
		return nil
	}

	var found []models.AudioDescriptor

	for _, number := range numbers {
		for _, variant := range phone.Candidates(number) {
			for _, root := range scanRoots {
				dir := root + "/" + dateSeg

				entries, err := client.List(ctx, dir, remote.ListOptions{Search: variant})
				if err != nil {
					log.Warn(ctx, "directory scan failed",
						"server", serverID, "path", dir, "error", err)
					continue
				}

				for _, e := range entries {
					if e.IsDir || !strings.Contains(e.Name, variant) {
						continue
					}

					agent, extension := recording.ParseAgentAndExtension(e.Name, variant)

					found = append(found, models.AudioDescriptor{
						Filename:      e.Name,
						Date:          e.Date,
						Time:          e.Time,
						Size:          recording.FormatSize(e.SizeBytes),
						SizeBytes:     e.SizeBytes,
						DownloadURL:   fmt.Sprintf("%s%s/archivos/descargar?ruta=%s/%s", s.baseURL, p.Endpoint, dir, e.Name),
						AgentCode:     agent,
						ExtensionCode: extension,
						SourcePath:    dir,
						ServerID:      serverID,
					})

					log.Debug(ctx, "audio matched",
						"server", serverID, "file", e.Name, "agent", agent, "path", dir)
				}
			}
		}
	}

	return found
}

// dateSegment converts an ISO timestamp into the DDMMYYYY directory
// segment. A timestamp that fails full parsing falls back to splitting
// the date portion by hand; when that fails too, the segment is empty
// and the scans miss.
func dateSegment(ts string) string {
	if t, err := time.Parse("2006-01-02T15:04:05", ts); err == nil {
		return t.Format("02012006")
	}

	datePart := strings.SplitN(ts, "T", 2)[0]
	parts := strings.Split(datePart, "-")
	if len(parts) == 3 && len(parts[0]) == 4 {
		return parts[2] + parts[1] + parts[0]
	}

	return ""
}
