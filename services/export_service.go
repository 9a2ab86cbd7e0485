package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/tournament-platform/export"
	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
)

type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportXML  ExportFormat = "xml"
	ExportHTML ExportFormat = "html"
)

// ParseExportFormat принимает значение query-параметра format без учёта регистра.
func ParseExportFormat(raw string) (ExportFormat, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch ExportFormat(raw) {
	case "":
		return "", ErrFormatRequired
	case ExportJSON, ExportXML, ExportHTML:
		return ExportFormat(raw), nil
	default:
		return "", fmt.Errorf("%w (got %q)", ErrFormatUnsupported, raw)
	}
}

// ExportFile - готовый к отдаче файл.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportService interface {
	Export(ctx context.Context, format ExportFormat) (*ExportFile, error)
}

type exportService struct {
	matches  repositories.MatchRepository
	teams    repositories.TeamRepository
	clock    Clock
	location *time.Location
}

func NewExportService(matches repositories.MatchRepository, teams repositories.TeamRepository, clock Clock, location *time.Location) ExportService {
	if clock == nil {
		clock = SystemClock()
	}
	if location == nil {
		location = time.UTC
	}
	return &exportService{
		matches:  matches,
		teams:    teams,
		clock:    clock,
		location: location,
	}
}

func (s *exportService) Export(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	// JSON отдаётся ровно в том виде, в каком документ хранится.
	if format == ExportJSON {
		return &ExportFile{
			Filename:    "matches.json",
			ContentType: "application/json",
			Body:        s.matches.Raw(ctx),
		}, nil
	}

	snap, err := loadSnapshot(ctx, nil, s.teams, s.matches)
	if err != nil {
		return nil, err
	}
	names := models.TeamNames(snap.teams)
	enriched := make([]models.MatchWithTeams, len(snap.matches))
	for i, m := range snap.matches {
		enriched[i] = models.EnrichMatch(m, names)
	}

	switch format {
	case ExportXML:
		body, err := export.XML(enriched)
		if err != nil {
			return nil, fmt.Errorf("failed to render xml export: %w", err)
		}
		return &ExportFile{Filename: "matches.xml", ContentType: "application/xml", Body: body}, nil
	case ExportHTML:
		body, err := export.HTML(enriched, s.clock.Now(), s.location)
		if err != nil {
			return nil, fmt.Errorf("failed to render html export: %w", err)
		}
		return &ExportFile{Filename: "matches.html", ContentType: "text/html; charset=utf-8", Body: body}, nil
	default:
		return nil, fmt.Errorf("%w (got %q)", ErrFormatUnsupported, format)
	}
}
