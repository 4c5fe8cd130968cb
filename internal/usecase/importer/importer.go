// Package importer bulk-loads articles from tabular rows into an empty store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"sports-articles/internal/domain/entity"
	"sports-articles/internal/infra/tabular"
	"sports-articles/internal/observability/metrics"
	"sports-articles/internal/observability/tracing"
	"sports-articles/internal/repository"
)

// ErrStoreNotEmpty is returned when the store already holds articles.
var ErrStoreNotEmpty = errors.New("store already contains articles")

// Column names read from each row.
const (
	ColumnID        = "id"
	ColumnTitle     = "title"
	ColumnContent   = "content"
	ColumnCreatedAt = "createdAt"
	ColumnImageURL  = "imageUrl"
)

// RowError describes a row that was not imported.
type RowError struct {
	Line    int
	Field   string
	Message string
}

func (e RowError) String() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Message)
}

// Report summarises one import run. Skipped rows failed validation; Failed
// rows were valid but could not be stored.
type Report struct {
	Imported int
	Skipped  int
	Failed   int
	Errors   []RowError
}

// Importer converts rows to articles and stores them with Insert, keeping
// the creation time each row supplies.
type Importer struct {
	Repo   repository.ArticleRepository
	Now    func() time.Time
	Logger *slog.Logger
}

// Import stores rows in order. It refuses to run when CountAll is non-zero,
// soft-deleted rows included.
func (im *Importer) Import(ctx context.Context, rows []tabular.Row) (report *Report, err error) {
	ctx, span := tracing.StartSpan(ctx, "importer.Import", attribute.Int("import.rows", len(rows)))
	defer func() {
		if err != nil {
			tracing.RecordError(span, err)
		}
		span.End()
	}()

	existing, err := im.Repo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	if existing > 0 {
		im.logger().Info("store is not empty, skipping import", slog.Int64("existing", existing))
		return nil, fmt.Errorf("%w (%d)", ErrStoreNotEmpty, existing)
	}

	report = &Report{}
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			im.finish(report)
			return report, err
		}

		article, rowErr := im.convert(row, seen)
		if rowErr != nil {
			report.Skipped++
			report.Errors = append(report.Errors, *rowErr)
			im.logger().Warn("import row skipped",
				slog.Int("line", rowErr.Line),
				slog.String("field", rowErr.Field),
				slog.String("reason", rowErr.Message))
			continue
		}

		if err := im.Repo.Insert(ctx, article); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, RowError{Line: row.Line, Message: "could not be stored"})
			im.logger().Error("import row failed",
				slog.Int("line", row.Line),
				slog.String("article_id", article.ID),
				slog.Any("error", err))
			continue
		}
		seen[article.ID] = struct{}{}
		report.Imported++
	}

	im.finish(report)
	return report, nil
}

func (im *Importer) finish(r *Report) {
	metrics.RecordImport(r.Imported, r.Skipped, r.Failed)
	im.logger().Info("import finished",
		slog.Int("imported", r.Imported),
		slog.Int("skipped", r.Skipped),
		slog.Int("failed", r.Failed))
}

// convert validates one row. Ids that are UUIDs are kept unless already
// used in this run; anything else gets a fresh id.
func (im *Importer) convert(row tabular.Row, seen map[string]struct{}) (*entity.Article, *RowError) {
	title, content := row.Get(ColumnTitle), row.Get(ColumnContent)
	in := entity.ArticleInput{Title: &title, Content: &content}
	if raw := row.Get(ColumnImageURL); raw != "" {
		in.ImageURL = &raw
	}

	draft, err := entity.ValidateArticleInput(in)
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			return nil, &RowError{Line: row.Line, Field: verr.Field, Message: verr.Message}
		}
		return nil, &RowError{Line: row.Line, Message: err.Error()}
	}

	createdAt, err := im.parseCreatedAt(row.Get(ColumnCreatedAt))
	if err != nil {
		return nil, &RowError{Line: row.Line, Field: ColumnCreatedAt, Message: err.Error()}
	}

	id := row.Get(ColumnID)
	if parsed, err := uuid.Parse(id); err == nil {
		id = parsed.String()
	} else {
		id = uuid.NewString()
	}
	if _, dup := seen[id]; dup {
		return nil, &RowError{Line: row.Line, Field: ColumnID, Message: "duplicate id " + id}
	}

	return &entity.Article{
		ID:        id,
		Title:     draft.Title,
		Content:   draft.Content,
		ImageURL:  draft.ImageURL,
		CreatedAt: createdAt,
		Lifecycle: entity.Active{},
	}, nil
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// parseCreatedAt accepts a date, a datetime without zone (read as UTC) or
// RFC 3339. Blank means now.
func (im *Importer) parseCreatedAt(raw string) (time.Time, error) {
	if raw == "" {
		return im.now().UTC(), nil
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

func (im *Importer) now() time.Time {
	if im.Now != nil {
		return im.Now()
	}
	return time.Now()
}

func (im *Importer) logger() *slog.Logger {
	if im.Logger != nil {
		return im.Logger
	}
	return slog.Default()
}
