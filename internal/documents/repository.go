package documents

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/pkg/pagination"
	"github.com/JaimeStill/canopy/pkg/query"
	"github.com/JaimeStill/canopy/pkg/repository"
	"github.com/JaimeStill/canopy/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Content(ctx context.Context, id uuid.UUID) ([]byte, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	body, err := r.storage.Download(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: content missing for %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("download document content: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read document content: %w", err)
	}
	return data, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	if !json.Valid(cmd.Content) {
		return nil, ErrInvalidContent
	}

	id := uuid.New()
	key := buildStorageKey(id, sanitizeName(cmd.Name))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Content), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload document content: %w", err)
	}

	q := `
		INSERT INTO documents(id, name, content_type, size_bytes, storage_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, content_type, size_bytes, storage_key, created_at, updated_at`

	insertArgs := []any{
		id,
		cmd.Name,
		cmd.ContentType,
		int64(len(cmd.Content)),
		key,
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanDocument)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document created", "id", d.ID, "name", d.Name)
	return &d, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	key, err := repository.QueryOne(
		ctx, r.db,
		"DELETE FROM documents WHERE id = $1 RETURNING storage_key",
		[]any{id},
		repository.ScanValue[string],
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, key); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", key,
			"error", delErr,
		)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

func buildStorageKey(id uuid.UUID, name string) string {
	return fmt.Sprintf("documents/%s/%s", id, name)
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" || name == "/" {
		name = "document.json"
	}
	return url.PathEscape(name)
}
