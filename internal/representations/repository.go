package representations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/explorer"
	"github.com/JaimeStill/canopy/pkg/pagination"
	"github.com/JaimeStill/canopy/pkg/query"
	"github.com/JaimeStill/canopy/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a representation repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "representations"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Representation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Label", "Kind")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count representations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRepresentation)
	if err != nil {
		return nil, fmt.Errorf("query representations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Representation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rep, err := repository.QueryOne(ctx, r.db, q, args, scanRepresentation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rep, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Representation, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO representations(id, document_id, kind, label, target_object_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, document_id, kind, label, target_object_id, created_at, updated_at`

	args := []any{
		uuid.New(),
		cmd.DocumentID,
		cmd.Kind,
		strings.TrimSpace(cmd.Label),
		cmd.TargetObjectID,
	}

	rep, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Representation, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRepresentation)
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: document %s does not exist", ErrInvalidBody, cmd.DocumentID)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("representation created", "id", rep.ID, "kind", rep.Kind, "document_id", rep.DocumentID)
	return &rep, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM representations WHERE id = $1", id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("representation deleted", "id", id)
	return nil
}

func validateCreate(cmd CreateCommand) error {
	if cmd.DocumentID == uuid.Nil {
		return fmt.Errorf("%w: document_id required", ErrInvalidBody)
	}
	if strings.TrimSpace(cmd.Label) == "" {
		return fmt.Errorf("%w: label required", ErrInvalidBody)
	}
	if strings.TrimSpace(cmd.Kind) == "" {
		return fmt.Errorf("%w: kind required", ErrInvalidKind)
	}
	if !explorer.IsRepresentationKind(cmd.Kind) {
		return fmt.Errorf("%w: %q", ErrInvalidKind, cmd.Kind)
	}
	return nil
}
