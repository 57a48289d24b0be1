package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/juju/errors"
	"github.com/rs/zerolog"

	"github.com/monocle-dev/opsdesk/internal/models"
	"github.com/monocle-dev/opsdesk/internal/repository"
	"github.com/monocle-dev/opsdesk/internal/types"
)

// Definition describes how requests for one entity become rows.
type Definition[T models.Record, C, U any] struct {
	// Name is the singular entity name used in messages ("project").
	Name string
	// Plural overrides Name+"s" when that is wrong ("categories").
	Plural string

	// UniqueKey names the column checked before insert. Empty disables the
	// check; the store constraint still applies.
	UniqueKey   string
	UniqueValue func(record *T) string

	// Build turns a validated create request into a new record. It trims
	// strings and returns NotValid when a required value is blank.
	Build func(req C) (*T, error)
	// Patch returns the columns an update request sets. Nil fields are left
	// out.
	Patch func(req U) (map[string]any, error)
	// Check, when set, validates an update against the stored record before
	// it is written.
	Check func(current *T, columns map[string]any) error
}

func (d Definition[T, C, U]) plural() string {
	if d.Plural != "" {
		return d.Plural
	}
	return d.Name + "s"
}

// Service implements the CRUD operations for one entity and answers with
// response envelopes. Only unclassified errors are logged as errors.
type Service[T models.Record, C, U any] struct {
	repo   *repository.Repository[T]
	def    Definition[T, C, U]
	logger zerolog.Logger
}

func New[T models.Record, C, U any](repo *repository.Repository[T], def Definition[T, C, U], logger zerolog.Logger) *Service[T, C, U] {
	return &Service[T, C, U]{
		repo:   repo,
		def:    def,
		logger: logger.With().Str("entity", def.Name).Logger(),
	}
}

func (s *Service[T, C, U]) Name() string { return s.def.Name }

func (s *Service[T, C, U]) FindAll(ctx context.Context) types.ServiceResponse {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return s.fail(err, "list", fmt.Sprintf("An error occurred while retrieving %s", s.def.plural()))
	}

	return types.Success(fmt.Sprintf("Get all %s success", s.def.plural()), records, http.StatusOK)
}

func (s *Service[T, C, U]) FindByID(ctx context.Context, id string) types.ServiceResponse {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.fail(err, "find", fmt.Sprintf("An error occurred while retrieving %s", s.def.Name))
	}

	return types.Success(fmt.Sprintf("Get %s success", s.def.Name), record, http.StatusOK)
}

func (s *Service[T, C, U]) Create(ctx context.Context, req C) types.ServiceResponse {
	internal := fmt.Sprintf("An error occurred while creating %s", s.def.Name)

	record, err := s.def.Build(req)
	if err != nil {
		return s.fail(err, "create", internal)
	}

	if s.def.UniqueKey != "" {
		value := s.def.UniqueValue(record)
		_, err := s.repo.FindBy(ctx, s.def.UniqueKey, value)
		switch {
		case err == nil:
			return s.fail(errors.AlreadyExistsf("%s %q", s.def.Name, value), "create", internal)
		case !errors.Is(err, errors.NotFound):
			return s.fail(err, "create", internal)
		}
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return s.fail(err, "create", internal)
	}

	s.logger.Info().Str("id", (*created).Key()).Msg("created")
	return types.Success(fmt.Sprintf("Create %s success", s.def.Name), created, http.StatusOK)
}

func (s *Service[T, C, U]) Update(ctx context.Context, id string, req U) types.ServiceResponse {
	internal := fmt.Sprintf("An error occurred while updating %s", s.def.Name)

	columns, err := s.def.Patch(req)
	if err != nil {
		return s.fail(err, "update", internal)
	}

	if s.def.Check != nil && len(columns) > 0 {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return s.fail(err, "update", internal)
		}
		if err := s.def.Check(current, columns); err != nil {
			return s.fail(err, "update", internal)
		}
	}

	updated, err := s.repo.Update(ctx, id, columns)
	if err != nil {
		return s.fail(err, "update", internal)
	}

	s.logger.Info().Str("id", id).Int("columns", len(columns)).Msg("updated")
	return types.Success(fmt.Sprintf("Update %s success", s.def.Name), updated, http.StatusOK)
}

func (s *Service[T, C, U]) Delete(ctx context.Context, id string) types.ServiceResponse {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail(err, "delete", fmt.Sprintf("An error occurred while deleting %s", s.def.Name))
	}

	s.logger.Info().Str("id", id).Msg("deleted")
	return types.Success(fmt.Sprintf("Delete %s success", s.def.Name), nil, http.StatusOK)
}

func (s *Service[T, C, U]) fail(err error, op, internal string) types.ServiceResponse {
	resp := types.FromError(err, internal)
	if resp.StatusCode == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("op", op).Msg(internal)
	} else {
		s.logger.Debug().Err(err).Str("op", op).Int("status", resp.StatusCode).Msg("rejected")
	}
	return resp
}

// trimmed returns the trimmed value or NotValid when it is blank.
func trimmed(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.NotValidf("empty %s", field)
	}
	return value, nil
}

// optional trims a nullable string and maps blank to nil.
func optional(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
