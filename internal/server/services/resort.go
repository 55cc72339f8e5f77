package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/R3gret/ITPM-Backend/internal/common"
	"github.com/R3gret/ITPM-Backend/internal/logging"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/repomanager"
)

// ResortInput is the body of a resort create or update request. Coordinates
// may be sent as JSON numbers or as decimal strings.
type ResortInput struct {
	Name          string          `json:"name"`
	Lat           json.RawMessage `json:"lat"`
	Longitude     json.RawMessage `json:"longitude"`
	Description   string          `json:"description"`
	Address       string          `json:"address"`
	ContactNumber string          `json:"contact_number"`
	Email         string          `json:"email"`
	Website       string          `json:"website"`
}

type ResortService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewResortService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ResortService {
	return &ResortService{db: db, repomanager: m, logger: logger.With("module", "resorts")}
}

func (s *ResortService) List(ctx context.Context) ([]*models.Resort, error) {
	items, err := s.repomanager.Resorts(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list resorts: %w", common.ErrorInternal, err)
	}
	return items, nil
}

func (s *ResortService) Get(ctx context.Context, id int64) (*models.Resort, error) {
	item, err := s.repomanager.Resorts(s.db).Get(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "get resort")
	}
	return item, nil
}

// Create validates in and stores it, returning the new resort id.
func (s *ResortService) Create(ctx context.Context, in ResortInput) (int64, error) {
	resort, err := in.toResort()
	if err != nil {
		return 0, err
	}
	id, err := s.repomanager.Resorts(s.db).Create(ctx, resort)
	if err != nil {
		return 0, fmt.Errorf("%w: create resort: %w", common.ErrorInternal, err)
	}
	s.logger.Info(ctx, "resort created", "resort_id", id)
	return id, nil
}

// Update replaces every field of resort id. Unknown ids yield
// common.ErrorNotFound.
func (s *ResortService) Update(ctx context.Context, id int64, in ResortInput) error {
	resort, err := in.toResort()
	if err != nil {
		return err
	}
	resort.ID = id
	if err := s.repomanager.Resorts(s.db).Update(ctx, resort); err != nil {
		return notFoundOrInternal(err, "update resort")
	}
	return nil
}

func (s *ResortService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Resorts(s.db).Delete(ctx, id); err != nil {
		return notFoundOrInternal(err, "delete resort")
	}
	return nil
}

func (in ResortInput) toResort() (*models.Resort, error) {
	verr := &common.ValidationError{}

	r := &models.Resort{
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		Address:       strings.TrimSpace(in.Address),
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		Email:         strings.TrimSpace(in.Email),
		Website:       strings.TrimSpace(in.Website),
	}

	if r.Name == "" {
		verr.Add("name", "Resort name is required")
	}

	var ok bool
	if r.Lat, ok = parseDecimal(in.Lat); !ok {
		verr.Add("lat", "Latitude must be a decimal number")
	}
	if r.Longitude, ok = parseDecimal(in.Longitude); !ok {
		verr.Add("longitude", "Longitude must be a decimal number")
	}
	if r.Email != "" && !validEmail(r.Email) {
		verr.Add("email", msgInvalidEmail)
	}
	if r.Website != "" && !validWebsite(r.Website) {
		verr.Add("website", "Invalid website URL")
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

var decimalPattern = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)$`)

// parseDecimal accepts a JSON number or a string holding a plain decimal.
func parseDecimal(raw json.RawMessage) (float64, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
	}
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func notFoundOrInternal(err error, op string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("%w: %s: %w", common.ErrorInternal, op, err)
}
