package geodata

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/enums"
	pkgerrors "github.com/rmartelo/freightops-backend/pkg/errors"
)

// CountryView is the public shape of a geodata country row.
type CountryView struct {
	CountryID int    `json:"country_id"`
	Name      string `json:"name"`
	ISO2Code  string `json:"iso2_code"`
	ISO3Code  string `json:"iso3_code"`
}

// Repository reads the seeded country catalog. Countries are reference data
// managed by migrations, so there are no write operations.
type Repository interface {
	Find(ctx context.Context, countryID int) (*models.Country, error)
	List(ctx context.Context) ([]models.Country, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a geodata repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Find(ctx context.Context, countryID int) (*models.Country, error) {
	var country models.Country
	if err := r.db.WithContext(ctx).Where("country_id = ?", countryID).First(&country).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *repository) List(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// Service exposes country lookups.
type Service interface {
	Get(ctx context.Context, countryID int) (*CountryView, error)
	List(ctx context.Context) ([]CountryView, error)
}

type service struct {
	repo Repository
}

// NewService builds the geodata service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("geodata repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, countryID int) (*CountryView, error) {
	country, err := s.repo.Find(ctx, countryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityCountry, countryID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load country")
	}
	view := project(country)
	return &view, nil
}

func (s *service) List(ctx context.Context) ([]CountryView, error) {
	countries, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list countries")
	}
	views := make([]CountryView, 0, len(countries))
	for i := range countries {
		views = append(views, project(&countries[i]))
	}
	return views, nil
}

func project(country *models.Country) CountryView {
	return CountryView{
		CountryID: country.CountryID,
		Name:      country.Name,
		ISO2Code:  country.ISO2Code,
		ISO3Code:  country.ISO3Code,
	}
}
