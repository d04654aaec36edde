package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"picktime/internal/models"
	"picktime/internal/shift"
	"picktime/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.String())
	}
	if len(c.conf.Stations) > 0 {
		if _, err := models.NewCatalog(toStations(c.conf.Stations)); err != nil {
			return fmt.Errorf("invalid config: stations: %w", err)
		}
	}
	return nil
}

func toStations(conf []structures.StationConfig) []models.Station {
	stations := make([]models.Station, 0, len(conf))
	for _, s := range conf {
		stations = append(stations, models.Station{ID: s.ID, Name: s.Name})
	}
	return stations
}

// NewCatalogProvider builds the station catalog, falling back to the plant defaults.
func NewCatalogProvider(conf *structures.Config) (*models.Catalog, error) {
	if len(conf.Stations) == 0 {
		return models.NewCatalog(models.DefaultStations())
	}
	return models.NewCatalog(toStations(conf.Stations))
}

// NewShiftPolicyProvider binds the shift functions to the wall clock of shift.timezone.
func NewShiftPolicyProvider(conf *structures.Config) (*shift.Policy, error) {
	clock, err := shift.NewSystemClock(conf.Shift.Timezone)
	if err != nil {
		return nil, err
	}
	return shift.NewPolicy(clock), nil
}
