package services

import (
	"fmt"

	apperrors "github.com/stwalsh4118/building/internal/errors"
	"github.com/stwalsh4118/building/internal/logger"
	"github.com/stwalsh4118/building/internal/models"
)

// Seed layout used for a building without floors
var (
	seedFloors = []uint16{1, 2}
	seedDoors  = []string{"A", "B", "C"}
)

// BuildingService defines the operations available on a loaded building.
type BuildingService interface {
	// Seed populates an empty building with floors 1 and 2, each holding
	// vacant apartments A, B and C. It reports whether anything was added.
	Seed(b *models.Building) bool

	// List returns the floors in stored order. It never modifies the building.
	List(b *models.Building) []models.Floor

	// Occupy marks the apartment identified by code as occupied.
	// Returns an error matching apperrors.ErrNotFound if the floor or door does
	// not exist, or apperrors.ErrLogicConflict if it is already occupied.
	Occupy(b *models.Building, code string) (*models.Apartment, error)

	// Add creates a vacant apartment for code, creating its floor if needed.
	// Returns an error matching apperrors.ErrLogicConflict if the door already
	// exists on that floor.
	Add(b *models.Building, code string) (*models.Apartment, error)
}

// buildingService is the concrete implementation of BuildingService.
type buildingService struct {
	log *logger.Logger
}

// NewBuildingService creates a new instance of BuildingService.
func NewBuildingService(log *logger.Logger) BuildingService {
	return &buildingService{
		log: log,
	}
}

func (s *buildingService) Seed(b *models.Building) bool {
	if !b.IsEmpty() {
		return false
	}

	for _, number := range seedFloors {
		floor := models.Floor{Number: number, Apartments: make([]models.Apartment, 0, len(seedDoors))}
		for _, door := range seedDoors {
			floor.Apartments = append(floor.Apartments, models.MakeApartment(number, door, false))
		}
		b.Floors = append(b.Floors, floor)
	}

	s.log.Info("Seeded empty building", map[string]interface{}{
		"floors": len(seedFloors),
		"doors":  seedDoors,
	})

	return true
}

func (s *buildingService) List(b *models.Building) []models.Floor {
	return b.Clone().Floors
}

func (s *buildingService) Occupy(b *models.Building, code string) (*models.Apartment, error) {
	parsed := s.parse(code)
	entity := fmt.Sprintf("apartment '%s'", code)

	apt := b.FindApartment(parsed.Floor, parsed.Door)
	if apt == nil {
		s.log.Debug("No apartment for code", map[string]interface{}{
			"code":  code,
			"floor": parsed.Floor,
			"door":  parsed.Door,
		})
		return nil, apperrors.NotFound("occupy", entity, "apartment does not exist", nil)
	}

	if apt.Occupied {
		s.log.Warn("Apartment already occupied", map[string]interface{}{
			"code": apt.Code,
		})
		return nil, apperrors.LogicConflict("occupy", entity, "apartment is already occupied")
	}

	apt.Occupied = true

	s.log.Info("Apartment occupied", map[string]interface{}{
		"code": apt.Code,
	})

	occupied := *apt
	return &occupied, nil
}

func (s *buildingService) Add(b *models.Building, code string) (*models.Apartment, error) {
	parsed := s.parse(code)
	entity := fmt.Sprintf("apartment '%s'", code)

	floor, created := b.EnsureFloor(parsed.Floor)
	if created {
		s.log.Info("Floor created", map[string]interface{}{
			"floor": parsed.Floor,
		})
	}

	apt := models.MakeApartment(parsed.Floor, parsed.Door, false)
	if !floor.AddApartment(apt) {
		s.log.Warn("Apartment already exists", map[string]interface{}{
			"code": apt.Code,
		})
		return nil, apperrors.LogicConflict("add", entity, "apartment already exists")
	}

	s.log.Info("Apartment added", map[string]interface{}{
		"code":  apt.Code,
		"floor": apt.Floor,
		"door":  apt.Door,
	})

	return &apt, nil
}

// parse scans code and reports an unparseable floor as a warning.
func (s *buildingService) parse(code string) models.ParsedCode {
	parsed := models.ParseCode(code)
	if parsed.FloorErr != nil {
		s.log.Warn("Floor could not be parsed, using floor 0", map[string]interface{}{
			"code":  code,
			"error": parsed.FloorErr.Error(),
		})
	}
	return parsed
}
