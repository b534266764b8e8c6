package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/stwalsh4118/building/internal/errors"
	"github.com/stwalsh4118/building/internal/logger"
	"github.com/stwalsh4118/building/internal/models"
)

func seededBuilding(t *testing.T, service BuildingService) *models.Building {
	t.Helper()
	b := &models.Building{}
	require.True(t, service.Seed(b))
	return b
}

func floorNumbers(floors []models.Floor) []uint16 {
	out := make([]uint16, 0, len(floors))
	for _, f := range floors {
		out = append(out, f.Number)
	}
	return out
}

func floorDoors(f models.Floor) []string {
	out := make([]string, 0, len(f.Apartments))
	for _, a := range f.Apartments {
		out = append(out, a.Door)
	}
	return out
}

func TestSeed_EmptyBuilding(t *testing.T) {
	// Arrange
	service := NewBuildingService(logger.New("test", 0))
	b := &models.Building{}

	// Act
	seeded := service.Seed(b)

	// Assert
	assert.True(t, seeded)
	require.Equal(t, []uint16{1, 2}, floorNumbers(b.Floors))
	for _, floor := range b.Floors {
		assert.Equal(t, []string{"A", "B", "C"}, floorDoors(floor))
		for _, apt := range floor.Apartments {
			assert.False(t, apt.Occupied, "Expected seeded apartments to be vacant")
			assert.Equal(t, models.FormatCode(floor.Number, apt.Door), apt.Code)
		}
	}
}

func TestSeed_NonEmptyBuildingUntouched(t *testing.T) {
	service := NewBuildingService(logger.Nop())
	b := &models.Building{Floors: []models.Floor{{Number: 7}}}

	seeded := service.Seed(b)

	assert.False(t, seeded)
	assert.Equal(t, []uint16{7}, floorNumbers(b.Floors))
}

func TestList_ReturnsFloorsInOrderWithoutSharing(t *testing.T) {
	service := NewBuildingService(logger.Nop())
	b := seededBuilding(t, service)

	floors := service.List(b)
	require.Len(t, floors, 2)
	floors[0].Apartments[0].Occupied = true

	assert.Equal(t, []uint16{1, 2}, floorNumbers(floors))
	assert.False(t, b.Floors[0].Apartments[0].Occupied, "Expected List to be read-only")
}

func TestOccupy_Success(t *testing.T) {
	service := NewBuildingService(logger.Nop())
	b := seededBuilding(t, service)

	apt, err := service.Occupy(b, "1b")

	require.NoError(t, err)
	require.NotNil(t, apt)
	assert.Equal(t, "1B", apt.Code)
	assert.True(t, apt.Occupied)
	assert.True(t, b.FindApartment(1, "B").Occupied, "Expected the building to be updated")
}

func TestOccupy_Twice(t *testing.T) {
	service := NewBuildingService(logger.Nop())
	b := seededBuilding(t, service)

	_, err := service.Occupy(b, "2C")
	require.NoError(t, err)
	before := b.Clone()

	apt, err := service.Occupy(b, "C2")

	assert.Nil(t, apt)
	assert.ErrorIs(t, err, apperrors.ErrLogicConflict)
	assert.Contains(t, err.Error(), "already occupied")
	assert.Equal(t, before, b, "Expected no mutation on conflict")
}

func TestOccupy_NotFound(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "missing floor", code: "9A"},
		{name: "missing door", code: "1Z"},
		{name: "no digits", code: "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewBuildingService(logger.Nop())
			b := seededBuilding(t, service)
			before := b.Clone()

			apt, err := service.Occupy(b, tt.code)

			assert.Nil(t, apt)
			assert.ErrorIs(t, err, apperrors.ErrNotFound)
			assert.Contains(t, err.Error(), "does not exist")
			assert.Contains(t, err.Error(), tt.code)
			assert.Equal(t, before, b, "Expected building to be unchanged")
		})
	}
}

func TestAdd_NewFloor(t *testing.T) {
	service := NewBuildingService(logger.Nop())
	b := seededBuilding(t, service)

	apt, err := service.Add(b, "3D")

	require.NoError(t, err)
	assert.Equal(t, models.MakeApartment(3, "D", false), *apt)
	require.Equal(t, []uint16{1, 2, 3}, floorNumbers(b.Floors))
	assert.Equal(t, []models.Apartment{models.MakeApartment(3, "D", false)}, b.Floors[2].Apartments)
}

func TestAdd_FloorInsertedInOrder(t *testing.T) {
	service := NewBuildingService(logger.Nop())
	b := &models.Building{Floors: []models.Floor{{Number: 1}, {Number: 5}}}

	_, err := service.Add(b, "3a")

	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 3, 5}, floorNumbers(b.Floors))
}

func TestAdd_ExistingFloorKeepsDoorOrder(t *testing.T) {
	service := NewBuildingService(logger.Nop())
	b := seededBuilding(t, service)

	_, err := service.Add(b, "1AA")
	require.NoError(t, err)
	_, err = service.Add(b, "1-0")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "AA", "B", "C"}, floorDoors(b.Floors[0]))
	assert.Equal(t, []uint16{1, 2, 10}, floorNumbers(b.Floors), "Expected digits to be bucketed across punctuation")
}

func TestAdd_Duplicate(t *testing.T) {
	service := NewBuildingService(logger.Nop())
	b := seededBuilding(t, service)
	_, err := service.Occupy(b, "1A")
	require.NoError(t, err)
	before := b.Clone()

	apt, err := service.Add(b, "a1")

	assert.Nil(t, apt)
	assert.ErrorIs(t, err, apperrors.ErrLogicConflict)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, before, b, "Expected no mutation on conflict")
	assert.True(t, b.FindApartment(1, "A").Occupied)
}

func TestAdd_UnparseableFloorUsesFloorZero(t *testing.T) {
	service := NewBuildingService(logger.Nop())
	b := seededBuilding(t, service)

	apt, err := service.Add(b, "Q")

	require.NoError(t, err)
	assert.Equal(t, "0Q", apt.Code)
	assert.Equal(t, []uint16{0, 1, 2}, floorNumbers(b.Floors))
}

func TestAddThenOccupy(t *testing.T) {
	service := NewBuildingService(logger.Nop())
	b := seededBuilding(t, service)

	_, err := service.Add(b, "4B")
	require.NoError(t, err)
	apt, err := service.Occupy(b, "4b")

	require.NoError(t, err)
	assert.True(t, apt.Occupied)
}
