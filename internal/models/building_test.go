package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doors(f *Floor) []string {
	out := make([]string, 0, len(f.Apartments))
	for _, a := range f.Apartments {
		out = append(out, a.Door)
	}
	return out
}

func floorNumbers(b *Building) []uint16 {
	out := make([]uint16, 0, len(b.Floors))
	for _, f := range b.Floors {
		out = append(out, f.Number)
	}
	return out
}

func TestMakeApartment(t *testing.T) {
	apt := MakeApartment(2, "b", true)

	assert.Equal(t, "2B", apt.Code)
	assert.Equal(t, uint16(2), apt.Floor)
	assert.Equal(t, "B", apt.Door)
	assert.True(t, apt.Occupied)
}

func TestNewApartment_NormalizesCode(t *testing.T) {
	apt, err := NewApartment("c-3", false)

	require.NoError(t, err)
	assert.Equal(t, "3C", apt.Code, "Expected canonical {floor}{door} code")
	assert.Equal(t, uint16(3), apt.Floor)
	assert.Equal(t, "C", apt.Door)
	assert.False(t, apt.Occupied)
}

func TestNewApartment_FloorWarning(t *testing.T) {
	apt, err := NewApartment("z", false)

	assert.Error(t, err)
	assert.Equal(t, "0Z", apt.Code)
}

func TestFloor_AddApartmentKeepsDoorOrder(t *testing.T) {
	floor := &Floor{Number: 1}

	assert.True(t, floor.AddApartment(MakeApartment(1, "C", false)))
	assert.True(t, floor.AddApartment(MakeApartment(1, "A", false)))
	assert.True(t, floor.AddApartment(MakeApartment(1, "B", false)))

	assert.Equal(t, []string{"A", "B", "C"}, doors(floor))
}

func TestFloor_AddApartmentRejectsDuplicateDoor(t *testing.T) {
	floor := &Floor{Number: 1, Apartments: []Apartment{MakeApartment(1, "A", true)}}

	added := floor.AddApartment(MakeApartment(1, "A", false))

	assert.False(t, added)
	require.Len(t, floor.Apartments, 1)
	assert.True(t, floor.Apartments[0].Occupied, "Expected existing apartment to be untouched")
}

func TestFloor_FindApartmentReturnsPointerIntoFloor(t *testing.T) {
	floor := &Floor{Number: 1, Apartments: []Apartment{MakeApartment(1, "A", false)}}

	apt := floor.FindApartment("A")
	require.NotNil(t, apt)
	apt.Occupied = true

	assert.True(t, floor.Apartments[0].Occupied)
	assert.Nil(t, floor.FindApartment("Z"))
}

func TestBuilding_EnsureFloorKeepsNumberOrder(t *testing.T) {
	b := &Building{}

	_, created := b.EnsureFloor(3)
	assert.True(t, created)
	b.EnsureFloor(1)
	b.EnsureFloor(2)
	floor, created := b.EnsureFloor(1)

	assert.False(t, created)
	require.NotNil(t, floor)
	assert.Equal(t, uint16(1), floor.Number)
	assert.Equal(t, []uint16{1, 2, 3}, floorNumbers(b))
}

func TestBuilding_EnsureFloorReturnsLiveFloor(t *testing.T) {
	b := &Building{Floors: []Floor{{Number: 5}}}

	floor, _ := b.EnsureFloor(2)
	floor.AddApartment(MakeApartment(2, "A", false))

	assert.Equal(t, []uint16{2, 5}, floorNumbers(b))
	require.NotNil(t, b.FindApartment(2, "A"), "Expected apartment added through returned floor")
}

func TestBuilding_FindApartment(t *testing.T) {
	b := &Building{Floors: []Floor{
		{Number: 1, Apartments: []Apartment{MakeApartment(1, "A", false)}},
	}}

	assert.NotNil(t, b.FindApartment(1, "A"))
	assert.Nil(t, b.FindApartment(1, "B"))
	assert.Nil(t, b.FindApartment(2, "A"))
}

func TestBuilding_Clone(t *testing.T) {
	b := &Building{Floors: []Floor{
		{Number: 1, Apartments: []Apartment{MakeApartment(1, "A", false)}},
	}}

	clone := b.Clone()
	clone.Floors[0].Apartments[0].Occupied = true

	assert.False(t, b.Floors[0].Apartments[0].Occupied, "Expected clone to be independent")
	assert.True(t, b.Clone().Floors[0].Apartments[0] == MakeApartment(1, "A", false))
}

func TestBuilding_Validate(t *testing.T) {
	tests := []struct {
		name     string
		building *Building
		wantErr  bool
	}{
		{
			name:     "empty",
			building: &Building{},
			wantErr:  false,
		},
		{
			name: "valid",
			building: &Building{Floors: []Floor{
				{Number: 1, Apartments: []Apartment{MakeApartment(1, "A", false), MakeApartment(1, "B", true)}},
				{Number: 2, Apartments: []Apartment{MakeApartment(2, "A", false)}},
			}},
			wantErr: false,
		},
		{
			name: "duplicate floor numbers",
			building: &Building{Floors: []Floor{
				{Number: 1},
				{Number: 1},
			}},
			wantErr: false,
		},
		{
			name: "duplicate doors on a floor",
			building: &Building{Floors: []Floor{
				{Number: 1, Apartments: []Apartment{MakeApartment(1, "A", false), MakeApartment(1, "A", true)}},
			}},
			wantErr: false,
		},
		{
			name: "missing code",
			building: &Building{Floors: []Floor{
				{Number: 1, Apartments: []Apartment{{Floor: 1, Door: "A"}}},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.building.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApartment_String(t *testing.T) {
	assert.Equal(t, "1A (floor 1, door A, vacant)", MakeApartment(1, "A", false).String())
	assert.Equal(t, "2C (floor 2, door C, occupied)", MakeApartment(2, "C", true).String())
}
