package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Apartment is a single unit of a building.
// Code always equals FormatCode(Floor, Door).
type Apartment struct {
	Code     string `yaml:"code" validate:"required"`
	Floor    uint16 `yaml:"floor"`
	Door     string `yaml:"door"`
	Occupied bool   `yaml:"occupied"`
}

// Floor is a building level. Apartments are kept sorted by door.
type Floor struct {
	Number     uint16      `yaml:"number"`
	Apartments []Apartment `yaml:"apartments" validate:"dive"`
}

// Building is the root of the record graph. Floors are kept sorted by number.
type Building struct {
	Floors []Floor `yaml:"floors" validate:"dive"`
}

var validate = validator.New()

// MakeApartment builds an apartment from an explicit floor and door.
func MakeApartment(floor uint16, door string, occupied bool) Apartment {
	door = strings.ToUpper(door)
	return Apartment{
		Code:     FormatCode(floor, door),
		Floor:    floor,
		Door:     door,
		Occupied: occupied,
	}
}

// NewApartment parses raw and builds the matching apartment. The returned
// error is the non-fatal floor parse warning from ParseCode; the apartment is
// valid either way.
func NewApartment(raw string, occupied bool) (Apartment, error) {
	parsed := ParseCode(raw)
	return MakeApartment(parsed.Floor, parsed.Door, occupied), parsed.FloorErr
}

// String renders the apartment for listings.
func (a Apartment) String() string {
	state := "vacant"
	if a.Occupied {
		state = "occupied"
	}
	return fmt.Sprintf("%s (floor %d, door %s, %s)", a.Code, a.Floor, a.Door, state)
}

// FindApartment returns the apartment with the given door, or nil.
func (f *Floor) FindApartment(door string) *Apartment {
	for i := range f.Apartments {
		if f.Apartments[i].Door == door {
			return &f.Apartments[i]
		}
	}
	return nil
}

// AddApartment appends apt and restores door order. It returns false without
// changing the floor if the door is already taken.
func (f *Floor) AddApartment(apt Apartment) bool {
	if f.FindApartment(apt.Door) != nil {
		return false
	}
	f.Apartments = append(f.Apartments, apt)
	f.SortApartments()
	return true
}

// SortApartments orders apartments by door ascending.
func (f *Floor) SortApartments() {
	slices.SortStableFunc(f.Apartments, func(a, b Apartment) int {
		return cmp.Compare(a.Door, b.Door)
	})
}

// FindFloor returns the floor with the given number, or nil.
func (b *Building) FindFloor(number uint16) *Floor {
	for i := range b.Floors {
		if b.Floors[i].Number == number {
			return &b.Floors[i]
		}
	}
	return nil
}

// EnsureFloor returns the floor with the given number, creating it and
// restoring floor order when it does not exist yet. The boolean reports
// whether the floor was created.
func (b *Building) EnsureFloor(number uint16) (*Floor, bool) {
	if floor := b.FindFloor(number); floor != nil {
		return floor, false
	}
	b.Floors = append(b.Floors, Floor{Number: number, Apartments: []Apartment{}})
	b.SortFloors()
	return b.FindFloor(number), true
}

// SortFloors orders floors by number ascending.
func (b *Building) SortFloors() {
	slices.SortStableFunc(b.Floors, func(x, y Floor) int {
		return cmp.Compare(x.Number, y.Number)
	})
}

// FindApartment looks up an apartment by floor number and door.
func (b *Building) FindApartment(floor uint16, door string) *Apartment {
	f := b.FindFloor(floor)
	if f == nil {
		return nil
	}
	return f.FindApartment(door)
}

// IsEmpty reports whether the building has no floors.
func (b *Building) IsEmpty() bool {
	return len(b.Floors) == 0
}

// Clone returns a deep copy of the building.
func (b *Building) Clone() *Building {
	clone := &Building{Floors: make([]Floor, len(b.Floors))}
	for i, f := range b.Floors {
		clone.Floors[i] = Floor{
			Number:     f.Number,
			Apartments: slices.Clone(f.Apartments),
		}
	}
	return clone
}

// Validate checks that every apartment carries a code. Duplicate floors or
// doors in stored data are accepted as is.
func (b *Building) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("invalid building: %w", err)
	}
	return nil
}
