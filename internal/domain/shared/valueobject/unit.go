package valueobject

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// UnitFamily classifies measurement units by what they measure.
// Recipe lines may only combine supplies whose units are interpretable,
// so validation keys on the family rather than on conversion rates.
type UnitFamily string

const (
	UnitFamilyMass   UnitFamily = "mass"
	UnitFamilyVolume UnitFamily = "volume"
	UnitFamilyCount  UnitFamily = "count"
)

// Unit is a value object representing a kitchen measurement unit.
// The set is closed: supplies are purchased and portioned in a small,
// well-known vocabulary of units.
type Unit struct {
	code   string
	family UnitFamily
}

// Known unit codes
const (
	UnitCodeKG    = "KG"
	UnitCodeG     = "G"
	UnitCodeL     = "L"
	UnitCodeML    = "ML"
	UnitCodePiece = "PIECE"
)

var knownUnits = map[string]UnitFamily{
	UnitCodeKG:    UnitFamilyMass,
	UnitCodeG:     UnitFamilyMass,
	UnitCodeL:     UnitFamilyVolume,
	UnitCodeML:    UnitFamilyVolume,
	UnitCodePiece: UnitFamilyCount,
}

// NewUnit creates a Unit from its code. The code is normalized to
// upper case. Returns an error for codes outside the known vocabulary.
func NewUnit(code string) (Unit, error) {
	normalized := strings.TrimSpace(strings.ToUpper(code))
	family, ok := knownUnits[normalized]
	if !ok {
		return Unit{}, fmt.Errorf("unknown unit code: %q", code)
	}
	return Unit{code: normalized, family: family}, nil
}

// MustNewUnit creates a Unit and panics on error.
// Use only when you're certain the code is valid.
func MustNewUnit(code string) Unit {
	u, err := NewUnit(code)
	if err != nil {
		panic(err)
	}
	return u
}

// IsValidUnitCode reports whether code names a known unit
func IsValidUnitCode(code string) bool {
	_, ok := knownUnits[strings.TrimSpace(strings.ToUpper(code))]
	return ok
}

// Code returns the unit code
func (u Unit) Code() string {
	return u.code
}

// Family returns the unit family
func (u Unit) Family() UnitFamily {
	return u.family
}

// IsZero returns true for the zero-value (unset) unit
func (u Unit) IsZero() bool {
	return u.code == ""
}

// SameFamily returns true if both units measure the same dimension
func (u Unit) SameFamily(other Unit) bool {
	return u.family == other.family
}

// String returns the unit code
func (u Unit) String() string {
	return u.code
}

// MarshalJSON implements json.Marshaler
func (u Unit) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", u.code)), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (u *Unit) UnmarshalJSON(data []byte) error {
	code := strings.Trim(string(data), `"`)
	if code == "" || code == "null" {
		*u = Unit{}
		return nil
	}
	parsed, err := NewUnit(code)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Value implements driver.Valuer for database storage
func (u Unit) Value() (driver.Value, error) {
	return u.code, nil
}

// Scan implements sql.Scanner for database retrieval
func (u *Unit) Scan(value any) error {
	if value == nil {
		*u = Unit{}
		return nil
	}

	var code string
	switch v := value.(type) {
	case string:
		code = v
	case []byte:
		code = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Unit", value)
	}

	if code == "" {
		*u = Unit{}
		return nil
	}
	parsed, err := NewUnit(code)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
