package enums

import "fmt"

// ProductKind represents the bookable product families a hotel can list.
type ProductKind string

const (
	ProductKindDayPass ProductKind = "day_pass"
	ProductKindCabana  ProductKind = "cabana"
	ProductKindDayRoom ProductKind = "day_room"
)

var validProductKinds = []ProductKind{
	ProductKindDayPass,
	ProductKindCabana,
	ProductKindDayRoom,
}

// String implements fmt.Stringer.
func (k ProductKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ProductKind.
func (k ProductKind) IsValid() bool {
	for _, candidate := range validProductKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseProductKind converts raw input into a ProductKind.
func ParseProductKind(value string) (ProductKind, error) {
	for _, candidate := range validProductKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product kind %q", value)
}
