package steam

import (
	"encoding/json"
	"fmt"
)

// Region is the phase region a resolved state lies in.
type Region int

const (
	Unknown Region = iota
	Saturated
	Superheated
	SubCooled
)

var regionNames = [...]string{"", "saturated", "superheated", "sub-cooled"}

func (r Region) String() string {
	if r < 0 || int(r) >= len(regionNames) {
		return fmt.Sprintf("Region(%d)", int(r))
	}
	return regionNames[r]
}

// ParseRegion is the inverse of String.
func ParseRegion(s string) (Region, error) {
	for i, name := range regionNames {
		if name == s {
			return Region(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown region %q", s)
}

func (r Region) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Region) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRegion(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
