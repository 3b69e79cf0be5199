package models

import "encoding/json"

// SubCategory accepts both the scalar and the list form the backend emits
// ("Whey" and ["Whey","Isolate"] are both valid payloads).
type SubCategory []string

func (s *SubCategory) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*s = nil
		} else {
			*s = SubCategory{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = SubCategory(many)
	return nil
}

// Contains reports whether v is one of the sub-categories.
func (s SubCategory) Contains(v string) bool {
	for _, sc := range s {
		if sc == v {
			return true
		}
	}
	return false
}
