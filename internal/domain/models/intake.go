package models

import (
	"errors"
	"fmt"
)

// IntakeMode selects where the daily intake vector comes from.
type IntakeMode string

const (
	// IntakeAllMenus sums every menu of the session. The default.
	IntakeAllMenus IntakeMode = "all_menus"
	// IntakeMenuSubset sums only the named menus.
	IntakeMenuSubset IntakeMode = "menu_subset"
	// IntakeManual takes raw nutrient amounts typed by the user, bypassing
	// the reference table entirely.
	IntakeManual IntakeMode = "manual"
)

// IntakeSelection is the tagged variant picking one intake source. Exactly
// one of the payload fields is meaningful for a given mode.
type IntakeSelection struct {
	Mode   IntakeMode     `json:"mode"`
	Menus  []string       `json:"menus,omitempty"`
	Manual NutrientVector `json:"manual,omitempty"`
}

// Normalize fills in the default mode and checks that the payload matches
// the chosen mode.
func (s *IntakeSelection) Normalize() error {
	if s.Mode == "" {
		s.Mode = IntakeAllMenus
	}

	switch s.Mode {
	case IntakeAllMenus:
		return nil
	case IntakeMenuSubset:
		if len(s.Menus) == 0 {
			return errors.New("menu_subset mode requires at least one menu name")
		}
		return nil
	case IntakeManual:
		if len(s.Manual) == 0 {
			return errors.New("manual mode requires nutrient amounts")
		}
		for k, v := range s.Manual {
			if v < 0 {
				return fmt.Errorf("manual amount for %s must not be negative", k)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown intake mode %q", s.Mode)
	}
}
