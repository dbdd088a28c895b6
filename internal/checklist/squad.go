package checklist

import (
	"fmt"
	"strings"

	"github.com/pablasso/kts/internal/util"
)

// Roster size limits enforced at setup.
const (
	MinSoldiers = 1
	MaxSoldiers = 50
)

// Soldier is a squad member. Identity is the id; name and role may change.
type Soldier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Label returns the name followed by the role in parentheses, if any.
func (s Soldier) Label() string {
	if s.Role == "" {
		return s.Name
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.Role)
}

// SquadSettings is the single active squad.
type SquadSettings struct {
	SquadName string    `json:"squadName"`
	Soldiers  []Soldier `json:"soldiers"`
}

// Clone returns a deep copy of the settings.
func (s SquadSettings) Clone() SquadSettings {
	return SquadSettings{SquadName: s.SquadName, Soldiers: append([]Soldier(nil), s.Soldiers...)}
}

// FindSoldier returns the soldier with the given id.
func (s SquadSettings) FindSoldier(id string) (Soldier, bool) {
	for _, sol := range s.Soldiers {
		if sol.ID == id {
			return sol, true
		}
	}
	return Soldier{}, false
}

// NewRoster creates a squad with n unnamed soldiers, ready to be filled in.
func NewRoster(squadName string, n int) (SquadSettings, error) {
	if n < MinSoldiers || n > MaxSoldiers {
		return SquadSettings{}, &ValidationError{
			Field:   "soldiers",
			Message: fmt.Sprintf("number of soldiers must be between %d and %d", MinSoldiers, MaxSoldiers),
		}
	}
	soldiers := make([]Soldier, n)
	for i := range soldiers {
		soldiers[i] = Soldier{ID: util.NewID("soldier")}
	}
	return SquadSettings{SquadName: strings.TrimSpace(squadName), Soldiers: soldiers}, nil
}

// Normalize trims the squad name and every soldier's name and role.
func (s SquadSettings) Normalize() SquadSettings {
	out := s.Clone()
	out.SquadName = strings.TrimSpace(out.SquadName)
	for i := range out.Soldiers {
		out.Soldiers[i].Name = strings.TrimSpace(out.Soldiers[i].Name)
		out.Soldiers[i].Role = strings.TrimSpace(out.Soldiers[i].Role)
	}
	return out
}

// Validate checks the constraints applied before settings are saved.
func (s SquadSettings) Validate() error {
	if strings.TrimSpace(s.SquadName) == "" {
		return &ValidationError{Field: "squadName", Message: "squad name is required"}
	}
	if len(s.Soldiers) < MinSoldiers || len(s.Soldiers) > MaxSoldiers {
		return &ValidationError{
			Field:   "soldiers",
			Message: fmt.Sprintf("number of soldiers must be between %d and %d", MinSoldiers, MaxSoldiers),
		}
	}
	seen := make(map[string]bool, len(s.Soldiers))
	for i, sol := range s.Soldiers {
		if strings.TrimSpace(sol.Name) == "" {
			return &ValidationError{Field: fmt.Sprintf("soldiers[%d].name", i), Message: "every soldier needs a name"}
		}
		if sol.ID == "" || seen[sol.ID] {
			return &ValidationError{Field: fmt.Sprintf("soldiers[%d].id", i), Message: "soldier ids must be unique and non-empty"}
		}
		seen[sol.ID] = true
	}
	return nil
}

// AddSoldier appends a soldier and returns the updated settings.
func (s SquadSettings) AddSoldier(name, role string) (SquadSettings, Soldier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SquadSettings{}, Soldier{}, &ValidationError{Field: "name", Message: "every soldier needs a name"}
	}
	if len(s.Soldiers) >= MaxSoldiers {
		return SquadSettings{}, Soldier{}, &ValidationError{
			Field:   "soldiers",
			Message: fmt.Sprintf("a squad can have at most %d soldiers", MaxSoldiers),
		}
	}
	sol := Soldier{ID: util.NewID("soldier"), Name: name, Role: strings.TrimSpace(role)}
	out := s.Clone()
	out.Soldiers = append(out.Soldiers, sol)
	return out, sol, nil
}

// RemoveSoldier drops a soldier. The last soldier cannot be removed.
func (s SquadSettings) RemoveSoldier(id string) (SquadSettings, error) {
	if _, ok := s.FindSoldier(id); !ok {
		return SquadSettings{}, notFound("soldier", id)
	}
	if len(s.Soldiers) <= MinSoldiers {
		return SquadSettings{}, &ValidationError{Field: "soldiers", Message: "the squad must have at least one soldier"}
	}
	out := SquadSettings{SquadName: s.SquadName}
	for _, sol := range s.Soldiers {
		if sol.ID != id {
			out.Soldiers = append(out.Soldiers, sol)
		}
	}
	return out, nil
}

// UpdateSoldier replaces a soldier's name and role.
func (s SquadSettings) UpdateSoldier(id, name, role string) (SquadSettings, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SquadSettings{}, &ValidationError{Field: "name", Message: "every soldier needs a name"}
	}
	out := s.Clone()
	for i := range out.Soldiers {
		if out.Soldiers[i].ID == id {
			out.Soldiers[i].Name = name
			out.Soldiers[i].Role = strings.TrimSpace(role)
			return out, nil
		}
	}
	return SquadSettings{}, notFound("soldier", id)
}

// Rename changes the squad name.
func (s SquadSettings) Rename(name string) (SquadSettings, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SquadSettings{}, &ValidationError{Field: "squadName", Message: "squad name is required"}
	}
	out := s.Clone()
	out.SquadName = name
	return out, nil
}
