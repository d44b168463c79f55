package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mergington/activities/internal/domain/model"
)

// DefaultSeed returns the activities the directory starts with when no seed
// file is configured.
func DefaultSeed() []model.Activity {
	return []model.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}
}

type seedDocument struct {
	Activities []model.Activity `koanf:"activities"`
}

// LoadSeedFile reads a YAML seed of the form:
//
//	activities:
//	  - name: Chess Club
//	    description: ...
//	    schedule: ...
//	    max_participants: 12
//	    participants: [michael@mergington.edu]
func LoadSeedFile(_ context.Context, path string) ([]model.Activity, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", ErrInvalidSeed, path, err)
	}

	var doc seedDocument
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalidSeed, path, err)
	}
	if len(doc.Activities) == 0 {
		return nil, fmt.Errorf("%w: %s defines no activities", ErrInvalidSeed, path)
	}
	return NormalizeSeed(doc.Activities)
}

// NormalizeSeed validates a seed and returns a deep copy with duplicate
// participants collapsed (first occurrence wins).
func NormalizeSeed(seed []model.Activity) ([]model.Activity, error) {
	out := make([]model.Activity, 0, len(seed))
	names := make(map[string]struct{}, len(seed))

	for i, a := range seed {
		if strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("%w: activity %d has no name", ErrInvalidSeed, i)
		}
		if _, dup := names[a.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate activity %q", ErrInvalidSeed, a.Name)
		}
		if a.MaxParticipants <= 0 {
			return nil, fmt.Errorf("%w: activity %q: max_participants must be positive", ErrInvalidSeed, a.Name)
		}
		names[a.Name] = struct{}{}

		c := a.Clone()
		c.Participants = c.Participants[:0]
		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if _, ok := seen[email]; ok {
				continue
			}
			seen[email] = struct{}{}
			c.Participants = append(c.Participants, email)
		}
		out = append(out, c)
	}
	return out, nil
}
