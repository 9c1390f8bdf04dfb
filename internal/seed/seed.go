// Package seed loads venue and space reference data from YAML.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"gopkg.in/yaml.v3"
)

// File is the seed document:
//
//	venues:
//	  - id: venue-1
//	    name: Main Hall
//	    timezone: Europe/Berlin
//	    spaces:
//	      - id: room-a
//	        name: Room A
type File struct {
	Venues []VenueSeed `yaml:"venues"`
}

// VenueSeed is a venue with its spaces nested under it.
type VenueSeed struct {
	v1.Venue `yaml:",inline"`
	Spaces   []v1.Space `yaml:"spaces"`
}

// Writer is the part of the store seeding needs.
type Writer interface {
	SaveVenue(ctx context.Context, v *v1.Venue) error
	SaveSpace(ctx context.Context, s *v1.Space) error
}

// Load reads and validates a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a seed document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) Validate() error {
	venues := make(map[string]struct{}, len(f.Venues))
	spaces := make(map[string]struct{})

	for i, v := range f.Venues {
		if v.ID == "" {
			return fmt.Errorf("venues[%d]: id is required", i)
		}
		if _, dup := venues[v.ID]; dup {
			return fmt.Errorf("venue %q is declared twice", v.ID)
		}
		venues[v.ID] = struct{}{}

		if _, err := timeutil.LoadLocation(v.Timezone); err != nil {
			return fmt.Errorf("venue %q: %w", v.ID, err)
		}

		for j, s := range v.Spaces {
			if s.ID == "" {
				return fmt.Errorf("venue %q spaces[%d]: id is required", v.ID, j)
			}
			if s.VenueID != "" && s.VenueID != v.ID {
				return fmt.Errorf("space %q is nested under venue %q but names venue %q", s.ID, v.ID, s.VenueID)
			}
			if _, dup := spaces[s.ID]; dup {
				return fmt.Errorf("space %q is declared twice", s.ID)
			}
			spaces[s.ID] = struct{}{}
		}
	}
	return nil
}

// Apply upserts every venue, then its spaces.
func (f *File) Apply(ctx context.Context, w Writer) error {
	var spaceCount int
	for _, vs := range f.Venues {
		venue := vs.Venue
		if err := w.SaveVenue(ctx, &venue); err != nil {
			return fmt.Errorf("save venue %s: %w", venue.ID, err)
		}
		for _, s := range vs.Spaces {
			s.VenueID = venue.ID
			if err := w.SaveSpace(ctx, &s); err != nil {
				return fmt.Errorf("save space %s: %w", s.ID, err)
			}
			spaceCount++
		}
	}

	slog.Info("[Seed] Reference data applied", "venues", len(f.Venues), "spaces", spaceCount)
	return nil
}
