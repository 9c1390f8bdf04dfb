package availability

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	coreerr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/interval"
	"github.com/aevon-lab/project-tempo/internal/core/recurrence"
	"github.com/aevon-lab/project-tempo/internal/core/storage"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/aevon-lab/project-tempo/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// CollectIntervals materializes every record over window and returns the occurrences
// sorted by start. At most workers records are materialized at once; workers <= 0
// means no limit.
func CollectIntervals[R v1.Record](
	ctx context.Context,
	m recurrence.Materializer,
	records []R,
	window timeutil.Window,
	workers int,
) ([]interval.Interval, error) {
	results := make([][]interval.Interval, len(records))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, rec := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			occ, err := m.Materialize(rec, window)
			if err != nil {
				return fmt.Errorf("materialize %s: %w", rec.Source().ID, recurrence.AsMalformed(err))
			}
			results[i] = occ
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []interval.Interval
	for _, occ := range results {
		out = append(out, occ...)
	}
	interval.Sort(out)
	metrics.ObserveMaterialized(len(out))
	return out, nil
}

// EntityZone returns the IANA zone of a venue, or of the venue a space belongs to.
func EntityZone(ctx context.Context, r storage.Reader, ref v1.EntityRef) (string, error) {
	venueID := ref.ID
	if ref.Kind == v1.EntitySpace {
		space, err := r.GetSpace(ctx, ref.ID)
		if err != nil {
			return "", LookupError(err, ref.String())
		}
		venueID = space.VenueID
	}

	venue, err := r.GetVenue(ctx, venueID)
	if err != nil {
		return "", LookupError(err, "venue:"+venueID)
	}
	if venue.Timezone == "" {
		return "", coreerr.Malformedf("venue %s has no timezone", venue.ID)
	}
	return venue.Timezone, nil
}

// LookupError turns storage.ErrNotFound into a not_found rejection for what.
func LookupError(err error, what string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return coreerr.NotFoundf("%s not found", what)
	}
	return err
}
