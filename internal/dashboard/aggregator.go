package dashboard

import (
	"context"
	"sync"

	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/JanDarpan/JD-Backend/internal/metrics"
)

// View is the complete dashboard payload for one district. The district id is
// echoed back so a client that reselected mid-flight can discard a response
// that no longer matches its current selection.
type View struct {
	DistrictID   uint                 `json:"district_id"`
	DistrictName string               `json:"district_name"`
	State        string               `json:"state"`
	Latest       *metrics.Snapshot    `json:"latest"`
	Trend        []metrics.TrendPoint `json:"trend"`
	Compare      *metrics.Comparison  `json:"compare"`
}

// Build retrieves the latest snapshot, the trend series and the state
// comparison concurrently. The join is all-or-nothing: a failure in any
// retrieval fails the whole view so partial dashboards are never rendered.
func Build(ctx context.Context, d *districts.District) (*View, error) {
	view := &View{
		DistrictID:   d.ID,
		DistrictName: d.Name,
		State:        d.State,
	}

	var (
		wg   sync.WaitGroup
		errs [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		view.Latest, errs[0] = metrics.SnapshotForDistrict(d.ID)
	}()
	go func() {
		defer wg.Done()
		view.Trend, errs[1] = metrics.TrendSeriesForDistrict(d.ID)
	}()
	go func() {
		defer wg.Done()
		view.Compare, errs[2] = metrics.CompareForDistrict(d)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return view, nil
}
