package flights

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/dharmasatrya/travelsearch/internal/models"
	"github.com/dharmasatrya/travelsearch/internal/providers"
)

// Continuer fetches the return-journey candidates for a departure token.
type Continuer interface {
	Name() string
	ContinueFlights(ctx context.Context, token string, criteria models.SearchCriteria) (*providers.FlightSearchResponse, error)
}

type Outcome int

const (
	Unmerged Outcome = iota
	Merged
)

func (o Outcome) String() string {
	if o == Merged {
		return "merged"
	}
	return "unmerged"
}

type MergeResult struct {
	Option  models.FlightOption
	Outcome Outcome
}

type Merger struct {
	continuer Continuer
}

func NewMerger(c Continuer) *Merger {
	return &Merger{continuer: c}
}

// MergeReturnJourney pairs an outbound option with its return journey. Any
// failure leaves the outbound option untouched; nothing is retried.
func (m *Merger) MergeReturnJourney(ctx context.Context, outbound models.FlightOption, criteria models.SearchCriteria) MergeResult {
	unmerged := MergeResult{Option: outbound, Outcome: Unmerged}
	if !outbound.AwaitingReturn() {
		return unmerged
	}

	resp, err := m.continuer.ContinueFlights(ctx, outbound.ContinuationToken, criteria)
	if err == nil && resp != nil && resp.Error != "" {
		err = providers.NewProviderError(m.continuer.Name(), errors.New(string(resp.Error)))
	}
	if err != nil {
		log.Printf("Return journey lookup via %s failed: %v", m.continuer.Name(), err)
		return unmerged
	}
	if resp == nil {
		return unmerged
	}

	ret, ok := firstJourney(resp)
	if !ok {
		log.Printf("No usable return journey for departure token %q", outbound.ContinuationToken)
		return unmerged
	}

	return MergeResult{Option: combine(outbound, ret), Outcome: Merged}
}

// MergeAll resolves every option concurrently and returns them in input
// order. Options without a token pass through without a provider call.
func (m *Merger) MergeAll(ctx context.Context, options []models.FlightOption, criteria models.SearchCriteria) ([]models.FlightOption, int) {
	results := make([]MergeResult, len(options))
	var wg sync.WaitGroup

	for i, opt := range options {
		if !opt.AwaitingReturn() {
			results[i] = MergeResult{Option: opt, Outcome: Unmerged}
			continue
		}
		wg.Add(1)
		go func(i int, opt models.FlightOption) {
			defer wg.Done()
			results[i] = m.MergeReturnJourney(ctx, opt, criteria)
		}(i, opt)
	}
	wg.Wait()

	merged := 0
	out := make([]models.FlightOption, len(results))
	for i, r := range results {
		out[i] = r.Option
		if r.Outcome == Merged {
			merged++
		}
	}
	return out, merged
}

// firstJourney takes the first candidate in bucket order. It does not look
// for the cheapest or fastest return.
func firstJourney(resp *providers.FlightSearchResponse) (models.FlightOption, bool) {
	for _, bucket := range [][]providers.RawFlight{resp.BestFlights, resp.OtherFlights, resp.Flights} {
		if candidates := ProcessFlightResults(bucket); len(candidates) > 0 {
			return candidates[0], true
		}
	}
	return models.FlightOption{}, false
}

func combine(outbound, ret models.FlightOption) models.FlightOption {
	merged := outbound

	merged.Legs = make([]models.FlightLeg, 0, len(outbound.Legs)+len(ret.Legs))
	merged.Legs = append(merged.Legs, outbound.Legs...)
	merged.Legs = append(merged.Legs, ret.Legs...)

	merged.Layovers = make([]models.Layover, 0, len(outbound.Layovers)+len(ret.Layovers))
	merged.Layovers = append(merged.Layovers, outbound.Layovers...)
	merged.Layovers = append(merged.Layovers, ret.Layovers...)

	merged.TotalDuration = sumDurations(merged.Legs, merged.Layovers)
	merged.Type = models.TripRoundTrip
	merged.ContinuationToken = ""

	return withDerivedFields(merged)
}
