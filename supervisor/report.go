package supervisor

import dealer "github.com/Rick-Wilson/Dealer3"

// EmitFunc is the supervisor's output sink: one call per matching deal,
// in serial order (§6's "Output to formatter"). The core hands over
// the deal plus its metadata; rendering is the formatter's job, out of
// scope here.
type EmitFunc func(serial uint64, deal *dealer.Deal, dealerSeat dealer.Seat, vul dealer.Vulnerability)

// Report is the end-of-run summary §6 says the core hands to the
// formatter: final counters plus every average/frequency accumulator.
type Report struct {
	Produced    uint64
	Generated   uint64
	Averages    []*AverageAgg
	Frequencies []*FrequencyAgg
}

func buildReport(aggs *AggregatorSet, produced, generated uint64) *Report {
	return &Report{
		Produced:    produced,
		Generated:   generated,
		Averages:    aggs.Averages(),
		Frequencies: aggs.Frequencies(),
	}
}
