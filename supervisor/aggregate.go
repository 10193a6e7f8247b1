package supervisor

import (
	"sort"

	"github.com/Rick-Wilson/Dealer3/lang"
)

// AverageAgg accumulates the `average` action's running sum/count
// (§4.7). Merging two accumulators by addition gives the same result as
// a single unpartitioned run (§8's "stats merge" law).
type AverageAgg struct {
	Label string
	Sum   int64
	N     int64
}

// Add folds one matching deal's sampled value in.
func (a *AverageAgg) Add(v int32) {
	a.Sum += int64(v)
	a.N++
}

// Merge adds other's totals into a.
func (a *AverageAgg) Merge(other *AverageAgg) {
	a.Sum += other.Sum
	a.N += other.N
}

// Value is the average (sum/n), 0 if no deal matched.
func (a *AverageAgg) Value() float64 {
	if a.N == 0 {
		return 0
	}
	return float64(a.Sum) / float64(a.N)
}

// FrequencyAgg buckets the `frequency` action's integer values (§4.7).
type FrequencyAgg struct {
	Label    string
	HasRange bool
	Min, Max int32
	Buckets  map[int32]int64
}

// NewFrequencyAgg creates an empty frequency accumulator.
func NewFrequencyAgg(label string, hasRange bool, min, max int32) *FrequencyAgg {
	return &FrequencyAgg{Label: label, HasRange: hasRange, Min: min, Max: max, Buckets: map[int32]int64{}}
}

// Add folds one matching deal's sampled value in, dropping values
// outside [Min,Max] when a range was given.
func (f *FrequencyAgg) Add(v int32) {
	if f.HasRange && (v < f.Min || v > f.Max) {
		return
	}
	f.Buckets[v]++
}

// Merge adds other's bucket counts into f (bucket-wise sum, §4.6).
func (f *FrequencyAgg) Merge(other *FrequencyAgg) {
	for k, v := range other.Buckets {
		f.Buckets[k] += v
	}
}

// FrequencyRow is one emitted row: value, count, percentage of total.
type FrequencyRow struct {
	Value      int32
	Count      int64
	Percentage float64
}

// Table returns the bucket contents sorted by value, with percentages
// of the total sample count (§4.7: "a table with value, count,
// percentage").
func (f *FrequencyAgg) Table() []FrequencyRow {
	var total int64
	for _, c := range f.Buckets {
		total += c
	}
	keys := make([]int32, 0, len(f.Buckets))
	for k := range f.Buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	rows := make([]FrequencyRow, 0, len(keys))
	for _, k := range keys {
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(f.Buckets[k]) / float64(total)
		}
		rows = append(rows, FrequencyRow{Value: k, Count: f.Buckets[k], Percentage: pct})
	}
	return rows
}

// AggregatorSet holds one accumulator per `average`/`frequency`
// directive found across a program's `action` statements, in directive
// order. `print` directives are skipped: output formatting is a
// non-core collaborator (§1, §6).
type AggregatorSet struct {
	directives []lang.ActionDirective
	averages   map[int]*AverageAgg
	frequencies map[int]*FrequencyAgg
}

// NewAggregatorSet builds an empty [AggregatorSet] for prog.
func NewAggregatorSet(prog *lang.Program) *AggregatorSet {
	set := &AggregatorSet{averages: map[int]*AverageAgg{}, frequencies: map[int]*FrequencyAgg{}}
	for _, st := range prog.Statements {
		a, ok := st.(*lang.ActionStmt)
		if !ok {
			continue
		}
		set.directives = append(set.directives, a.Directives...)
	}
	for i, d := range set.directives {
		switch d.Kind {
		case lang.ActionAverage:
			set.averages[i] = &AverageAgg{Label: d.Label}
		case lang.ActionFrequency:
			set.frequencies[i] = NewFrequencyAgg(d.Label, d.HasRange, d.Min, d.Max)
		}
	}
	return set
}

// Clone returns a fresh, empty [AggregatorSet] with the same shape,
// for a worker's thread-local accumulator (§4.6).
func (set *AggregatorSet) Clone() *AggregatorSet {
	clone := &AggregatorSet{directives: set.directives, averages: map[int]*AverageAgg{}, frequencies: map[int]*FrequencyAgg{}}
	for i, d := range set.directives {
		switch d.Kind {
		case lang.ActionAverage:
			clone.averages[i] = &AverageAgg{Label: d.Label}
		case lang.ActionFrequency:
			f := set.frequencies[i]
			clone.frequencies[i] = NewFrequencyAgg(f.Label, f.HasRange, f.Min, f.Max)
		}
	}
	return clone
}

// Merge folds other's totals into set (sums/counts for averages,
// bucket-wise sums for frequencies).
func (set *AggregatorSet) Merge(other *AggregatorSet) {
	for i, a := range other.averages {
		set.averages[i].Merge(a)
	}
	for i, f := range other.frequencies {
		set.frequencies[i].Merge(f)
	}
}

// Sample evaluates every directive's expression against ev and folds
// the result into the matching accumulator. Called once per deal that
// satisfies the program's condition.
func (set *AggregatorSet) Sample(ev *lang.Evaluator) error {
	for i, d := range set.directives {
		switch d.Kind {
		case lang.ActionAverage:
			v, err := ev.EvalInt(d.Expr)
			if err != nil {
				return err
			}
			set.averages[i].Add(v)
		case lang.ActionFrequency:
			v, err := ev.EvalInt(d.Expr)
			if err != nil {
				return err
			}
			set.frequencies[i].Add(v)
		}
	}
	return nil
}

// Averages returns the average accumulators in directive order.
func (set *AggregatorSet) Averages() []*AverageAgg {
	var out []*AverageAgg
	for i, d := range set.directives {
		if d.Kind == lang.ActionAverage {
			out = append(out, set.averages[i])
		}
	}
	return out
}

// Frequencies returns the frequency accumulators in directive order.
func (set *AggregatorSet) Frequencies() []*FrequencyAgg {
	var out []*FrequencyAgg
	for i, d := range set.directives {
		if d.Kind == lang.ActionFrequency {
			out = append(out, set.frequencies[i])
		}
	}
	return out
}
