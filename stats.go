package dealer

// HandStats is a hand's precomputed feature vector, per §3. Computed
// lazily on first evaluator access for a seat in a deal (see
// [Deal.Stats]) and cached for the lifetime of that deal only.
type HandStats struct {
	// Length holds the card count per suit (Σ=13).
	Length [NumSuits]int
	// HCP holds the high-card points per suit; TotalHCP is their sum.
	HCP      [NumSuits]int
	TotalHCP int
	// Controls holds the control count per suit (A=2, K=1);
	// TotalControls is their sum.
	Controls      [NumSuits]int
	TotalControls int
	// Losers holds the losing-trick count per suit; TotalLosers is
	// their sum.
	Losers      [NumSuits]int
	TotalLosers int
	// RankBits is a per-suit bitmask of held ranks (bit i set iff rank
	// i is held), the dense equivalent of a per-suit rank_count[13]
	// indicator array.
	RankBits [NumSuits]uint16
	// TopN holds, for n in [1,5] (index n-1), the count of the top-n
	// honors (A, AK, AKQ, AKQJ, AKQJT) held per suit.
	TopN [NumSuits][5]int
	// Quality is the per-suit quality metric, scaled by 100 (§3).
	Quality [NumSuits]int
	// Shape is the hand's exact suit-length tuple, as a single-bit
	// [ShapeSet] (see shape.go and SPEC_FULL.md's resolution of the
	// u64-vs-560-tuples tension).
	Shape ShapeSet
	// CCCC is the whole-hand evaluation described in §3.
	CCCC int
}

// whole-hand aggregate synonyms, pt0..pt9: tens, jacks, queens, kings,
// aces, top2..top5, c13.
func (s *HandStats) tens() int   { return s.rankCountWholeHand(Ten) }
func (s *HandStats) jacks() int  { return s.rankCountWholeHand(Jack) }
func (s *HandStats) queens() int { return s.rankCountWholeHand(Queen) }
func (s *HandStats) kings() int  { return s.rankCountWholeHand(King) }
func (s *HandStats) aces() int   { return s.rankCountWholeHand(Ace) }

func (s *HandStats) rankCountWholeHand(rank Rank) int {
	n := 0
	for _, suit := range Suits {
		if s.RankBits[suit]&(1<<uint(rank)) != 0 {
			n++
		}
	}
	return n
}

// TopNWholeHand sums TopN[suit][n-1] across all suits, for n in [1,5].
func (s *HandStats) TopNWholeHand(n int) int {
	total := 0
	for _, suit := range Suits {
		total += s.TopN[suit][n-1]
	}
	return total
}

// C13 is the "6A + 4K + 2Q + J" whole-hand honor count named in §3.
func (s *HandStats) C13() int {
	return 6*s.aces() + 4*s.kings() + 2*s.queens() + s.jacks()
}

// Pt looks up a pt0..pt9 synonym by index (0-9): tens, jacks, queens,
// kings, aces, top2, top3, top4, top5, c13.
func (s *HandStats) Pt(n int) int {
	switch n {
	case 0:
		return s.tens()
	case 1:
		return s.jacks()
	case 2:
		return s.queens()
	case 3:
		return s.kings()
	case 4:
		return s.aces()
	case 5, 6, 7, 8:
		return s.TopNWholeHand(n - 3)
	case 9:
		return s.C13()
	}
	return 0
}

// Tens, Jacks, Queens, Kings, Aces are the whole-hand pt0..pt4
// synonyms, exported for package lang's function dispatch.
func (s *HandStats) Tens() int   { return s.tens() }
func (s *HandStats) Jacks() int  { return s.jacks() }
func (s *HandStats) Queens() int { return s.queens() }
func (s *HandStats) Kings() int  { return s.kings() }
func (s *HandStats) Aces() int   { return s.aces() }

// HasRank reports whether suit holds rank.
func (s *HandStats) HasRank(suit Suit, rank Rank) bool {
	return hasRank(s.RankBits[suit], rank)
}

// C13Suit is the per-suit "6A + 4K + 2Q + J" honor count.
func (s *HandStats) C13Suit(suit Suit) int {
	b := s.RankBits[suit]
	v := 0
	if hasRank(b, Ace) {
		v += 6
	}
	if hasRank(b, King) {
		v += 4
	}
	if hasRank(b, Queen) {
		v += 2
	}
	if hasRank(b, Jack) {
		v++
	}
	return v
}

// honorRanks are the five honor ranks, highest first: A, K, Q, J, T.
var honorRanks = [5]Rank{Ace, King, Queen, Jack, Ten}

// computeStats computes a [HandStats] for a hand. Called at most once
// per seat per deal (see [Deal.Stats]).
func computeStats(h Hand) *HandStats {
	s := &HandStats{}
	var lengthBySuit [NumSuits]int
	for _, c := range h {
		suit, rank := c.Suit(), c.Rank()
		lengthBySuit[suit]++
		s.RankBits[suit] |= 1 << uint(rank)
		s.HCP[suit] += rank.HCP()
		s.Controls[suit] += rank.Control()
	}
	s.Length = lengthBySuit
	for _, suit := range Suits {
		s.TotalHCP += s.HCP[suit]
		s.TotalControls += s.Controls[suit]
		s.Losers[suit] = suitLosers(s.RankBits[suit], s.Length[suit])
		s.TotalLosers += s.Losers[suit]
		for n := 1; n <= 5; n++ {
			s.TopN[suit][n-1] = topHonorCount(s.RankBits[suit], n)
		}
		s.Quality[suit] = suitQuality(s.RankBits[suit], s.Length[suit])
	}
	s.Shape = shapeOf(s.Length)
	s.CCCC = cccc(s)
	return s
}

// hasRank reports whether bits holds rank.
func hasRank(bits uint16, rank Rank) bool {
	return bits&(1<<uint(rank)) != 0
}

// topHonorCount returns how many of the top n honor ranks (A, K, Q, J,
// T, in that order) are present in bits.
func topHonorCount(bits uint16, n int) int {
	count := 0
	for i := 0; i < n && i < len(honorRanks); i++ {
		if hasRank(bits, honorRanks[i]) {
			count++
		}
	}
	return count
}

// suitLosers computes a suit's losing-trick count per §3:
//
//	void:      0
//	singleton: 0 if A, else 1
//	doubleton: 0 if AK, 1 if Ax or Kx, else 2
//	3+:        3, minus one for each of A, K, Q present among the
//	           suit's top three actual cards
func suitLosers(bits uint16, length int) int {
	hasA, hasK, hasQ := hasRank(bits, Ace), hasRank(bits, King), hasRank(bits, Queen)
	switch length {
	case 0:
		return 0
	case 1:
		if hasA {
			return 0
		}
		return 1
	case 2:
		switch {
		case hasA && hasK:
			return 0
		case hasA || hasK:
			return 1
		default:
			return 2
		}
	default:
		losers := 3
		if hasA {
			losers--
		}
		if hasK {
			losers--
		}
		if hasQ {
			losers--
		}
		return losers
	}
}

// suitQuality computes the per-suit quality metric described in §3,
// scaled by ten times the suit length (f = length*10).
//
// The ten/nine/long-suit adjustment wording leaves "higher honors"
// and "ShapePoints" undefined. This function resolves them as
// follows: "higher" for the ten means
// A/K/Q/J; for the nine it means A/K/Q/J/T; for long suits (7+) the
// "missing honor" compensation adds half of f for each of A/K/Q/J not
// held, capped so a suit can never exceed the value of actually
// holding all four.
func suitQuality(bits uint16, length int) int {
	hasA, hasK, hasQ, hasJ := hasRank(bits, Ace), hasRank(bits, King), hasRank(bits, Queen), hasRank(bits, Jack)
	hasT, hasNine, hasEight := hasRank(bits, Ten), hasRank(bits, Nine), hasRank(bits, Eight)
	f := length * 10
	score := 0
	if hasA {
		score += 4 * f
	}
	if hasK {
		score += 3 * f
	}
	if hasQ {
		score += 2 * f
	}
	if hasJ {
		score += f
	}
	higherThanTen := boolCount(hasA, hasK, hasQ, hasJ)
	if hasT {
		if higherThanTen >= 2 || hasJ {
			score += f
		} else {
			score += f / 2
		}
	}
	higherThanNine := boolCount(hasA, hasK, hasQ, hasJ, hasT)
	if hasNine {
		if higherThanNine >= 2 || hasT || hasEight {
			score += f / 2
		}
	}
	if length >= 7 {
		missing := 4 - boolCount(hasA, hasK, hasQ, hasJ)
		score += missing * (f / 2)
	}
	return score
}

func boolCount(bs ...bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

// cccc computes the whole-hand evaluation described in §3: per-card
// base values with suit-shape adjustments, plus the summed per-suit
// quality, plus a shape term.
//
// "ShapePoints" is named but not otherwise defined; this resolves it
// as the conventional short-suit point table:
// doubleton=1, singleton=2, void=3, summed across suits.
func cccc(s *HandStats) int {
	total := 0
	for _, suit := range Suits {
		bits, length := s.RankBits[suit], s.Length[suit]
		hasA, hasK, hasQ, hasJ := hasRank(bits, Ace), hasRank(bits, King), hasRank(bits, Queen), hasRank(bits, Jack)
		hasT, hasNine := hasRank(bits, Ten), hasRank(bits, Nine)
		if hasA {
			total += 300
		}
		if hasK {
			total += 200
		}
		if hasQ {
			total += 100
		}
		if length == 1 && hasK {
			total -= 150
		}
		if length == 1 && hasQ {
			total -= 75
		}
		if length == 2 && hasQ {
			total -= 25
		}
		if hasQ && !hasA && !hasK {
			total -= 25
		}
		higherThanJack := boolCount(hasA, hasK, hasQ)
		if hasJ {
			switch {
			case higherThanJack >= 2:
				total += 50
			case higherThanJack == 1:
				total += 25
			}
		}
		higherThanTen := boolCount(hasA, hasK, hasQ, hasJ)
		if hasT {
			switch {
			case higherThanTen >= 2:
				total += 25
			case higherThanTen == 1 && hasNine:
				total += 25
			}
		}
		total += s.Quality[suit]
		switch {
		case length < 3:
			total += 100
		}
	}
	switch shapePoints := shapePoints(s.Length); {
	case isBalanced(s.Length):
		total -= 50
	default:
		total += shapePoints - 100
	}
	return total
}

// shapePoints is the conventional short-suit point table: doubleton=1,
// singleton=2, void=3, summed across suits.
func shapePoints(length [NumSuits]int) int {
	pts := 0
	for _, l := range length {
		switch l {
		case 2:
			pts++
		case 1:
			pts += 2
		case 0:
			pts += 3
		}
	}
	return pts
}

// isBalanced reports whether the suit lengths form one of the
// conventional balanced shapes: 4-3-3-3, 4-4-3-2, or 5-3-3-2.
func isBalanced(length [NumSuits]int) bool {
	counts := map[int]int{}
	for _, l := range length {
		counts[l]++
	}
	switch {
	case counts[4] == 1 && counts[3] == 3:
		return true
	case counts[4] == 2 && counts[3] == 1 && counts[2] == 1:
		return true
	case counts[5] == 1 && counts[3] == 2 && counts[2] == 1:
		return true
	}
	return false
}
