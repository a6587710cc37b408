// Package fsrs implements the FSRS-5 spaced repetition scheduler used for
// word reviews. It is purely computational: the engine performs no I/O,
// knows nothing about word content and persists nothing — callers own
// storage and pass plain Card values in and out.
package fsrs

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Engine schedules card reviews. It is a pure function of its inputs plus
// one seedable random source used only for interval fuzz, so a single card
// must not be scheduled from two goroutines at once without external
// synchronization.
type Engine struct {
	params Parameters
	rng    *rand.Rand
}

// NewEngine creates an Engine with the given parameters. Zero-value parameter
// fields are filled with defaults. The fuzz RNG is seeded from the clock;
// use NewWithRand for reproducible scheduling in tests.
func NewEngine(params Parameters) (*Engine, error) {
	return NewWithRand(params, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates an Engine with an explicit random source for fuzz.
func NewWithRand(params Parameters, rng *rand.Rand) (*Engine, error) {
	p, err := params.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Engine{params: p, rng: rng}, nil
}

// Parameters returns the effective engine configuration.
func (e *Engine) Parameters() Parameters {
	return e.params
}

// Schedule processes one review of the card at the given time and returns
// the updated card. The input card is not modified. An out-of-range rating
// or a card with corrupted memory values is rejected.
func (e *Engine) Schedule(card Card, rating Rating, now time.Time) (Card, error) {
	if !rating.IsValid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}
	if !card.State.IsValid() {
		return Card{}, fmt.Errorf("%w: state %d", ErrInvalidState, int(card.State))
	}
	if card.State != New && card.Stability <= 0 {
		// Corrupted persisted data: propagating it through the formulas
		// would produce NaN/Inf and poison the stored card.
		return Card{}, fmt.Errorf("%w: item %q has stability %v in state %s",
			ErrCorruptCard, card.ItemID, card.Stability, card.State)
	}

	c := card
	if c.LastReview != nil {
		c.ElapsedDays = daysBetween(*c.LastReview, now)
		// Clock skew or an edited row can put LastReview after now; a
		// negative elapsed time would push retrievability above 1 and
		// shrink stability on a successful review.
		if c.ElapsedDays < 0 {
			c.ElapsedDays = 0
		}
	} else {
		c.ElapsedDays = 0
	}

	switch c.State {
	case New:
		e.scheduleNew(&c, rating, now)
	case Learning, Relearning:
		e.scheduleLearning(&c, rating, now)
	case Review:
		e.scheduleReview(&c, rating, now)
	}

	c.Reps++
	t := now
	c.LastReview = &t
	return c, nil
}

// scheduleNew handles the very first review of a card.
func (e *Engine) scheduleNew(c *Card, rating Rating, now time.Time) {
	c.Stability = e.initStability(rating)
	c.Difficulty = e.initDifficulty(rating)

	switch rating {
	case Again:
		c.State = Learning
		c.ScheduledDays = 0
		c.Due = now.Add(1 * time.Minute)
	case Hard:
		c.State = Learning
		c.ScheduledDays = 0
		c.Due = now.Add(5 * time.Minute)
	case Good:
		c.State = Learning
		c.ScheduledDays = 0
		c.Due = now.Add(10 * time.Minute)
	case Easy:
		// Easy graduates straight into the review cycle.
		c.State = Review
		interval := e.nextInterval(c.Stability)
		c.ScheduledDays = float64(interval)
		c.Due = now.AddDate(0, 0, interval)
	}
}

// scheduleLearning handles the Learning and Relearning states.
func (e *Engine) scheduleLearning(c *Card, rating Rating, now time.Time) {
	switch rating {
	case Again:
		// Relearning cards already took their lapse on the way out of
		// Review; counting it again here would double-charge them.
		if c.State != Relearning {
			c.Lapses++
		}
		c.Stability = e.initStability(Again)
		c.ScheduledDays = 0
		c.Due = now.Add(1 * time.Minute)
	case Hard:
		// Stay on the current step, memory state untouched.
		c.ScheduledDays = 0
		c.Due = now.Add(5 * time.Minute)
	case Good, Easy:
		c.State = Review
		c.Stability = e.initStability(rating)
		interval := e.nextInterval(c.Stability)
		c.ScheduledDays = float64(interval)
		c.Due = now.AddDate(0, 0, interval)
	}
}

// scheduleReview handles an established card in the Review state.
// Retrievability is computed from the elapsed days and the stability as
// they were before this review's update.
func (e *Engine) scheduleReview(c *Card, rating Rating, now time.Time) {
	retrievability := ForgettingCurve(c.ElapsedDays, c.Stability)

	if rating == Again {
		// Lapse: difficulty is deliberately left alone.
		c.Lapses++
		c.State = Relearning
		c.Stability = e.nextForgetStability(c.Difficulty, c.Stability, retrievability)
		c.ScheduledDays = 0
		c.Due = now.Add(5 * time.Minute)
		return
	}

	c.Difficulty = e.nextDifficulty(c.Difficulty, rating)
	c.Stability = e.nextRecallStability(c.Difficulty, c.Stability, retrievability, rating)
	interval := e.nextInterval(c.Stability)
	c.ScheduledDays = float64(interval)
	c.Due = now.AddDate(0, 0, e.fuzz(interval))
}

// Preview returns the card that Schedule would produce for each of the
// four ratings, without fuzz, so UIs can show the upcoming intervals.
func (e *Engine) Preview(card Card, now time.Time) (map[Rating]Card, error) {
	noFuzz := e.params
	noFuzz.DisableFuzz = true
	plain := &Engine{params: noFuzz, rng: e.rng}

	out := make(map[Rating]Card, 4)
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		c, err := plain.Schedule(card, r, now)
		if err != nil {
			return nil, err
		}
		out[r] = c
	}
	return out, nil
}

// Retrievability returns the modeled recall probability for the card at
// the given time. Cards that were never reviewed have retrievability 0.
func (e *Engine) Retrievability(card Card, now time.Time) float64 {
	if card.LastReview == nil {
		return 0
	}
	return ForgettingCurve(daysBetween(*card.LastReview, now), card.Stability)
}

// ForgettingCurve computes R(t, S) = exp(-t/S), the probability of recall
// after t days for a card with stability S. Returns 0 for S <= 0.
func ForgettingCurve(elapsedDays, stability float64) float64 {
	if stability <= 0 {
		return 0
	}
	return math.Exp(-elapsedDays / stability)
}

// initStability returns S0(G) = max(0.1, w[G-1]).
func (e *Engine) initStability(rating Rating) float64 {
	return math.Max(MinStability, e.params.W[rating-1])
}

// initDifficulty returns D0(G) = clamp(w4 - (G-3)*w5, 1, 10).
func (e *Engine) initDifficulty(rating Rating) float64 {
	return clampDifficulty(e.params.W[4] - float64(rating-3)*e.params.W[5])
}

// nextDifficulty updates difficulty after a successful Review-state recall:
//
//	D' = w5 * D0(Good) + (1 - w5) * (D - w6*(G-3))
//
// The mean reversion toward the Good baseline reuses w5 as the blend
// weight. That dual role looks odd but is load-bearing: changing it would
// diverge from every previously scheduled card.
func (e *Engine) nextDifficulty(difficulty float64, rating Rating) float64 {
	raw := difficulty - e.params.W[6]*float64(rating-3)
	next := e.params.W[5]*e.initDifficulty(Good) + (1-e.params.W[5])*raw
	return clampDifficulty(next)
}

// nextRecallStability computes stability after a successful recall:
//
//	S' = S * (1 + exp(w8) * (11-D) * S^(-w9) * (exp(w10*(1-R)) - 1) * hardPenalty * easyBonus)
func (e *Engine) nextRecallStability(difficulty, stability, retrievability float64, rating Rating) float64 {
	hardPenalty := 1.0
	if rating == Hard {
		hardPenalty = e.params.W[15]
	}
	easyBonus := 1.0
	if rating == Easy {
		easyBonus = e.params.W[16]
	}
	next := stability * (1 + math.Exp(e.params.W[8])*
		(11-difficulty)*
		math.Pow(stability, -e.params.W[9])*
		(math.Exp(e.params.W[10]*(1-retrievability))-1)*
		hardPenalty*easyBonus)
	return math.Max(MinStability, next)
}

// nextForgetStability computes stability after a lapse, from the pre-lapse
// difficulty and stability:
//
//	S' = w11 * D^(-w12) * ((S+1)^w13 - 1) * exp(w14*(1-R))
func (e *Engine) nextForgetStability(difficulty, stability, retrievability float64) float64 {
	next := e.params.W[11] *
		math.Pow(difficulty, -e.params.W[12]) *
		(math.Pow(stability+1, e.params.W[13]) - 1) *
		math.Exp(e.params.W[14]*(1-retrievability))
	return math.Max(MinStability, next)
}

// nextInterval converts stability into a whole number of days until the
// card's retrievability is expected to hit the requested retention:
//
//	I(S) = clamp(round(S * ln(RR) / ln(0.9)), 1, maximumInterval)
//
// With the default retention of 0.9 this is just round(S).
func (e *Engine) nextInterval(stability float64) int {
	interval := int(math.Round(stability * math.Log(e.params.RequestRetention) / math.Log(0.9)))
	if interval < 1 {
		return 1
	}
	if interval > e.params.MaximumInterval {
		return e.params.MaximumInterval
	}
	return interval
}

// clampDifficulty clamps difficulty to [1, 10].
func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, 1), 10)
}
