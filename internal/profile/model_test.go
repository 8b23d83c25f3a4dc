package profile

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestApplyReviewScoreFirstReview(t *testing.T) {
	rating, count := ApplyReviewScore(0, 0, nil, 4)
	if !approx(rating, 4) || count != 1 {
		t.Fatalf("first review: rating=%v count=%d, want 4, 1", rating, count)
	}
}

func TestApplyReviewScoreSecondReviewerBlends(t *testing.T) {
	rating, count := ApplyReviewScore(0, 0, nil, 4)
	rating, count = ApplyReviewScore(rating, count, nil, 2)
	if !approx(rating, 3) || count != 2 {
		t.Fatalf("two reviews 4,2: rating=%v count=%d, want 3, 2", rating, count)
	}
}

func TestApplyReviewScoreResubmitReplacesWithoutCountChange(t *testing.T) {
	// Reviewer A gives 4, reviewer B gives 2, then A resubmits 5:
	// mean must become (5+2)/2, count stays 2.
	rating, count := ApplyReviewScore(0, 0, nil, 4)
	rating, count = ApplyReviewScore(rating, count, nil, 2)

	prior := 4.0
	rating, count = ApplyReviewScore(rating, count, &prior, 5)
	if !approx(rating, 3.5) || count != 2 {
		t.Fatalf("resubmit: rating=%v count=%d, want 3.5, 2", rating, count)
	}
}

func TestApplyReviewScoreMeanInvariant(t *testing.T) {
	// Fold in a sequence of reviews and check rating == mean of the
	// current scores at every step.
	scores := []float64{5, 3, 4, 1, 2, 5, 4}

	var rating float64
	var count int
	for i, s := range scores {
		rating, count = ApplyReviewScore(rating, count, nil, s)

		sum := 0.0
		for _, v := range scores[:i+1] {
			sum += v
		}
		want := sum / float64(i+1)
		if !approx(rating, want) || count != i+1 {
			t.Fatalf("after %d reviews: rating=%v count=%d, want %v, %d",
				i+1, rating, count, want, i+1)
		}
	}
}

func TestApplyReviewScoreRepeatedResubmitsStaySane(t *testing.T) {
	// A single reviewer changing their mind over and over: count pinned
	// at 1 and the rating always equals the latest score.
	rating, count := ApplyReviewScore(0, 0, nil, 1)
	for _, s := range []float64{2, 5, 3, 4} {
		prior := rating
		rating, count = ApplyReviewScore(rating, count, &prior, s)
		if !approx(rating, s) || count != 1 {
			t.Fatalf("resubmit %v: rating=%v count=%d", s, rating, count)
		}
	}
}
