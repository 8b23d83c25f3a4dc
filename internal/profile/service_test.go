package profile

import (
	"context"
	"sort"
	"testing"
)

// fakeProfileRepo keeps profiles in memory and honors the Repository
// contract: TopRated only surfaces verified profiles with at least one
// review, best rating first.
type fakeProfileRepo struct {
	profiles map[uint]*UserProfile
}

func newFakeProfileRepo(profiles ...UserProfile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: map[uint]*UserProfile{}}
	for i := range profiles {
		p := profiles[i]
		r.profiles[p.UserID] = &p
	}
	return r
}

func (r *fakeProfileRepo) Create(p *UserProfile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) GetByUserID(userID uint) (*UserProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (r *fakeProfileRepo) Update(p *UserProfile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) IncrementInviteCount(userID uint) error {
	r.profiles[userID].InviteCount++
	return nil
}

func (r *fakeProfileRepo) SetVerification(userID uint, status string, reason *string) error {
	p := r.profiles[userID]
	p.VerificationStatus = status
	p.RejectionReason = reason
	return nil
}

func (r *fakeProfileRepo) RateUser(ctx context.Context, targetUserID, reviewerUserID uint, score float64, comment string) (*UserProfile, error) {
	return r.profiles[targetUserID], nil
}

func (r *fakeProfileRepo) ListReviews(targetUserID uint, limit, offset int) ([]Review, error) {
	return nil, nil
}

func (r *fakeProfileRepo) TopRated(limit int) ([]UserProfile, error) {
	var out []UserProfile
	for _, p := range r.profiles {
		if p.VerificationStatus == VerificationVerified && p.RatingCount > 0 {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].RatingCount > out[j].RatingCount
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var errNotFound = errNotFoundType{}

type errNotFoundType struct{}

func (errNotFoundType) Error() string { return "record not found" }

func TestLeaderboardOnlyListsVerifiedUsers(t *testing.T) {
	repo := newFakeProfileRepo(
		UserProfile{UserID: 1, DisplayName: "Eva", VerificationStatus: VerificationVerified, Rating: 4.2, RatingCount: 5},
		UserProfile{UserID: 2, DisplayName: "Oskar", VerificationStatus: VerificationNone, Rating: 5.0, RatingCount: 1},
		UserProfile{UserID: 3, DisplayName: "Maja", VerificationStatus: VerificationVerified, Rating: 4.8, RatingCount: 3},
		UserProfile{UserID: 4, DisplayName: "Nils", VerificationStatus: VerificationPending, Rating: 4.9, RatingCount: 2},
		UserProfile{UserID: 5, DisplayName: "Unrated", VerificationStatus: VerificationVerified, Rating: 0, RatingCount: 0},
	)
	svc := NewService(repo, nil)

	board, err := svc.Leaderboard(10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}

	if len(board) != 2 {
		t.Fatalf("expected only the 2 rated verified profiles, got %d", len(board))
	}
	if board[0].UserID != 3 || board[1].UserID != 1 {
		t.Errorf("wrong order: got %d then %d", board[0].UserID, board[1].UserID)
	}
	for _, p := range board {
		if p.VerificationStatus != VerificationVerified {
			t.Errorf("unverified profile %d on the leaderboard", p.UserID)
		}
	}
}

func TestSetVerificationUpdatesStatus(t *testing.T) {
	repo := newFakeProfileRepo(
		UserProfile{UserID: 7, VerificationStatus: VerificationPending},
	)
	svc := NewService(repo, nil)

	reason := "photo too blurry"
	if err := svc.SetVerification(7, VerificationRejected, &reason); err != nil {
		t.Fatalf("set verification: %v", err)
	}

	p, _ := repo.GetByUserID(7)
	if p.VerificationStatus != VerificationRejected {
		t.Errorf("status not updated: %s", p.VerificationStatus)
	}
	if p.RejectionReason == nil || *p.RejectionReason != reason {
		t.Errorf("rejection reason not stored: %v", p.RejectionReason)
	}
}
