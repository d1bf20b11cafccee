package services

import (
	"strings"
	"testing"

	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/repositories"
	"github.com/rishtahub/rishta_backend/pkg/errors"
)

func newRelationService(t *testing.T) (*RelationService, *repositories.RelationRepository) {
	t.Helper()

	db := newTestDB(t)
	repo := repositories.NewRelationRepository(db)
	return NewRelationService(db, repo), repo
}

func TestLikeMutualCreatesMatch(t *testing.T) {
	svc, repo := newRelationService(t)

	outcome, err := svc.Like(1, 2)
	if err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	if outcome != LikeOutcomeLiked {
		t.Fatalf("expected LIKED, got %s", outcome)
	}

	matched, err := svc.IsMatched(1, 2)
	if err != nil {
		t.Fatalf("IsMatched failed: %v", err)
	}
	if matched {
		t.Fatal("one-sided like must not match")
	}

	outcome, err = svc.Like(2, 1)
	if err != nil {
		t.Fatalf("reverse like failed: %v", err)
	}
	if outcome != LikeOutcomeMatched {
		t.Fatalf("expected MATCH, got %s", outcome)
	}

	// Both directed MATCH edges must exist
	for _, pair := range [][2]uint{{1, 2}, {2, 1}} {
		exists, err := repo.Exists(pair[0], pair[1], models.RelationMatch)
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if !exists {
			t.Fatalf("missing MATCH edge %d -> %d", pair[0], pair[1])
		}
	}

	matched, err = svc.IsMatched(1, 2)
	if err != nil {
		t.Fatalf("IsMatched failed: %v", err)
	}
	if !matched {
		t.Fatal("mutual like must match")
	}
}

func TestLikeIsIdempotent(t *testing.T) {
	svc, _ := newRelationService(t)

	if _, err := svc.Like(1, 2); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if _, err := svc.Like(1, 2); err != nil {
		t.Fatalf("repeat like failed: %v", err)
	}

	if _, err := svc.Like(2, 1); err != nil {
		t.Fatalf("reverse like failed: %v", err)
	}

	// Liking again after the match still reports the match
	outcome, err := svc.Like(1, 2)
	if err != nil {
		t.Fatalf("post-match like failed: %v", err)
	}
	if outcome != LikeOutcomeMatched {
		t.Fatalf("expected MATCH on repeat like, got %s", outcome)
	}
}

func TestLikeSelfRejected(t *testing.T) {
	svc, _ := newRelationService(t)

	if _, err := svc.Like(1, 1); err == nil {
		t.Fatal("expected error liking own profile")
	} else if errors.Code(err) != errors.ErrCodeInvalidState {
		t.Fatalf("expected INVALID_STATE, got %s", errors.Code(err))
	}
}

func TestBlockPurgesPositiveEdges(t *testing.T) {
	svc, repo := newRelationService(t)

	// Mutual match plus shortlists in both directions
	if _, err := svc.Like(1, 2); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if _, err := svc.Like(2, 1); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if err := svc.Shortlist(1, 2); err != nil {
		t.Fatalf("shortlist failed: %v", err)
	}
	if err := svc.Shortlist(2, 1); err != nil {
		t.Fatalf("shortlist failed: %v", err)
	}

	if err := svc.Block(1, 2); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	for _, relType := range models.PositiveRelationTypes() {
		exists, err := repo.ExistsEither(1, 2, relType)
		if err != nil {
			t.Fatalf("ExistsEither failed: %v", err)
		}
		if exists {
			t.Fatalf("%s edge survived the block", relType)
		}
	}

	blocked, err := svc.IsBlocked(1, 2)
	if err != nil {
		t.Fatalf("IsBlocked failed: %v", err)
	}
	if !blocked {
		t.Fatal("block edge missing")
	}

	// Blocking again is a no-op
	if err := svc.Block(1, 2); err != nil {
		t.Fatalf("repeat block failed: %v", err)
	}
	if n := countRelations(t, svc.db, models.RelationBlock); n != 1 {
		t.Fatalf("expected 1 BLOCK edge, got %d", n)
	}
}

func TestUnblockDoesNotRestorePurgedEdges(t *testing.T) {
	svc, _ := newRelationService(t)

	if _, err := svc.Like(1, 2); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if _, err := svc.Like(2, 1); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if err := svc.Block(1, 2); err != nil {
		t.Fatalf("block failed: %v", err)
	}
	if err := svc.Unblock(1, 2); err != nil {
		t.Fatalf("unblock failed: %v", err)
	}

	blocked, err := svc.IsBlocked(1, 2)
	if err != nil {
		t.Fatalf("IsBlocked failed: %v", err)
	}
	if blocked {
		t.Fatal("block edge should be gone")
	}

	matched, err := svc.IsMatched(1, 2)
	if err != nil {
		t.Fatalf("IsMatched failed: %v", err)
	}
	if matched {
		t.Fatal("unblock must not resurrect the match")
	}
}

func TestShortlistIdempotentAndRemovable(t *testing.T) {
	svc, _ := newRelationService(t)

	if err := svc.Shortlist(1, 2); err != nil {
		t.Fatalf("shortlist failed: %v", err)
	}
	if err := svc.Shortlist(1, 2); err != nil {
		t.Fatalf("repeat shortlist failed: %v", err)
	}

	entries, err := svc.Shortlisted(1)
	if err != nil {
		t.Fatalf("Shortlisted failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 shortlist entry, got %d", len(entries))
	}

	if err := svc.RemoveShortlist(1, 2); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	// Removing a missing entry is a no-op
	if err := svc.RemoveShortlist(1, 2); err != nil {
		t.Fatalf("repeat remove failed: %v", err)
	}
}

func TestLikeAndShortlistRejectedWhenBlocked(t *testing.T) {
	svc, repo := newRelationService(t)

	if err := svc.Block(1, 2); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	if _, err := svc.Like(1, 2); err == nil {
		t.Fatal("like across a block must be rejected")
	} else if errors.Code(err) != errors.ErrCodePolicyViolation {
		t.Fatalf("expected POLICY_VIOLATION, got %s", errors.Code(err))
	}

	// The block applies in both directions
	if _, err := svc.Like(2, 1); err == nil {
		t.Fatal("like by the blocked user must be rejected")
	}
	if err := svc.Shortlist(1, 2); err == nil {
		t.Fatal("shortlist across a block must be rejected")
	}
	if err := svc.Shortlist(2, 1); err == nil {
		t.Fatal("shortlist by the blocked user must be rejected")
	}

	for _, relType := range []string{models.RelationLike, models.RelationShortlist} {
		exists, err := repo.ExistsEither(1, 2, relType)
		if err != nil {
			t.Fatalf("ExistsEither failed: %v", err)
		}
		if exists {
			t.Fatalf("%s edge written despite the block", relType)
		}
	}
}

func TestReportReasonSanitizedAndCapped(t *testing.T) {
	svc, repo := newRelationService(t)

	long := strings.Repeat("a", 600)
	if err := svc.Report(1, 2, "<b>spam</b>   profile "+long); err != nil {
		t.Fatalf("report failed: %v", err)
	}

	reports, err := repo.ListAll(models.RelationReport)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}

	reason := reports[0].ReportReason
	if strings.Contains(reason, "<") {
		t.Fatalf("HTML survived sanitization: %q", reason)
	}
	if !strings.HasPrefix(reason, "spam profile") {
		t.Fatalf("expected collapsed whitespace, got %q", reason)
	}
	if got := len([]rune(reason)); got > 500 {
		t.Fatalf("reason exceeds the column cap: %d runes", got)
	}
}

func TestReportRetainsFirstReason(t *testing.T) {
	svc, repo := newRelationService(t)

	if err := svc.Report(1, 2, "fake profile"); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if err := svc.Report(1, 2, "harassment"); err != nil {
		t.Fatalf("repeat report failed: %v", err)
	}

	reports, err := repo.ListAll(models.RelationReport)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	if reports[0].ReportReason != "fake profile" {
		t.Fatalf("expected first reason retained, got %q", reports[0].ReportReason)
	}
}

func TestAcceptRequestConvertsToMatch(t *testing.T) {
	svc, repo := newRelationService(t)

	if err := svc.SendRequest(1, 2); err != nil {
		t.Fatalf("send request failed: %v", err)
	}

	pending, err := svc.PendingRequests(1)
	if err != nil {
		t.Fatalf("PendingRequests failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending request, got %d", len(pending))
	}

	if err := svc.AcceptRequest(2, 1); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	matched, err := svc.IsMatched(1, 2)
	if err != nil {
		t.Fatalf("IsMatched failed: %v", err)
	}
	if !matched {
		t.Fatal("accepted request must produce a match")
	}

	// The request edge is consumed
	exists, err := repo.ExistsEither(1, 2, models.RelationRequest)
	if err != nil {
		t.Fatalf("ExistsEither failed: %v", err)
	}
	if exists {
		t.Fatal("request edge should be consumed by accept")
	}
}

func TestIsMatchedRequiresBothDirections(t *testing.T) {
	svc, repo := newRelationService(t)

	// A stray one-directional row must read as not matched
	err := repo.CreateIfAbsent(&models.UserRelation{
		FromUserID: 1,
		ToUserID:   2,
		Type:       models.RelationMatch,
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	matched, err := svc.IsMatched(1, 2)
	if err != nil {
		t.Fatalf("IsMatched failed: %v", err)
	}
	if matched {
		t.Fatal("one-directional MATCH row must not count as matched")
	}
}
