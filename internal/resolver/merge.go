package resolver

import (
	"context"
	"fmt"
)

// Merge folds the loser release into the winner with no data loss for
// user-scoped rows and no dangling references afterward.
//
// Ordering matters: dependent rows and mappings move before the loser row
// is deleted, so a partial failure leaves the loser's data reachable, never
// orphaned. Every step is a reassign or upsert, so the whole cascade is
// safe to retry from the top.
func (r *Resolver) Merge(ctx context.Context, winnerID, loserID string) error {
	if winnerID == loserID {
		return nil
	}

	winner, err := r.db.GetReleaseByID(winnerID)
	if err != nil {
		return err
	}
	if winner == nil {
		return fmt.Errorf("merge winner %s not found", winnerID)
	}

	loser, err := r.db.GetReleaseByID(loserID)
	if err != nil {
		return err
	}
	if loser == nil {
		// Already merged by an earlier attempt or a concurrent caller.
		return nil
	}

	// 1. User-scoped dependents: re-pointing an already-correct row is a
	// no-op, collisions mean the user already has the winner.
	if err := r.db.ReassignOwnedGames(winnerID, loserID); err != nil {
		return err
	}
	if err := r.db.ReassignProgress(winnerID, loserID); err != nil {
		return err
	}

	// 2. Single-row aux state: drop the loser's; the winner's existing
	// row stays authoritative.
	if err := r.db.DeleteReleaseStats(loserID); err != nil {
		return err
	}

	// 3. External id mappings.
	if err := r.db.RepointMappings(winnerID, loserID); err != nil {
		return err
	}

	// 4. Only now is the loser row safe to delete.
	if err := r.db.DeleteRelease(loserID); err != nil {
		return err
	}

	r.log.Info("merged duplicate release",
		"winner", winnerID, "loser", loserID,
		"platform", loser.Platform, "title", loser.DisplayTitle)
	return nil
}
