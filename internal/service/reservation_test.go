package service

import (
	"sync"
	"testing"

	"github.com/rocketscienceinc/squares-backend/internal/apperror"
	"github.com/rocketscienceinc/squares-backend/internal/repository"
	"github.com/rocketscienceinc/squares-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationService_Toggle(t *testing.T) {
	t.Run("ClaimReleaseClaim", func(t *testing.T) {
		ctx, st := suite.New(t)

		cellRepo := repository.NewCellRepository(st.Storage)
		reservation := NewReservationService(cellRepo)

		// When: alice clicks an empty square
		result, err := reservation.Toggle(ctx, "alice@example.com", 3, 4)

		// Then: the square is claimed
		require.NoError(t, err)
		assert.Equal(t, &ToggleResult{Action: ActionClaimed, Row: 3, Col: 4}, result)

		// When: alice clicks the same square again
		result, err = reservation.Toggle(ctx, "alice@example.com", 3, 4)

		// Then: the square is released and free again
		require.NoError(t, err)
		assert.Equal(t, ActionReleased, result.Action)

		board, err := cellRepo.ListAll(ctx)
		require.NoError(t, err)

		_, occupied := board.CellAt(3, 4)
		assert.False(t, occupied)

		// When: alice reclaims it
		result, err = reservation.Toggle(ctx, "alice@example.com", 3, 4)

		// Then: the reclaim is indistinguishable from a first claim
		require.NoError(t, err)
		assert.Equal(t, ActionClaimed, result.Action)
	})

	t.Run("TakenByAnother", func(t *testing.T) {
		ctx, st := suite.New(t)

		reservation := NewReservationService(repository.NewCellRepository(st.Storage))

		_, err := reservation.Toggle(ctx, "alice@example.com", 3, 4)
		require.NoError(t, err)

		// When: bob clicks alice's square
		_, err = reservation.Toggle(ctx, "bob@example.com", 3, 4)

		// Then: the claim is forbidden
		require.ErrorIs(t, err, apperror.ErrSquareTaken)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		ctx, st := suite.New(t)

		reservation := NewReservationService(repository.NewCellRepository(st.Storage))

		for _, coord := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
			_, err := reservation.Toggle(ctx, "alice@example.com", coord[0], coord[1])
			require.ErrorIs(t, err, apperror.ErrOutOfRange)
		}
	})

	t.Run("LockedParticipant", func(t *testing.T) {
		ctx, st := suite.New(t)

		cellRepo := repository.NewCellRepository(st.Storage)
		reservation := NewReservationService(cellRepo)

		// Given: alice has locked in
		_, err := reservation.Toggle(ctx, "alice@example.com", 1, 1)
		require.NoError(t, err)

		locked, err := cellRepo.LockAllOwnedBy(ctx, "alice@example.com")
		require.NoError(t, err)
		require.EqualValues(t, 1, locked)

		// When: alice tries to claim another square or release her own
		_, err = reservation.Toggle(ctx, "alice@example.com", 2, 2)
		require.ErrorIs(t, err, apperror.ErrParticipantLocked)

		_, err = reservation.Toggle(ctx, "alice@example.com", 1, 1)
		require.ErrorIs(t, err, apperror.ErrParticipantLocked)
	})
}

func TestReservationService_Toggle_Concurrent(t *testing.T) {
	ctx, st := suite.New(t)

	reservation := NewReservationService(repository.NewCellRepository(st.Storage))

	// When: many participants click the same empty square at once
	const claimants = 15

	var wg sync.WaitGroup
	errs := make(chan error, claimants)

	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(owner string) {
			defer wg.Done()

			_, err := reservation.Toggle(ctx, owner, 7, 7)
			errs <- err
		}(string(rune('a'+i)) + "@example.com")
	}
	wg.Wait()
	close(errs)

	// Then: exactly one claim wins regardless of what the advisory reads saw
	wins := 0
	for err := range errs {
		if err == nil {
			wins++
			continue
		}

		require.ErrorIs(t, err, apperror.ErrSquareTaken)
	}

	assert.Equal(t, 1, wins)
}
