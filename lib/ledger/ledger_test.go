package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	msbstore "equip-repair-backend/lib/ballots/msb/store"
	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type fakeSupplyStore struct {
	msbstore.Provider
	ballots []dbmodels.MaterialSupplyBallot
}

func (f fakeSupplyStore) FirstOfRequest(requestID string) (*dbmodels.MaterialSupplyBallot, error) {
	if len(f.ballots) == 0 {
		return nil, nil
	}
	first := f.ballots[0]
	return &first, nil
}

func (f fakeSupplyStore) ListByRequest(requestID string) ([]dbmodels.MaterialSupplyBallot, error) {
	return f.ballots, nil
}

func ballot(id string, details ...dbmodels.MaterialSupplyDetail) dbmodels.MaterialSupplyBallot {
	rec := dbmodels.MaterialSupplyBallot{Details: details}
	rec.ID = id
	return rec
}

func detail(materialID string, approve, supplied float64) dbmodels.MaterialSupplyDetail {
	return dbmodels.MaterialSupplyDetail{
		MaterialID:       materialID,
		QuantityApprove:  approve,
		QuantitySupplies: supplied,
		Reason:           models.SupplyReasonReplace,
	}
}

func TestSnapshot(t *testing.T) {
	t.Run(`budget comes from the first ballot only`, func(t *testing.T) {
		handler := impl{msbStore: fakeSupplyStore{ballots: []dbmodels.MaterialSupplyBallot{
			ballot("b1", detail("m1", 10, 4)),
			ballot("b2", detail("m1", 99, 3)),
		}}}

		snapshot, err := handler.Snapshot("r1")
		require.Nil(t, err)
		require.Equal(t, 10.0, snapshot["m1"].Approved)
		require.Equal(t, 7.0, snapshot["m1"].Supplied)
		require.Equal(t, 3.0, snapshot["m1"].Remaining)
	})

	t.Run(`remaining never goes negative`, func(t *testing.T) {
		handler := impl{msbStore: fakeSupplyStore{ballots: []dbmodels.MaterialSupplyBallot{
			ballot("b1", detail("m1", 5, 4)),
			ballot("b2", detail("m1", 0, 4)),
		}}}

		remaining, err := handler.RemainingFor("r1", "m1")
		require.Nil(t, err)
		require.Equal(t, 0.0, remaining)
	})

	t.Run(`empty request has an empty snapshot`, func(t *testing.T) {
		handler := impl{msbStore: fakeSupplyStore{}}

		snapshot, err := handler.Snapshot("r1")
		require.Nil(t, err)
		require.Empty(t, snapshot)
	})
}

func TestAllSupplied(t *testing.T) {
	t.Run(`open budget is not supplied`, func(t *testing.T) {
		handler := impl{msbStore: fakeSupplyStore{ballots: []dbmodels.MaterialSupplyBallot{
			ballot("b1", detail("m1", 10, 10), detail("m2", 4, 1)),
		}}}

		done, err := handler.AllSupplied("r1")
		require.Nil(t, err)
		require.False(t, done)
	})

	t.Run(`fully supplied budget`, func(t *testing.T) {
		handler := impl{msbStore: fakeSupplyStore{ballots: []dbmodels.MaterialSupplyBallot{
			ballot("b1", detail("m1", 10, 6)),
			ballot("b2", detail("m1", 0, 4)),
		}}}

		done, err := handler.AllSupplied("r1")
		require.Nil(t, err)
		require.True(t, done)
	})

	t.Run(`a request without ballots is not supplied`, func(t *testing.T) {
		handler := impl{msbStore: fakeSupplyStore{}}

		done, err := handler.AllSupplied("r1")
		require.Nil(t, err)
		require.False(t, done)
	})
}

func TestCheckSupply(t *testing.T) {
	store := fakeSupplyStore{ballots: []dbmodels.MaterialSupplyBallot{
		ballot("b1", detail("m1", 10, 4)),
		ballot("b2", detail("m1", 0, 3)),
	}}
	handler := impl{msbStore: store}

	t.Run(`own supplies are excluded from the sum`, func(t *testing.T) {
		// b2 re-submits 6 for m1: 10 approved minus 4 from b1 leaves 6.
		err := handler.CheckSupply("r1", "b2", map[string]float64{"m1": 6})
		require.Nil(t, err)
	})

	t.Run(`over-supply is rejected`, func(t *testing.T) {
		err := handler.CheckSupply("r1", "b2", map[string]float64{"m1": 7})
		require.NotNil(t, err)
	})

	t.Run(`material outside the budget is rejected`, func(t *testing.T) {
		err := handler.CheckSupply("r1", "b2", map[string]float64{"m2": 1})
		require.NotNil(t, err)
	})

	t.Run(`zero quantities pass through`, func(t *testing.T) {
		err := handler.CheckSupply("r1", "b2", map[string]float64{"m2": 0})
		require.Nil(t, err)
	})
}
