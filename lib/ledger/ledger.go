package ledger

import (
	"gorm.io/gorm"

	"equip-repair-backend/db"
	msbstore "equip-repair-backend/lib/ballots/msb/store"
	"equip-repair-backend/lib/utils/errs"
	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

// Remaining is the reconciliation state of one material within a repair
// request. The approved budget comes from the first supply ballot only,
// supplied quantities accumulate across every non-rejected ballot of the
// request.
type Remaining struct {
	MaterialID string
	Material   *dbmodels.Material
	Reason     models.SupplyReason
	Approved   float64
	Supplied   float64
	Remaining  float64
}

type Provider interface {
	// Snapshot returns the reconciliation state per material of the
	// first ballot of the request.
	Snapshot(requestID string) (map[string]Remaining, error)
	// RemainingFor returns max(0, approved − supplied) for one material.
	RemainingFor(requestID, materialID string) (float64, error)
	// AllSupplied reports whether every material of the first ballot has
	// zero remaining.
	AllSupplied(requestID string) (bool, error)
	// CheckSupply validates proposed supplied quantities (keyed by
	// material) for the given ballot against the remaining budget,
	// excluding that ballot's own recorded supplies from the sum.
	CheckSupply(requestID, ballotID string, proposed map[string]float64) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		msbStore: msbstore.NewInstance(db.DB),
	}
}

func NewInstanceWithTx(tx *gorm.DB) Provider {
	return impl{
		msbStore: msbstore.NewInstance(tx),
	}
}

type impl struct {
	msbStore msbstore.Provider
}

func (i impl) snapshot(requestID, excludeBallotID string) (map[string]Remaining, error) {
	first, err := i.msbStore.FirstOfRequest(requestID)
	if err != nil {
		return nil, err
	}
	if first == nil {
		return map[string]Remaining{}, nil
	}
	result := map[string]Remaining{}
	for _, detail := range first.Details {
		result[detail.MaterialID] = Remaining{
			MaterialID: detail.MaterialID,
			Material:   detail.Material,
			Reason:     detail.Reason,
			Approved:   detail.ApprovedQuantity(),
		}
	}
	list, err := i.msbStore.ListByRequest(requestID)
	if err != nil {
		return nil, err
	}
	for _, ballot := range list {
		if ballot.ID == excludeBallotID {
			continue
		}
		for _, detail := range ballot.Details {
			entry, exist := result[detail.MaterialID]
			if !exist {
				// Materials outside the first ballot carry no budget.
				entry = Remaining{
					MaterialID: detail.MaterialID,
					Material:   detail.Material,
					Reason:     detail.Reason,
				}
			}
			entry.Supplied += detail.QuantitySupplies
			result[detail.MaterialID] = entry
		}
	}
	for materialID, entry := range result {
		entry.Remaining = entry.Approved - entry.Supplied
		if entry.Remaining < 0 {
			entry.Remaining = 0
		}
		result[materialID] = entry
	}
	return result, nil
}

func (i impl) Snapshot(requestID string) (map[string]Remaining, error) {
	return i.snapshot(requestID, "")
}

func (i impl) RemainingFor(requestID, materialID string) (float64, error) {
	snapshot, err := i.Snapshot(requestID)
	if err != nil {
		return 0, err
	}
	return snapshot[materialID].Remaining, nil
}

func (i impl) AllSupplied(requestID string) (bool, error) {
	snapshot, err := i.Snapshot(requestID)
	if err != nil {
		return false, err
	}
	if len(snapshot) == 0 {
		return false, nil
	}
	for _, entry := range snapshot {
		if entry.Remaining > 0 {
			return false, nil
		}
	}
	return true, nil
}

func (i impl) CheckSupply(requestID, ballotID string, proposed map[string]float64) error {
	snapshot, err := i.snapshot(requestID, ballotID)
	if err != nil {
		return err
	}
	for materialID, quantity := range proposed {
		if quantity == 0 {
			continue
		}
		entry, exist := snapshot[materialID]
		if !exist {
			return errs.Validation("material %v has no approved budget in this repair request", materialID)
		}
		remaining := entry.Approved - entry.Supplied
		if quantity > remaining {
			return errs.Validation(
				"supplied quantity %.2f for material %v exceeds remaining budget %.2f",
				quantity, materialID, remaining)
		}
	}
	return nil
}
