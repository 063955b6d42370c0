package srbhandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"equip-repair-backend/db"
	audithandler "equip-repair-backend/lib/audit"
	srbstore "equip-repair-backend/lib/ballots/srb/store"
	"equip-repair-backend/lib/cascade"
	repairhistoryhandler "equip-repair-backend/lib/repairhistory"
	"equip-repair-backend/lib/rolesign"
	usersstore "equip-repair-backend/lib/users/store"
	"equip-repair-backend/lib/utils/errs"
	workitemhandler "equip-repair-backend/lib/workitem"
	"equip-repair-backend/models"
	repairapimodels "equip-repair-backend/models/api/repair"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	GetByID(id string) (*repairapimodels.SettlementBallotView, error)
	// Sign collects one settlement signature. The fourth one closes the
	// whole repair request.
	Sign(id, actorID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) GetByID(id string) (*repairapimodels.SettlementBallotView, error) {
	rec, err := srbstore.NewInstance(db.DB).GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("settlement ballot not found")
	}
	view := repairapimodels.SettlementBallotConvert(*rec)
	return &view, nil
}

func (i impl) Sign(id, actorID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := srbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("settlement ballot not found")
		}
		if rec.Status.IsTerminal() {
			return errs.Conflict("ballot in status %q can not be signed", rec.Status)
		}
		user, err := usersstore.NewInstance(tx).GetByID(actorID)
		if err != nil {
			return err
		}
		if user == nil {
			return errs.NotFound("user not found")
		}
		role, ok := user.Role()
		if !ok {
			return errs.PermissionDenied("position has no signing role")
		}
		slot, ok := rolesign.ResolveForSigner(models.BallotTypeSRB, actorID, role, nil)
		if !ok {
			return errs.PermissionDenied("role %q has no signature field on this ballot", role)
		}
		if err = rec.SetSigner(slot, actorID); err != nil {
			return err
		}
		err = store.Update(id, map[string]interface{}{
			string(slot) + "_id": actorID,
			"updated_by":         actorID,
		})
		if err != nil {
			return err
		}
		workItems := workitemhandler.NewInstanceWithTx(tx)
		if err = workItems.CompleteByRef(actorID, models.BallotTypeSRB, id, models.TaskTypeSign); err != nil {
			return err
		}
		if err = repairhistoryhandler.NewInstanceWithTx(tx).RecordBallot(rec.EquipmentID, rec.RepairRequestID, models.BallotTypeSRB, id); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeSRB, id, actorID, "sign", dbmodels.EntityChanges{
			Description: "Ký biên bản quyết toán sửa chữa",
		})
		if !rec.IsFullySigned() {
			// The next signer in line gets a task when none is pending.
			return workItems.FanOutToRole(nextSignerRole(rec), workitemhandler.WorkItemData{
				RefType:     models.BallotTypeSRB,
				RefID:       id,
				TaskType:    models.TaskTypeSign,
				Description: models.BallotTypeSRB.ToHuman(),
				CreatedBy:   actorID,
			})
		}
		if err = workItems.DeleteForRef(models.BallotTypeSRB, id, nil); err != nil {
			return err
		}
		return cascade.NewInstanceWithTx(tx).OnSettlementSigned(rec, actorID)
	})
	if err != nil {
		return err
	}
	log.
		WithField("ballot_type", models.BallotTypeSRB).
		WithField("rec_id", id).
		WithField("user_id", actorID).
		Info("settlement ballot signed")
	return nil
}

// nextSignerRole returns the role owning the first still-empty
// signature field.
func nextSignerRole(rec *dbmodels.SettlementRepairBallot) models.PositionRole {
	switch {
	case rec.DeputyForemanID == nil:
		return models.RoleDeputyForeman
	case rec.ForemanID == nil:
		return models.RoleForeman
	case rec.AccountantID == nil:
		return models.RoleAccountant
	}
	return models.RoleDeputyDirector
}
