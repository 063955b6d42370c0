package tabhandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"equip-repair-backend/db"
	audithandler "equip-repair-backend/lib/audit"
	msbstore "equip-repair-backend/lib/ballots/msb/store"
	tabstore "equip-repair-backend/lib/ballots/tab/store"
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
	GetByID(id string) (*repairapimodels.AppraisalBallotView, error)
	Sign(id, actorID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) GetByID(id string) (*repairapimodels.AppraisalBallotView, error) {
	rec, err := tabstore.NewInstance(db.DB).GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("technical appraisal ballot not found")
	}
	view := repairapimodels.TechnicalAppraisalConvert(*rec)
	return &view, nil
}

func (i impl) Sign(id, actorID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := tabstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("technical appraisal ballot not found")
		}
		if rec.Status != models.AppraisalStatusPending {
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

		// The manager nominated on the first supply ballot may take the
		// equipment_manager field regardless of their own position.
		var nominatedManagerID *string
		if rec.RepairRequestID != nil {
			first, err := msbstore.NewInstance(tx).FirstOfRequest(*rec.RepairRequestID)
			if err != nil {
				return err
			}
			if first != nil {
				nominatedManagerID = first.EquipmentManagerUserID
			}
		}
		slot, ok := rolesign.ResolveForSigner(models.BallotTypeTAB, actorID, role, nominatedManagerID)
		if !ok {
			return errs.PermissionDenied("role %q has no signature field on this ballot", role)
		}
		if err = rec.SetSigner(slot, actorID); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			string(slot) + "_id": actorID,
			"updated_by":         actorID,
		}
		if rec.IsFullySigned() {
			updMap["status"] = models.AppraisalStatusDone
		}
		if err = store.Update(id, updMap); err != nil {
			return err
		}
		workItems := workitemhandler.NewInstanceWithTx(tx)
		if err = workItems.CompleteByRef(actorID, models.BallotTypeTAB, id, models.TaskTypeSign); err != nil {
			return err
		}
		if err = repairhistoryhandler.NewInstanceWithTx(tx).RecordBallot(rec.EquipmentID, rec.RepairRequestID, models.BallotTypeTAB, id); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeTAB, id, actorID, "sign", dbmodels.EntityChanges{
			Description: "Ký biên bản giám định kỹ thuật",
		})
		if !rec.IsFullySigned() {
			return nil
		}
		if err = workItems.DeleteForRef(models.BallotTypeTAB, id, nil); err != nil {
			return err
		}
		return cascade.NewInstanceWithTx(tx).OnAppraisalCompleted(rec.EquipmentID, rec.RepairRequestID, actorID)
	})
	if err != nil {
		return err
	}
	log.
		WithField("ballot_type", models.BallotTypeTAB).
		WithField("rec_id", id).
		WithField("user_id", actorID).
		Info("technical appraisal ballot signed")
	return nil
}
