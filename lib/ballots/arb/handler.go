package arbhandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"equip-repair-backend/db"
	audithandler "equip-repair-backend/lib/audit"
	arbstore "equip-repair-backend/lib/ballots/arb/store"
	msbstore "equip-repair-backend/lib/ballots/msb/store"
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
	GetByID(id string) (*repairapimodels.AcceptanceBallotView, error)
	Sign(id, actorID string, data repairapimodels.AcceptanceSignData) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) GetByID(id string) (*repairapimodels.AcceptanceBallotView, error) {
	rec, err := arbstore.NewInstance(db.DB).GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("acceptance ballot not found")
	}
	view := repairapimodels.AcceptanceBallotConvert(*rec)
	return &view, nil
}

func (i impl) Sign(id, actorID string, data repairapimodels.AcceptanceSignData) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := arbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("acceptance ballot not found")
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
		slot, ok := rolesign.ResolveForSigner(models.BallotTypeARB, actorID, role, nominatedManagerID)
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
		if data.Conclusion != "" {
			updMap["conclusion"] = data.Conclusion
		}
		if data.TestRunNote != "" {
			updMap["test_run_notes"] = append(rec.TestRunNotes, data.TestRunNote)
		}
		if rec.IsFullySigned() {
			updMap["status"] = models.AppraisalStatusDone
		}
		if err = store.Update(id, updMap); err != nil {
			return err
		}
		workItems := workitemhandler.NewInstanceWithTx(tx)
		if err = workItems.CompleteByRef(actorID, models.BallotTypeARB, id, models.TaskTypeSign); err != nil {
			return err
		}
		if err = repairhistoryhandler.NewInstanceWithTx(tx).RecordBallot(rec.EquipmentID, rec.RepairRequestID, models.BallotTypeARB, id); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeARB, id, actorID, "sign", dbmodels.EntityChanges{
			Description: "Ký biên bản nghiệm thu",
		})
		if !rec.IsFullySigned() {
			return nil
		}
		if err = workItems.DeleteForRef(models.BallotTypeARB, id, nil); err != nil {
			return err
		}
		rec, err = store.GetByID(id)
		if err != nil {
			return err
		}
		return cascade.NewInstanceWithTx(tx).OnAcceptanceCompleted(rec, actorID)
	})
	if err != nil {
		return err
	}
	log.
		WithField("ballot_type", models.BallotTypeARB).
		WithField("rec_id", id).
		WithField("user_id", actorID).
		Info("acceptance ballot signed")
	return nil
}
