package dabhandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"equip-repair-backend/db"
	audithandler "equip-repair-backend/lib/audit"
	dabstore "equip-repair-backend/lib/ballots/dab/store"
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
	GetByID(id string) (*repairapimodels.AppraisalBallotView, error)
	Sign(id, actorID string) error
	// UpdateItems replaces the material lines while the ballot still
	// collects signatures.
	UpdateItems(id, actorID string, data repairapimodels.AppraisalItemsData) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) GetByID(id string) (*repairapimodels.AppraisalBallotView, error) {
	rec, err := dabstore.NewInstance(db.DB).GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("detail appraisal ballot not found")
	}
	view := repairapimodels.DetailAppraisalConvert(*rec)
	return &view, nil
}

func (i impl) Sign(id, actorID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := dabstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("detail appraisal ballot not found")
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
		slot, ok := rolesign.ResolveForSigner(models.BallotTypeDAB, actorID, role, nominatedManagerID)
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
		if err = workItems.CompleteByRef(actorID, models.BallotTypeDAB, id, models.TaskTypeSign); err != nil {
			return err
		}
		if err = repairhistoryhandler.NewInstanceWithTx(tx).RecordBallot(rec.EquipmentID, rec.RepairRequestID, models.BallotTypeDAB, id); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeDAB, id, actorID, "sign", dbmodels.EntityChanges{
			Description: "Ký biên bản giám định chi tiết",
		})
		if !rec.IsFullySigned() {
			return nil
		}
		if err = workItems.DeleteForRef(models.BallotTypeDAB, id, nil); err != nil {
			return err
		}
		return cascade.NewInstanceWithTx(tx).OnAppraisalCompleted(rec.EquipmentID, rec.RepairRequestID, actorID)
	})
	if err != nil {
		return err
	}
	log.
		WithField("ballot_type", models.BallotTypeDAB).
		WithField("rec_id", id).
		WithField("user_id", actorID).
		Info("detail appraisal ballot signed")
	return nil
}

func (i impl) UpdateItems(id, actorID string, data repairapimodels.AppraisalItemsData) error {
	if err := data.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		store := dabstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("detail appraisal ballot not found")
		}
		if rec.Status != models.AppraisalStatusPending {
			return errs.Conflict("line items are frozen in status %q", rec.Status)
		}
		items := make([]dbmodels.DetailAppraisalItem, 0, len(data.Items))
		for _, item := range data.Items {
			items = append(items, dbmodels.DetailAppraisalItem{
				MaterialID:       item.MaterialID,
				Quantity:         item.Quantity,
				TechnicalStatus:  models.TechnicalStatus(item.TechnicalStatus),
				TreatmentMeasure: models.TreatmentMeasure(item.TreatmentMeasure),
				Note:             item.Note,
			})
		}
		if err = store.ReplaceItems(id, items); err != nil {
			return err
		}
		if err = store.Update(id, map[string]interface{}{"updated_by": actorID}); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeDAB, id, actorID, "update_items", dbmodels.EntityChanges{
			Description: "Cập nhật hạng mục giám định",
		})
		return nil
	})
}
