package qabhandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"equip-repair-backend/db"
	audithandler "equip-repair-backend/lib/audit"
	qabstore "equip-repair-backend/lib/ballots/qab/store"
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

// Provider runs the quality assessment stage: the deputy director
// approves the assessment and may adjust the material lines, the four
// quality roles sign, the final approval computes the scrap quantity and
// spawns the settlement ballot.
type Provider interface {
	GetByID(id string) (*repairapimodels.QualityBallotView, error)
	Approve(id, actorID string, data repairapimodels.QualityItemsData) error
	Sign(id, actorID string) error
	FinalApprove(id, actorID string) error
	Reject(id, actorID string, data repairapimodels.RejectData) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) getLogger(id string) *log.Entry {
	return log.
		WithField("ballot_type", models.BallotTypeQAB).
		WithField("rec_id", id)
}

func (i impl) GetByID(id string) (*repairapimodels.QualityBallotView, error) {
	rec, err := qabstore.NewInstance(db.DB).GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("quality assessment ballot not found")
	}
	view := repairapimodels.QualityBallotConvert(*rec)
	return &view, nil
}

func (i impl) Approve(id, actorID string, data repairapimodels.QualityItemsData) error {
	if err := data.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := qabstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("quality assessment ballot not found")
		}
		if rec.Status != models.AssessmentStatusPending {
			return errs.Conflict("ballot in status %q can not be approved", rec.Status)
		}
		items := make([]dbmodels.QualityAssessmentItem, 0, len(data.Items))
		for _, item := range data.Items {
			items = append(items, dbmodels.QualityAssessmentItem{
				MaterialID: item.MaterialID,
				Quantity:   item.Quantity,
				Quality:    item.Quality,
				Note:       item.Note,
			})
		}
		if err = store.ReplaceItems(id, items); err != nil {
			return err
		}
		err = store.Update(id, map[string]interface{}{
			"status":     models.AssessmentStatusInProgress,
			"conclusion": data.Conclusion,
			"updated_by": actorID,
		})
		if err != nil {
			return err
		}
		workItems := workitemhandler.NewInstanceWithTx(tx)
		if err = workItems.CompleteByRef(actorID, models.BallotTypeQAB, id, models.TaskTypeApproveAdjust); err != nil {
			return err
		}
		for _, role := range rolesign.RolesOf(models.BallotTypeQAB) {
			err = workItems.FanOutToRole(role, workitemhandler.WorkItemData{
				RefType:     models.BallotTypeQAB,
				RefID:       id,
				TaskType:    models.TaskTypeSign,
				Description: models.BallotTypeQAB.ToHuman(),
				CreatedBy:   actorID,
			})
			if err != nil {
				return err
			}
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeQAB, id, actorID, "approve", dbmodels.EntityChanges{
			Description: "Duyệt biên bản đánh giá chất lượng",
		})
		return nil
	})
	if err != nil {
		return err
	}
	i.getLogger(id).WithField("user_id", actorID).Info("quality assessment approved")
	return nil
}

func (i impl) Sign(id, actorID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := qabstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("quality assessment ballot not found")
		}
		if rec.Status != models.AssessmentStatusInProgress {
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
		slot, ok := rolesign.ResolveForSigner(models.BallotTypeQAB, actorID, role, nil)
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
		if err = workitemhandler.NewInstanceWithTx(tx).CompleteByRef(actorID, models.BallotTypeQAB, id, models.TaskTypeSign); err != nil {
			return err
		}
		if err = repairhistoryhandler.NewInstanceWithTx(tx).RecordBallot(rec.EquipmentID, rec.RepairRequestID, models.BallotTypeQAB, id); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeQAB, id, actorID, "sign", dbmodels.EntityChanges{
			Description: "Ký biên bản đánh giá chất lượng",
		})
		return nil
	})
	if err != nil {
		return err
	}
	i.getLogger(id).WithField("user_id", actorID).Info("quality assessment signed")
	return nil
}

// finalApproveGuard checks the ballot state before the final approval is
// applied. A missing signature is a validation failure of the request,
// not a state conflict.
func finalApproveGuard(rec *dbmodels.QualityAssessmentBallot) error {
	if rec == nil {
		return errs.NotFound("quality assessment ballot not found")
	}
	if rec.Status != models.AssessmentStatusInProgress {
		return errs.Conflict("ballot in status %q can not be finally approved", rec.Status)
	}
	if !rec.IsFullySigned() {
		return errs.Validation("all four signatures are required before the final approval")
	}
	return nil
}

func (i impl) FinalApprove(id, actorID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := qabstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if err = finalApproveGuard(rec); err != nil {
			return err
		}
		err = store.Update(id, map[string]interface{}{
			"status":      models.AssessmentStatusApproved,
			"approved_by": actorID,
			"updated_by":  actorID,
		})
		if err != nil {
			return err
		}
		if err = workitemhandler.NewInstanceWithTx(tx).DeleteForRef(models.BallotTypeQAB, id, nil); err != nil {
			return err
		}
		rec, err = store.GetByID(id)
		if err != nil {
			return err
		}
		if err = cascade.NewInstanceWithTx(tx).OnQualityFinalApproved(rec, actorID); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeQAB, id, actorID, "final_approve", dbmodels.EntityChanges{
			Description: "Phê duyệt biên bản đánh giá chất lượng",
		})
		return nil
	})
	if err != nil {
		return err
	}
	i.getLogger(id).WithField("user_id", actorID).Info("quality assessment finally approved")
	return nil
}

func (i impl) Reject(id, actorID string, data repairapimodels.RejectData) error {
	if err := data.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		store := qabstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("quality assessment ballot not found")
		}
		if rec.Status.IsTerminal() {
			return errs.Conflict("ballot in status %q can not be rejected", rec.Status)
		}
		err = store.Update(id, map[string]interface{}{
			"status":        models.AssessmentStatusRejected,
			"reject_reason": data.Reason,
			"updated_by":    actorID,
		})
		if err != nil {
			return err
		}
		if err = workitemhandler.NewInstanceWithTx(tx).DeleteForRef(models.BallotTypeQAB, id, nil); err != nil {
			return err
		}
		reopenUser := rec.UpdatedBy
		if rec.ApprovedBy != nil {
			reopenUser = *rec.ApprovedBy
		}
		err = cascade.NewInstanceWithTx(tx).OnRejected(models.BallotTypeQAB, rec.EquipmentID, rec.RepairRequestID, id, reopenUser, actorID)
		if err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeQAB, id, actorID, "reject", dbmodels.EntityChanges{
			Description: "Từ chối biên bản đánh giá chất lượng",
		})
		return nil
	})
}
