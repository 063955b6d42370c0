package asbhandler

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"equip-repair-backend/db"
	audithandler "equip-repair-backend/lib/audit"
	asbstore "equip-repair-backend/lib/ballots/asb/store"
	"equip-repair-backend/lib/cascade"
	usersstore "equip-repair-backend/lib/users/store"
	"equip-repair-backend/lib/utils/errs"
	workitemhandler "equip-repair-backend/lib/workitem"
	"equip-repair-backend/models"
	repairapimodels "equip-repair-backend/models/api/repair"
	dbmodels "equip-repair-backend/models/db"
)

// Provider drives the assignment ballot through its delegation chain:
// the assigner signs, nominates a deputy and a lead, each confirms the
// job, then the final approval dispatches the repair work.
type Provider interface {
	GetByID(id string) (*repairapimodels.AssignmentBallotView, error)
	Sign(id, actorID string) error
	Delegate(id, actorID string, data repairapimodels.DelegateData) error
	ApproveJob(id, actorID string) error
	ApproveJobByLead(id, actorID string) error
	Approve(id, actorID string) error
	Reject(id, actorID string, data repairapimodels.RejectData) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) getLogger(id string) *log.Entry {
	return log.
		WithField("ballot_type", models.BallotTypeASB).
		WithField("rec_id", id)
}

func (i impl) GetByID(id string) (*repairapimodels.AssignmentBallotView, error) {
	rec, err := asbstore.NewInstance(db.DB).GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("assignment ballot not found")
	}
	view := repairapimodels.AssignmentBallotConvert(*rec)
	return &view, nil
}

func (i impl) Sign(id, actorID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := asbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("assignment ballot not found")
		}
		if rec.Status.IsTerminal() {
			return errs.Conflict("ballot in status %q can not be signed", rec.Status)
		}
		if rec.AssignByID != nil {
			return errs.PermissionDenied("field %q is already signed", models.SlotAssignBy)
		}
		err = store.Update(id, map[string]interface{}{
			"assign_by_id": actorID,
			"status":       models.AssignStatusInProgress,
			"updated_by":   actorID,
		})
		if err != nil {
			return err
		}
		if err = workitemhandler.NewInstanceWithTx(tx).CompleteByRef(actorID, models.BallotTypeASB, id, models.TaskTypeSign); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeASB, id, actorID, "sign", dbmodels.EntityChanges{
			Description: "Ký phiếu giao việc",
		})
		return nil
	})
	if err != nil {
		return err
	}
	i.getLogger(id).WithField("user_id", actorID).Info("assignment ballot signed")
	return nil
}

func (i impl) Delegate(id, actorID string, data repairapimodels.DelegateData) error {
	if err := data.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := asbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("assignment ballot not found")
		}
		if rec.Status.IsTerminal() {
			return errs.Conflict("ballot in status %q can not be delegated", rec.Status)
		}
		if rec.AssignByID == nil {
			return errs.Conflict("the assigner has to sign before delegating")
		}
		if *rec.AssignByID != actorID {
			return errs.PermissionDenied("only the assigner delegates the job")
		}
		users := usersstore.NewInstance(tx)
		for _, userID := range []string{data.DeputyUserID, data.LeadUserID} {
			user, err := users.GetByID(userID)
			if err != nil {
				return err
			}
			if user == nil {
				return errs.NotFound("user %v not found", userID)
			}
		}
		err = store.Update(id, map[string]interface{}{
			"delegated_to_id": data.DeputyUserID,
			"lead_id":         data.LeadUserID,
			"content":         data.Content,
			"updated_by":      actorID,
		})
		if err != nil {
			return err
		}
		workItems := workitemhandler.NewInstanceWithTx(tx)
		for _, userID := range []string{data.DeputyUserID, data.LeadUserID} {
			_, err = workItems.Create(workitemhandler.WorkItemData{
				UserID:      userID,
				RefType:     models.BallotTypeASB,
				RefID:       id,
				TaskType:    models.TaskTypeDelegate,
				Description: models.BallotTypeASB.ToHuman(),
				CreatedBy:   actorID,
			})
			if err != nil {
				return err
			}
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeASB, id, actorID, "delegate", dbmodels.EntityChanges{
			Description: "Giao việc sửa chữa",
			Data: []dbmodels.FieldChanges{
				{Field: "delegated_to_id", NewValue: data.DeputyUserID},
				{Field: "lead_id", NewValue: data.LeadUserID},
			},
		})
		return nil
	})
	if err != nil {
		return err
	}
	i.getLogger(id).WithField("user_id", actorID).Info("assignment ballot delegated")
	return nil
}

func (i impl) ApproveJob(id, actorID string) error {
	return i.confirmJob(id, actorID, false)
}

func (i impl) ApproveJobByLead(id, actorID string) error {
	return i.confirmJob(id, actorID, true)
}

func (i impl) confirmJob(id, actorID string, asLead bool) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := asbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("assignment ballot not found")
		}
		if rec.Status.IsTerminal() {
			return errs.Conflict("ballot in status %q can not be confirmed", rec.Status)
		}
		now := time.Now()
		updMap := map[string]interface{}{"updated_by": actorID}
		if asLead {
			if rec.LeadID == nil || *rec.LeadID != actorID {
				return errs.PermissionDenied("only the nominated lead confirms this job")
			}
			if rec.LeadApprovedAt != nil {
				return errs.Conflict("the lead already confirmed the job")
			}
			updMap["lead_approved_at"] = &now
		} else {
			if rec.DelegatedToID == nil || *rec.DelegatedToID != actorID {
				return errs.PermissionDenied("only the nominated deputy confirms this job")
			}
			if rec.DeputyApprovedAt != nil {
				return errs.Conflict("the deputy already confirmed the job")
			}
			updMap["deputy_approved_at"] = &now
		}
		if err = store.Update(id, updMap); err != nil {
			return err
		}
		if err = workitemhandler.NewInstanceWithTx(tx).CompleteByRef(actorID, models.BallotTypeASB, id, models.TaskTypeDelegate); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeASB, id, actorID, "confirm_job", dbmodels.EntityChanges{
			Description: "Xác nhận nhiệm vụ sửa chữa",
		})
		return nil
	})
	if err != nil {
		return err
	}
	i.getLogger(id).WithField("user_id", actorID).Info("assignment job confirmed")
	return nil
}

func (i impl) Approve(id, actorID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := asbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("assignment ballot not found")
		}
		if rec.Status.IsTerminal() {
			return errs.Conflict("ballot in status %q can not be approved", rec.Status)
		}
		if !rec.ChainComplete() {
			return errs.Conflict("the delegation chain is not complete yet")
		}
		err = store.Update(id, map[string]interface{}{
			"status":      models.AssignStatusDone,
			"approved_by": actorID,
			"updated_by":  actorID,
		})
		if err != nil {
			return err
		}
		workItems := workitemhandler.NewInstanceWithTx(tx)
		if err = workItems.CompleteByRef(actorID, models.BallotTypeASB, id, models.TaskTypeSign); err != nil {
			return err
		}
		if err = workItems.DeleteForRef(models.BallotTypeASB, id, nil); err != nil {
			return err
		}
		rec, err = store.GetByID(id)
		if err != nil {
			return err
		}
		if err = cascade.NewInstanceWithTx(tx).OnAssignmentDone(rec, actorID); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeASB, id, actorID, "approve", dbmodels.EntityChanges{
			Description: "Phê duyệt phiếu giao việc",
		})
		return nil
	})
	if err != nil {
		return err
	}
	i.getLogger(id).WithField("user_id", actorID).Info("assignment ballot approved")
	return nil
}

func (i impl) Reject(id, actorID string, data repairapimodels.RejectData) error {
	if err := data.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		store := asbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("assignment ballot not found")
		}
		if rec.Status.IsTerminal() {
			return errs.Conflict("ballot in status %q can not be rejected", rec.Status)
		}
		err = store.Update(id, map[string]interface{}{
			"status":        models.AssignStatusRejected,
			"reject_reason": data.Reason,
			"updated_by":    actorID,
		})
		if err != nil {
			return err
		}
		if err = workitemhandler.NewInstanceWithTx(tx).DeleteForRef(models.BallotTypeASB, id, nil); err != nil {
			return err
		}
		reopenUser := rec.UpdatedBy
		if rec.ApprovedBy != nil {
			reopenUser = *rec.ApprovedBy
		}
		err = cascade.NewInstanceWithTx(tx).OnRejected(models.BallotTypeASB, rec.EquipmentID, rec.RepairRequestID, id, reopenUser, actorID)
		if err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeASB, id, actorID, "reject", dbmodels.EntityChanges{
			Description: "Từ chối phiếu giao việc",
		})
		return nil
	})
}
