package msbhandler

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"equip-repair-backend/db"
	audithandler "equip-repair-backend/lib/audit"
	msbstore "equip-repair-backend/lib/ballots/msb/store"
	"equip-repair-backend/lib/cascade"
	equipmentstore "equip-repair-backend/lib/dicts/equipment/store"
	materialstore "equip-repair-backend/lib/dicts/material/store"
	"equip-repair-backend/lib/ledger"
	repairrequeststore "equip-repair-backend/lib/repair-request/store"
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
	Create(actorID string, data repairapimodels.SupplyBallotCreateData) (id string, err error)
	// Prepare reports the open repair request of the equipment and the
	// remaining quantities, the client shows them before a follow-up
	// supply ballot is created.
	Prepare(equipmentID string) (*repairapimodels.PrepareSupplyView, error)
	GetByID(id string) (*repairapimodels.SupplyBallotView, error)
	List(filter repairapimodels.SupplyBallotFilter) (list []repairapimodels.SupplyBallotView, rowCount int64, err error)
	UpdateItems(id, actorID string, details []repairapimodels.SupplyDetailData) error
	// Approve moves a pending ballot to in_progress, fixes the approved
	// quantities and opens the repair request when none is open yet.
	Approve(id, actorID string, data repairapimodels.SupplyAdjustData) error
	Reject(id, actorID string, data repairapimodels.RejectData) error
	// Sign collects one of the three plain signatures. The warehouse
	// lead signs through SignAndAdjustSupplies instead.
	Sign(id, actorID string) error
	// SignAndAdjustSupplies is the warehouse lead signature combined
	// with the supplied quantities, validated against the remaining
	// budget of the request.
	SignAndAdjustSupplies(id, actorID string, data repairapimodels.SupplyAdjustData) error
	Delete(id, actorID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) getLogger(id string) *log.Entry {
	return log.
		WithField("ballot_type", models.BallotTypeMSB).
		WithField("rec_id", id)
}

func (i impl) Create(actorID string, data repairapimodels.SupplyBallotCreateData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", errs.Validation("%v", err)
	}
	var id string
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		equipment, err := equipmentstore.NewInstance(tx).GetByID(data.EquipmentID)
		if err != nil {
			return err
		}
		if equipment == nil {
			return errs.NotFound("equipment not found")
		}
		materials := materialstore.NewInstance(tx)
		details := make([]dbmodels.MaterialSupplyDetail, 0, len(data.Details))
		for _, line := range data.Details {
			material, err := materials.GetByID(line.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return errs.NotFound("material %v not found", line.MaterialID)
			}
			details = append(details, dbmodels.MaterialSupplyDetail{
				MaterialID:      line.MaterialID,
				QuantityRequest: line.QuantityRequest,
				Reason:          models.SupplyReason(line.Reason),
			})
		}
		status := models.SupplyStatusPending
		if data.AsDraft {
			status = models.SupplyStatusDraft
		}
		rec := dbmodels.MaterialSupplyBallot{
			EquipmentID: data.EquipmentID,
			Status:      status,
			Reason:      data.Reason,
			CreatedBy:   actorID,
			UpdatedBy:   actorID,
			Details:     details,
		}
		if data.EquipmentManagerUserID != "" {
			rec.EquipmentManagerUserID = &data.EquipmentManagerUserID
		}
		id, err = msbstore.NewInstance(tx).Create(rec)
		if err != nil {
			return err
		}
		if status == models.SupplyStatusPending {
			err = workitemhandler.NewInstanceWithTx(tx).FanOutToRole(models.RoleDeputyDirector, workitemhandler.WorkItemData{
				RefType:     models.BallotTypeMSB,
				RefID:       id,
				TaskType:    models.TaskTypeApproveAdjust,
				Description: models.BallotTypeMSB.ToHuman(),
				CreatedBy:   actorID,
			})
			if err != nil {
				return err
			}
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeMSB, id, actorID, "create", dbmodels.EntityChanges{
			Description: "Tạo phiếu cấp vật tư",
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	i.getLogger(id).Info("supply ballot created")
	return id, nil
}

func (i impl) Prepare(equipmentID string) (*repairapimodels.PrepareSupplyView, error) {
	view := repairapimodels.PrepareSupplyView{EquipmentID: equipmentID}
	request, err := repairrequeststore.NewInstance(db.DB).FindPendingByEquipment(equipmentID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return &view, nil
	}
	view.HasOpenRequest = true
	view.RepairRequestID = request.ID
	snapshot, err := ledger.Instance.Snapshot(request.ID)
	if err != nil {
		return nil, err
	}
	for _, remaining := range snapshot {
		item := repairapimodels.RemainingItemView{
			MaterialID:       remaining.MaterialID,
			QuantityApproved: remaining.Approved,
			QuantitySupplied: remaining.Supplied,
			Remaining:        remaining.Remaining,
			Reason:           string(remaining.Reason),
		}
		if remaining.Material != nil {
			item.MaterialCode = remaining.Material.Code
			item.MaterialName = remaining.Material.Name
		}
		view.RemainingItems = append(view.RemainingItems, item)
	}
	return &view, nil
}

func (i impl) GetByID(id string) (*repairapimodels.SupplyBallotView, error) {
	rec, err := msbstore.NewInstance(db.DB).GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("supply ballot not found")
	}
	view := repairapimodels.SupplyBallotConvert(*rec)
	return &view, nil
}

func (i impl) List(filter repairapimodels.SupplyBallotFilter) ([]repairapimodels.SupplyBallotView, int64, error) {
	list, rowCount, err := msbstore.NewInstance(db.DB).List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]repairapimodels.SupplyBallotView, 0, len(list))
	for _, rec := range list {
		result = append(result, repairapimodels.SupplyBallotConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) UpdateItems(id, actorID string, details []repairapimodels.SupplyDetailData) error {
	if len(details) == 0 {
		return errs.Validation("at least one material line is required")
	}
	for _, line := range details {
		if err := line.Validate(); err != nil {
			return errs.Validation("%v", err)
		}
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		store := msbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("supply ballot not found")
		}
		if rec.Status != models.SupplyStatusDraft && rec.Status != models.SupplyStatusPending {
			return errs.Conflict("material lines are frozen in status %q", rec.Status)
		}
		newDetails := make([]dbmodels.MaterialSupplyDetail, 0, len(details))
		for _, line := range details {
			newDetails = append(newDetails, dbmodels.MaterialSupplyDetail{
				MaterialID:      line.MaterialID,
				QuantityRequest: line.QuantityRequest,
				Reason:          models.SupplyReason(line.Reason),
			})
		}
		if err = store.ReplaceDetails(id, newDetails); err != nil {
			return err
		}
		if err = store.Update(id, map[string]interface{}{"updated_by": actorID}); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeMSB, id, actorID, "update_items", dbmodels.EntityChanges{
			Description: "Cập nhật danh sách vật tư",
		})
		return nil
	})
}

func (i impl) Approve(id, actorID string, data repairapimodels.SupplyAdjustData) error {
	if err := data.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := msbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("supply ballot not found")
		}
		if rec.Status != models.SupplyStatusPending {
			return errs.Conflict("ballot in status %q can not be approved", rec.Status)
		}
		for _, item := range data.Items {
			if item.QuantityApprove <= 0 {
				continue
			}
			err = store.UpdateDetail(item.DetailID, map[string]interface{}{
				"quantity_approve": item.QuantityApprove,
			})
			if err != nil {
				return err
			}
		}

		engine := cascade.NewInstanceWithTx(tx)
		requestID, err := engine.EnsureRepairRequest(rec.EquipmentID, actorID)
		if err != nil {
			return err
		}
		now := time.Now()
		err = store.Update(id, map[string]interface{}{
			"status":            models.SupplyStatusInProgress,
			"repair_request_id": requestID,
			"started_at":        &now,
			"approved_by":       actorID,
			"updated_by":        actorID,
		})
		if err != nil {
			return err
		}
		if err = repairhistoryhandler.NewInstanceWithTx(tx).RecordBallot(rec.EquipmentID, &requestID, models.BallotTypeMSB, id); err != nil {
			return err
		}
		workItems := workitemhandler.NewInstanceWithTx(tx)
		if err = workItems.CompleteByRef(actorID, models.BallotTypeMSB, id, models.TaskTypeApproveAdjust); err != nil {
			return err
		}
		rec, err = store.GetByID(id)
		if err != nil {
			return err
		}
		if err = engine.OnSupplyApproved(rec, actorID); err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeMSB, id, actorID, "approve", dbmodels.EntityChanges{
			Description: "Duyệt phiếu cấp vật tư",
		})
		return nil
	})
	if err != nil {
		return err
	}
	i.getLogger(id).Info("supply ballot approved")
	return nil
}

func (i impl) Reject(id, actorID string, data repairapimodels.RejectData) error {
	if err := data.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		store := msbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("supply ballot not found")
		}
		if rec.Status.IsTerminal() {
			return errs.Conflict("ballot in status %q can not be rejected", rec.Status)
		}
		err = store.Update(id, map[string]interface{}{
			"status":        models.SupplyStatusRejected,
			"reject_reason": data.Reason,
			"updated_by":    actorID,
		})
		if err != nil {
			return err
		}
		if err = workitemhandler.NewInstanceWithTx(tx).DeleteForRef(models.BallotTypeMSB, id, nil); err != nil {
			return err
		}
		reopenUser := rec.CreatedBy
		if reopenUser == "" {
			reopenUser = rec.UpdatedBy
		}
		err = cascade.NewInstanceWithTx(tx).OnRejected(models.BallotTypeMSB, rec.EquipmentID, rec.RepairRequestID, id, reopenUser, actorID)
		if err != nil {
			return err
		}
		audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeMSB, id, actorID, "reject", dbmodels.EntityChanges{
			Description: "Từ chối phiếu cấp vật tư",
			Data: []dbmodels.FieldChanges{
				{Field: "reject_reason", NewValue: data.Reason},
			},
		})
		return nil
	})
}

// resolveSlot loads the actor and maps their position to a signer slot.
func resolveSlot(tx *gorm.DB, rec *dbmodels.MaterialSupplyBallot, actorID string) (models.SignerSlot, error) {
	user, err := usersstore.NewInstance(tx).GetByID(actorID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errs.NotFound("user not found")
	}
	role, ok := user.Role()
	if !ok {
		return "", errs.PermissionDenied("position has no signing role")
	}
	slot, ok := rolesign.ResolveForSigner(models.BallotTypeMSB, actorID, role, rec.EquipmentManagerUserID)
	if !ok {
		return "", errs.PermissionDenied("role %q has no signature field on this ballot", role)
	}
	return slot, nil
}

func (i impl) Sign(id, actorID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := msbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("supply ballot not found")
		}
		if rec.Status != models.SupplyStatusInProgress {
			return errs.Conflict("ballot in status %q can not be signed", rec.Status)
		}
		slot, err := resolveSlot(tx, rec, actorID)
		if err != nil {
			return err
		}
		if slot == models.SlotLeadWarehouse {
			return errs.Validation("warehouse lead signs with supplied quantities")
		}
		return i.applySignature(tx, store, rec, slot, actorID)
	})
	if err != nil {
		return err
	}
	i.getLogger(id).WithField("user_id", actorID).Info("supply ballot signed")
	return nil
}

func (i impl) SignAndAdjustSupplies(id, actorID string, data repairapimodels.SupplyAdjustData) error {
	if err := data.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := msbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("supply ballot not found")
		}
		if rec.Status != models.SupplyStatusInProgress {
			return errs.Conflict("ballot in status %q can not be signed", rec.Status)
		}
		slot, err := resolveSlot(tx, rec, actorID)
		if err != nil {
			return err
		}
		if slot != models.SlotLeadWarehouse {
			return errs.PermissionDenied("only the warehouse lead adjusts supplied quantities")
		}

		detailByID := map[string]dbmodels.MaterialSupplyDetail{}
		for _, detail := range rec.Details {
			detailByID[detail.ID] = detail
		}
		proposed := map[string]float64{}
		for _, item := range data.Items {
			detail, exist := detailByID[item.DetailID]
			if !exist {
				return errs.NotFound("material line %v not found", item.DetailID)
			}
			proposed[detail.MaterialID] += item.QuantitySupplies
		}
		if rec.RepairRequestID != nil {
			if err = ledger.NewInstanceWithTx(tx).CheckSupply(*rec.RepairRequestID, id, proposed); err != nil {
				return err
			}
		}
		for _, item := range data.Items {
			err = store.UpdateDetail(item.DetailID, map[string]interface{}{
				"quantity_supplies": item.QuantitySupplies,
			})
			if err != nil {
				return err
			}
		}
		if err = i.applySignature(tx, store, rec, slot, actorID); err != nil {
			return err
		}
		rec, err = store.GetByID(id)
		if err != nil {
			return err
		}
		return cascade.NewInstanceWithTx(tx).OnSupplyLeadSigned(rec, actorID)
	})
	if err != nil {
		return err
	}
	i.getLogger(id).WithField("user_id", actorID).Info("supply ballot signed with supplied quantities")
	return nil
}

// applySignature writes the signer field, completes the actor's work
// item and, on the last signature, closes the ballot and notifies the
// cascade engine.
func (i impl) applySignature(tx *gorm.DB, store msbstore.Provider, rec *dbmodels.MaterialSupplyBallot, slot models.SignerSlot, actorID string) error {
	if err := rec.SetSigner(slot, actorID); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		string(slot) + "_id": actorID,
		"updated_by":         actorID,
	}
	if rec.IsFullySigned() {
		updMap["status"] = models.SupplyStatusDone
	}
	if err := store.Update(rec.ID, updMap); err != nil {
		return err
	}
	if rec.RepairRequestID != nil {
		err := repairhistoryhandler.NewInstanceWithTx(tx).RecordBallot(rec.EquipmentID, rec.RepairRequestID, models.BallotTypeMSB, rec.ID)
		if err != nil {
			return err
		}
	}
	workItems := workitemhandler.NewInstanceWithTx(tx)
	if err := workItems.CompleteByRef(actorID, models.BallotTypeMSB, rec.ID, models.TaskTypeSign); err != nil {
		return err
	}
	audithandler.NewInstanceWithTx(tx).Record(models.BallotTypeMSB, rec.ID, actorID, "sign", dbmodels.EntityChanges{
		Description: "Ký phiếu cấp vật tư",
		Data: []dbmodels.FieldChanges{
			{Field: string(slot), NewValue: actorID},
		},
	})
	if !rec.IsFullySigned() {
		return nil
	}
	if err := workItems.DeleteForRef(models.BallotTypeMSB, rec.ID, nil); err != nil {
		return err
	}
	return cascade.NewInstanceWithTx(tx).OnSupplyCompleted(rec, actorID)
}

func (i impl) Delete(id, actorID string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		store := msbstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errs.NotFound("supply ballot not found")
		}
		if rec.Status != models.SupplyStatusDraft {
			return errs.Conflict("only draft ballots can be deleted")
		}
		if err = workitemhandler.NewInstanceWithTx(tx).DeleteForRef(models.BallotTypeMSB, id, nil); err != nil {
			return err
		}
		return store.Delete(id)
	})
}
