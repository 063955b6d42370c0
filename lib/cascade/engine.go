package cascade

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	arbstore "equip-repair-backend/lib/ballots/arb/store"
	asbstore "equip-repair-backend/lib/ballots/asb/store"
	dabstore "equip-repair-backend/lib/ballots/dab/store"
	msbstore "equip-repair-backend/lib/ballots/msb/store"
	qabstore "equip-repair-backend/lib/ballots/qab/store"
	srbstore "equip-repair-backend/lib/ballots/srb/store"
	tabstore "equip-repair-backend/lib/ballots/tab/store"
	equipmentstore "equip-repair-backend/lib/dicts/equipment/store"
	materialstore "equip-repair-backend/lib/dicts/material/store"
	"equip-repair-backend/lib/ledger"
	repairrequeststore "equip-repair-backend/lib/repair-request/store"
	"equip-repair-backend/lib/rolesign"
	repairhistoryhandler "equip-repair-backend/lib/repairhistory"
	workitemhandler "equip-repair-backend/lib/workitem"
	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

// Provider is the cascade trigger engine: after every mutating ballot
// operation it checks whether the precondition of the next workflow
// stage is met and, if so, creates the successor exactly once and seeds
// its task assignments. Every creation is guarded by an existing
// non-terminal successor lookup running inside the caller's transaction.
type Provider interface {
	// EnsureRepairRequest finds the pending repair request of the
	// equipment or creates one, flipping the equipment to under_repair.
	EnsureRepairRequest(equipmentID, actorID string) (requestID string, err error)

	// OnSupplyApproved runs after an MSB moves to in_progress: links the
	// repair request, finds or creates the single ASB of the request and
	// fans out signing tasks for the supply ballot itself.
	OnSupplyApproved(ballot *dbmodels.MaterialSupplyBallot, actorID string) error

	// OnSupplyLeadSigned runs after the warehouse lead signs with supply
	// adjustments: seeds or extends the shared TAB/DAB pair of the
	// request and unconditionally ensures an assignment signing task for
	// the deputy-director role.
	OnSupplyLeadSigned(ballot *dbmodels.MaterialSupplyBallot, actorID string) error

	// OnSupplyCompleted runs after the last MSB signature.
	OnSupplyCompleted(ballot *dbmodels.MaterialSupplyBallot, actorID string) error

	// OnAppraisalCompleted runs after a TAB or DAB collects its fourth
	// signature.
	OnAppraisalCompleted(equipmentID string, requestID *string, actorID string) error

	// OnAssignmentDone runs after the ASB final approval: re-issues
	// signing tasks for every still-open supply/appraisal ballot of the
	// equipment to the designated approver.
	OnAssignmentDone(ballot *dbmodels.AssignmentBallot, actorID string) error

	// OnAcceptanceCompleted runs after the ARB collects all signatures
	// and creates the quality assessment ballot.
	OnAcceptanceCompleted(ballot *dbmodels.AcceptanceBallot, actorID string) error

	// OnQualityFinalApproved runs after QAB final approval: computes the
	// scrap quantity, merges supply details into consolidated settlement
	// lines and creates the SRB.
	OnQualityFinalApproved(ballot *dbmodels.QualityAssessmentBallot, actorID string) error

	// OnSettlementSigned runs after every SRB signature. When the six
	// sibling ballot types are all terminal it closes the repair
	// request, merges sibling supply ballots and reactivates the
	// equipment.
	OnSettlementSigned(ballot *dbmodels.SettlementRepairBallot, actorID string) error

	// OnRejected runs inside the reject transaction: retires signing
	// tasks of successor ballots the rejection invalidated and re-opens
	// a rework task so the stage can be redone.
	OnRejected(ballotType models.BallotType, equipmentID string, requestID *string, ballotID, reopenUserID, actorID string) error
}

// NewInstanceWithTx builds an engine bound to the caller's transaction,
// the successor existence checks and creations must share it.
func NewInstanceWithTx(tx *gorm.DB) Provider {
	return impl{
		tabStore:       tabstore.NewInstance(tx),
		dabStore:       dabstore.NewInstance(tx),
		msbStore:       msbstore.NewInstance(tx),
		asbStore:       asbstore.NewInstance(tx),
		arbStore:       arbstore.NewInstance(tx),
		qabStore:       qabstore.NewInstance(tx),
		srbStore:       srbstore.NewInstance(tx),
		requestStore:   repairrequeststore.NewInstance(tx),
		equipmentStore: equipmentstore.NewInstance(tx),
		materialStore:  materialstore.NewInstance(tx),
		history:        repairhistoryhandler.NewInstanceWithTx(tx),
		workItems:      workitemhandler.NewInstanceWithTx(tx),
		ledger:         ledger.NewInstanceWithTx(tx),
	}
}

type impl struct {
	tabStore       tabstore.Provider
	dabStore       dabstore.Provider
	msbStore       msbstore.Provider
	asbStore       asbstore.Provider
	arbStore       arbstore.Provider
	qabStore       qabstore.Provider
	srbStore       srbstore.Provider
	requestStore   repairrequeststore.Provider
	equipmentStore equipmentstore.Provider
	materialStore  materialstore.Provider
	history        repairhistoryhandler.Provider
	workItems      workitemhandler.Provider
	ledger         ledger.Provider
}

func (i impl) getLogger(equipmentID string) *log.Entry {
	return log.WithField("equipment_id", equipmentID)
}

func (i impl) EnsureRepairRequest(equipmentID, actorID string) (string, error) {
	existing, err := i.requestStore.FindPendingByEquipment(equipmentID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	id, err := i.requestStore.Create(dbmodels.RepairRequest{
		EquipmentID: equipmentID,
		Status:      models.RepairStatusPending,
		UpdatedBy:   actorID,
	})
	if err != nil {
		return "", err
	}
	if err = i.equipmentStore.UpdateStatus(equipmentID, models.EquipmentStatusUnderRepair); err != nil {
		return "", err
	}
	if err = i.history.AttachRequest(equipmentID, id); err != nil {
		return "", err
	}
	i.getLogger(equipmentID).
		WithField("repair_request_id", id).
		Info("repair request opened")
	return id, nil
}

func (i impl) setRequestPointer(requestID string, ballotType models.BallotType, ballotID string) error {
	column := map[models.BallotType]string{
		models.BallotTypeTAB: "technical_appraisal_id",
		models.BallotTypeDAB: "detail_appraisal_id",
		models.BallotTypeMSB: "material_supply_id",
		models.BallotTypeASB: "assignment_id",
		models.BallotTypeARB: "acceptance_id",
		models.BallotTypeQAB: "quality_assessment_id",
		models.BallotTypeSRB: "settlement_id",
	}[ballotType]
	if column == "" {
		return nil
	}
	return i.requestStore.Update(requestID, map[string]interface{}{
		column: ballotID,
	})
}

func (i impl) OnSupplyApproved(ballot *dbmodels.MaterialSupplyBallot, actorID string) error {
	if ballot.RepairRequestID == nil {
		return nil
	}
	requestID := *ballot.RepairRequestID
	if err := i.setRequestPointer(requestID, models.BallotTypeMSB, ballot.ID); err != nil {
		return err
	}

	// One open ASB per repair request, not per MSB. A rejected
	// assignment is replaced on the next supply approval, a completed
	// one is left alone.
	existing, err := i.asbStore.FindOpenByRequest(requestID)
	if err != nil {
		return err
	}
	if existing == nil {
		prior, err := i.asbStore.FindByRequest(requestID)
		if err != nil {
			return err
		}
		if prior != nil && prior.Status != models.AssignStatusRejected {
			existing = prior
		}
	}
	if existing == nil {
		asbID, err := i.asbStore.Create(dbmodels.AssignmentBallot{
			EquipmentID:     ballot.EquipmentID,
			RepairRequestID: &requestID,
			Status:          models.AssignStatusPending,
			UpdatedBy:       actorID,
		})
		if err != nil {
			return err
		}
		if err = i.setRequestPointer(requestID, models.BallotTypeASB, asbID); err != nil {
			return err
		}
		if err = i.history.RecordBallot(ballot.EquipmentID, &requestID, models.BallotTypeASB, asbID); err != nil {
			return err
		}
	}

	// The approved ballot now waits for its four signatures.
	for _, role := range rolesign.RolesOf(models.BallotTypeMSB) {
		err = i.workItems.FanOutToRole(role, workitemhandler.WorkItemData{
			RefType:     models.BallotTypeMSB,
			RefID:       ballot.ID,
			TaskType:    models.TaskTypeSign,
			Description: models.BallotTypeMSB.ToHuman(),
			CreatedBy:   actorID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// seedAppraisalItems maps supply detail reasons to detail appraisal
// lines.
func seedAppraisalItems(details []dbmodels.MaterialSupplyDetail) []dbmodels.DetailAppraisalItem {
	items := make([]dbmodels.DetailAppraisalItem, 0, len(details))
	for _, detail := range details {
		treatment, technical := detail.Reason.DeriveAppraisal()
		items = append(items, dbmodels.DetailAppraisalItem{
			MaterialID:       detail.MaterialID,
			Quantity:         detail.QuantityRequest,
			TreatmentMeasure: treatment,
			TechnicalStatus:  technical,
		})
	}
	return items
}

func (i impl) OnSupplyLeadSigned(ballot *dbmodels.MaterialSupplyBallot, actorID string) error {
	if ballot.RepairRequestID == nil {
		return nil
	}
	requestID := *ballot.RepairRequestID

	// TAB and DAB are per repair request, not per MSB: follow-up supply
	// ballots extend the shared pair instead of creating new ones.
	tab, err := i.tabStore.FindByRequest(requestID)
	if err != nil {
		return err
	}
	if tab == nil {
		tabID, err := i.tabStore.Create(dbmodels.TechnicalAppraisalBallot{
			EquipmentID:     ballot.EquipmentID,
			RepairRequestID: &requestID,
			Status:          models.AppraisalStatusPending,
			UpdatedBy:       actorID,
		})
		if err != nil {
			return err
		}
		if err = i.setRequestPointer(requestID, models.BallotTypeTAB, tabID); err != nil {
			return err
		}
		if err = i.history.RecordBallot(ballot.EquipmentID, &requestID, models.BallotTypeTAB, tabID); err != nil {
			return err
		}
		for _, role := range rolesign.RolesOf(models.BallotTypeTAB) {
			err = i.workItems.FanOutToRole(role, workitemhandler.WorkItemData{
				RefType:     models.BallotTypeTAB,
				RefID:       tabID,
				TaskType:    models.TaskTypeSign,
				Description: models.BallotTypeTAB.ToHuman(),
				CreatedBy:   actorID,
			})
			if err != nil {
				return err
			}
		}
	}

	dab, err := i.dabStore.FindByRequest(requestID)
	if err != nil {
		return err
	}
	if dab == nil {
		dabID, err := i.dabStore.Create(dbmodels.DetailAppraisalBallot{
			EquipmentID:     ballot.EquipmentID,
			RepairRequestID: &requestID,
			Status:          models.AppraisalStatusPending,
			UpdatedBy:       actorID,
		})
		if err != nil {
			return err
		}
		if err = i.dabStore.ReplaceItems(dabID, seedAppraisalItems(ballot.Details)); err != nil {
			return err
		}
		if err = i.setRequestPointer(requestID, models.BallotTypeDAB, dabID); err != nil {
			return err
		}
		if err = i.history.RecordBallot(ballot.EquipmentID, &requestID, models.BallotTypeDAB, dabID); err != nil {
			return err
		}
		for _, role := range rolesign.RolesOf(models.BallotTypeDAB) {
			err = i.workItems.FanOutToRole(role, workitemhandler.WorkItemData{
				RefType:     models.BallotTypeDAB,
				RefID:       dabID,
				TaskType:    models.TaskTypeSign,
				Description: models.BallotTypeDAB.ToHuman(),
				CreatedBy:   actorID,
			})
			if err != nil {
				return err
			}
		}
	} else {
		if err = i.dabStore.UpsertItems(dab.ID, seedAppraisalItems(ballot.Details)); err != nil {
			return err
		}
	}

	// The assignment signing task for the deputy-director role does not
	// depend on the supply completion check.
	asb, err := i.asbStore.FindByRequest(requestID)
	if err != nil {
		return err
	}
	if asb != nil && !asb.Status.IsTerminal() {
		err = i.workItems.FanOutToRole(models.RoleDeputyDirector, workitemhandler.WorkItemData{
			RefType:     models.BallotTypeASB,
			RefID:       asb.ID,
			TaskType:    models.TaskTypeSign,
			Description: models.BallotTypeASB.ToHuman(),
			CreatedBy:   actorID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (i impl) OnSupplyCompleted(ballot *dbmodels.MaterialSupplyBallot, actorID string) error {
	if ballot.RepairRequestID == nil {
		return nil
	}
	return i.maybeCreateAcceptance(ballot.EquipmentID, *ballot.RepairRequestID, actorID)
}

func (i impl) OnAppraisalCompleted(equipmentID string, requestID *string, actorID string) error {
	if requestID == nil {
		return nil
	}
	return i.maybeCreateAcceptance(equipmentID, *requestID, actorID)
}

// maybeCreateAcceptance creates the ARB once both appraisals are fully
// signed, every supply ballot of the request carries all four
// signatures and the ledger reports zero remaining for every material
// of the first supply ballot.
func (i impl) maybeCreateAcceptance(equipmentID, requestID, actorID string) error {
	tab, err := i.tabStore.FindByRequest(requestID)
	if err != nil {
		return err
	}
	if tab == nil || !tab.IsFullySigned() {
		return nil
	}
	dab, err := i.dabStore.FindByRequest(requestID)
	if err != nil {
		return err
	}
	if dab == nil || !dab.IsFullySigned() {
		return nil
	}
	supplies, err := i.msbStore.ListByRequest(requestID)
	if err != nil {
		return err
	}
	if len(supplies) == 0 {
		return nil
	}
	for _, supply := range supplies {
		if supply.Status == models.SupplyStatusDraft {
			continue
		}
		if !supply.IsFullySigned() {
			return nil
		}
	}
	allSupplied, err := i.ledger.AllSupplied(requestID)
	if err != nil {
		return err
	}
	if !allSupplied {
		return nil
	}

	// Idempotency guard: a pending ARB for the equipment means another
	// signature already triggered the creation.
	existing, err := i.arbStore.FindPendingByEquipment(equipmentID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	arbID, err := i.arbStore.Create(dbmodels.AcceptanceBallot{
		EquipmentID:     equipmentID,
		RepairRequestID: &requestID,
		Status:          models.AppraisalStatusPending,
		UpdatedBy:       actorID,
	})
	if err != nil {
		return err
	}
	if err = i.setRequestPointer(requestID, models.BallotTypeARB, arbID); err != nil {
		return err
	}
	if err = i.history.RecordBallot(equipmentID, &requestID, models.BallotTypeARB, arbID); err != nil {
		return err
	}
	if err = i.workItems.FanOutToRole(models.RoleTransportMechanic, workitemhandler.WorkItemData{
		RefType:     models.BallotTypeARB,
		RefID:       arbID,
		TaskType:    models.TaskTypeSign,
		Description: models.BallotTypeARB.ToHuman(),
		CreatedBy:   actorID,
	}); err != nil {
		return err
	}
	i.getLogger(equipmentID).
		WithField("repair_request_id", requestID).
		WithField("rec_id", arbID).
		Info("acceptance ballot created")
	return nil
}

func (i impl) OnAssignmentDone(ballot *dbmodels.AssignmentBallot, actorID string) error {
	approverID := ballot.ApprovedBy
	if approverID == nil {
		approverID = ballot.LeadID
	}
	if approverID == nil {
		return nil
	}

	supplies, err := i.msbStore.ListOpenByEquipment(ballot.EquipmentID)
	if err != nil {
		return err
	}
	for _, supply := range supplies {
		_, err = i.workItems.Create(workitemhandler.WorkItemData{
			UserID:      *approverID,
			RefType:     models.BallotTypeMSB,
			RefID:       supply.ID,
			TaskType:    models.TaskTypeSign,
			Description: models.BallotTypeMSB.ToHuman(),
			CreatedBy:   actorID,
		})
		if err != nil {
			return err
		}
	}
	if ballot.RepairRequestID == nil {
		return nil
	}
	requestID := *ballot.RepairRequestID
	tab, err := i.tabStore.FindByRequest(requestID)
	if err != nil {
		return err
	}
	if tab != nil && tab.Status == models.AppraisalStatusPending {
		_, err = i.workItems.Create(workitemhandler.WorkItemData{
			UserID:      *approverID,
			RefType:     models.BallotTypeTAB,
			RefID:       tab.ID,
			TaskType:    models.TaskTypeSign,
			Description: models.BallotTypeTAB.ToHuman(),
			CreatedBy:   actorID,
		})
		if err != nil {
			return err
		}
	}
	dab, err := i.dabStore.FindByRequest(requestID)
	if err != nil {
		return err
	}
	if dab != nil && dab.Status == models.AppraisalStatusPending {
		_, err = i.workItems.Create(workitemhandler.WorkItemData{
			UserID:      *approverID,
			RefType:     models.BallotTypeDAB,
			RefID:       dab.ID,
			TaskType:    models.TaskTypeSign,
			Description: models.BallotTypeDAB.ToHuman(),
			CreatedBy:   actorID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (i impl) OnAcceptanceCompleted(ballot *dbmodels.AcceptanceBallot, actorID string) error {
	if ballot.RepairRequestID == nil {
		return nil
	}
	requestID := *ballot.RepairRequestID

	existing, err := i.qabStore.FindOpenByEquipment(ballot.EquipmentID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	qabID, err := i.qabStore.Create(dbmodels.QualityAssessmentBallot{
		EquipmentID:     ballot.EquipmentID,
		RepairRequestID: &requestID,
		Status:          models.AssessmentStatusPending,
		UpdatedBy:       actorID,
	})
	if err != nil {
		return err
	}
	if err = i.setRequestPointer(requestID, models.BallotTypeQAB, qabID); err != nil {
		return err
	}
	if err = i.history.RecordBallot(ballot.EquipmentID, &requestID, models.BallotTypeQAB, qabID); err != nil {
		return err
	}
	// Items default to the materials recovered during the repair.
	supplies, err := i.msbStore.ListByRequest(requestID)
	if err != nil {
		return err
	}
	merged := mergeSupplyDetails(supplies)
	items := make([]dbmodels.QualityAssessmentItem, 0, len(merged))
	for _, line := range merged {
		items = append(items, dbmodels.QualityAssessmentItem{
			MaterialID: line.MaterialID,
			Quantity:   line.QuantitySupplied,
		})
	}
	if len(items) > 0 {
		if err = i.qabStore.ReplaceItems(qabID, items); err != nil {
			return err
		}
	}
	if err = i.workItems.FanOutToRole(models.RoleDeputyDirector, workitemhandler.WorkItemData{
		RefType:     models.BallotTypeQAB,
		RefID:       qabID,
		TaskType:    models.TaskTypeApproveAdjust,
		Description: models.BallotTypeQAB.ToHuman(),
		CreatedBy:   actorID,
	}); err != nil {
		return err
	}
	i.getLogger(ballot.EquipmentID).
		WithField("repair_request_id", requestID).
		WithField("rec_id", qabID).
		Info("quality assessment ballot created")
	return nil
}

// mergeSupplyDetails consolidates the detail lines of several supply
// ballots into one line per material.
func mergeSupplyDetails(supplies []dbmodels.MaterialSupplyBallot) []dbmodels.SettlementMaterialLine {
	index := map[string]int{}
	merged := []dbmodels.SettlementMaterialLine{}
	for _, supply := range supplies {
		for _, detail := range supply.Details {
			pos, exist := index[detail.MaterialID]
			if !exist {
				index[detail.MaterialID] = len(merged)
				merged = append(merged, dbmodels.SettlementMaterialLine{
					MaterialID:       detail.MaterialID,
					Reason:           detail.Reason,
					QuantitySupplied: detail.QuantitySupplies,
				})
				continue
			}
			merged[pos].QuantitySupplied += detail.QuantitySupplies
		}
	}
	return merged
}

func (i impl) OnQualityFinalApproved(ballot *dbmodels.QualityAssessmentBallot, actorID string) error {
	if ballot.RepairRequestID == nil {
		return nil
	}
	requestID := *ballot.RepairRequestID

	existing, err := i.srbStore.FindOpenByEquipment(ballot.EquipmentID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	// Scrap quantity: Σ item.quantity × material.specification.
	materialIDs := make([]string, 0, len(ballot.Items))
	for _, item := range ballot.Items {
		materialIDs = append(materialIDs, item.MaterialID)
	}
	scrap := 0.0
	costByMaterial := map[string]float64{}
	if len(materialIDs) > 0 {
		materials, err := i.materialStore.GetByIDs(materialIDs)
		if err != nil {
			return err
		}
		specByID := map[string]dbmodels.Material{}
		for _, material := range materials {
			specByID[material.ID] = material
		}
		for _, item := range ballot.Items {
			material := specByID[item.MaterialID]
			scrap += item.Quantity * material.Specification
			costByMaterial[item.MaterialID] = material.Price
		}
	}
	if err = i.qabStore.Update(ballot.ID, map[string]interface{}{
		"scrap_quantity": scrap,
	}); err != nil {
		return err
	}

	supplies, err := i.msbStore.ListByRequest(requestID)
	if err != nil {
		return err
	}
	lines := mergeSupplyDetails(supplies)
	totalCost := 0.0
	for idx := range lines {
		lines[idx].Cost = lines[idx].QuantitySupplied * costByMaterial[lines[idx].MaterialID]
		totalCost += lines[idx].Cost
	}

	srbID, err := i.srbStore.Create(dbmodels.SettlementRepairBallot{
		EquipmentID:     ballot.EquipmentID,
		RepairRequestID: &requestID,
		Status:          models.AssessmentStatusPending,
		ScrapQuantity:   scrap,
		TotalCost:       totalCost,
		UpdatedBy:       actorID,
		Lines:           lines,
	})
	if err != nil {
		return err
	}
	if err = i.setRequestPointer(requestID, models.BallotTypeSRB, srbID); err != nil {
		return err
	}
	if err = i.history.RecordBallot(ballot.EquipmentID, &requestID, models.BallotTypeSRB, srbID); err != nil {
		return err
	}
	if err = i.workItems.FanOutToRole(models.RoleDeputyForeman, workitemhandler.WorkItemData{
		RefType:     models.BallotTypeSRB,
		RefID:       srbID,
		TaskType:    models.TaskTypeSign,
		Description: models.BallotTypeSRB.ToHuman(),
		CreatedBy:   actorID,
	}); err != nil {
		return err
	}
	i.getLogger(ballot.EquipmentID).
		WithField("repair_request_id", requestID).
		WithField("rec_id", srbID).
		Info("settlement ballot created")
	return nil
}

// siblingsTerminal verifies every other ballot type of the request is in
// a terminal state. SRB completion is detected through this check, not
// through the SRB's own signature fields.
func (i impl) siblingsTerminal(requestID string) (bool, error) {
	tab, err := i.tabStore.FindByRequest(requestID)
	if err != nil {
		return false, err
	}
	if tab == nil || tab.Status != models.AppraisalStatusDone {
		return false, nil
	}
	dab, err := i.dabStore.FindByRequest(requestID)
	if err != nil {
		return false, err
	}
	if dab == nil || dab.Status != models.AppraisalStatusDone {
		return false, nil
	}
	supplies, err := i.msbStore.ListByRequest(requestID)
	if err != nil {
		return false, err
	}
	if len(supplies) == 0 {
		return false, nil
	}
	for _, supply := range supplies {
		if !supply.Status.IsTerminal() {
			return false, nil
		}
	}
	asb, err := i.asbStore.FindByRequest(requestID)
	if err != nil {
		return false, err
	}
	if asb == nil || !asb.Status.IsTerminal() {
		return false, nil
	}
	arb, err := i.arbStore.FindByRequest(requestID)
	if err != nil {
		return false, err
	}
	if arb == nil || arb.Status != models.AppraisalStatusDone {
		return false, nil
	}
	qab, err := i.qabStore.FindByRequest(requestID)
	if err != nil {
		return false, err
	}
	if qab == nil || !qab.Status.IsTerminal() {
		return false, nil
	}
	return true, nil
}

func (i impl) OnRejected(ballotType models.BallotType, equipmentID string, requestID *string, ballotID, reopenUserID, actorID string) error {
	if requestID != nil {
		if err := i.retireSuccessorTasks(ballotType, *requestID); err != nil {
			return err
		}
	}
	if reopenUserID == "" {
		return nil
	}
	taskType := models.TaskTypeUpdateItems
	if ballotType == models.BallotTypeMSB {
		// A rejected supply ballot is frozen, the author drafts a
		// replacement instead of editing it.
		taskType = models.TaskTypeCreateBallot
	}
	_, err := i.workItems.Create(workitemhandler.WorkItemData{
		UserID:      reopenUserID,
		RefType:     ballotType,
		RefID:       ballotID,
		TaskType:    taskType,
		Description: ballotType.ToHuman(),
		CreatedBy:   actorID,
	})
	if err != nil {
		return err
	}
	i.getLogger(equipmentID).
		WithField("ballot_type", ballotType).
		WithField("rec_id", ballotID).
		WithField("user_id", reopenUserID).
		Info("rework task created after rejection")
	return nil
}

// retireSuccessorTasks deletes pending work items of ballots that can
// no longer proceed. Appraisal and assignment signing only makes sense
// while an active supply ballot drives the request, settlement signing
// only while the quality assessment stands.
func (i impl) retireSuccessorTasks(ballotType models.BallotType, requestID string) error {
	switch ballotType {
	case models.BallotTypeMSB:
		// ListByRequest excludes rejected ballots, the reject update ran
		// in this transaction already.
		supplies, err := i.msbStore.ListByRequest(requestID)
		if err != nil {
			return err
		}
		for _, supply := range supplies {
			if supply.Status != models.SupplyStatusDraft {
				return nil
			}
		}
		tab, err := i.tabStore.FindByRequest(requestID)
		if err != nil {
			return err
		}
		if tab != nil && tab.Status != models.AppraisalStatusDone {
			if err = i.workItems.DeleteForRef(models.BallotTypeTAB, tab.ID, nil); err != nil {
				return err
			}
		}
		dab, err := i.dabStore.FindByRequest(requestID)
		if err != nil {
			return err
		}
		if dab != nil && dab.Status != models.AppraisalStatusDone {
			if err = i.workItems.DeleteForRef(models.BallotTypeDAB, dab.ID, nil); err != nil {
				return err
			}
		}
		asb, err := i.asbStore.FindOpenByRequest(requestID)
		if err != nil {
			return err
		}
		if asb != nil {
			if err = i.workItems.DeleteForRef(models.BallotTypeASB, asb.ID, nil); err != nil {
				return err
			}
		}
	case models.BallotTypeQAB:
		srb, err := i.srbStore.FindByRequest(requestID)
		if err != nil {
			return err
		}
		if srb != nil && !srb.Status.IsTerminal() {
			if err = i.workItems.DeleteForRef(models.BallotTypeSRB, srb.ID, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (i impl) OnSettlementSigned(ballot *dbmodels.SettlementRepairBallot, actorID string) error {
	if ballot.RepairRequestID == nil {
		return nil
	}
	requestID := *ballot.RepairRequestID

	if !ballot.IsFullySigned() {
		return nil
	}
	terminal, err := i.siblingsTerminal(requestID)
	if err != nil {
		return err
	}
	if !terminal {
		return nil
	}

	if err = i.srbStore.Update(ballot.ID, map[string]interface{}{
		"status": models.AssessmentStatusApproved,
	}); err != nil {
		return err
	}

	supplies, err := i.msbStore.ListByRequest(requestID)
	if err != nil {
		return err
	}
	startDate := repairStartDate(supplies)
	endDate := time.Now()

	// Sibling supply ballots collapse into the first one once the
	// request closes.
	if len(supplies) > 1 {
		if err = i.mergeSiblingSupplies(requestID, supplies, actorID); err != nil {
			return err
		}
	}

	if err = i.requestStore.Update(requestID, map[string]interface{}{
		"status":     models.RepairStatusDone,
		"start_date": startDate,
		"end_date":   &endDate,
		"updated_by": actorID,
	}); err != nil {
		return err
	}
	if err = i.history.Close(requestID, startDate, &endDate); err != nil {
		return err
	}
	if err = i.equipmentStore.UpdateStatus(ballot.EquipmentID, models.EquipmentStatusActive); err != nil {
		return err
	}
	i.getLogger(ballot.EquipmentID).
		WithField("repair_request_id", requestID).
		Info("repair request closed")
	return nil
}

// repairStartDate is the earliest in_progress stamp across the supply
// ballots of the request.
func repairStartDate(supplies []dbmodels.MaterialSupplyBallot) *time.Time {
	var start *time.Time
	for _, supply := range supplies {
		if supply.StartedAt == nil {
			continue
		}
		if start == nil || supply.StartedAt.Before(*start) {
			stamp := *supply.StartedAt
			start = &stamp
		}
	}
	return start
}

// mergeSiblingSupplies folds every later supply ballot of the request
// into the first one: quantities accumulate per material, the later
// ballots and their work items are removed.
func (i impl) mergeSiblingSupplies(requestID string, supplies []dbmodels.MaterialSupplyBallot, actorID string) error {
	first := supplies[0]
	mergedByMaterial := map[string]*dbmodels.MaterialSupplyDetail{}
	order := []string{}
	for _, detail := range first.Details {
		detailCopy := detail
		mergedByMaterial[detail.MaterialID] = &detailCopy
		order = append(order, detail.MaterialID)
	}
	for _, supply := range supplies[1:] {
		for _, detail := range supply.Details {
			existing, exist := mergedByMaterial[detail.MaterialID]
			if !exist {
				detailCopy := detail
				detailCopy.ID = ""
				detailCopy.BallotID = first.ID
				mergedByMaterial[detail.MaterialID] = &detailCopy
				order = append(order, detail.MaterialID)
				continue
			}
			existing.QuantityRequest += detail.QuantityRequest
			existing.QuantitySupplies += detail.QuantitySupplies
		}
	}
	merged := make([]dbmodels.MaterialSupplyDetail, 0, len(order))
	for _, materialID := range order {
		detail := *mergedByMaterial[materialID]
		detail.ID = ""
		detail.Material = nil
		merged = append(merged, detail)
	}
	if err := i.msbStore.ReplaceDetails(first.ID, merged); err != nil {
		return err
	}
	if err := i.msbStore.Update(first.ID, map[string]interface{}{
		"updated_by": actorID,
	}); err != nil {
		return err
	}
	for _, supply := range supplies[1:] {
		if err := i.workItems.DeleteForRef(models.BallotTypeMSB, supply.ID, nil); err != nil {
			return err
		}
		if err := i.msbStore.Delete(supply.ID); err != nil {
			return err
		}
	}
	return i.setRequestPointer(requestID, models.BallotTypeMSB, first.ID)
}
