package repairhistoryhandler

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"equip-repair-backend/db"
	repairhistorystore "equip-repair-backend/lib/repairhistory/store"
	"equip-repair-backend/models"
	repairapimodels "equip-repair-backend/models/api/repair"
	dbmodels "equip-repair-backend/models/db"
)

// Provider aggregates one history row per repair attempt, holding the
// current ballot of each type.
type Provider interface {
	// RecordBallot upserts the ballot pointer on the pending history row
	// of the equipment, creating the row when none exists. Re-recording
	// the same ballot is a no-op.
	RecordBallot(equipmentID string, requestID *string, ballotType models.BallotType, ballotID string) error
	// AttachRequest links a history row created before the repair
	// request existed.
	AttachRequest(equipmentID, requestID string) error
	Close(requestID string, startDate, endDate *time.Time) error
	FindByRequest(requestID string) (rec *dbmodels.RepairHistory, err error)
	ListByEquipment(equipmentID string) (list []repairapimodels.RepairHistoryView, err error)
	ListAll() (list []repairapimodels.RepairHistoryView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: repairhistorystore.NewInstance(db.DB),
	}
}

func NewInstanceWithTx(tx *gorm.DB) Provider {
	return impl{
		store: repairhistorystore.NewInstance(tx),
	}
}

type impl struct {
	store repairhistorystore.Provider
}

func pointerColumnOf(ballotType models.BallotType) string {
	switch ballotType {
	case models.BallotTypeTAB:
		return "technical_appraisal_id"
	case models.BallotTypeDAB:
		return "detail_appraisal_id"
	case models.BallotTypeMSB:
		return "material_supply_id"
	case models.BallotTypeASB:
		return "assignment_id"
	case models.BallotTypeARB:
		return "acceptance_id"
	case models.BallotTypeQAB:
		return "quality_assessment_id"
	case models.BallotTypeSRB:
		return "settlement_id"
	}
	return ""
}

func (i impl) RecordBallot(equipmentID string, requestID *string, ballotType models.BallotType, ballotID string) error {
	column := pointerColumnOf(ballotType)
	if column == "" {
		log.WithField("ballot_type", ballotType).Warn("unknown ballot type, history not recorded")
		return nil
	}
	rec, err := i.store.FindPendingByEquipment(equipmentID)
	if err != nil {
		return err
	}
	if rec == nil {
		newRec := dbmodels.RepairHistory{
			EquipmentID:     equipmentID,
			RepairRequestID: requestID,
			Status:          models.RepairStatusPending,
		}
		switch ballotType {
		case models.BallotTypeTAB:
			newRec.TechnicalAppraisalID = &ballotID
		case models.BallotTypeDAB:
			newRec.DetailAppraisalID = &ballotID
		case models.BallotTypeMSB:
			newRec.MaterialSupplyID = &ballotID
		case models.BallotTypeASB:
			newRec.AssignmentID = &ballotID
		case models.BallotTypeARB:
			newRec.AcceptanceID = &ballotID
		case models.BallotTypeQAB:
			newRec.QualityAssessmentID = &ballotID
		case models.BallotTypeSRB:
			newRec.SettlementID = &ballotID
		}
		_, err = i.store.Create(newRec)
		return err
	}
	if current := rec.PointerOf(ballotType); current != nil && *current == ballotID {
		return nil
	}
	updMap := map[string]interface{}{
		column: ballotID,
	}
	if rec.RepairRequestID == nil && requestID != nil {
		updMap["repair_request_id"] = *requestID
	}
	return i.store.Update(rec.ID, updMap)
}

func (i impl) AttachRequest(equipmentID, requestID string) error {
	rec, err := i.store.FindPendingByEquipment(equipmentID)
	if err != nil {
		return err
	}
	if rec == nil {
		_, err = i.store.Create(dbmodels.RepairHistory{
			EquipmentID:     equipmentID,
			RepairRequestID: &requestID,
			Status:          models.RepairStatusPending,
		})
		return err
	}
	if rec.RepairRequestID != nil {
		return nil
	}
	return i.store.Update(rec.ID, map[string]interface{}{
		"repair_request_id": requestID,
	})
}

func (i impl) Close(requestID string, startDate, endDate *time.Time) error {
	rec, err := i.store.FindByRequest(requestID)
	if err != nil {
		return err
	}
	if rec == nil {
		log.WithField("repair_request_id", requestID).Warn("no history row to close")
		return nil
	}
	return i.store.Update(rec.ID, map[string]interface{}{
		"status":     models.RepairStatusDone,
		"start_date": startDate,
		"end_date":   endDate,
	})
}

func (i impl) FindByRequest(requestID string) (*dbmodels.RepairHistory, error) {
	return i.store.FindByRequest(requestID)
}

func (i impl) ListByEquipment(equipmentID string) ([]repairapimodels.RepairHistoryView, error) {
	list, err := i.store.ListByEquipment(equipmentID)
	if err != nil {
		return nil, err
	}
	result := make([]repairapimodels.RepairHistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, repairapimodels.RepairHistoryConvert(rec))
	}
	return result, nil
}

func (i impl) ListAll() ([]repairapimodels.RepairHistoryView, error) {
	list, err := i.store.ListAll()
	if err != nil {
		return nil, err
	}
	result := make([]repairapimodels.RepairHistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, repairapimodels.RepairHistoryConvert(rec))
	}
	return result, nil
}
