package dbmodels

import (
	"time"

	"equip-repair-backend/models"
)

// RepairRequest is one open repair attempt on one equipment. At most one
// pending request exists per equipment, enforced by a partial unique
// index created on migration.
type RepairRequest struct {
	BaseModel
	EquipmentID string `gorm:"type:varchar(36);index"`
	Equipment   *Equipment
	Status      models.RepairStatus `gorm:"type:varchar(50)"`
	StartDate   *time.Time
	EndDate     *time.Time

	// Pointers to the current ballot of each type, populated lazily as
	// the cascade advances.
	TechnicalAppraisalID *string `gorm:"type:varchar(36)"`
	DetailAppraisalID    *string `gorm:"type:varchar(36)"`
	MaterialSupplyID     *string `gorm:"type:varchar(36)"`
	AssignmentID         *string `gorm:"type:varchar(36)"`
	AcceptanceID         *string `gorm:"type:varchar(36)"`
	QualityAssessmentID  *string `gorm:"type:varchar(36)"`
	SettlementID         *string `gorm:"type:varchar(36)"`

	UpdatedBy string `gorm:"type:varchar(36)"`
}

// RepairHistory is the denormalized aggregate row, one per repair
// request lifecycle, kept for reporting even after the request closes.
type RepairHistory struct {
	BaseModel
	EquipmentID     string `gorm:"type:varchar(36);index"`
	Equipment       *Equipment
	RepairRequestID *string `gorm:"type:varchar(36);index"`
	Status          models.RepairStatus `gorm:"type:varchar(50)"`
	StartDate       *time.Time
	EndDate         *time.Time

	TechnicalAppraisalID *string `gorm:"type:varchar(36)"`
	DetailAppraisalID    *string `gorm:"type:varchar(36)"`
	MaterialSupplyID     *string `gorm:"type:varchar(36)"`
	AssignmentID         *string `gorm:"type:varchar(36)"`
	AcceptanceID         *string `gorm:"type:varchar(36)"`
	QualityAssessmentID  *string `gorm:"type:varchar(36)"`
	SettlementID         *string `gorm:"type:varchar(36)"`
}

// PointerOf returns the stored ballot id for the given type.
func (h RepairHistory) PointerOf(ballotType models.BallotType) *string {
	switch ballotType {
	case models.BallotTypeTAB:
		return h.TechnicalAppraisalID
	case models.BallotTypeDAB:
		return h.DetailAppraisalID
	case models.BallotTypeMSB:
		return h.MaterialSupplyID
	case models.BallotTypeASB:
		return h.AssignmentID
	case models.BallotTypeARB:
		return h.AcceptanceID
	case models.BallotTypeQAB:
		return h.QualityAssessmentID
	case models.BallotTypeSRB:
		return h.SettlementID
	}
	return nil
}

// AllSlotsFilled reports whether every ballot slot has been pointed at
// least once.
func (h RepairHistory) AllSlotsFilled() bool {
	for _, t := range []models.BallotType{
		models.BallotTypeTAB, models.BallotTypeDAB, models.BallotTypeMSB,
		models.BallotTypeASB, models.BallotTypeARB, models.BallotTypeQAB,
		models.BallotTypeSRB,
	} {
		if h.PointerOf(t) == nil {
			return false
		}
	}
	return true
}
