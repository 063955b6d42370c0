package dbmodels

import (
	"equip-repair-backend/lib/utils/errs"
	"equip-repair-backend/models"
)

// QualityAssessmentBallot (QAB) assesses the quality of materials
// recovered from the repair. Signatures are collected progressively,
// approve moves it to in_progress, final approve closes it and spawns
// the settlement ballot.
type QualityAssessmentBallot struct {
	BaseModel
	EquipmentID     string `gorm:"type:varchar(36);index"`
	Equipment       *Equipment
	RepairRequestID *string `gorm:"type:varchar(36);index"`
	Status          models.AssessmentStatus `gorm:"type:varchar(50)"`
	Conclusion      string

	LeadFirstPlanID   *string `gorm:"type:varchar(36)"`
	LeadTechnicalID   *string `gorm:"type:varchar(36)"`
	WarehouseKeeperID *string `gorm:"type:varchar(36)"`
	DeputyDirectorID  *string `gorm:"type:varchar(36)"`

	ApprovedBy *string `gorm:"type:varchar(36)"`
	// ScrapQuantity = Σ item.quantity × material.specification, computed
	// on final approve.
	ScrapQuantity float64
	RejectReason  string
	UpdatedBy     string `gorm:"type:varchar(36)"`

	Items []QualityAssessmentItem `gorm:"foreignKey:BallotID"`
}

type QualityAssessmentItem struct {
	BaseModel
	BallotID   string `gorm:"type:varchar(36);index"`
	MaterialID string `gorm:"type:varchar(36)"`
	Material   *Material
	Quantity   float64
	Quality    string `gorm:"type:varchar(100)"`
	Note       string
}

func (b QualityAssessmentBallot) SignerOf(slot models.SignerSlot) *string {
	switch slot {
	case models.SlotLeadFirstPlan:
		return b.LeadFirstPlanID
	case models.SlotLeadTechnical:
		return b.LeadTechnicalID
	case models.SlotWarehouseKeeper:
		return b.WarehouseKeeperID
	case models.SlotDeputyDirector:
		return b.DeputyDirectorID
	}
	return nil
}

func (b *QualityAssessmentBallot) SetSigner(slot models.SignerSlot, userID string) error {
	if signed := b.SignerOf(slot); signed != nil {
		return errs.PermissionDenied("field %q is already signed", slot)
	}
	switch slot {
	case models.SlotLeadFirstPlan:
		b.LeadFirstPlanID = &userID
	case models.SlotLeadTechnical:
		b.LeadTechnicalID = &userID
	case models.SlotWarehouseKeeper:
		b.WarehouseKeeperID = &userID
	case models.SlotDeputyDirector:
		b.DeputyDirectorID = &userID
	default:
		return errs.PermissionDenied("not permitted to sign field %q", slot)
	}
	return nil
}

func (b QualityAssessmentBallot) IsFullySigned() bool {
	return b.LeadFirstPlanID != nil &&
		b.LeadTechnicalID != nil &&
		b.WarehouseKeeperID != nil &&
		b.DeputyDirectorID != nil
}
