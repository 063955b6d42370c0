package dbmodels

import (
	"equip-repair-backend/lib/utils/errs"
	"equip-repair-backend/models"
)

// SettlementRepairBallot (SRB) is the final settlement document. Its last
// signature closes the whole repair request.
type SettlementRepairBallot struct {
	BaseModel
	EquipmentID     string `gorm:"type:varchar(36);index"`
	Equipment       *Equipment
	RepairRequestID *string `gorm:"type:varchar(36);index"`
	Status          models.AssessmentStatus `gorm:"type:varchar(50)"`
	ScrapQuantity   float64
	TotalCost       float64

	AccountantID     *string `gorm:"type:varchar(36)"`
	DeputyForemanID  *string `gorm:"type:varchar(36)"`
	ForemanID        *string `gorm:"type:varchar(36)"`
	DeputyDirectorID *string `gorm:"type:varchar(36)"`

	UpdatedBy string `gorm:"type:varchar(36)"`

	Lines []SettlementMaterialLine `gorm:"foreignKey:BallotID"`
}

// SettlementMaterialLine is one consolidated material line, merged from
// all supply details of the equipment when the SRB is created.
type SettlementMaterialLine struct {
	BaseModel
	BallotID         string `gorm:"type:varchar(36);index"`
	MaterialID       string `gorm:"type:varchar(36)"`
	Material         *Material
	QuantitySupplied float64
	Reason           models.SupplyReason `gorm:"type:varchar(50)"`
	Cost             float64
}

func (b SettlementRepairBallot) SignerOf(slot models.SignerSlot) *string {
	switch slot {
	case models.SlotAccountant:
		return b.AccountantID
	case models.SlotDeputyForeman:
		return b.DeputyForemanID
	case models.SlotForeman:
		return b.ForemanID
	case models.SlotDeputyDirector:
		return b.DeputyDirectorID
	}
	return nil
}

func (b *SettlementRepairBallot) SetSigner(slot models.SignerSlot, userID string) error {
	if signed := b.SignerOf(slot); signed != nil {
		return errs.PermissionDenied("field %q is already signed", slot)
	}
	switch slot {
	case models.SlotAccountant:
		b.AccountantID = &userID
	case models.SlotDeputyForeman:
		b.DeputyForemanID = &userID
	case models.SlotForeman:
		b.ForemanID = &userID
	case models.SlotDeputyDirector:
		b.DeputyDirectorID = &userID
	default:
		return errs.PermissionDenied("not permitted to sign field %q", slot)
	}
	return nil
}

func (b SettlementRepairBallot) IsFullySigned() bool {
	return b.AccountantID != nil &&
		b.DeputyForemanID != nil &&
		b.ForemanID != nil &&
		b.DeputyDirectorID != nil
}
