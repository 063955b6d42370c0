package dbmodels

import (
	"equip-repair-backend/models"

	"equip-repair-backend/lib/utils/errs"
)

// TechnicalAppraisalBallot (TAB) records the initial technical appraisal
// of an equipment under repair. Four role signatures are required.
type TechnicalAppraisalBallot struct {
	BaseModel
	EquipmentID     string `gorm:"type:varchar(36);index"`
	Equipment       *Equipment
	RepairRequestID *string `gorm:"type:varchar(36);index"`
	Status          models.AppraisalStatus `gorm:"type:varchar(50)"`
	LevelOfRepair   string                 `gorm:"type:varchar(100)"`
	Conclusion      string

	OperatorID          *string `gorm:"type:varchar(36)"`
	EquipmentManagerID  *string `gorm:"type:varchar(36)"`
	RepairmanID         *string `gorm:"type:varchar(36)"`
	TransportMechanicID *string `gorm:"type:varchar(36)"`

	UpdatedBy string `gorm:"type:varchar(36)"`
}

func (b TechnicalAppraisalBallot) SignerOf(slot models.SignerSlot) *string {
	switch slot {
	case models.SlotOperator:
		return b.OperatorID
	case models.SlotEquipmentManager:
		return b.EquipmentManagerID
	case models.SlotRepairman:
		return b.RepairmanID
	case models.SlotTransportMechanic:
		return b.TransportMechanicID
	}
	return nil
}

func (b *TechnicalAppraisalBallot) SetSigner(slot models.SignerSlot, userID string) error {
	if signed := b.SignerOf(slot); signed != nil {
		return errs.PermissionDenied("field %q is already signed", slot)
	}
	switch slot {
	case models.SlotOperator:
		b.OperatorID = &userID
	case models.SlotEquipmentManager:
		b.EquipmentManagerID = &userID
	case models.SlotRepairman:
		b.RepairmanID = &userID
	case models.SlotTransportMechanic:
		b.TransportMechanicID = &userID
	default:
		return errs.PermissionDenied("not permitted to sign field %q", slot)
	}
	return nil
}

func (b TechnicalAppraisalBallot) IsFullySigned() bool {
	return b.OperatorID != nil &&
		b.EquipmentManagerID != nil &&
		b.RepairmanID != nil &&
		b.TransportMechanicID != nil
}

// DetailAppraisalBallot (DAB) itemizes the appraisal per material line.
// It shares the TAB signature set but is a separate document.
type DetailAppraisalBallot struct {
	BaseModel
	EquipmentID     string `gorm:"type:varchar(36);index"`
	Equipment       *Equipment
	RepairRequestID *string `gorm:"type:varchar(36);index"`
	Status          models.AppraisalStatus `gorm:"type:varchar(50)"`
	Conclusion      string

	OperatorID          *string `gorm:"type:varchar(36)"`
	EquipmentManagerID  *string `gorm:"type:varchar(36)"`
	RepairmanID         *string `gorm:"type:varchar(36)"`
	TransportMechanicID *string `gorm:"type:varchar(36)"`

	UpdatedBy string `gorm:"type:varchar(36)"`

	Items []DetailAppraisalItem `gorm:"foreignKey:BallotID"`
}

type DetailAppraisalItem struct {
	BaseModel
	BallotID         string `gorm:"type:varchar(36);index"`
	MaterialID       string `gorm:"type:varchar(36)"`
	Material         *Material
	Quantity         float64
	TechnicalStatus  models.TechnicalStatus  `gorm:"type:varchar(100)"`
	TreatmentMeasure models.TreatmentMeasure `gorm:"type:varchar(100)"`
	Note             string
}

func (b DetailAppraisalBallot) SignerOf(slot models.SignerSlot) *string {
	switch slot {
	case models.SlotOperator:
		return b.OperatorID
	case models.SlotEquipmentManager:
		return b.EquipmentManagerID
	case models.SlotRepairman:
		return b.RepairmanID
	case models.SlotTransportMechanic:
		return b.TransportMechanicID
	}
	return nil
}

func (b *DetailAppraisalBallot) SetSigner(slot models.SignerSlot, userID string) error {
	if signed := b.SignerOf(slot); signed != nil {
		return errs.PermissionDenied("field %q is already signed", slot)
	}
	switch slot {
	case models.SlotOperator:
		b.OperatorID = &userID
	case models.SlotEquipmentManager:
		b.EquipmentManagerID = &userID
	case models.SlotRepairman:
		b.RepairmanID = &userID
	case models.SlotTransportMechanic:
		b.TransportMechanicID = &userID
	default:
		return errs.PermissionDenied("not permitted to sign field %q", slot)
	}
	return nil
}

func (b DetailAppraisalBallot) IsFullySigned() bool {
	return b.OperatorID != nil &&
		b.EquipmentManagerID != nil &&
		b.RepairmanID != nil &&
		b.TransportMechanicID != nil
}
