package dbmodels

import (
	"github.com/lib/pq"

	"equip-repair-backend/lib/utils/errs"
	"equip-repair-backend/models"
)

// AcceptanceBallot (ARB) records the post-repair acceptance and test run.
type AcceptanceBallot struct {
	BaseModel
	EquipmentID     string `gorm:"type:varchar(36);index"`
	Equipment       *Equipment
	RepairRequestID *string `gorm:"type:varchar(36);index"`
	Status          models.AppraisalStatus `gorm:"type:varchar(50)"`
	Conclusion      string
	TestRunNotes    pq.StringArray `gorm:"type:text[]"`

	OperatorID          *string `gorm:"type:varchar(36)"`
	EquipmentManagerID  *string `gorm:"type:varchar(36)"`
	RepairmanID         *string `gorm:"type:varchar(36)"`
	TransportMechanicID *string `gorm:"type:varchar(36)"`

	UpdatedBy string `gorm:"type:varchar(36)"`
}

func (b AcceptanceBallot) SignerOf(slot models.SignerSlot) *string {
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

func (b *AcceptanceBallot) SetSigner(slot models.SignerSlot, userID string) error {
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

func (b AcceptanceBallot) IsFullySigned() bool {
	return b.OperatorID != nil &&
		b.EquipmentManagerID != nil &&
		b.RepairmanID != nil &&
		b.TransportMechanicID != nil
}
