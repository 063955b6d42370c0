package dbmodels

import (
	"time"

	"equip-repair-backend/lib/utils/errs"
	"equip-repair-backend/models"
)

// MaterialSupplyBallot (MSB) is the repeatable supply request. The first
// approved ballot of a repair request fixes the material budget, later
// ballots only fulfill it.
type MaterialSupplyBallot struct {
	BaseModel
	EquipmentID     string `gorm:"type:varchar(36);index"`
	Equipment       *Equipment
	RepairRequestID *string `gorm:"type:varchar(36);index"`
	Status          models.SupplyStatus `gorm:"type:varchar(50)"`
	Reason          string
	// StartedAt is stamped when the ballot first moves to in_progress,
	// the earliest stamp across the request becomes the repair start date.
	StartedAt *time.Time

	// EquipmentManagerUserID is the manager nominated on creation, it
	// grants the appraisal-ballot equipment_manager override.
	EquipmentManagerUserID *string `gorm:"type:varchar(36)"`

	LeadWarehouseID     *string `gorm:"type:varchar(36)"`
	ReceiverID          *string `gorm:"type:varchar(36)"`
	DeputyForemanID     *string `gorm:"type:varchar(36)"`
	TransportMechanicID *string `gorm:"type:varchar(36)"`

	ApprovedBy   *string `gorm:"type:varchar(36)"`
	RejectReason string
	// CreatedBy is the author, a rejection re-opens the supply stage on
	// them.
	CreatedBy string `gorm:"type:varchar(36)"`
	UpdatedBy string `gorm:"type:varchar(36)"`

	Details []MaterialSupplyDetail `gorm:"foreignKey:BallotID"`
}

// MaterialSupplyDetail is one material line of an MSB.
type MaterialSupplyDetail struct {
	BaseModel
	BallotID         string `gorm:"type:varchar(36);index"`
	MaterialID       string `gorm:"type:varchar(36);index"`
	Material         *Material
	QuantityRequest  float64
	QuantityApprove  float64
	QuantitySupplies float64
	Reason           models.SupplyReason `gorm:"type:varchar(50)"`
}

// ApprovedQuantity is authoritative once the approving role has set it,
// before that the requested quantity stands in.
func (d MaterialSupplyDetail) ApprovedQuantity() float64 {
	if d.QuantityApprove > 0 {
		return d.QuantityApprove
	}
	return d.QuantityRequest
}

func (b MaterialSupplyBallot) SignerOf(slot models.SignerSlot) *string {
	switch slot {
	case models.SlotLeadWarehouse:
		return b.LeadWarehouseID
	case models.SlotReceiver:
		return b.ReceiverID
	case models.SlotDeputyForeman:
		return b.DeputyForemanID
	case models.SlotTransportMechanic:
		return b.TransportMechanicID
	}
	return nil
}

func (b *MaterialSupplyBallot) SetSigner(slot models.SignerSlot, userID string) error {
	if signed := b.SignerOf(slot); signed != nil {
		return errs.PermissionDenied("field %q is already signed", slot)
	}
	switch slot {
	case models.SlotLeadWarehouse:
		b.LeadWarehouseID = &userID
	case models.SlotReceiver:
		b.ReceiverID = &userID
	case models.SlotDeputyForeman:
		b.DeputyForemanID = &userID
	case models.SlotTransportMechanic:
		b.TransportMechanicID = &userID
	default:
		return errs.PermissionDenied("not permitted to sign field %q", slot)
	}
	return nil
}

func (b MaterialSupplyBallot) IsFullySigned() bool {
	return b.LeadWarehouseID != nil &&
		b.ReceiverID != nil &&
		b.DeputyForemanID != nil &&
		b.TransportMechanicID != nil
}
