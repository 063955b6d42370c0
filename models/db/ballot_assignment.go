package dbmodels

import (
	"time"

	"equip-repair-backend/models"
)

// AssignmentBallot (ASB) carries the manager → deputy → lead delegation
// chain. One ASB exists per repair request.
type AssignmentBallot struct {
	BaseModel
	EquipmentID     string `gorm:"type:varchar(36);index"`
	Equipment       *Equipment
	RepairRequestID *string `gorm:"type:varchar(36);index"`
	Status          models.AssignStatus `gorm:"type:varchar(50)"`
	Content         string

	AssignByID *string `gorm:"type:varchar(36)"`

	// Delegation chain: the assigner nominates a deputy and a lead, each
	// confirms the job on their own work item.
	DelegatedToID    *string `gorm:"type:varchar(36)"`
	LeadID           *string `gorm:"type:varchar(36)"`
	DeputyApprovedAt *time.Time
	LeadApprovedAt   *time.Time

	ApprovedBy   *string `gorm:"type:varchar(36)"`
	RejectReason string
	UpdatedBy    string `gorm:"type:varchar(36)"`
}

// ChainComplete reports whether the delegation chain is fully confirmed
// and the final approval can proceed.
func (b AssignmentBallot) ChainComplete() bool {
	return b.AssignByID != nil &&
		b.DelegatedToID != nil && b.DeputyApprovedAt != nil &&
		b.LeadID != nil && b.LeadApprovedAt != nil
}
