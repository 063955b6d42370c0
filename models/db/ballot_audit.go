package dbmodels

import (
	"equip-repair-backend/models"
)

// BallotAudit is a best-effort audit row written after every sign,
// approve or reject. Failures to write it never roll back the primary
// operation.
type BallotAudit struct {
	BaseModel
	RefType models.BallotType `gorm:"type:varchar(100);index:idx_ballot_audit_ref"`
	RefID   string            `gorm:"type:varchar(36);index:idx_ballot_audit_ref"`
	ActorID string            `gorm:"type:varchar(36)"`
	Action  string            `gorm:"type:varchar(50)"`
	Changes EntityChanges     `gorm:"type:jsonb"`
}
