package repairapimodels

import (
	"time"

	"github.com/pkg/errors"

	dbmodels "equip-repair-backend/models/db"
)

type AssignmentBallotView struct {
	ID               string     `json:"id"`
	EquipmentID      string     `json:"equipment_id"`
	EquipmentName    string     `json:"equipment_name,omitempty"`
	RepairRequestID  string     `json:"repair_request_id,omitempty"`
	Status           string     `json:"status"`
	Content          string     `json:"content,omitempty"`
	AssignByID       string     `json:"assign_by_id,omitempty"`
	DelegatedToID    string     `json:"delegated_to_id,omitempty"`
	LeadID           string     `json:"lead_id,omitempty"`
	DeputyApprovedAt *time.Time `json:"deputy_approved_at,omitempty"`
	LeadApprovedAt   *time.Time `json:"lead_approved_at,omitempty"`
	ApprovedBy       string     `json:"approved_by,omitempty"`
	RejectReason     string     `json:"reject_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func AssignmentBallotConvert(rec dbmodels.AssignmentBallot) AssignmentBallotView {
	view := AssignmentBallotView{
		ID:               rec.ID,
		EquipmentID:      rec.EquipmentID,
		Status:           string(rec.Status),
		Content:          rec.Content,
		DeputyApprovedAt: rec.DeputyApprovedAt,
		LeadApprovedAt:   rec.LeadApprovedAt,
		RejectReason:     rec.RejectReason,
		CreatedAt:        rec.CreatedAt,
	}
	if rec.Equipment != nil {
		view.EquipmentName = rec.Equipment.Name
	}
	if rec.RepairRequestID != nil {
		view.RepairRequestID = *rec.RepairRequestID
	}
	if rec.AssignByID != nil {
		view.AssignByID = *rec.AssignByID
	}
	if rec.DelegatedToID != nil {
		view.DelegatedToID = *rec.DelegatedToID
	}
	if rec.LeadID != nil {
		view.LeadID = *rec.LeadID
	}
	if rec.ApprovedBy != nil {
		view.ApprovedBy = *rec.ApprovedBy
	}
	return view
}

// DelegateData nominates the deputy and the lead of the delegation chain.
type DelegateData struct {
	DeputyUserID string `json:"deputy_user_id"`
	LeadUserID   string `json:"lead_user_id"`
	Content      string `json:"content"`
}

func (d DelegateData) Validate() error {
	if d.DeputyUserID == "" {
		return errors.New("deputy user id is required")
	}
	if d.LeadUserID == "" {
		return errors.New("lead user id is required")
	}
	if d.DeputyUserID == d.LeadUserID {
		return errors.New("deputy and lead must be different users")
	}
	return nil
}
