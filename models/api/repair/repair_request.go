package repairapimodels

import (
	"time"

	dbmodels "equip-repair-backend/models/db"
)

type RepairRequestView struct {
	ID            string     `json:"id"`
	EquipmentID   string     `json:"equipment_id"`
	EquipmentName string     `json:"equipment_name,omitempty"`
	Status        string     `json:"status"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`

	TechnicalAppraisalID string `json:"technical_appraisal_id,omitempty"`
	DetailAppraisalID    string `json:"detail_appraisal_id,omitempty"`
	MaterialSupplyID     string `json:"material_supply_id,omitempty"`
	AssignmentID         string `json:"assignment_id,omitempty"`
	AcceptanceID         string `json:"acceptance_id,omitempty"`
	QualityAssessmentID  string `json:"quality_assessment_id,omitempty"`
	SettlementID         string `json:"settlement_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func RepairRequestConvert(rec dbmodels.RepairRequest) RepairRequestView {
	view := RepairRequestView{
		ID:          rec.ID,
		EquipmentID: rec.EquipmentID,
		Status:      string(rec.Status),
		StartDate:   rec.StartDate,
		EndDate:     rec.EndDate,

		TechnicalAppraisalID: deref(rec.TechnicalAppraisalID),
		DetailAppraisalID:    deref(rec.DetailAppraisalID),
		MaterialSupplyID:     deref(rec.MaterialSupplyID),
		AssignmentID:         deref(rec.AssignmentID),
		AcceptanceID:         deref(rec.AcceptanceID),
		QualityAssessmentID:  deref(rec.QualityAssessmentID),
		SettlementID:         deref(rec.SettlementID),

		CreatedAt: rec.CreatedAt,
	}
	if rec.Equipment != nil {
		view.EquipmentName = rec.Equipment.Name
	}
	return view
}

type RepairHistoryView struct {
	ID              string     `json:"id"`
	EquipmentID     string     `json:"equipment_id"`
	EquipmentName   string     `json:"equipment_name,omitempty"`
	RepairRequestID string     `json:"repair_request_id,omitempty"`
	Status          string     `json:"status"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`

	TechnicalAppraisalID string `json:"technical_appraisal_id,omitempty"`
	DetailAppraisalID    string `json:"detail_appraisal_id,omitempty"`
	MaterialSupplyID     string `json:"material_supply_id,omitempty"`
	AssignmentID         string `json:"assignment_id,omitempty"`
	AcceptanceID         string `json:"acceptance_id,omitempty"`
	QualityAssessmentID  string `json:"quality_assessment_id,omitempty"`
	SettlementID         string `json:"settlement_id,omitempty"`
}

func RepairHistoryConvert(rec dbmodels.RepairHistory) RepairHistoryView {
	view := RepairHistoryView{
		ID:              rec.ID,
		EquipmentID:     rec.EquipmentID,
		RepairRequestID: deref(rec.RepairRequestID),
		Status:          string(rec.Status),
		StartDate:       rec.StartDate,
		EndDate:         rec.EndDate,

		TechnicalAppraisalID: deref(rec.TechnicalAppraisalID),
		DetailAppraisalID:    deref(rec.DetailAppraisalID),
		MaterialSupplyID:     deref(rec.MaterialSupplyID),
		AssignmentID:         deref(rec.AssignmentID),
		AcceptanceID:         deref(rec.AcceptanceID),
		QualityAssessmentID:  deref(rec.QualityAssessmentID),
		SettlementID:         deref(rec.SettlementID),
	}
	if rec.Equipment != nil {
		view.EquipmentName = rec.Equipment.Name
	}
	return view
}

type RepairRequestFilter struct {
	Pagination struct {
		Limit int `json:"limit"`
		Page  int `json:"page"`
	} `json:"pagination"`
	EquipmentID string `json:"equipment_id"`
	Status      string `json:"status"`
}
