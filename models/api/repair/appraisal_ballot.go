package repairapimodels

import (
	"time"

	"github.com/pkg/errors"

	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type AppraisalBallotView struct {
	ID              string       `json:"id"`
	EquipmentID     string       `json:"equipment_id"`
	EquipmentName   string       `json:"equipment_name,omitempty"`
	RepairRequestID string       `json:"repair_request_id,omitempty"`
	Status          string       `json:"status"`
	LevelOfRepair   string       `json:"level_of_repair,omitempty"`
	Conclusion      string       `json:"conclusion,omitempty"`
	Signers         []SignerView `json:"signers"`
	Items           []AppraisalItemView `json:"items,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

type AppraisalItemView struct {
	ID               string  `json:"id"`
	MaterialID       string  `json:"material_id"`
	MaterialName     string  `json:"material_name,omitempty"`
	Quantity         float64 `json:"quantity"`
	TechnicalStatus  string  `json:"technical_status"`
	TreatmentMeasure string  `json:"treatment_measure"`
	Note             string  `json:"note,omitempty"`
}

func TechnicalAppraisalConvert(rec dbmodels.TechnicalAppraisalBallot) AppraisalBallotView {
	view := AppraisalBallotView{
		ID:            rec.ID,
		EquipmentID:   rec.EquipmentID,
		Status:        string(rec.Status),
		LevelOfRepair: rec.LevelOfRepair,
		Conclusion:    rec.Conclusion,
		Signers: []SignerView{
			signerView(models.SlotOperator, rec.OperatorID),
			signerView(models.SlotEquipmentManager, rec.EquipmentManagerID),
			signerView(models.SlotRepairman, rec.RepairmanID),
			signerView(models.SlotTransportMechanic, rec.TransportMechanicID),
		},
		CreatedAt: rec.CreatedAt,
	}
	if rec.Equipment != nil {
		view.EquipmentName = rec.Equipment.Name
	}
	if rec.RepairRequestID != nil {
		view.RepairRequestID = *rec.RepairRequestID
	}
	return view
}

func DetailAppraisalConvert(rec dbmodels.DetailAppraisalBallot) AppraisalBallotView {
	view := AppraisalBallotView{
		ID:          rec.ID,
		EquipmentID: rec.EquipmentID,
		Status:      string(rec.Status),
		Conclusion:  rec.Conclusion,
		Signers: []SignerView{
			signerView(models.SlotOperator, rec.OperatorID),
			signerView(models.SlotEquipmentManager, rec.EquipmentManagerID),
			signerView(models.SlotRepairman, rec.RepairmanID),
			signerView(models.SlotTransportMechanic, rec.TransportMechanicID),
		},
		CreatedAt: rec.CreatedAt,
	}
	if rec.Equipment != nil {
		view.EquipmentName = rec.Equipment.Name
	}
	if rec.RepairRequestID != nil {
		view.RepairRequestID = *rec.RepairRequestID
	}
	view.Items = make([]AppraisalItemView, 0, len(rec.Items))
	for _, item := range rec.Items {
		itemView := AppraisalItemView{
			ID:               item.ID,
			MaterialID:       item.MaterialID,
			Quantity:         item.Quantity,
			TechnicalStatus:  string(item.TechnicalStatus),
			TreatmentMeasure: string(item.TreatmentMeasure),
			Note:             item.Note,
		}
		if item.Material != nil {
			itemView.MaterialName = item.Material.Name
		}
		view.Items = append(view.Items, itemView)
	}
	return view
}

// AppraisalItemsData replaces the line items of a detail appraisal.
type AppraisalItemsData struct {
	Items []AppraisalItemData `json:"items"`
}

type AppraisalItemData struct {
	MaterialID       string  `json:"material_id"`
	Quantity         float64 `json:"quantity"`
	TechnicalStatus  string  `json:"technical_status"`
	TreatmentMeasure string  `json:"treatment_measure"`
	Note             string  `json:"note"`
}

func (d AppraisalItemsData) Validate() error {
	if len(d.Items) == 0 {
		return errors.New("at least one item is required")
	}
	seen := map[string]bool{}
	for _, item := range d.Items {
		if item.MaterialID == "" {
			return errors.New("material id is required")
		}
		if item.Quantity <= 0 {
			return errors.New("quantity must be positive")
		}
		if seen[item.MaterialID] {
			return errors.Errorf("duplicate material line %v", item.MaterialID)
		}
		seen[item.MaterialID] = true
	}
	return nil
}
