package repairapimodels

import (
	"time"

	"github.com/pkg/errors"

	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type AcceptanceBallotView struct {
	ID              string       `json:"id"`
	EquipmentID     string       `json:"equipment_id"`
	EquipmentName   string       `json:"equipment_name,omitempty"`
	RepairRequestID string       `json:"repair_request_id,omitempty"`
	Status          string       `json:"status"`
	Conclusion      string       `json:"conclusion,omitempty"`
	TestRunNotes    []string     `json:"test_run_notes,omitempty"`
	Signers         []SignerView `json:"signers"`
	CreatedAt       time.Time    `json:"created_at"`
}

func AcceptanceBallotConvert(rec dbmodels.AcceptanceBallot) AcceptanceBallotView {
	view := AcceptanceBallotView{
		ID:           rec.ID,
		EquipmentID:  rec.EquipmentID,
		Status:       string(rec.Status),
		Conclusion:   rec.Conclusion,
		TestRunNotes: rec.TestRunNotes,
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

// AcceptanceSignData optionally carries the conclusion and a test run
// note together with the signature.
type AcceptanceSignData struct {
	Conclusion  string `json:"conclusion"`
	TestRunNote string `json:"test_run_note"`
}

type QualityBallotView struct {
	ID              string            `json:"id"`
	EquipmentID     string            `json:"equipment_id"`
	EquipmentName   string            `json:"equipment_name,omitempty"`
	RepairRequestID string            `json:"repair_request_id,omitempty"`
	Status          string            `json:"status"`
	Conclusion      string            `json:"conclusion,omitempty"`
	ScrapQuantity   float64           `json:"scrap_quantity"`
	Signers         []SignerView      `json:"signers"`
	ApprovedBy      string            `json:"approved_by,omitempty"`
	RejectReason    string            `json:"reject_reason,omitempty"`
	Items           []QualityItemView `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
}

type QualityItemView struct {
	ID           string  `json:"id"`
	MaterialID   string  `json:"material_id"`
	MaterialName string  `json:"material_name,omitempty"`
	Quantity     float64 `json:"quantity"`
	Quality      string  `json:"quality,omitempty"`
	Note         string  `json:"note,omitempty"`
}

func QualityBallotConvert(rec dbmodels.QualityAssessmentBallot) QualityBallotView {
	view := QualityBallotView{
		ID:            rec.ID,
		EquipmentID:   rec.EquipmentID,
		Status:        string(rec.Status),
		Conclusion:    rec.Conclusion,
		ScrapQuantity: rec.ScrapQuantity,
		Signers: []SignerView{
			signerView(models.SlotLeadFirstPlan, rec.LeadFirstPlanID),
			signerView(models.SlotLeadTechnical, rec.LeadTechnicalID),
			signerView(models.SlotWarehouseKeeper, rec.WarehouseKeeperID),
			signerView(models.SlotDeputyDirector, rec.DeputyDirectorID),
		},
		RejectReason: rec.RejectReason,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.Equipment != nil {
		view.EquipmentName = rec.Equipment.Name
	}
	if rec.RepairRequestID != nil {
		view.RepairRequestID = *rec.RepairRequestID
	}
	if rec.ApprovedBy != nil {
		view.ApprovedBy = *rec.ApprovedBy
	}
	view.Items = make([]QualityItemView, 0, len(rec.Items))
	for _, item := range rec.Items {
		itemView := QualityItemView{
			ID:         item.ID,
			MaterialID: item.MaterialID,
			Quantity:   item.Quantity,
			Quality:    item.Quality,
			Note:       item.Note,
		}
		if item.Material != nil {
			itemView.MaterialName = item.Material.Name
		}
		view.Items = append(view.Items, itemView)
	}
	return view
}

// QualityItemsData replaces the assessed material lines of a quality
// ballot.
type QualityItemsData struct {
	Conclusion string            `json:"conclusion"`
	Items      []QualityItemData `json:"items"`
}

type QualityItemData struct {
	MaterialID string  `json:"material_id"`
	Quantity   float64 `json:"quantity"`
	Quality    string  `json:"quality"`
	Note       string  `json:"note"`
}

func (d QualityItemsData) Validate() error {
	if len(d.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for _, item := range d.Items {
		if item.MaterialID == "" {
			return errors.New("material id is required")
		}
		if item.Quantity < 0 {
			return errors.New("quantity must not be negative")
		}
	}
	return nil
}

type SettlementBallotView struct {
	ID              string               `json:"id"`
	EquipmentID     string               `json:"equipment_id"`
	EquipmentName   string               `json:"equipment_name,omitempty"`
	RepairRequestID string               `json:"repair_request_id,omitempty"`
	Status          string               `json:"status"`
	ScrapQuantity   float64              `json:"scrap_quantity"`
	TotalCost       float64              `json:"total_cost"`
	Signers         []SignerView         `json:"signers"`
	Lines           []SettlementLineView `json:"lines"`
	CreatedAt       time.Time            `json:"created_at"`
}

type SettlementLineView struct {
	ID               string  `json:"id"`
	MaterialID       string  `json:"material_id"`
	MaterialName     string  `json:"material_name,omitempty"`
	QuantitySupplied float64 `json:"quantity_supplied"`
	Reason           string  `json:"reason,omitempty"`
	Cost             float64 `json:"cost"`
}

func SettlementBallotConvert(rec dbmodels.SettlementRepairBallot) SettlementBallotView {
	view := SettlementBallotView{
		ID:            rec.ID,
		EquipmentID:   rec.EquipmentID,
		Status:        string(rec.Status),
		ScrapQuantity: rec.ScrapQuantity,
		TotalCost:     rec.TotalCost,
		Signers: []SignerView{
			signerView(models.SlotAccountant, rec.AccountantID),
			signerView(models.SlotDeputyForeman, rec.DeputyForemanID),
			signerView(models.SlotForeman, rec.ForemanID),
			signerView(models.SlotDeputyDirector, rec.DeputyDirectorID),
		},
		CreatedAt: rec.CreatedAt,
	}
	if rec.Equipment != nil {
		view.EquipmentName = rec.Equipment.Name
	}
	if rec.RepairRequestID != nil {
		view.RepairRequestID = *rec.RepairRequestID
	}
	view.Lines = make([]SettlementLineView, 0, len(rec.Lines))
	for _, line := range rec.Lines {
		lineView := SettlementLineView{
			ID:               line.ID,
			MaterialID:       line.MaterialID,
			QuantitySupplied: line.QuantitySupplied,
			Reason:           string(line.Reason),
			Cost:             line.Cost,
		}
		if line.Material != nil {
			lineView.MaterialName = line.Material.Name
		}
		view.Lines = append(view.Lines, lineView)
	}
	return view
}
