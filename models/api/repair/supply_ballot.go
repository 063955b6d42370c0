package repairapimodels

import (
	"time"

	"github.com/pkg/errors"

	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type SupplyBallotCreateData struct {
	EquipmentID            string             `json:"equipment_id"`
	EquipmentManagerUserID string             `json:"equipment_manager_user_id"`
	Reason                 string             `json:"reason"`
	Details                []SupplyDetailData `json:"details"`
	AsDraft                bool               `json:"as_draft"`
}

func (d SupplyBallotCreateData) Validate() error {
	if d.EquipmentID == "" {
		return errors.New("equipment id is required")
	}
	if len(d.Details) == 0 {
		return errors.New("at least one material line is required")
	}
	seen := map[string]bool{}
	for _, item := range d.Details {
		if err := item.Validate(); err != nil {
			return err
		}
		if seen[item.MaterialID] {
			return errors.Errorf("duplicate material line %v", item.MaterialID)
		}
		seen[item.MaterialID] = true
	}
	return nil
}

type SupplyDetailData struct {
	MaterialID      string  `json:"material_id"`
	QuantityRequest float64 `json:"quantity_request"`
	Reason          string  `json:"reason"`
}

func (d SupplyDetailData) Validate() error {
	if d.MaterialID == "" {
		return errors.New("material id is required")
	}
	if d.QuantityRequest <= 0 {
		return errors.New("requested quantity must be positive")
	}
	if !models.SupplyReason(d.Reason).IsValid() {
		return errors.Errorf("unknown supply reason %q", d.Reason)
	}
	return nil
}

// SupplyAdjustData carries approved/supplied quantity adjustments for
// approve and sign_adjust operations.
type SupplyAdjustData struct {
	Items []SupplyAdjustItem `json:"items"`
}

type SupplyAdjustItem struct {
	DetailID         string  `json:"detail_id"`
	QuantityApprove  float64 `json:"quantity_approve"`
	QuantitySupplies float64 `json:"quantity_supplies"`
}

func (d SupplyAdjustData) Validate() error {
	for _, item := range d.Items {
		if item.DetailID == "" {
			return errors.New("detail id is required")
		}
		if item.QuantityApprove < 0 || item.QuantitySupplies < 0 {
			return errors.New("quantities must not be negative")
		}
	}
	return nil
}

type RejectData struct {
	Reason string `json:"reason"`
}

func (d RejectData) Validate() error {
	if d.Reason == "" {
		return errors.New("reject reason is required")
	}
	return nil
}

type SupplyBallotView struct {
	ID                     string             `json:"id"`
	EquipmentID            string             `json:"equipment_id"`
	EquipmentName          string             `json:"equipment_name,omitempty"`
	RepairRequestID        string             `json:"repair_request_id,omitempty"`
	Status                 string             `json:"status"`
	Reason                 string             `json:"reason,omitempty"`
	EquipmentManagerUserID string             `json:"equipment_manager_user_id,omitempty"`
	Signers                []SignerView       `json:"signers"`
	ApprovedBy             string             `json:"approved_by,omitempty"`
	RejectReason           string             `json:"reject_reason,omitempty"`
	Details                []SupplyDetailView `json:"details"`
	CreatedAt              time.Time          `json:"created_at"`
}

type SupplyDetailView struct {
	ID               string  `json:"id"`
	MaterialID       string  `json:"material_id"`
	MaterialCode     string  `json:"material_code,omitempty"`
	MaterialName     string  `json:"material_name,omitempty"`
	Unit             string  `json:"unit,omitempty"`
	QuantityRequest  float64 `json:"quantity_request"`
	QuantityApprove  float64 `json:"quantity_approve"`
	QuantitySupplies float64 `json:"quantity_supplies"`
	Reason           string  `json:"reason"`
}

type SignerView struct {
	Slot   string `json:"slot"`
	UserID string `json:"user_id,omitempty"`
}

func signerView(slot models.SignerSlot, userID *string) SignerView {
	view := SignerView{Slot: string(slot)}
	if userID != nil {
		view.UserID = *userID
	}
	return view
}

func SupplyBallotConvert(rec dbmodels.MaterialSupplyBallot) SupplyBallotView {
	view := SupplyBallotView{
		ID:          rec.ID,
		EquipmentID: rec.EquipmentID,
		Status:      string(rec.Status),
		Reason:      rec.Reason,
		Signers: []SignerView{
			signerView(models.SlotLeadWarehouse, rec.LeadWarehouseID),
			signerView(models.SlotReceiver, rec.ReceiverID),
			signerView(models.SlotDeputyForeman, rec.DeputyForemanID),
			signerView(models.SlotTransportMechanic, rec.TransportMechanicID),
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
	if rec.EquipmentManagerUserID != nil {
		view.EquipmentManagerUserID = *rec.EquipmentManagerUserID
	}
	if rec.ApprovedBy != nil {
		view.ApprovedBy = *rec.ApprovedBy
	}
	view.Details = make([]SupplyDetailView, 0, len(rec.Details))
	for _, detail := range rec.Details {
		view.Details = append(view.Details, SupplyDetailConvert(detail))
	}
	return view
}

func SupplyDetailConvert(rec dbmodels.MaterialSupplyDetail) SupplyDetailView {
	view := SupplyDetailView{
		ID:               rec.ID,
		MaterialID:       rec.MaterialID,
		QuantityRequest:  rec.QuantityRequest,
		QuantityApprove:  rec.QuantityApprove,
		QuantitySupplies: rec.QuantitySupplies,
		Reason:           string(rec.Reason),
	}
	if rec.Material != nil {
		view.MaterialCode = rec.Material.Code
		view.MaterialName = rec.Material.Name
		view.Unit = rec.Material.Unit
	}
	return view
}

// PrepareSupplyView is returned before creating a supply ballot for an
// equipment, reporting whether a repair is already open and which
// quantities remain to be supplied.
type PrepareSupplyView struct {
	EquipmentID     string              `json:"equipment_id"`
	HasOpenRequest  bool                `json:"has_open_request"`
	RepairRequestID string              `json:"repair_request_id,omitempty"`
	RemainingItems  []RemainingItemView `json:"remaining_items,omitempty"`
}

type RemainingItemView struct {
	MaterialID       string  `json:"material_id"`
	MaterialCode     string  `json:"material_code,omitempty"`
	MaterialName     string  `json:"material_name,omitempty"`
	QuantityApproved float64 `json:"quantity_approved"`
	QuantitySupplied float64 `json:"quantity_supplied"`
	Remaining        float64 `json:"remaining"`
	Reason           string  `json:"reason,omitempty"`
}

type SupplyBallotFilter struct {
	Pagination struct {
		Limit int `json:"limit"`
		Page  int `json:"page"`
	} `json:"pagination"`
	EquipmentID string `json:"equipment_id"`
	Status      string `json:"status"`
}
