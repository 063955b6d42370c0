package models

// SupplyReason is the per-line reason on a material supply ballot. It also
// determines the treatment measure and technical status seeded into the
// detail appraisal ballot.
type SupplyReason string

const (
	SupplyReasonReplace SupplyReason = "Thay mới"
	SupplyReasonRepair  SupplyReason = "Sửa chữa"
	SupplyReasonReuse   SupplyReason = "Dùng lại"
)

func (r SupplyReason) IsValid() bool {
	switch r {
	case SupplyReasonReplace, SupplyReasonRepair, SupplyReasonReuse:
		return true
	}
	return false
}

// TreatmentMeasure derived from the supply reason.
type TreatmentMeasure string

const (
	TreatmentReplace TreatmentMeasure = "Thay mới"
	TreatmentRepair  TreatmentMeasure = "Sửa chữa"
	TreatmentReuse   TreatmentMeasure = "Dùng lại"
)

// TechnicalStatus derived from the supply reason.
type TechnicalStatus string

const (
	TechnicalBroken      TechnicalStatus = "Hư hỏng"
	TechnicalNeedRecover TechnicalStatus = "Cần phục hồi"
	TechnicalGood        TechnicalStatus = "Đảm bảo"
)

// DeriveAppraisal maps a supply reason to the pair written into detail
// appraisal items.
func (r SupplyReason) DeriveAppraisal() (TreatmentMeasure, TechnicalStatus) {
	switch r {
	case SupplyReasonRepair:
		return TreatmentRepair, TechnicalNeedRecover
	case SupplyReasonReuse:
		return TreatmentReuse, TechnicalGood
	default:
		return TreatmentReplace, TechnicalBroken
	}
}
