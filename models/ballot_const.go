package models

// BallotType identifies one of the seven repair workflow documents.
type BallotType string

const (
	BallotTypeTAB BallotType = "technical_appraisal_ballot"
	BallotTypeDAB BallotType = "detail_appraisal_ballot"
	BallotTypeMSB BallotType = "material_supply_ballot"
	BallotTypeASB BallotType = "assignment_ballot"
	BallotTypeARB BallotType = "acceptance_repair_ballot"
	BallotTypeQAB BallotType = "quality_assessment_ballot"
	BallotTypeSRB BallotType = "settlement_repair_ballot"
)

var ballotTypeHumanName = map[BallotType]string{
	BallotTypeTAB: "Biên bản giám định kỹ thuật",
	BallotTypeDAB: "Biên bản giám định chi tiết",
	BallotTypeMSB: "Phiếu cấp vật tư",
	BallotTypeASB: "Phiếu giao việc",
	BallotTypeQAB: "Biên bản đánh giá chất lượng",
	BallotTypeARB: "Biên bản nghiệm thu",
	BallotTypeSRB: "Biên bản quyết toán",
}

func (t BallotType) ToHuman() string {
	if human, exist := ballotTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t BallotType) IsValid() bool {
	_, exist := ballotTypeHumanName[t]
	return exist
}

// AppraisalStatus is used by TAB, DAB and ARB.
type AppraisalStatus string

const (
	AppraisalStatusPending AppraisalStatus = "pending"
	AppraisalStatusDone    AppraisalStatus = "done"
)

// SupplyStatus is the MSB status enum.
type SupplyStatus string

const (
	SupplyStatusDraft      SupplyStatus = "draft"
	SupplyStatusPending    SupplyStatus = "pending"
	SupplyStatusInProgress SupplyStatus = "in_progress"
	SupplyStatusRejected   SupplyStatus = "rejected"
	SupplyStatusDone       SupplyStatus = "done"
)

// IsTerminal reports whether no further transition is allowed.
func (s SupplyStatus) IsTerminal() bool {
	return s == SupplyStatusRejected || s == SupplyStatusDone
}

// IsCounted reports whether the ballot participates in reconciliation,
// rejected and draft ballots are excluded from the ledger.
func (s SupplyStatus) IsCounted() bool {
	return s == SupplyStatusPending || s == SupplyStatusInProgress || s == SupplyStatusDone
}

// AssessmentStatus is shared by QAB and SRB.
type AssessmentStatus string

const (
	AssessmentStatusPending    AssessmentStatus = "pending"
	AssessmentStatusInProgress AssessmentStatus = "in_progress"
	AssessmentStatusApproved   AssessmentStatus = "approved"
	AssessmentStatusRejected   AssessmentStatus = "rejected"
)

func (s AssessmentStatus) IsTerminal() bool {
	return s == AssessmentStatusApproved || s == AssessmentStatusRejected
}

// AssignStatus is the ASB status enum.
type AssignStatus string

const (
	AssignStatusPending    AssignStatus = "pending"
	AssignStatusInProgress AssignStatus = "in_progress"
	AssignStatusDone       AssignStatus = "done"
	AssignStatusRejected   AssignStatus = "rejected"
)

func (s AssignStatus) IsTerminal() bool {
	return s == AssignStatusDone || s == AssignStatusRejected
}

// RepairStatus is used by RepairRequest and RepairHistory.
type RepairStatus string

const (
	RepairStatusPending RepairStatus = "pending"
	RepairStatusDone    RepairStatus = "done"
)

type EquipmentStatus string

const (
	EquipmentStatusActive      EquipmentStatus = "active"
	EquipmentStatusUnderRepair EquipmentStatus = "under_repair"
	EquipmentStatusInactive    EquipmentStatus = "inactive"
)
