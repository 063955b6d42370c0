package rolesign

import (
	"equip-repair-backend/models"
)

// Sign maps are fixed per ballot type. TAB, DAB and ARB carry the same
// four slots but keep separate tables, the sets are not guaranteed to
// stay identical.
var technicalAppraisalSignMap = map[models.PositionRole]models.SignerSlot{
	models.RoleOperator:          models.SlotOperator,
	models.RoleEquipmentManager:  models.SlotEquipmentManager,
	models.RoleRepairman:         models.SlotRepairman,
	models.RoleTransportMechanic: models.SlotTransportMechanic,
}

var detailAppraisalSignMap = map[models.PositionRole]models.SignerSlot{
	models.RoleOperator:          models.SlotOperator,
	models.RoleEquipmentManager:  models.SlotEquipmentManager,
	models.RoleRepairman:         models.SlotRepairman,
	models.RoleTransportMechanic: models.SlotTransportMechanic,
}

var acceptanceSignMap = map[models.PositionRole]models.SignerSlot{
	models.RoleOperator:          models.SlotOperator,
	models.RoleEquipmentManager:  models.SlotEquipmentManager,
	models.RoleRepairman:         models.SlotRepairman,
	models.RoleTransportMechanic: models.SlotTransportMechanic,
}

var materialSupplySignMap = map[models.PositionRole]models.SignerSlot{
	models.RoleLeadWarehouse:     models.SlotLeadWarehouse,
	models.RoleReceiver:          models.SlotReceiver,
	models.RoleDeputyForeman:     models.SlotDeputyForeman,
	models.RoleTransportMechanic: models.SlotTransportMechanic,
}

var assignmentSignMap = map[models.PositionRole]models.SignerSlot{
	models.RoleDeputyDirector: models.SlotAssignBy,
}

var qualityAssessmentSignMap = map[models.PositionRole]models.SignerSlot{
	models.RoleLeadFirstPlan:   models.SlotLeadFirstPlan,
	models.RoleLeadTechnical:   models.SlotLeadTechnical,
	models.RoleWarehouseKeeper: models.SlotWarehouseKeeper,
	models.RoleDeputyDirector:  models.SlotDeputyDirector,
}

var settlementRepairBallotSignMap = map[models.PositionRole]models.SignerSlot{
	models.RoleAccountant:     models.SlotAccountant,
	models.RoleDeputyForeman:  models.SlotDeputyForeman,
	models.RoleForeman:        models.SlotForeman,
	models.RoleDeputyDirector: models.SlotDeputyDirector,
}

func signMapOf(ballotType models.BallotType) map[models.PositionRole]models.SignerSlot {
	switch ballotType {
	case models.BallotTypeTAB:
		return technicalAppraisalSignMap
	case models.BallotTypeDAB:
		return detailAppraisalSignMap
	case models.BallotTypeARB:
		return acceptanceSignMap
	case models.BallotTypeMSB:
		return materialSupplySignMap
	case models.BallotTypeASB:
		return assignmentSignMap
	case models.BallotTypeQAB:
		return qualityAssessmentSignMap
	case models.BallotTypeSRB:
		return settlementRepairBallotSignMap
	}
	return nil
}

// Resolve returns the signer slot the given role fills on the given
// ballot type.
func Resolve(ballotType models.BallotType, role models.PositionRole) (models.SignerSlot, bool) {
	signMap := signMapOf(ballotType)
	if signMap == nil {
		return "", false
	}
	slot, exist := signMap[role]
	return slot, exist
}

// RolesOf returns every role with a slot on the given ballot type, used
// for work-item fan-out.
func RolesOf(ballotType models.BallotType) []models.PositionRole {
	signMap := signMapOf(ballotType)
	roles := make([]models.PositionRole, 0, len(signMap))
	for role := range signMap {
		roles = append(roles, role)
	}
	return roles
}

// ResolveForSigner applies the nominated equipment-manager override
// before the table lookup: on appraisal and acceptance ballots the user
// nominated on the related supply ballot signs the equipment_manager
// slot regardless of their position code.
func ResolveForSigner(ballotType models.BallotType, userID string, role models.PositionRole, nominatedManagerID *string) (models.SignerSlot, bool) {
	if hasManagerOverride(ballotType) &&
		nominatedManagerID != nil && *nominatedManagerID == userID {
		return models.SlotEquipmentManager, true
	}
	return Resolve(ballotType, role)
}

func hasManagerOverride(ballotType models.BallotType) bool {
	switch ballotType {
	case models.BallotTypeTAB, models.BallotTypeDAB, models.BallotTypeARB:
		return true
	}
	return false
}
