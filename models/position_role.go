package models

// PositionRole is the canonical organizational role of a user, resolved
// once at the auth boundary from the position dictionary code.
type PositionRole string

const (
	RoleOperator          PositionRole = "OPERATOR"
	RoleEquipmentManager  PositionRole = "EQUIPMENT_MANAGER"
	RoleRepairman         PositionRole = "REPAIRMAN"
	RoleTransportMechanic PositionRole = "TRANSPORT_MECHANIC"
	RoleLeadWarehouse     PositionRole = "LEAD_WAREHOUSE"
	RoleReceiver          PositionRole = "RECEIVER"
	RoleDeputyForeman     PositionRole = "DEPUTY_FOREMAN"
	RoleForeman           PositionRole = "FOREMAN"
	RoleDeputyDirector    PositionRole = "DEPUTY_DIRECTOR"
	RoleLeadFirstPlan     PositionRole = "LEAD_FIRST_PLAN"
	RoleLeadTechnical     PositionRole = "LEAD_TECHNICAL"
	RoleWarehouseKeeper   PositionRole = "WAREHOUSE_KEEPER"
	RoleAccountant        PositionRole = "ACCOUNTANT"
)

var roleHumanName = map[PositionRole]string{
	RoleOperator:          "Người vận hành",
	RoleEquipmentManager:  "Người quản lý thiết bị",
	RoleRepairman:         "Thợ sửa chữa",
	RoleTransportMechanic: "Cơ khí vận tải",
	RoleLeadWarehouse:     "Trưởng kho",
	RoleReceiver:          "Người nhận vật tư",
	RoleDeputyForeman:     "Phó quản đốc",
	RoleForeman:           "Quản đốc",
	RoleDeputyDirector:    "Phó giám đốc",
	RoleLeadFirstPlan:     "Trưởng phòng kế hoạch",
	RoleLeadTechnical:     "Trưởng phòng kỹ thuật",
	RoleWarehouseKeeper:   "Thủ kho",
	RoleAccountant:        "Kế toán",
}

func (r PositionRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r PositionRole) IsValid() bool {
	_, exist := roleHumanName[r]
	return exist
}

// positionAliases maps legacy dictionary codes onto canonical roles, some
// dictionaries were imported with several codes for the same position.
var positionAliases = map[string]PositionRole{
	"VAN_HANH":        RoleOperator,
	"QL_THIET_BI":     RoleEquipmentManager,
	"SUA_CHUA":        RoleRepairman,
	"CK_VAN_TAI":      RoleTransportMechanic,
	"TRUONG_KHO":      RoleLeadWarehouse,
	"NGUOI_NHAN":      RoleReceiver,
	"PHO_QUAN_DOC":    RoleDeputyForeman,
	"QUAN_DOC":        RoleForeman,
	"PHO_GIAM_DOC":    RoleDeputyDirector,
	"TP_KE_HOACH":     RoleLeadFirstPlan,
	"TP_KY_THUAT":     RoleLeadTechnical,
	"THU_KHO":         RoleWarehouseKeeper,
	"KE_TOAN":         RoleAccountant,
}

// PositionCodes returns every dictionary code mapped onto the role, the
// canonical code plus legacy aliases. Used for user lookups by role.
func PositionCodes(role PositionRole) []string {
	codes := []string{string(role)}
	for code, aliased := range positionAliases {
		if aliased == role {
			codes = append(codes, code)
		}
	}
	return codes
}

// ResolvePositionRole canonicalizes a position dictionary code. Codes that
// already match a canonical role pass through unchanged.
func ResolvePositionRole(code string) (PositionRole, bool) {
	role := PositionRole(code)
	if role.IsValid() {
		return role, true
	}
	if alias, exist := positionAliases[code]; exist {
		return alias, true
	}
	return "", false
}
