package models

// SignerSlot names one signature field on a ballot. Each ballot variant
// accepts its own subset, assignment goes through the ballot's SetSigner
// switch so an unknown slot is a compile-time visible branch, not a
// dynamic property write.
type SignerSlot string

const (
	SlotOperator          SignerSlot = "operator"
	SlotEquipmentManager  SignerSlot = "equipment_manager"
	SlotRepairman         SignerSlot = "repairman"
	SlotTransportMechanic SignerSlot = "transport_mechanic"

	SlotLeadWarehouse SignerSlot = "lead_warehouse"
	SlotReceiver      SignerSlot = "receiver"
	SlotDeputyForeman SignerSlot = "deputy_foreman"

	SlotAssignBy SignerSlot = "assign_by"

	SlotLeadFirstPlan   SignerSlot = "lead_first_plan"
	SlotLeadTechnical   SignerSlot = "lead_technical"
	SlotWarehouseKeeper SignerSlot = "warehouse_keeper"
	SlotDeputyDirector  SignerSlot = "deputy_director"

	SlotAccountant SignerSlot = "accountant"
	SlotForeman    SignerSlot = "foreman"
)
