package rolesign

import (
	"testing"

	"github.com/stretchr/testify/require"

	"equip-repair-backend/models"
)

func TestResolve(t *testing.T) {
	t.Run(`appraisal ballots share the four-signature set`, func(t *testing.T) {
		for _, ballotType := range []models.BallotType{models.BallotTypeTAB, models.BallotTypeDAB, models.BallotTypeARB} {
			slot, ok := Resolve(ballotType, models.RoleOperator)
			require.True(t, ok)
			require.Equal(t, models.SlotOperator, slot)

			slot, ok = Resolve(ballotType, models.RoleEquipmentManager)
			require.True(t, ok)
			require.Equal(t, models.SlotEquipmentManager, slot)

			slot, ok = Resolve(ballotType, models.RoleRepairman)
			require.True(t, ok)
			require.Equal(t, models.SlotRepairman, slot)

			slot, ok = Resolve(ballotType, models.RoleTransportMechanic)
			require.True(t, ok)
			require.Equal(t, models.SlotTransportMechanic, slot)

			_, ok = Resolve(ballotType, models.RoleAccountant)
			require.False(t, ok)
		}
	})

	t.Run(`supply ballot slots`, func(t *testing.T) {
		slot, ok := Resolve(models.BallotTypeMSB, models.RoleLeadWarehouse)
		require.True(t, ok)
		require.Equal(t, models.SlotLeadWarehouse, slot)

		slot, ok = Resolve(models.BallotTypeMSB, models.RoleReceiver)
		require.True(t, ok)
		require.Equal(t, models.SlotReceiver, slot)

		slot, ok = Resolve(models.BallotTypeMSB, models.RoleDeputyForeman)
		require.True(t, ok)
		require.Equal(t, models.SlotDeputyForeman, slot)

		slot, ok = Resolve(models.BallotTypeMSB, models.RoleTransportMechanic)
		require.True(t, ok)
		require.Equal(t, models.SlotTransportMechanic, slot)

		_, ok = Resolve(models.BallotTypeMSB, models.RoleOperator)
		require.False(t, ok)
	})

	t.Run(`assignment accepts the deputy director only`, func(t *testing.T) {
		slot, ok := Resolve(models.BallotTypeASB, models.RoleDeputyDirector)
		require.True(t, ok)
		require.Equal(t, models.SlotAssignBy, slot)

		_, ok = Resolve(models.BallotTypeASB, models.RoleForeman)
		require.False(t, ok)
	})

	t.Run(`quality assessment slots`, func(t *testing.T) {
		expected := map[models.PositionRole]models.SignerSlot{
			models.RoleLeadFirstPlan:   models.SlotLeadFirstPlan,
			models.RoleLeadTechnical:   models.SlotLeadTechnical,
			models.RoleWarehouseKeeper: models.SlotWarehouseKeeper,
			models.RoleDeputyDirector:  models.SlotDeputyDirector,
		}
		for role, expectedSlot := range expected {
			slot, ok := Resolve(models.BallotTypeQAB, role)
			require.True(t, ok)
			require.Equal(t, expectedSlot, slot)
		}
	})

	t.Run(`settlement slots`, func(t *testing.T) {
		expected := map[models.PositionRole]models.SignerSlot{
			models.RoleAccountant:     models.SlotAccountant,
			models.RoleDeputyForeman:  models.SlotDeputyForeman,
			models.RoleForeman:        models.SlotForeman,
			models.RoleDeputyDirector: models.SlotDeputyDirector,
		}
		for role, expectedSlot := range expected {
			slot, ok := Resolve(models.BallotTypeSRB, role)
			require.True(t, ok)
			require.Equal(t, expectedSlot, slot)
		}
	})

	t.Run(`unknown ballot type resolves nothing`, func(t *testing.T) {
		_, ok := Resolve(models.BallotType("unknown"), models.RoleOperator)
		require.False(t, ok)
	})
}

func TestResolveForSigner(t *testing.T) {
	userID := "user-1"
	otherID := "user-2"

	t.Run(`nominated manager signs the equipment_manager slot regardless of role`, func(t *testing.T) {
		for _, ballotType := range []models.BallotType{models.BallotTypeTAB, models.BallotTypeDAB, models.BallotTypeARB} {
			slot, ok := ResolveForSigner(ballotType, userID, models.RoleAccountant, &userID)
			require.True(t, ok)
			require.Equal(t, models.SlotEquipmentManager, slot)
		}
	})

	t.Run(`override does not apply to other users`, func(t *testing.T) {
		_, ok := ResolveForSigner(models.BallotTypeTAB, otherID, models.RoleAccountant, &userID)
		require.False(t, ok)
	})

	t.Run(`override does not apply to supply or settlement ballots`, func(t *testing.T) {
		_, ok := ResolveForSigner(models.BallotTypeMSB, userID, models.RoleAccountant, &userID)
		require.False(t, ok)

		slot, ok := ResolveForSigner(models.BallotTypeSRB, userID, models.RoleAccountant, &userID)
		require.True(t, ok)
		require.Equal(t, models.SlotAccountant, slot)
	})

	t.Run(`without nomination the role table decides`, func(t *testing.T) {
		slot, ok := ResolveForSigner(models.BallotTypeTAB, userID, models.RoleOperator, nil)
		require.True(t, ok)
		require.Equal(t, models.SlotOperator, slot)
	})
}

func TestRolesOf(t *testing.T) {
	t.Run(`fan-out roles cover every slot of the ballot`, func(t *testing.T) {
		roles := RolesOf(models.BallotTypeQAB)
		require.Len(t, roles, 4)
		require.ElementsMatch(t, []models.PositionRole{
			models.RoleLeadFirstPlan,
			models.RoleLeadTechnical,
			models.RoleWarehouseKeeper,
			models.RoleDeputyDirector,
		}, roles)
	})

	t.Run(`unknown ballot type fans out to nobody`, func(t *testing.T) {
		require.Empty(t, RolesOf(models.BallotType("unknown")))
	})
}
