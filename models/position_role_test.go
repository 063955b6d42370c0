package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePositionRole(t *testing.T) {
	t.Run(`canonical codes pass through`, func(t *testing.T) {
		role, ok := ResolvePositionRole("OPERATOR")
		require.True(t, ok)
		require.Equal(t, RoleOperator, role)
	})

	t.Run(`legacy aliases canonicalize`, func(t *testing.T) {
		cases := map[string]PositionRole{
			"VAN_HANH":     RoleOperator,
			"QL_THIET_BI":  RoleEquipmentManager,
			"PHO_QUAN_DOC": RoleDeputyForeman,
			"KE_TOAN":      RoleAccountant,
		}
		for code, expected := range cases {
			role, ok := ResolvePositionRole(code)
			require.True(t, ok, code)
			require.Equal(t, expected, role, code)
		}
	})

	t.Run(`unknown code is rejected`, func(t *testing.T) {
		_, ok := ResolvePositionRole("JANITOR")
		require.False(t, ok)
	})
}

func TestPositionCodes(t *testing.T) {
	t.Run(`codes include the canonical code and aliases`, func(t *testing.T) {
		codes := PositionCodes(RoleOperator)
		require.Contains(t, codes, "OPERATOR")
		require.Contains(t, codes, "VAN_HANH")
	})
}

func TestPositionRoleToHuman(t *testing.T) {
	t.Run(`known role translates`, func(t *testing.T) {
		require.Equal(t, "Kế toán", RoleAccountant.ToHuman())
	})

	t.Run(`unknown role falls back to the raw code`, func(t *testing.T) {
		require.Equal(t, "X", PositionRole("X").ToHuman())
	})
}
