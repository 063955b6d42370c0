package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSupplyReason(t *testing.T) {
	t.Run(`appraisal pair derives from the reason`, func(t *testing.T) {
		measure, status := SupplyReasonReplace.DeriveAppraisal()
		require.Equal(t, TreatmentReplace, measure)
		require.Equal(t, TechnicalBroken, status)

		measure, status = SupplyReasonRepair.DeriveAppraisal()
		require.Equal(t, TreatmentRepair, measure)
		require.Equal(t, TechnicalNeedRecover, status)

		measure, status = SupplyReasonReuse.DeriveAppraisal()
		require.Equal(t, TreatmentReuse, measure)
		require.Equal(t, TechnicalGood, status)
	})

	t.Run(`validation`, func(t *testing.T) {
		require.True(t, SupplyReasonReplace.IsValid())
		require.True(t, SupplyReasonRepair.IsValid())
		require.True(t, SupplyReasonReuse.IsValid())
		require.False(t, SupplyReason("khác").IsValid())
	})
}
