package dbmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"equip-repair-backend/models"
)

func TestTechnicalAppraisalSigning(t *testing.T) {
	t.Run(`four signatures complete the ballot`, func(t *testing.T) {
		rec := TechnicalAppraisalBallot{}
		require.False(t, rec.IsFullySigned())

		require.Nil(t, rec.SetSigner(models.SlotOperator, "u1"))
		require.Nil(t, rec.SetSigner(models.SlotEquipmentManager, "u2"))
		require.Nil(t, rec.SetSigner(models.SlotRepairman, "u3"))
		require.False(t, rec.IsFullySigned())

		require.Nil(t, rec.SetSigner(models.SlotTransportMechanic, "u4"))
		require.True(t, rec.IsFullySigned())
		require.Equal(t, "u1", *rec.SignerOf(models.SlotOperator))
	})

	t.Run(`a signed field cannot be overwritten`, func(t *testing.T) {
		rec := TechnicalAppraisalBallot{}
		require.Nil(t, rec.SetSigner(models.SlotOperator, "u1"))

		err := rec.SetSigner(models.SlotOperator, "u2")
		require.NotNil(t, err)
		require.Equal(t, "u1", *rec.OperatorID)
	})

	t.Run(`slots of other ballot variants are rejected`, func(t *testing.T) {
		rec := TechnicalAppraisalBallot{}
		require.NotNil(t, rec.SetSigner(models.SlotAccountant, "u1"))
		require.Nil(t, rec.SignerOf(models.SlotAccountant))
	})
}

func TestMaterialSupplySigning(t *testing.T) {
	t.Run(`supply ballot slot set`, func(t *testing.T) {
		rec := MaterialSupplyBallot{}
		require.Nil(t, rec.SetSigner(models.SlotLeadWarehouse, "u1"))
		require.Nil(t, rec.SetSigner(models.SlotReceiver, "u2"))
		require.Nil(t, rec.SetSigner(models.SlotDeputyForeman, "u3"))
		require.Nil(t, rec.SetSigner(models.SlotTransportMechanic, "u4"))
		require.True(t, rec.IsFullySigned())

		require.NotNil(t, rec.SetSigner(models.SlotOperator, "u5"))
	})

	t.Run(`approved quantity falls back to the request before approval`, func(t *testing.T) {
		detail := MaterialSupplyDetail{QuantityRequest: 5}
		require.Equal(t, 5.0, detail.ApprovedQuantity())

		detail.QuantityApprove = 3
		require.Equal(t, 3.0, detail.ApprovedQuantity())
	})
}

func TestAssignmentChain(t *testing.T) {
	t.Run(`chain requires both confirmations`, func(t *testing.T) {
		assigner := "u1"
		deputy := "u2"
		lead := "u3"
		now := time.Now()

		rec := AssignmentBallot{AssignByID: &assigner, DelegatedToID: &deputy, LeadID: &lead}
		require.False(t, rec.ChainComplete())

		rec.DeputyApprovedAt = &now
		require.False(t, rec.ChainComplete())

		rec.LeadApprovedAt = &now
		require.True(t, rec.ChainComplete())
	})
}

func TestQualityAssessmentSigning(t *testing.T) {
	t.Run(`management slot set`, func(t *testing.T) {
		rec := QualityAssessmentBallot{}
		require.Nil(t, rec.SetSigner(models.SlotLeadFirstPlan, "u1"))
		require.Nil(t, rec.SetSigner(models.SlotLeadTechnical, "u2"))
		require.Nil(t, rec.SetSigner(models.SlotWarehouseKeeper, "u3"))
		require.False(t, rec.IsFullySigned())

		require.Nil(t, rec.SetSigner(models.SlotDeputyDirector, "u4"))
		require.True(t, rec.IsFullySigned())
	})
}

func TestSettlementSigning(t *testing.T) {
	t.Run(`settlement slot set`, func(t *testing.T) {
		rec := SettlementRepairBallot{}
		require.Nil(t, rec.SetSigner(models.SlotDeputyForeman, "u1"))
		require.Nil(t, rec.SetSigner(models.SlotForeman, "u2"))
		require.Nil(t, rec.SetSigner(models.SlotAccountant, "u3"))
		require.Nil(t, rec.SetSigner(models.SlotDeputyDirector, "u4"))
		require.True(t, rec.IsFullySigned())

		require.NotNil(t, rec.SetSigner(models.SlotForeman, "u5"))
	})
}
