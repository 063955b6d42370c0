package qabhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"equip-repair-backend/lib/utils/errs"
	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

func TestFinalApproveGuard(t *testing.T) {
	userID := "user-1"
	signed := func() *dbmodels.QualityAssessmentBallot {
		return &dbmodels.QualityAssessmentBallot{
			Status:            models.AssessmentStatusInProgress,
			LeadFirstPlanID:   &userID,
			LeadTechnicalID:   &userID,
			WarehouseKeeperID: &userID,
			DeputyDirectorID:  &userID,
		}
	}

	t.Run(`passes on a fully signed ballot`, func(t *testing.T) {
		require.NoError(t, finalApproveGuard(signed()))
	})

	t.Run(`missing ballot is not found`, func(t *testing.T) {
		require.True(t, errs.IsNotFound(finalApproveGuard(nil)))
	})

	t.Run(`terminal status is a conflict`, func(t *testing.T) {
		rec := signed()
		rec.Status = models.AssessmentStatusApproved
		require.True(t, errs.IsConflict(finalApproveGuard(rec)))
	})

	t.Run(`missing signature fails validation`, func(t *testing.T) {
		rec := signed()
		rec.LeadFirstPlanID = nil
		err := finalApproveGuard(rec)
		require.Error(t, err)
		require.True(t, errs.IsValidation(err))
	})
}
