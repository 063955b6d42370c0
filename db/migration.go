package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "equip-repair-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	tables := []struct {
		name  string
		model interface{}
	}{
		{"Department", &dbmodels.Department{}},
		{"Position", &dbmodels.Position{}},
		{"User", &dbmodels.User{}},
		{"Equipment", &dbmodels.Equipment{}},
		{"Material", &dbmodels.Material{}},
		{"RepairRequest", &dbmodels.RepairRequest{}},
		{"RepairHistory", &dbmodels.RepairHistory{}},
		{"TechnicalAppraisalBallot", &dbmodels.TechnicalAppraisalBallot{}},
		{"DetailAppraisalBallot", &dbmodels.DetailAppraisalBallot{}},
		{"DetailAppraisalItem", &dbmodels.DetailAppraisalItem{}},
		{"MaterialSupplyBallot", &dbmodels.MaterialSupplyBallot{}},
		{"MaterialSupplyDetail", &dbmodels.MaterialSupplyDetail{}},
		{"AssignmentBallot", &dbmodels.AssignmentBallot{}},
		{"AcceptanceBallot", &dbmodels.AcceptanceBallot{}},
		{"QualityAssessmentBallot", &dbmodels.QualityAssessmentBallot{}},
		{"QualityAssessmentItem", &dbmodels.QualityAssessmentItem{}},
		{"SettlementRepairBallot", &dbmodels.SettlementRepairBallot{}},
		{"SettlementMaterialLine", &dbmodels.SettlementMaterialLine{}},
		{"WorkItem", &dbmodels.WorkItem{}},
		{"BallotAudit", &dbmodels.BallotAudit{}},
	}
	for _, table := range tables {
		if err := DB.AutoMigrate(table.model); err != nil {
			return errors.Wrapf(err, "migration failed for %s", table.name)
		}
	}
	// one open repair attempt per equipment
	if err := DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_repair_request_pending ON repair_requests (equipment_id) WHERE status = 'pending'").Error; err != nil {
		return errors.Wrap(err, "migration failed for repair request pending index")
	}
	log.Info("migrations done")
	return nil
}
