package initializers

import (
	"context"

	"equip-repair-backend/config"
	"equip-repair-backend/fiberlog"
	audithandler "equip-repair-backend/lib/audit"
	authhandler "equip-repair-backend/lib/auth"
	arbhandler "equip-repair-backend/lib/ballots/arb"
	asbhandler "equip-repair-backend/lib/ballots/asb"
	dabhandler "equip-repair-backend/lib/ballots/dab"
	msbhandler "equip-repair-backend/lib/ballots/msb"
	qabhandler "equip-repair-backend/lib/ballots/qab"
	srbhandler "equip-repair-backend/lib/ballots/srb"
	tabhandler "equip-repair-backend/lib/ballots/tab"
	departmentprovider "equip-repair-backend/lib/dicts/department"
	equipmentprovider "equip-repair-backend/lib/dicts/equipment"
	materialprovider "equip-repair-backend/lib/dicts/material"
	positionprovider "equip-repair-backend/lib/dicts/position"
	xlsexport "equip-repair-backend/lib/export/xls"
	"equip-repair-backend/lib/ledger"
	repairrequesthandler "equip-repair-backend/lib/repair-request"
	repairhistoryhandler "equip-repair-backend/lib/repairhistory"
	usershandler "equip-repair-backend/lib/users"
	workitemhandler "equip-repair-backend/lib/workitem"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	audithandler.NewHandler()
	workitemhandler.NewHandler()
	repairhistoryhandler.NewHandler()
	ledger.NewHandler()
	departmentprovider.NewHandler()
	positionprovider.NewHandler()
	equipmentprovider.NewHandler()
	materialprovider.NewHandler()
	usershandler.NewHandler()
	authhandler.NewHandler()
	msbhandler.NewHandler()
	tabhandler.NewHandler()
	dabhandler.NewHandler()
	asbhandler.NewHandler()
	arbhandler.NewHandler()
	qabhandler.NewHandler()
	srbhandler.NewHandler()
	repairrequesthandler.NewHandler()
	xlsexport.NewHandler()
}
