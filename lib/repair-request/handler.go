package repairrequesthandler

import (
	"bytes"

	"equip-repair-backend/db"
	repairrequeststore "equip-repair-backend/lib/repair-request/store"
	repairhistoryhandler "equip-repair-backend/lib/repairhistory"
	"equip-repair-backend/lib/utils/errs"
	xlsexport "equip-repair-backend/lib/export/xls"
	repairapimodels "equip-repair-backend/models/api/repair"
)

type Provider interface {
	GetByID(id string) (*repairapimodels.RepairRequestView, error)
	List(filter repairapimodels.RepairRequestFilter) (list []repairapimodels.RepairRequestView, rowCount int64, err error)
	// History returns the aggregated repair history, all equipment when
	// equipmentID is empty.
	History(equipmentID string) ([]repairapimodels.RepairHistoryView, error)
	// Export renders the repair history as an xlsx workbook.
	Export(equipmentID string) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) GetByID(id string) (*repairapimodels.RepairRequestView, error) {
	rec, err := repairrequeststore.NewInstance(db.DB).GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("repair request not found")
	}
	view := repairapimodels.RepairRequestConvert(*rec)
	return &view, nil
}

func (i impl) List(filter repairapimodels.RepairRequestFilter) ([]repairapimodels.RepairRequestView, int64, error) {
	list, rowCount, err := repairrequeststore.NewInstance(db.DB).List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]repairapimodels.RepairRequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, repairapimodels.RepairRequestConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) History(equipmentID string) ([]repairapimodels.RepairHistoryView, error) {
	if equipmentID == "" {
		return repairhistoryhandler.Instance.ListAll()
	}
	return repairhistoryhandler.Instance.ListByEquipment(equipmentID)
}

func (i impl) Export(equipmentID string) (*bytes.Buffer, error) {
	list, err := i.History(equipmentID)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportRepairHistory(list)
}
