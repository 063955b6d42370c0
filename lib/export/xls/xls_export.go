package xlsexport

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	repairapimodels "equip-repair-backend/models/api/repair"
)

type Provider interface {
	ExportRepairHistory(list []repairapimodels.RepairHistoryView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var historyHeaders = []string{
	"Thiết bị",
	"Trạng thái",
	"Ngày bắt đầu",
	"Ngày kết thúc",
	"Giám định kỹ thuật",
	"Giám định chi tiết",
	"Cấp vật tư",
	"Giao việc",
	"Nghiệm thu",
	"Đánh giá chất lượng",
	"Quyết toán",
}

func (i impl) ExportRepairHistory(list []repairapimodels.RepairHistoryView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, historyHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render xlsx header")
	}
	if len(list) != 0 {
		if err = writeHistoryData(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "failed to render xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Lịch sử sửa chữa")
	return f.WriteToBuffer()
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format("02.01.2006")
}

func ballotMark(id string) string {
	if id == "" {
		return ""
	}
	return "✓"
}

func writeHistoryData(f *excelize.File, sheet string, list []repairapimodels.RepairHistoryView, row int) error {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(historyHeaders), len(list)+1); err != nil {
		return err
	}
	for _, item := range list {
		row++
		equipment := item.EquipmentName
		if equipment == "" {
			equipment = item.EquipmentID
		}
		values := []interface{}{
			equipment,
			item.Status,
			formatDate(item.StartDate),
			formatDate(item.EndDate),
			ballotMark(item.TechnicalAppraisalID),
			ballotMark(item.DetailAppraisalID),
			ballotMark(item.MaterialSupplyID),
			ballotMark(item.AssignmentID),
			ballotMark(item.AcceptanceID),
			ballotMark(item.QualityAssessmentID),
			ballotMark(item.SettlementID),
		}
		for idx, value := range values {
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}
