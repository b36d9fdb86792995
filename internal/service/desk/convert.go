package desk

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/normalize"
)

var (
	dateHeaders       = []string{"日期", "乘车日期", "date"}
	trainNoHeaders    = []string{"车次", "trainNo", "train_no"}
	nameHeaders       = []string{"姓名", "旅客姓名", "name"}
	cardNoHeaders     = []string{"牌号", "卡号", "cardNo", "card_no"}
	typeHeaders       = []string{"类型", "旅客类型", "type"}
	serviceHeaders    = []string{"服务", "服务内容", "service"}
	staffNameHeaders  = []string{"服务人员", "工作人员", "staffName", "staff_name"}
	companionsHeaders = []string{"陪同人数", "同行人数", "companions"}
	remarkHeaders     = []string{"备注", "remark"}
	sourceHeaders     = []string{"来源", "source"}
)

var passengerTypeLabels = map[string]domain.PassengerType{
	"军人":       domain.PassengerTypeMilitary,
	"military": domain.PassengerTypeMilitary,
	"老人":       domain.PassengerTypeElderly,
	"老年人":      domain.PassengerTypeElderly,
	"elderly":  domain.PassengerTypeElderly,
	"体弱":       domain.PassengerTypeWeak,
	"weak":     domain.PassengerTypeWeak,
	"病人":       domain.PassengerTypeSick,
	"患病":       domain.PassengerTypeSick,
	"sick":     domain.PassengerTypeSick,
	"残疾":       domain.PassengerTypeDisabled,
	"残疾人":      domain.PassengerTypeDisabled,
	"disabled": domain.PassengerTypeDisabled,
}

var sourceLabels = map[string]domain.Source{
	"线上":      domain.SourceOnline,
	"online":  domain.SourceOnline,
	"线下":      domain.SourceOffline,
	"offline": domain.SourceOffline,
}

// RowToPassenger converts one raw import row. A row with neither a train
// number nor a name is discarded (ok is false).
func RowToPassenger(row domain.ImportRow, now time.Time) (domain.Passenger, bool) {
	trainNo := row.Get(trainNoHeaders...)
	name := row.Get(nameHeaders...)
	if trainNo == "" && name == "" {
		return domain.Passenger{}, false
	}

	return domain.Passenger{
		Date:       normalizeDateCell(row.Get(dateHeaders...), now),
		TrainNo:    trainNo,
		Name:       name,
		CardNo:     row.Get(cardNoHeaders...),
		Type:       passengerTypeLabels[strings.ToLower(row.Get(typeHeaders...))],
		Service:    row.Get(serviceHeaders...),
		StaffName:  row.Get(staffNameHeaders...),
		Companions: parseCompanions(row.Get(companionsHeaders...)),
		Remark:     row.Get(remarkHeaders...),
		Source:     sourceLabels[strings.ToLower(row.Get(sourceHeaders...))],
		IsServed:   false,
	}, true
}

// normalizeDateCell treats a purely numeric cell as a spreadsheet serial.
func normalizeDateCell(cell string, now time.Time) string {
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		return normalize.Date(serial, now)
	}
	return normalize.Date(cell, now)
}

func parseCompanions(cell string) int {
	if cell == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}
