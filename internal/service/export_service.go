package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentor-lab/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoBlocks     = errors.New("排班表中无排班块")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出整张网格（行=小时，列=星期），供打印张贴
//   - ICS 导出单个导师的值班日历，按学期内每周重复展开
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportScheduleXLSX 导出激活排班表为 Excel
	ExportScheduleXLSX(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportMentorICS 导出某导师在激活排班表的值班日历
	ExportMentorICS(ctx context.Context, mentorID, semesterID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportScheduleXLSX — 导出排班网格为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet，行头为小时（10:00-11:00 ...），列头为周一~周五
//   - 单元格为该时段值班导师姓名，换行分隔

func (s *exportService) ExportScheduleXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	schedule, err := s.repo.Schedule.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrScheduleNotFound
		}
		s.logger.Error("查询激活排班表失败", zap.Error(err))
		return nil, "", err
	}

	blocks, err := s.repo.ScheduleBlock.ListBySchedule(ctx, schedule.ScheduleID)
	if err != nil {
		s.logger.Error("查询排班块失败", zap.Error(err))
		return nil, "", err
	}
	if len(blocks) == 0 {
		return nil, "", ErrExportNoBlocks
	}

	// 时段 → 值班导师姓名
	cellNames := make(map[string][]string)
	for i := range blocks {
		b := &blocks[i]
		name := b.MentorID
		if b.Mentor != nil {
			name = b.Mentor.Name
		}
		key := SlotKey(b.Weekday, b.Hour)
		cellNames[key] = append(cellNames[key], name)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "排班表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "F", 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 值班表", schedule.Name))
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	f.SetCellValue(sheetName, "A2", "时间")
	for weekday := MinWeekday; weekday <= MaxWeekday; weekday++ {
		col, _ := excelize.ColumnNumberToName(1 + weekday)
		f.SetCellValue(sheetName, cell(col, 2), weekdayNames[weekday])
	}

	// 数据行：每小时一行
	row := 3
	for hour := MinHour; hour <= MaxHour; hour++ {
		f.SetCellValue(sheetName, cell("A", row), fmt.Sprintf("%d:00-%d:00", hour, hour+1))
		for weekday := MinWeekday; weekday <= MaxWeekday; weekday++ {
			col, _ := excelize.ColumnNumberToName(1 + weekday)
			names := cellNames[SlotKey(weekday, hour)]
			text := "-"
			if len(names) > 0 {
				text = names[0]
				for _, n := range names[1:] {
					text += "\n" + n
				}
			}
			f.SetCellValue(sheetName, cell(col, row), text)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("值班表_%s.xlsx", schedule.Name)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportMentorICS — 导出导师值班日历
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportMentorICS(ctx context.Context, mentorID, semesterID string) (*bytes.Buffer, string, error) {
	mentor, err := s.repo.Mentor.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrMentorNotFound
		}
		s.logger.Error("查询导师失败", zap.Error(err))
		return nil, "", err
	}
	semester, err := s.repo.Semester.GetByID(ctx, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, "", err
	}
	schedule, err := s.repo.Schedule.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrScheduleNotFound
		}
		s.logger.Error("查询激活排班表失败", zap.Error(err))
		return nil, "", err
	}

	blocks, err := s.repo.ScheduleBlock.ListBySchedule(ctx, schedule.ScheduleID)
	if err != nil {
		s.logger.Error("查询排班块失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//mentor-lab//schedule//CN")

	count := 0
	for i := range blocks {
		b := &blocks[i]
		if b.MentorID != mentorID {
			continue
		}
		start := firstOccurrence(semester.StartDate, b.Weekday, b.Hour)

		event := cal.AddEvent(fmt.Sprintf("%s@mentor-lab", b.BlockID))
		event.SetCreatedTime(time.Now())
		event.SetDtStampTime(time.Now())
		event.SetStartAt(start)
		event.SetEndAt(start.Add(time.Hour))
		event.SetSummary(fmt.Sprintf("实验室值班 — %s", mentor.Name))
		event.SetDescription(SlotLabel(b.Weekday, b.Hour))
		// 按周重复到学期结束
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;UNTIL=%s", semester.EndDate.Format("20060102T150405Z")))
		count++
	}
	if count == 0 {
		return nil, "", ErrExportNoBlocks
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("值班日历_%s.ics", mentor.Name)
	return buf, filename, nil
}

// firstOccurrence 返回学期开始后第一次落在指定星期与小时的时间点
func firstOccurrence(startDate time.Time, weekday, hour int) time.Time {
	t := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), hour, 0, 0, 0, startDate.Location())
	for int(t.Weekday()) != weekday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
