package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"mentor-lab/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *scheduleTestEnv) {
	env := setupTestScheduleService()
	return NewExportService(env.repo, zap.NewNop()), env
}

func (env *scheduleTestEnv) seedBlock(id, scheduleID, mentorID string, weekday, hour int) {
	env.blocks.blocks[id] = &model.ScheduleBlock{
		BlockID:    id,
		ScheduleID: scheduleID,
		MentorID:   mentorID,
		Weekday:    weekday,
		Hour:       hour,
	}
}

// ── Excel 导出测试 ──

func TestExportService_ExportScheduleXLSX(t *testing.T) {
	svc, env := setupTestExportService()
	env.seedSchedule("sch-a", "秋季值班表", true)
	env.seedMentor("mentor-001", "张三")
	env.seedBlock("blk-1", "sch-a", "mentor-001", 1, 10)

	buf, filename, err := svc.ExportScheduleXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportScheduleXLSX 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if filename != "值班表_秋季值班表.xlsx" {
		t.Errorf("文件名不符，实际: %s", filename)
	}
	// xlsx 为 zip 容器，以 PK 开头
	if data := buf.Bytes(); len(data) < 2 || data[0] != 'P' || data[1] != 'K' {
		t.Error("导出内容应为合法的 xlsx 文件")
	}
}

func TestExportService_ExportScheduleXLSX_NoActiveSchedule(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportScheduleXLSX(context.Background())
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际: %v", err)
	}
}

func TestExportService_ExportScheduleXLSX_EmptySchedule(t *testing.T) {
	svc, env := setupTestExportService()
	env.seedSchedule("sch-a", "秋季值班表", true)

	_, _, err := svc.ExportScheduleXLSX(context.Background())
	if !errors.Is(err, ErrExportNoBlocks) {
		t.Errorf("空排班表期望 ErrExportNoBlocks，实际: %v", err)
	}
}

// ── ICS 导出测试 ──

func TestExportService_ExportMentorICS(t *testing.T) {
	svc, env := setupTestExportService()
	env.seedSchedule("sch-a", "秋季值班表", true)
	env.seedSemester("sem-fall", "2026秋季")
	env.seedMentor("mentor-001", "张三")
	env.seedMentor("mentor-002", "李四")
	env.seedBlock("blk-1", "sch-a", "mentor-001", 1, 10)
	env.seedBlock("blk-2", "sch-a", "mentor-001", 3, 14)
	env.seedBlock("blk-3", "sch-a", "mentor-002", 3, 14)

	buf, filename, err := svc.ExportMentorICS(context.Background(), "mentor-001", "sem-fall")
	if err != nil {
		t.Fatalf("ExportMentorICS 应成功: %v", err)
	}
	if filename != "值班日历_张三.ics" {
		t.Errorf("文件名不符，实际: %s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("输出应为 iCalendar 格式")
	}
	// 只导出该导师自己的 2 个块
	if got := strings.Count(content, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("期望 2 个事件，实际 %d", got)
	}
	if !strings.Contains(content, "FREQ=WEEKLY") {
		t.Error("事件应按周重复")
	}
	if !strings.Contains(content, "实验室值班 — 张三") {
		t.Error("事件标题应包含导师姓名")
	}
}

func TestExportService_ExportMentorICS_NoBlocksForMentor(t *testing.T) {
	svc, env := setupTestExportService()
	env.seedSchedule("sch-a", "秋季值班表", true)
	env.seedSemester("sem-fall", "2026秋季")
	env.seedMentor("mentor-001", "张三")

	_, _, err := svc.ExportMentorICS(context.Background(), "mentor-001", "sem-fall")
	if !errors.Is(err, ErrExportNoBlocks) {
		t.Errorf("该导师无排班块时期望 ErrExportNoBlocks，实际: %v", err)
	}
}

func TestExportService_ExportMentorICS_MentorNotFound(t *testing.T) {
	svc, env := setupTestExportService()
	env.seedSchedule("sch-a", "秋季值班表", true)
	env.seedSemester("sem-fall", "2026秋季")

	_, _, err := svc.ExportMentorICS(context.Background(), "mentor-missing", "sem-fall")
	if !errors.Is(err, ErrMentorNotFound) {
		t.Errorf("期望 ErrMentorNotFound，实际: %v", err)
	}
}

// ── firstOccurrence 测试 ──

func TestFirstOccurrence(t *testing.T) {
	// 2026-09-01 是周二
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// 周二 14 点 → 开学当天
	got := firstOccurrence(start, 2, 14)
	want := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}

	// 周一 10 点 → 下周一 9 月 7 日
	got = firstOccurrence(start, 1, 10)
	want = time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
}
