package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"mentor-lab/backend/internal/dto"
)

// ── 测试辅助 ──

func setupTestAvailabilityService() (AvailabilityService, *scheduleTestEnv) {
	env := setupTestScheduleService()
	return NewAvailabilityService(env.repo, zap.NewNop()), env
}

// ── Submit 测试 ──

func TestAvailabilityService_Submit_Success(t *testing.T) {
	svc, env := setupTestAvailabilityService()
	env.seedMentor("mentor-001", "张三")
	env.seedSemester("sem-fall", "2026秋季")

	result, err := svc.Submit(context.Background(), &dto.SubmitAvailabilityRequest{
		MentorID:   "mentor-001",
		SemesterID: "sem-fall",
		Slots:      []dto.SlotRef{{Weekday: 1, Hour: 10}, {Weekday: 3, Hour: 14}},
	})
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}
	if result.MentorName != "张三" {
		t.Errorf("期望 MentorName=张三，实际=%s", result.MentorName)
	}
	if len(result.Slots) != 2 {
		t.Errorf("期望 2 个时段，实际 %d", len(result.Slots))
	}
}

func TestAvailabilityService_Submit_ResubmitReplacesWhole(t *testing.T) {
	svc, env := setupTestAvailabilityService()
	env.seedMentor("mentor-001", "张三")
	env.seedSemester("sem-fall", "2026秋季")

	first := &dto.SubmitAvailabilityRequest{
		MentorID:   "mentor-001",
		SemesterID: "sem-fall",
		Slots:      []dto.SlotRef{{Weekday: 1, Hour: 10}, {Weekday: 2, Hour: 11}, {Weekday: 3, Hour: 12}},
	}
	if _, err := svc.Submit(context.Background(), first); err != nil {
		t.Fatalf("首次提交应成功: %v", err)
	}

	second := &dto.SubmitAvailabilityRequest{
		MentorID:   "mentor-001",
		SemesterID: "sem-fall",
		Slots:      []dto.SlotRef{{Weekday: 5, Hour: 17}},
	}
	if _, err := svc.Submit(context.Background(), second); err != nil {
		t.Fatalf("重新提交应成功: %v", err)
	}

	stored, err := env.avail.GetByMentorAndSemester(context.Background(), "mentor-001", "sem-fall")
	if err != nil {
		t.Fatalf("提交应已保存: %v", err)
	}
	if len(stored.Slots) != 1 {
		t.Fatalf("重新提交应整份替换，期望 1 个时段，实际 %d", len(stored.Slots))
	}
	if stored.Slots[0].Weekday != 5 || stored.Slots[0].Hour != 17 {
		t.Errorf("期望时段 (5,17)，实际 (%d,%d)", stored.Slots[0].Weekday, stored.Slots[0].Hour)
	}
}

func TestAvailabilityService_Submit_EmptySlotsAllowed(t *testing.T) {
	svc, env := setupTestAvailabilityService()
	env.seedMentor("mentor-001", "张三")
	env.seedSemester("sem-fall", "2026秋季")

	// 空时段列表表示本学期没空，合法提交
	result, err := svc.Submit(context.Background(), &dto.SubmitAvailabilityRequest{
		MentorID:   "mentor-001",
		SemesterID: "sem-fall",
		Slots:      []dto.SlotRef{},
	})
	if err != nil {
		t.Fatalf("空时段提交应成功: %v", err)
	}
	if len(result.Slots) != 0 {
		t.Errorf("期望 0 个时段，实际 %d", len(result.Slots))
	}
}

func TestAvailabilityService_Submit_OutOfRangeRejected(t *testing.T) {
	svc, env := setupTestAvailabilityService()
	env.seedMentor("mentor-001", "张三")
	env.seedSemester("sem-fall", "2026秋季")

	_, err := svc.Submit(context.Background(), &dto.SubmitAvailabilityRequest{
		MentorID:   "mentor-001",
		SemesterID: "sem-fall",
		Slots:      []dto.SlotRef{{Weekday: 1, Hour: 10}, {Weekday: 6, Hour: 10}},
	})
	if !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("含网格外时段期望 ErrSlotOutOfRange，实际: %v", err)
	}
	// 整份拒绝，不应留下部分数据
	if _, err := env.avail.GetByMentorAndSemester(context.Background(), "mentor-001", "sem-fall"); err == nil {
		t.Error("越界提交被拒后不应保存任何数据")
	}
}

func TestAvailabilityService_Submit_DeduplicatesSlots(t *testing.T) {
	svc, env := setupTestAvailabilityService()
	env.seedMentor("mentor-001", "张三")
	env.seedSemester("sem-fall", "2026秋季")

	result, err := svc.Submit(context.Background(), &dto.SubmitAvailabilityRequest{
		MentorID:   "mentor-001",
		SemesterID: "sem-fall",
		Slots:      []dto.SlotRef{{Weekday: 1, Hour: 10}, {Weekday: 1, Hour: 10}, {Weekday: 2, Hour: 11}},
	})
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}
	if len(result.Slots) != 2 {
		t.Errorf("重复时段应去重，期望 2 个，实际 %d", len(result.Slots))
	}
}

func TestAvailabilityService_Submit_MentorNotFound(t *testing.T) {
	svc, env := setupTestAvailabilityService()
	env.seedSemester("sem-fall", "2026秋季")

	_, err := svc.Submit(context.Background(), &dto.SubmitAvailabilityRequest{
		MentorID:   "mentor-missing",
		SemesterID: "sem-fall",
		Slots:      []dto.SlotRef{{Weekday: 1, Hour: 10}},
	})
	if !errors.Is(err, ErrMentorNotFound) {
		t.Errorf("期望 ErrMentorNotFound，实际: %v", err)
	}
}

func TestAvailabilityService_Submit_SemesterNotFound(t *testing.T) {
	svc, env := setupTestAvailabilityService()
	env.seedMentor("mentor-001", "张三")

	_, err := svc.Submit(context.Background(), &dto.SubmitAvailabilityRequest{
		MentorID:   "mentor-001",
		SemesterID: "sem-missing",
		Slots:      []dto.SlotRef{{Weekday: 1, Hour: 10}},
	})
	if !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("期望 ErrSemesterNotFound，实际: %v", err)
	}
}

// ── ListBySemester 测试 ──

func TestAvailabilityService_ListBySemester_AggregatesCells(t *testing.T) {
	svc, env := setupTestAvailabilityService()
	env.seedMentor("mentor-001", "张三")
	env.seedMentor("mentor-002", "李四")
	env.seedSemester("sem-fall", "2026秋季")
	env.seedSubmission("mentor-001", "sem-fall", [2]int{1, 10}, [2]int{2, 11})
	env.seedSubmission("mentor-002", "sem-fall", [2]int{1, 10})

	result, err := svc.ListBySemester(context.Background(), "sem-fall")
	if err != nil {
		t.Fatalf("ListBySemester 应成功: %v", err)
	}
	if len(result.Submissions) != 2 {
		t.Errorf("期望 2 份提交，实际 %d", len(result.Submissions))
	}
	if len(result.Cells["1-10"]) != 2 {
		t.Errorf("期望 1-10 有 2 位导师，实际 %v", result.Cells["1-10"])
	}
	if len(result.Cells["2-11"]) != 1 {
		t.Errorf("期望 2-11 有 1 位导师，实际 %v", result.Cells["2-11"])
	}
}

func TestAvailabilityService_ListBySemester_EmptySemester(t *testing.T) {
	svc, env := setupTestAvailabilityService()
	env.seedSemester("sem-fall", "2026秋季")

	result, err := svc.ListBySemester(context.Background(), "sem-fall")
	if err != nil {
		t.Fatalf("无提交时 ListBySemester 应成功: %v", err)
	}
	if len(result.Submissions) != 0 {
		t.Errorf("期望 0 份提交，实际 %d", len(result.Submissions))
	}
	if len(result.Cells) != 0 {
		t.Errorf("期望空网格，实际 %v", result.Cells)
	}
}

// ── Delete 测试 ──

func TestAvailabilityService_Delete(t *testing.T) {
	svc, env := setupTestAvailabilityService()
	env.seedMentor("mentor-001", "张三")
	env.seedSemester("sem-fall", "2026秋季")
	env.seedSubmission("mentor-001", "sem-fall", [2]int{1, 10})

	if err := svc.Delete(context.Background(), "mentor-001", "sem-fall"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	err := svc.Delete(context.Background(), "mentor-001", "sem-fall")
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("重复撤回期望 ErrSubmissionNotFound，实际: %v", err)
	}
}
