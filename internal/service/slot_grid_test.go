package service

import (
	"testing"

	"mentor-lab/backend/internal/dto"
	"mentor-lab/backend/internal/model"
)

// ── IsValidSlot 测试 ──

func TestIsValidSlot(t *testing.T) {
	cases := []struct {
		weekday, hour int
		want          bool
	}{
		{1, 10, true},
		{5, 17, true},
		{3, 13, true},
		{0, 10, false},  // 周日
		{6, 10, false},  // 周六
		{1, 9, false},   // 开门前
		{1, 18, false},  // 关门后
		{-1, 12, false},
	}
	for _, c := range cases {
		if got := IsValidSlot(c.weekday, c.hour); got != c.want {
			t.Errorf("IsValidSlot(%d, %d) 期望 %v，实际 %v", c.weekday, c.hour, c.want, got)
		}
	}
}

// ── SlotKey / SlotLabel 测试 ──

func TestSlotKey(t *testing.T) {
	if got := SlotKey(1, 10); got != "1-10" {
		t.Errorf("期望 1-10，实际 %s", got)
	}
	if got := SlotKey(5, 17); got != "5-17" {
		t.Errorf("期望 5-17，实际 %s", got)
	}
}

func TestSlotLabel(t *testing.T) {
	if got := SlotLabel(1, 10); got != "周一 10:00-11:00" {
		t.Errorf("期望 周一 10:00-11:00，实际 %s", got)
	}
	if got := SlotLabel(5, 17); got != "周五 17:00-18:00" {
		t.Errorf("期望 周五 17:00-18:00，实际 %s", got)
	}
	if got := SlotLabel(0, 9); got != "未知时段 0-9" {
		t.Errorf("网格外时段期望降级标签，实际 %s", got)
	}
}

// ── IsSelected 测试 ──

func TestIsSelected(t *testing.T) {
	slots := []dto.SlotRef{{Weekday: 1, Hour: 10}, {Weekday: 3, Hour: 14}}
	if !IsSelected(slots, 1, 10) {
		t.Error("期望 (1,10) 被选中")
	}
	if !IsSelected(slots, 3, 14) {
		t.Error("期望 (3,14) 被选中")
	}
	if IsSelected(slots, 1, 11) {
		t.Error("期望 (1,11) 未被选中")
	}
	if IsSelected(nil, 1, 10) {
		t.Error("空列表不应命中任何时段")
	}
}

// ── AggregateAvailability 测试 ──

func TestAggregateAvailability(t *testing.T) {
	submissions := []model.AvailabilitySubmission{
		{
			MentorID: "mentor-001",
			Mentor:   &model.Mentor{MentorID: "mentor-001", Name: "张三"},
			Slots: []model.AvailabilitySlot{
				{Weekday: 1, Hour: 10},
				{Weekday: 2, Hour: 14},
			},
		},
		{
			MentorID: "mentor-002",
			Mentor:   &model.Mentor{MentorID: "mentor-002", Name: "李四"},
			Slots: []model.AvailabilitySlot{
				{Weekday: 1, Hour: 10},
				{Weekday: 7, Hour: 10}, // 网格外，应忽略
			},
		},
	}

	cells := AggregateAvailability(submissions)

	names := cells["1-10"]
	if len(names) != 2 {
		t.Fatalf("期望 1-10 有 2 位导师，实际 %d", len(names))
	}
	if names[0] != "张三" || names[1] != "李四" {
		t.Errorf("期望按提交顺序为 [张三 李四]，实际 %v", names)
	}
	if len(cells["2-14"]) != 1 {
		t.Errorf("期望 2-14 有 1 位导师，实际 %d", len(cells["2-14"]))
	}
	if _, ok := cells["7-10"]; ok {
		t.Error("网格外的时段不应出现在聚合结果中")
	}
}

func TestAggregateAvailability_MentorMissingFallsBackToID(t *testing.T) {
	submissions := []model.AvailabilitySubmission{
		{
			MentorID: "mentor-001",
			Slots:    []model.AvailabilitySlot{{Weekday: 1, Hour: 10}},
		},
	}
	cells := AggregateAvailability(submissions)
	if names := cells["1-10"]; len(names) != 1 || names[0] != "mentor-001" {
		t.Errorf("关联缺失时期望回退为导师 ID，实际 %v", cells["1-10"])
	}
}

func TestGetSlotAvailability_EmptyListNotNil(t *testing.T) {
	cells := AggregateAvailability(nil)
	names := GetSlotAvailability(cells, 1, 10)
	if names == nil {
		t.Fatal("无数据时段应返回空列表而非 nil")
	}
	if len(names) != 0 {
		t.Errorf("期望空列表，实际 %v", names)
	}
}
