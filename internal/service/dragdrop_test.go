package service

import (
	"context"
	"testing"

	"mentor-lab/backend/internal/dto"
)

// ── 手势判定测试 ──

func TestClassifyDrag_BelowThresholdIsClick(t *testing.T) {
	cases := []struct {
		name                 string
		dx, dy               float64
	}{
		{"原地释放", 0, 0},
		{"水平 4px", 4, 0},
		{"斜向 3/3（位移约 4.24）", 3, 3},
		{"负方向 4px", -4, 0},
	}
	for _, c := range cases {
		req := &dto.DragRequest{OriginX: 100, OriginY: 100, ReleaseX: 100 + c.dx, ReleaseY: 100 + c.dy}
		if got := classifyDrag(req); got != DragActionClick {
			t.Errorf("%s: 期望 click，实际 %s", c.name, got)
		}
	}
}

func TestClassifyDrag_AtOrAboveThresholdIsDrag(t *testing.T) {
	// 恰好 5px 不再视为点击
	req := &dto.DragRequest{OriginX: 0, OriginY: 0, ReleaseX: 5, ReleaseY: 0}
	if got := classifyDrag(req); got != DragActionAssign {
		t.Errorf("5px 位移期望 assign，实际 %s", got)
	}

	// 斜向 3/4 位移恰为 5
	req = &dto.DragRequest{OriginX: 0, OriginY: 0, ReleaseX: 3, ReleaseY: 4}
	if got := classifyDrag(req); got != DragActionAssign {
		t.Errorf("3/4 斜向位移期望 assign，实际 %s", got)
	}
}

func TestClassifyDrag_WithBlockIDIsMove(t *testing.T) {
	blockID := "blk-001"
	req := &dto.DragRequest{BlockID: &blockID, OriginX: 0, OriginY: 0, ReleaseX: 50, ReleaseY: 0}
	if got := classifyDrag(req); got != DragActionMove {
		t.Errorf("携带排班块的拖拽期望 move，实际 %s", got)
	}

	// 携带块但位移不足仍是点击
	req = &dto.DragRequest{BlockID: &blockID, OriginX: 0, OriginY: 0, ReleaseX: 2, ReleaseY: 2}
	if got := classifyDrag(req); got != DragActionClick {
		t.Errorf("位移不足时期望 click，实际 %s", got)
	}

	// 空串 BlockID 等同未携带
	empty := ""
	req = &dto.DragRequest{BlockID: &empty, OriginX: 0, OriginY: 0, ReleaseX: 50, ReleaseY: 0}
	if got := classifyDrag(req); got != DragActionAssign {
		t.Errorf("空 BlockID 期望 assign，实际 %s", got)
	}
}

// ── ResolveDrag 测试 ──

func TestResolveDrag_ClickProducesNoWrite(t *testing.T) {
	env := setupTestScheduleService()
	env.seedSchedule("sch-a", "方案A", true)
	env.seedMentor("mentor-001", "张三")

	result, err := env.svc.ResolveDrag(context.Background(), &dto.DragRequest{
		ScheduleID: "sch-a",
		MentorID:   "mentor-001",
		OriginX:    100, OriginY: 100, ReleaseX: 102, ReleaseY: 101,
		Weekday: 1, Hour: 10,
	})
	if err != nil {
		t.Fatalf("ResolveDrag 应成功: %v", err)
	}
	if result.Action != DragActionClick {
		t.Errorf("期望 click，实际 %s", result.Action)
	}
	if result.Block != nil {
		t.Error("点击不应返回排班块")
	}
	if len(env.blocks.blocks) != 0 {
		t.Error("点击不应产生任何写入")
	}
}

func TestResolveDrag_AssignCreatesBlock(t *testing.T) {
	env := setupTestScheduleService()
	env.seedSchedule("sch-a", "方案A", true)
	env.seedMentor("mentor-001", "张三")

	result, err := env.svc.ResolveDrag(context.Background(), &dto.DragRequest{
		ScheduleID: "sch-a",
		MentorID:   "mentor-001",
		OriginX:    0, OriginY: 0, ReleaseX: 120, ReleaseY: 60,
		Weekday: 2, Hour: 13,
	})
	if err != nil {
		t.Fatalf("ResolveDrag 应成功: %v", err)
	}
	if result.Action != DragActionAssign {
		t.Errorf("期望 assign，实际 %s", result.Action)
	}
	if result.Block == nil || result.Block.Weekday != 2 || result.Block.Hour != 13 {
		t.Error("应返回新建排班块及其位置")
	}
}

func TestResolveDrag_MoveRelocatesBlock(t *testing.T) {
	env := setupTestScheduleService()
	env.seedSchedule("sch-a", "方案A", true)
	env.seedMentor("mentor-001", "张三")
	created, _ := env.svc.AssignBlock(context.Background(), &dto.CreateBlockRequest{
		ScheduleID: "sch-a", MentorID: "mentor-001", Weekday: 1, Hour: 10,
	})

	result, err := env.svc.ResolveDrag(context.Background(), &dto.DragRequest{
		ScheduleID: "sch-a",
		MentorID:   "mentor-001",
		BlockID:    &created.ID,
		OriginX:    0, OriginY: 0, ReleaseX: 80, ReleaseY: 80,
		Weekday: 4, Hour: 16,
	})
	if err != nil {
		t.Fatalf("ResolveDrag 应成功: %v", err)
	}
	if result.Action != DragActionMove {
		t.Errorf("期望 move，实际 %s", result.Action)
	}
	if result.Block.Weekday != 4 || result.Block.Hour != 16 {
		t.Errorf("期望移动到 (4,16)，实际 (%d,%d)", result.Block.Weekday, result.Block.Hour)
	}
	if len(env.blocks.blocks) != 1 {
		t.Errorf("移动不应新增块，实际块数 %d", len(env.blocks.blocks))
	}
}
