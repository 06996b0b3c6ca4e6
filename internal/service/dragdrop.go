package service

import (
	"context"
	"math"

	"mentor-lab/backend/internal/dto"
)

// ── 拖拽手势 ──
// 前端上报原始按下/释放坐标，由服务端统一判定点击与拖拽，
// 保证不同客户端的手势语义一致。

// dragThreshold 位移阈值（像素）。低于该值视为点击而非拖拽。
const dragThreshold = 5.0

// 手势判定结果
const (
	DragActionClick  = "click"
	DragActionAssign = "assign"
	DragActionMove   = "move"
)

// classifyDrag 根据位移及是否携带已有排班块判定手势类型
func classifyDrag(req *dto.DragRequest) string {
	dx := req.ReleaseX - req.OriginX
	dy := req.ReleaseY - req.OriginY
	if math.Hypot(dx, dy) < dragThreshold {
		return DragActionClick
	}
	if req.BlockID != nil && *req.BlockID != "" {
		return DragActionMove
	}
	return DragActionAssign
}

// ResolveDrag 处理一次拖拽手势：
// 点击不产生写入；携带排班块的拖拽为移动，否则为新放置。
func (s *scheduleService) ResolveDrag(ctx context.Context, req *dto.DragRequest) (*dto.DragResponse, error) {
	switch classifyDrag(req) {
	case DragActionClick:
		return &dto.DragResponse{Action: DragActionClick}, nil

	case DragActionMove:
		block, err := s.MoveBlock(ctx, *req.BlockID, &dto.MoveBlockRequest{
			Weekday: req.Weekday,
			Hour:    req.Hour,
		})
		if err != nil {
			return nil, err
		}
		return &dto.DragResponse{Action: DragActionMove, Block: block}, nil

	default:
		block, err := s.AssignBlock(ctx, &dto.CreateBlockRequest{
			ScheduleID: req.ScheduleID,
			MentorID:   req.MentorID,
			Weekday:    req.Weekday,
			Hour:       req.Hour,
		})
		if err != nil {
			return nil, err
		}
		return &dto.DragResponse{Action: DragActionAssign, Block: block}, nil
	}
}
