package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentor-lab/backend/internal/dto"
	"mentor-lab/backend/internal/model"
)

// ── 自动填班 ──
// 确定性贪心：按小时升序、小时内按星期升序逐格遍历；
// 每格优先选当前总班数最少的导师，班数相同按导师 ID 升序。
// 同样的输入两次运行产出完全相同的结果。

const (
	defaultMaxPerSlot        = 2
	defaultMaxSlotsPerMentor = 4
)

// autoFillCandidate 参与填班的导师及其空闲时段集合
type autoFillCandidate struct {
	mentorID  string
	name      string
	available map[string]bool // 键为 SlotKey
}

// autoFillProposal 一次拟写入的排班块
type autoFillProposal struct {
	mentorID string
	name     string
	weekday  int
	hour     int
}

func (s *scheduleService) AutoFill(ctx context.Context, req *dto.AutoFillRequest) (*dto.AutoFillResponse, error) {
	maxPerSlot := defaultMaxPerSlot
	if req.MaxPerSlot != nil {
		maxPerSlot = *req.MaxPerSlot
	}
	maxSlotsPerMentor := defaultMaxSlotsPerMentor
	if req.MaxSlotsPerMentor != nil {
		maxSlotsPerMentor = *req.MaxSlotsPerMentor
	}

	// ── 阶段1: 数据快照 ──

	if _, err := s.repo.Schedule.GetByID(ctx, req.ScheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询排班表失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Semester.GetByID(ctx, req.SemesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}

	submissions, err := s.repo.Availability.ListBySemester(ctx, req.SemesterID)
	if err != nil {
		s.logger.Error("查询空闲时间提交失败", zap.Error(err))
		return nil, err
	}
	if len(submissions) == 0 {
		return nil, ErrNoAvailabilityYet
	}

	existing, err := s.repo.ScheduleBlock.ListBySchedule(ctx, req.ScheduleID)
	if err != nil {
		s.logger.Error("查询已有排班块失败", zap.Error(err))
		return nil, err
	}

	// ── 阶段2: 构建候选人与计数器 ──

	now := s.now()
	candidates := make([]autoFillCandidate, 0, len(submissions))
	for _, sub := range submissions {
		// 只有激活且未到期的导师参与填班
		if sub.Mentor == nil || !sub.Mentor.IsEligible(now) {
			continue
		}
		avail := make(map[string]bool, len(sub.Slots))
		for _, slot := range sub.Slots {
			if IsValidSlot(slot.Weekday, slot.Hour) {
				avail[SlotKey(slot.Weekday, slot.Hour)] = true
			}
		}
		if len(avail) == 0 {
			continue
		}
		candidates = append(candidates, autoFillCandidate{
			mentorID:  sub.MentorID,
			name:      mentorDisplayName(sub),
			available: avail,
		})
	}
	if len(candidates) == 0 {
		return nil, ErrNoAvailabilityYet
	}

	// 计数器以已有排班块为起点，遍历过程中叠加本轮拟分配
	mentorLoad := make(map[string]int)          // 导师 → 总班数
	slotOccupancy := make(map[string]int)       // 时段 → 已占人数
	slotMembers := make(map[string]map[string]bool) // 时段 → 已在该时段的导师
	for _, b := range existing {
		key := SlotKey(b.Weekday, b.Hour)
		mentorLoad[b.MentorID]++
		slotOccupancy[key]++
		if slotMembers[key] == nil {
			slotMembers[key] = make(map[string]bool)
		}
		slotMembers[key][b.MentorID] = true
	}

	// ── 阶段3: 逐格贪心 ──

	var proposals []autoFillProposal
	var unfilled []string

	for hour := MinHour; hour <= MaxHour; hour++ {
		for weekday := MinWeekday; weekday <= MaxWeekday; weekday++ {
			key := SlotKey(weekday, hour)

			// 已满的格子直接跳过。FillEmptyOnly 的语义也仅止于此：
			// 未满的格子照常补齐，容量检查本就不允许超员。
			if slotOccupancy[key] >= maxPerSlot {
				continue
			}

			// 本格候选：空闲、不在本格、未达个人上限
			var eligible []*autoFillCandidate
			for i := range candidates {
				c := &candidates[i]
				if !c.available[key] {
					continue
				}
				if slotMembers[key] != nil && slotMembers[key][c.mentorID] {
					continue
				}
				if mentorLoad[c.mentorID] >= maxSlotsPerMentor {
					continue
				}
				eligible = append(eligible, c)
			}

			sort.Slice(eligible, func(i, j int) bool {
				li, lj := mentorLoad[eligible[i].mentorID], mentorLoad[eligible[j].mentorID]
				if li != lj {
					return li < lj
				}
				return eligible[i].mentorID < eligible[j].mentorID
			})

			for _, c := range eligible {
				if slotOccupancy[key] >= maxPerSlot {
					break
				}
				proposals = append(proposals, autoFillProposal{
					mentorID: c.mentorID,
					name:     c.name,
					weekday:  weekday,
					hour:     hour,
				})
				mentorLoad[c.mentorID]++
				slotOccupancy[key]++
				if slotMembers[key] == nil {
					slotMembers[key] = make(map[string]bool)
				}
				slotMembers[key][c.mentorID] = true
			}

			if slotOccupancy[key] < maxPerSlot {
				unfilled = append(unfilled, SlotLabel(weekday, hour))
			}
		}
	}

	// ── 阶段4: 逐条写入（失败不中断） ──

	resp := &dto.AutoFillResponse{
		UnfilledSlots: unfilled,
	}
	for _, p := range proposals {
		block := &model.ScheduleBlock{
			ScheduleID: req.ScheduleID,
			MentorID:   p.mentorID,
			Weekday:    p.weekday,
			Hour:       p.hour,
		}
		if err := s.repo.ScheduleBlock.Create(ctx, block); err != nil {
			s.logger.Warn("自动填班写入失败",
				zap.String("mentor_id", p.mentorID),
				zap.Int("weekday", p.weekday),
				zap.Int("hour", p.hour),
				zap.Error(err))
			resp.Failures = append(resp.Failures, dto.AutoFillFailure{
				MentorID: p.mentorID,
				Weekday:  p.weekday,
				Hour:     p.hour,
				Reason:   err.Error(),
			})
			continue
		}
		resp.AssignedCount++
	}

	// 一个班都没排上的导师（含本轮写入失败后仍为零班的）
	for _, c := range candidates {
		if mentorLoad[c.mentorID] == 0 {
			resp.UnassignedMentors = append(resp.UnassignedMentors, c.name)
		}
	}
	sort.Strings(resp.UnassignedMentors)

	s.logger.Info("自动填班完成",
		zap.Int("assigned", resp.AssignedCount),
		zap.Int("unfilled_slots", len(resp.UnfilledSlots)),
		zap.Int("failures", len(resp.Failures)))
	return resp, nil
}

func mentorDisplayName(sub model.AvailabilitySubmission) string {
	if sub.Mentor != nil && sub.Mentor.Name != "" {
		return sub.Mentor.Name
	}
	return sub.MentorID
}
