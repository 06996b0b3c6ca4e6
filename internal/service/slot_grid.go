package service

import (
	"fmt"

	"mentor-lab/backend/internal/dto"
	"mentor-lab/backend/internal/model"
)

// ── 时段网格 ──
// 开放时间固定为周一到周五（weekday 1-5）10:00-18:00，
// 每小时一个时段（hour 为起始小时 10-17），共 40 格。

const (
	MinWeekday = 1
	MaxWeekday = 5
	MinHour    = 10
	MaxHour    = 17
)

var weekdayNames = [...]string{1: "周一", 2: "周二", 3: "周三", 4: "周四", 5: "周五"}

// IsValidSlot 判断坐标是否落在开放网格内
func IsValidSlot(weekday, hour int) bool {
	return weekday >= MinWeekday && weekday <= MaxWeekday &&
		hour >= MinHour && hour <= MaxHour
}

// SlotKey 生成时段的规范键 "{weekday}-{hour}"
func SlotKey(weekday, hour int) string {
	return fmt.Sprintf("%d-%d", weekday, hour)
}

// SlotLabel 生成时段的展示标签，如 "周一 10:00-11:00"
func SlotLabel(weekday, hour int) string {
	if !IsValidSlot(weekday, hour) {
		return fmt.Sprintf("未知时段 %d-%d", weekday, hour)
	}
	return fmt.Sprintf("%s %d:00-%d:00", weekdayNames[weekday], hour, hour+1)
}

// IsSelected 判断坐标是否出现在时段列表中
func IsSelected(slots []dto.SlotRef, weekday, hour int) bool {
	for _, s := range slots {
		if s.Weekday == weekday && s.Hour == hour {
			return true
		}
	}
	return false
}

// AggregateAvailability 把各导师的空闲提交倒排为
// 时段 → 空闲导师姓名 的网格；网格外的时段忽略不计
func AggregateAvailability(submissions []model.AvailabilitySubmission) map[string][]string {
	cells := make(map[string][]string)
	for _, sub := range submissions {
		name := sub.MentorID
		if sub.Mentor != nil {
			name = sub.Mentor.Name
		}
		for _, slot := range sub.Slots {
			if !IsValidSlot(slot.Weekday, slot.Hour) {
				continue
			}
			key := SlotKey(slot.Weekday, slot.Hour)
			cells[key] = append(cells[key], name)
		}
	}
	return cells
}

// GetSlotAvailability 查询某时段的空闲导师；无数据返回空列表而非 nil
func GetSlotAvailability(cells map[string][]string, weekday, hour int) []string {
	if names, ok := cells[SlotKey(weekday, hour)]; ok {
		return names
	}
	return []string{}
}
