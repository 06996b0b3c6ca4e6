package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Mentor        MentorRepository
	Semester      SemesterRepository
	Availability  AvailabilityRepository
	Schedule      ScheduleRepository
	ScheduleBlock ScheduleBlockRepository
	Headcount     HeadcountRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Mentor:        NewMentorRepo(db),
		Semester:      NewSemesterRepo(db),
		Availability:  NewAvailabilityRepo(db),
		Schedule:      NewScheduleRepo(db),
		ScheduleBlock: NewScheduleBlockRepo(db),
		Headcount:     NewHeadcountRepo(db),
	}
}
