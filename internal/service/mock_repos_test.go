package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"mentor-lab/backend/internal/model"
)

// ── Mock MentorRepository ──

type mockMentorRepo struct {
	mentors map[string]*model.Mentor
}

func newMockMentorRepo() *mockMentorRepo {
	return &mockMentorRepo{mentors: make(map[string]*model.Mentor)}
}

func (m *mockMentorRepo) Create(_ context.Context, mentor *model.Mentor) error {
	if mentor.MentorID == "" {
		mentor.MentorID = fmt.Sprintf("mentor-%03d", len(m.mentors)+1)
	}
	m.mentors[mentor.MentorID] = mentor
	return nil
}

func (m *mockMentorRepo) GetByID(_ context.Context, id string) (*model.Mentor, error) {
	if mentor, ok := m.mentors[id]; ok {
		return mentor, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMentorRepo) GetByUserID(_ context.Context, userID string) (*model.Mentor, error) {
	for _, mentor := range m.mentors {
		if mentor.UserID == userID {
			return mentor, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMentorRepo) List(_ context.Context, offset, limit int) ([]model.Mentor, int64, error) {
	var all []model.Mentor
	for _, mentor := range m.mentors {
		all = append(all, *mentor)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockMentorRepo) ListByIDs(_ context.Context, ids []string) ([]model.Mentor, error) {
	var result []model.Mentor
	for _, id := range ids {
		if mentor, ok := m.mentors[id]; ok {
			result = append(result, *mentor)
		}
	}
	return result, nil
}

func (m *mockMentorRepo) Update(_ context.Context, mentor *model.Mentor) error {
	if _, ok := m.mentors[mentor.MentorID]; !ok {
		return gorm.ErrRecordNotFound
	}
	mentor.Version++
	m.mentors[mentor.MentorID] = mentor
	return nil
}

func (m *mockMentorRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.mentors[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.mentors, id)
	return nil
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[string]*model.Semester
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[string]*model.Semester)}
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	if semester.SemesterID == "" {
		semester.SemesterID = "sem-" + semester.Name
	}
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id string) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) GetActive(_ context.Context) (*model.Semester, error) {
	for _, s := range m.semesters {
		if s.IsActive {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context) ([]model.Semester, error) {
	var result []model.Semester
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (m *mockSemesterRepo) Activate(_ context.Context, id string) error {
	target, ok := m.semesters[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, s := range m.semesters {
		s.IsActive = false
	}
	target.IsActive = true
	return nil
}

// ── Mock AvailabilityRepository ──

type mockAvailabilityRepo struct {
	// 键为 mentorID+"/"+semesterID
	submissions map[string]*model.AvailabilitySubmission
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{submissions: make(map[string]*model.AvailabilitySubmission)}
}

func availKey(mentorID, semesterID string) string {
	return mentorID + "/" + semesterID
}

func (m *mockAvailabilityRepo) Replace(_ context.Context, submission *model.AvailabilitySubmission) error {
	if submission.SubmissionID == "" {
		submission.SubmissionID = fmt.Sprintf("sub-%03d", len(m.submissions)+1)
	}
	m.submissions[availKey(submission.MentorID, submission.SemesterID)] = submission
	return nil
}

func (m *mockAvailabilityRepo) GetByMentorAndSemester(_ context.Context, mentorID, semesterID string) (*model.AvailabilitySubmission, error) {
	if sub, ok := m.submissions[availKey(mentorID, semesterID)]; ok {
		return sub, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAvailabilityRepo) ListBySemester(_ context.Context, semesterID string) ([]model.AvailabilitySubmission, error) {
	var result []model.AvailabilitySubmission
	for _, sub := range m.submissions {
		if sub.SemesterID == semesterID {
			result = append(result, *sub)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MentorID < result[j].MentorID })
	return result, nil
}

func (m *mockAvailabilityRepo) DeleteByMentorAndSemester(_ context.Context, mentorID, semesterID string) error {
	key := availKey(mentorID, semesterID)
	if _, ok := m.submissions[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.submissions, key)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		schedule.ScheduleID = "sch-" + schedule.Name
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) GetActive(_ context.Context) (*model.Schedule, error) {
	for _, s := range m.schedules {
		if s.IsActive {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduleID < result[j].ScheduleID })
	return result, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	if _, ok := m.schedules[schedule.ScheduleID]; !ok {
		return gorm.ErrRecordNotFound
	}
	schedule.Version++
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) Activate(_ context.Context, id string) error {
	target, ok := m.schedules[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, s := range m.schedules {
		s.IsActive = false
	}
	target.IsActive = true
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.schedules[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.schedules, id)
	return nil
}

// ── Mock ScheduleBlockRepository ──

type mockScheduleBlockRepo struct {
	blocks map[string]*model.ScheduleBlock
	// mentors 用于 GetByID / ListBySchedule 回填 Mentor 关联
	mentors *mockMentorRepo
	// failCreateAfter >= 0 时，第 N 次之后的 Create 全部失败（用于部分写入失败场景）
	failCreateAfter int
	createCalls     int
}

func newMockScheduleBlockRepo(mentors *mockMentorRepo) *mockScheduleBlockRepo {
	return &mockScheduleBlockRepo{
		blocks:          make(map[string]*model.ScheduleBlock),
		mentors:         mentors,
		failCreateAfter: -1,
	}
}

func (m *mockScheduleBlockRepo) Create(_ context.Context, block *model.ScheduleBlock) error {
	m.createCalls++
	if m.failCreateAfter >= 0 && m.createCalls > m.failCreateAfter {
		return fmt.Errorf("模拟写入失败")
	}
	if block.BlockID == "" {
		block.BlockID = fmt.Sprintf("blk-%03d", len(m.blocks)+1)
	}
	m.blocks[block.BlockID] = block
	return nil
}

func (m *mockScheduleBlockRepo) GetByID(_ context.Context, id string) (*model.ScheduleBlock, error) {
	b, ok := m.blocks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	m.fillMentor(&copied)
	return &copied, nil
}

func (m *mockScheduleBlockRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.ScheduleBlock, error) {
	var result []model.ScheduleBlock
	for _, b := range m.blocks {
		if b.ScheduleID != scheduleID {
			continue
		}
		copied := *b
		m.fillMentor(&copied)
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Hour != result[j].Hour {
			return result[i].Hour < result[j].Hour
		}
		return result[i].Weekday < result[j].Weekday
	})
	return result, nil
}

func (m *mockScheduleBlockRepo) ExistsAt(_ context.Context, scheduleID, mentorID string, weekday, hour int) (bool, error) {
	for _, b := range m.blocks {
		if b.ScheduleID == scheduleID && b.MentorID == mentorID &&
			b.Weekday == weekday && b.Hour == hour {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockScheduleBlockRepo) UpdatePosition(_ context.Context, block *model.ScheduleBlock, weekday, hour int) error {
	stored, ok := m.blocks[block.BlockID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Weekday = weekday
	stored.Hour = hour
	block.Weekday = weekday
	block.Hour = hour
	return nil
}

func (m *mockScheduleBlockRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.blocks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.blocks, id)
	return nil
}

func (m *mockScheduleBlockRepo) DeleteBySchedule(_ context.Context, scheduleID string) error {
	for id, b := range m.blocks {
		if b.ScheduleID == scheduleID {
			delete(m.blocks, id)
		}
	}
	return nil
}

func (m *mockScheduleBlockRepo) fillMentor(block *model.ScheduleBlock) {
	if m.mentors == nil {
		return
	}
	if mentor, ok := m.mentors.mentors[block.MentorID]; ok {
		block.Mentor = mentor
	}
}

// ── Mock HeadcountRepository ──

type mockHeadcountRepo struct {
	entries []*model.HeadcountEntry
	// failList 为 true 时 ListBySemester 返回错误（用于降级场景）
	failList bool
}

func newMockHeadcountRepo() *mockHeadcountRepo {
	return &mockHeadcountRepo{}
}

func (m *mockHeadcountRepo) Create(_ context.Context, entry *model.HeadcountEntry) error {
	if entry.EntryID == "" {
		entry.EntryID = fmt.Sprintf("hc-%03d", len(m.entries)+1)
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHeadcountRepo) ListBySemester(_ context.Context, semesterID string) ([]model.HeadcountEntry, error) {
	if m.failList {
		return nil, fmt.Errorf("模拟查询失败")
	}
	var result []model.HeadcountEntry
	for _, e := range m.entries {
		if e.SemesterID == semesterID {
			result = append(result, *e)
		}
	}
	return result, nil
}
