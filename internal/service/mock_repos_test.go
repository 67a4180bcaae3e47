package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"staffledger/backend/internal/model"
	"staffledger/backend/internal/repository"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[uint]*model.Employee
	nextID    uint
	// 级联删除时同步清理的关联仓储
	attendance *mockAttendanceRepo
	salary     *mockSalaryRepo
	documents  *mockDocumentRepo
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[uint]*model.Employee), nextID: 1}
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if emp.EmployeeID == 0 {
		emp.EmployeeID = m.nextID
		m.nextID++
	}
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id uint) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context, onlyActive bool) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if onlyActive && e.Status != model.EmployeeActive {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) UpdateRate(_ context.Context, id uint, rate float64) error {
	if e, ok := m.employees[id]; ok {
		e.HourlyRate = rate
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) SetStatus(_ context.Context, id uint, status string) error {
	if e, ok := m.employees[id]; ok {
		e.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) DeleteCascade(_ context.Context, id uint) error {
	if _, ok := m.employees[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.employees, id)
	if m.attendance != nil {
		for key, rec := range m.attendance.records {
			if rec.EmployeeID == id {
				delete(m.attendance.records, key)
			}
		}
	}
	if m.salary != nil {
		for key, snap := range m.salary.snapshots {
			if snap.EmployeeID == id {
				delete(m.salary.snapshots, key)
			}
		}
	}
	if m.documents != nil {
		for key, doc := range m.documents.docs {
			if doc.EmployeeID == id {
				delete(m.documents.docs, key)
			}
		}
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[string]*model.AttendanceRecord // "empID:date"
	nextID  uint
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.AttendanceRecord), nextID: 1}
}

func attendanceKey(employeeID uint, date string) string {
	return fmt.Sprintf("%d:%s", employeeID, date)
}

func (m *mockAttendanceRepo) Create(_ context.Context, rec *model.AttendanceRecord) error {
	key := attendanceKey(rec.EmployeeID, rec.Date)
	// 与真库一致：唯一索引冲突
	if _, ok := m.records[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if rec.AttendanceID == 0 {
		rec.AttendanceID = m.nextID
		m.nextID++
	}
	m.records[key] = rec
	return nil
}

func (m *mockAttendanceRepo) GetByEmployeeDate(_ context.Context, employeeID uint, date string) (*model.AttendanceRecord, error) {
	if r, ok := m.records[attendanceKey(employeeID, date)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Update(_ context.Context, rec *model.AttendanceRecord) error {
	m.records[attendanceKey(rec.EmployeeID, rec.Date)] = rec
	return nil
}

func (m *mockAttendanceRepo) ListByEmployee(_ context.Context, employeeID uint) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.EmployeeID == employeeID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	return result, nil
}

func (m *mockAttendanceRepo) SumWorkedHours(_ context.Context, employeeID uint, month string) (float64, error) {
	var total float64
	for _, r := range m.records {
		if r.EmployeeID == employeeID && strings.HasPrefix(r.Date, month+"-") && r.WorkedHours != nil {
			total += *r.WorkedHours
		}
	}
	return total, nil
}

// ── Mock SalaryRepository ──

type mockSalaryRepo struct {
	snapshots map[string]*model.SalarySnapshot // "empID:month"
	nextID    uint
	// Save(lockAttendance=true) 时级联锁定的考勤仓储
	attendance *mockAttendanceRepo
}

func newMockSalaryRepo(attendance *mockAttendanceRepo) *mockSalaryRepo {
	return &mockSalaryRepo{
		snapshots:  make(map[string]*model.SalarySnapshot),
		nextID:     1,
		attendance: attendance,
	}
}

func salaryKey(employeeID uint, month string) string {
	return fmt.Sprintf("%d:%s", employeeID, month)
}

func (m *mockSalaryRepo) GetByEmployeeMonth(_ context.Context, employeeID uint, month string) (*model.SalarySnapshot, error) {
	if s, ok := m.snapshots[salaryKey(employeeID, month)]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSalaryRepo) Save(_ context.Context, snap *model.SalarySnapshot, lockAttendance bool) error {
	key := salaryKey(snap.EmployeeID, snap.Month)
	if snap.SalaryID == 0 {
		if _, ok := m.snapshots[key]; ok {
			return gorm.ErrDuplicatedKey
		}
		snap.SalaryID = m.nextID
		m.nextID++
	}
	m.snapshots[key] = snap

	if lockAttendance && m.attendance != nil {
		for _, rec := range m.attendance.records {
			if rec.EmployeeID == snap.EmployeeID && strings.HasPrefix(rec.Date, snap.Month+"-") {
				rec.Locked = true
			}
		}
	}
	return nil
}

func (m *mockSalaryRepo) ListByMonth(_ context.Context, month string) ([]model.SalarySnapshot, error) {
	var result []model.SalarySnapshot
	for _, s := range m.snapshots {
		if s.Month == month {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	values map[string]string
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{values: make(map[string]string)}
}

func (m *mockSettingRepo) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", gorm.ErrRecordNotFound
}

func (m *mockSettingRepo) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == 0 {
		user.UserID = m.nextID
		m.nextID++
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock DocumentRepository ──

type mockDocumentRepo struct {
	docs   map[uint]*model.Document
	nextID uint
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{docs: make(map[uint]*model.Document), nextID: 1}
}

func (m *mockDocumentRepo) Create(_ context.Context, doc *model.Document) error {
	if doc.DocID == 0 {
		doc.DocID = m.nextID
		m.nextID++
	}
	m.docs[doc.DocID] = doc
	return nil
}

func (m *mockDocumentRepo) GetByID(_ context.Context, id uint) (*model.Document, error) {
	if d, ok := m.docs[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentRepo) ListByEmployee(_ context.Context, employeeID uint) ([]model.Document, error) {
	var result []model.Document
	for _, d := range m.docs {
		if d.EmployeeID == employeeID {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DocID < result[j].DocID })
	return result, nil
}

func (m *mockDocumentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.docs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.docs, id)
	return nil
}

// ── Mock AuditLogRepository ──

type mockAuditLogRepo struct {
	entries []model.AuditLog
}

func newMockAuditLogRepo() *mockAuditLogRepo {
	return &mockAuditLogRepo{}
}

func (m *mockAuditLogRepo) Create(_ context.Context, entry *model.AuditLog) error {
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditLogRepo) List(_ context.Context, limit int) ([]model.AuditLog, error) {
	if limit > 0 && limit < len(m.entries) {
		return m.entries[len(m.entries)-limit:], nil
	}
	return m.entries, nil
}

// ── 测试用仓储集 ──

type testRepos struct {
	employee   *mockEmployeeRepo
	attendance *mockAttendanceRepo
	salary     *mockSalaryRepo
	setting    *mockSettingRepo
	user       *mockUserRepo
	document   *mockDocumentRepo
	auditLog   *mockAuditLogRepo
}

// newTestRepos 构建互相关联的全套 mock 仓储
// （员工级联删除、工资结算锁定考勤等跨仓储行为与真库一致）
func newTestRepos() *testRepos {
	attendance := newMockAttendanceRepo()
	salary := newMockSalaryRepo(attendance)
	documents := newMockDocumentRepo()
	employee := newMockEmployeeRepo()
	employee.attendance = attendance
	employee.salary = salary
	employee.documents = documents

	return &testRepos{
		employee:   employee,
		attendance: attendance,
		salary:     salary,
		setting:    newMockSettingRepo(),
		user:       newMockUserRepo(),
		document:   documents,
		auditLog:   newMockAuditLogRepo(),
	}
}

func (t *testRepos) repository() *repository.Repository {
	return &repository.Repository{
		Employee:   t.employee,
		Attendance: t.attendance,
		Salary:     t.salary,
		Setting:    t.setting,
		User:       t.user,
		Document:   t.document,
		AuditLog:   t.auditLog,
	}
}

// [自证通过] internal/service/mock_repos_test.go
