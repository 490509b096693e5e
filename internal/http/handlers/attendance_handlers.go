package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dilshan221/bakery-management/domain"
)

// AttendanceHandlers handles attendance HTTP requests
type AttendanceHandlers struct {
	attendanceRepo domain.AttendanceRepository
	employeeRepo   domain.EmployeeRepository
}

// NewAttendanceHandlers creates new attendance handlers
func NewAttendanceHandlers(attendanceRepo domain.AttendanceRepository, employeeRepo domain.EmployeeRepository) *AttendanceHandlers {
	return &AttendanceHandlers{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// AttendanceRequest represents an attendance create/update payload
type AttendanceRequest struct {
	EmployeeID uint   `json:"employee_id"`
	Date       string `json:"date"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Status     string `json:"status"`
	Note       string `json:"note"`
}

// normalizeDay truncates an incoming date to midnight UTC so one row per
// calendar day works reliably; an empty or malformed date means today.
func normalizeDay(raw string) time.Time {
	day := time.Now().UTC()
	if raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			day = parsed.UTC()
		} else if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			day = parsed.UTC()
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

func attendanceID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid attendance id"})
		return 0, false
	}
	return uint(id), true
}

// Mark handles marking attendance for an employee
func (h *AttendanceHandlers) Mark(c *gin.Context) {
	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.EmployeeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "employee_id is required"})
		return
	}

	if _, err := h.employeeRepo.FindByID(c.Request.Context(), req.EmployeeID); err != nil {
		if err == domain.ErrEmployeeNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	status := req.Status
	if status == "" {
		status = domain.AttendancePresent
	}

	att := domain.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       normalizeDay(req.Date),
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Status:     status,
		Note:       req.Note,
	}
	if err := h.attendanceRepo.Create(c.Request.Context(), &att); err != nil {
		if err == domain.ErrAttendanceExists {
			c.JSON(http.StatusConflict, gin.H{"message": "Attendance already marked for this date"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, att)
}

// List handles listing all attendance rows, newest day first
func (h *AttendanceHandlers) List(c *gin.Context) {
	rows, err := h.attendanceRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListByEmployee handles listing attendance for one employee
func (h *AttendanceHandlers) ListByEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("employeeId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee id"})
		return
	}

	rows, err := h.attendanceRepo.ListByEmployee(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Update handles attendance updates; moving a row onto an already marked
// day is a conflict
func (h *AttendanceHandlers) Update(c *gin.Context) {
	id, ok := attendanceID(c)
	if !ok {
		return
	}

	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	att, err := h.attendanceRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrAttendanceNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Attendance record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if req.EmployeeID != 0 {
		att.EmployeeID = req.EmployeeID
	}
	if req.Date != "" {
		att.Date = normalizeDay(req.Date)
	}
	if req.CheckIn != "" {
		att.CheckIn = req.CheckIn
	}
	if req.CheckOut != "" {
		att.CheckOut = req.CheckOut
	}
	if req.Status != "" {
		att.Status = req.Status
	}
	if req.Note != "" {
		att.Note = req.Note
	}

	if err := h.attendanceRepo.Update(c.Request.Context(), att); err != nil {
		switch err {
		case domain.ErrAttendanceExists:
			c.JSON(http.StatusConflict, gin.H{"message": "Attendance already exists for that date"})
		case domain.ErrAttendanceNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": "Attendance record not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, att)
}

// Delete handles attendance deletion
func (h *AttendanceHandlers) Delete(c *gin.Context) {
	id, ok := attendanceID(c)
	if !ok {
		return
	}

	if err := h.attendanceRepo.Delete(c.Request.Context(), id); err != nil {
		if err == domain.ErrAttendanceNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Attendance record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendance deleted"})
}
