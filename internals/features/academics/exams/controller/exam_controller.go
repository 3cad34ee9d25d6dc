package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	examdto "github.com/Davie-07/school-management-system/internals/features/academics/exams/dto"
	exammodel "github.com/Davie-07/school-management-system/internals/features/academics/exams/model"
	examservice "github.com/Davie-07/school-management-system/internals/features/academics/exams/service"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	"github.com/Davie-07/school-management-system/internals/helpers/authz"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

type ExamHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewExamHandler(db *gorm.DB) *ExamHandler {
	return &ExamHandler{DB: db, Validate: validator.New()}
}

/* ==============================
   LIST  GET /api/exams
   Students see published exams for their own course/level; teachers see
   their own exams; staff see everything.
============================== */

func (h *ExamHandler) List(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := h.DB.Model(&exammodel.Exam{})
	switch user.UserRole {
	case "student":
		q = q.Where("exam_status = ?", exammodel.ExamStatusPublished)
		if user.UserCourseID != nil {
			q = q.Where("exam_course_id = ?", *user.UserCourseID)
		}
		if user.UserLevelID != nil {
			q = q.Where("exam_level_id = ?", *user.UserLevelID)
		}
	case "teacher":
		q = q.Where("exam_teacher_id = ?", user.UserID)
	}

	for param, column := range map[string]string{
		"course":   "exam_course_id",
		"level":    "exam_level_id",
		"teacher":  "exam_teacher_id",
		"examType": "exam_type",
		"term":     "exam_term",
		"status":   "exam_status",
	} {
		if v := strings.TrimSpace(c.Query(param)); v != "" {
			q = q.Where(fmt.Sprintf("%s = ?", column), v)
		}
	}

	var exams []exammodel.Exam
	if err := q.Order("exam_date DESC").Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch exams")
	}

	return helper.JsonOK(c, "Exams fetched", fiber.Map{
		"count": len(exams),
		"exams": exams,
	})
}

/* ==============================
   GET  /api/exams/:id
============================== */

func (h *ExamHandler) GetByID(c *fiber.Ctx) error {
	exam, res := h.loadExam(c, "id")
	if exam == nil {
		return res
	}

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	// students see only their own published result
	if user.UserRole == "student" {
		own := make([]exammodel.ExamResult, 0, 1)
		for _, r := range exam.ExamResults {
			if r.StudentID == user.UserID && r.Published {
				own = append(own, r)
			}
		}
		exam.ExamResults = own
	}

	return helper.JsonOK(c, "Exam fetched", exam)
}

/* ==============================
   CREATE  POST /api/exams
============================== */

func (h *ExamHandler) Create(c *fiber.Ctx) error {
	var req examdto.ExamCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actor, err := authmw.ActorFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	courseID, _ := uuid.Parse(req.CourseID)
	if !authz.CanMutate(actor, authz.Resource{CourseID: &courseID}) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not assigned to this course")
	}

	// teachers always own their exams; admins may create on another
	// teacher's behalf
	teacherID := actor.ID
	if actor.Role == "admin" && req.TeacherID != "" {
		id, perr := uuid.Parse(req.TeacherID)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
		}
		teacherID = id
	}

	now := time.Now()
	term := req.Term
	if term == "" {
		term = fmt.Sprintf("%s %s", helper.CurrentTerm(now), helper.CurrentAcademicYear(now))
	}

	exam := req.ToModel(teacherID, term)
	if err := h.DB.Create(&exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create exam")
	}
	return helper.JsonCreated(c, "Exam created successfully", exam)
}

/* ==============================
   UPDATE  PUT /api/exams/:id
============================== */

func (h *ExamHandler) Update(c *fiber.Ctx) error {
	exam, res := h.loadExam(c, "id")
	if exam == nil {
		return res
	}
	if ok, resp := h.requireOwnership(c, exam, "Not authorized to update this exam"); !ok {
		return resp
	}

	var req examdto.ExamUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	examdto.ApplyExamUpdate(exam, &req)
	if err := h.DB.Save(exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update exam")
	}
	return helper.JsonUpdated(c, "Exam updated successfully", exam)
}

/* ==============================
   BULK RESULTS  POST /api/exams/:id/results
   Upsert by student id; re-marking keeps publication state and misprint
   history. The exam flips to marked.
============================== */

func (h *ExamHandler) UpsertResults(c *fiber.Ctx) error {
	exam, res := h.loadExam(c, "id")
	if exam == nil {
		return res
	}
	if ok, resp := h.requireOwnership(c, exam, "Not authorized to add results for this exam"); !ok {
		return resp
	}

	var req examdto.BulkResultsDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, err := authmw.UserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	now := time.Now()
	results := []exammodel.ExamResult(exam.ExamResults)
	for _, entry := range req.Results {
		studentID, perr := uuid.Parse(entry.StudentID)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id in results")
		}
		fresh := examservice.ScoreResult(studentID, entry.Score, entry.Remarks, exam.ExamTotalMarks, actorID, now)
		results = examservice.UpsertResult(results, fresh)
	}
	exam.ExamResults = results
	exam.ExamStatus = exammodel.ExamStatusMarked

	if err := h.DB.Save(exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save results")
	}
	return helper.JsonOK(c, "Results added successfully", exam)
}

/* ==============================
   PUBLISH  POST /api/exams/:id/publish
   Flips every result at once. Irreversible.
============================== */

func (h *ExamHandler) Publish(c *fiber.Ctx) error {
	exam, res := h.loadExam(c, "id")
	if exam == nil {
		return res
	}
	if ok, resp := h.requireOwnership(c, exam, "Not authorized to publish results for this exam"); !ok {
		return resp
	}

	exam.ExamResults = examservice.Publish(exam.ExamResults, time.Now())
	exam.ExamStatus = exammodel.ExamStatusPublished

	if err := h.DB.Save(exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to publish results")
	}
	return helper.JsonOK(c, "Results published successfully", exam)
}

/* ==============================
   shared
============================== */

// loadExam resolves the named path param. On failure the error response is
// already written and the returned exam is nil.
func (h *ExamHandler) loadExam(c *fiber.Ctx, param string) (*exammodel.Exam, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}
	var exam exammodel.Exam
	if err := h.DB.First(&exam, "exam_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch exam")
	}
	return &exam, nil
}

// requireOwnership applies the uniform mutation rule. When denied the error
// response is already written; the caller returns the second value.
func (h *ExamHandler) requireOwnership(c *fiber.Ctx, exam *exammodel.Exam, message string) (bool, error) {
	actor, err := authmw.ActorFromLocals(c)
	if err != nil {
		return false, helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if !authz.CanMutate(actor, authz.Resource{
		OwnerTeacherID: &exam.ExamTeacherID,
		CourseID:       &exam.ExamCourseID,
	}) {
		return false, helper.JsonError(c, fiber.StatusForbidden, message)
	}
	return true, nil
}
