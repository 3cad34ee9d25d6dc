package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	examdto "github.com/Davie-07/school-management-system/internals/features/academics/exams/dto"
	exammodel "github.com/Davie-07/school-management-system/internals/features/academics/exams/model"
	examservice "github.com/Davie-07/school-management-system/internals/features/academics/exams/service"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	"github.com/Davie-07/school-management-system/internals/helpers/authz"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

/* ==============================
   REPORT MISPRINT  POST /api/exams/:id/report-misprint  (student)
   Append-only; students can only dispute their own result.
============================== */

func (h *ExamHandler) ReportMisprint(c *fiber.Ctx) error {
	exam, res := h.loadExam(c, "id")
	if exam == nil {
		return res
	}

	var req examdto.MisprintReportDTO
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

	idx := exam.ResultFor(actorID)
	if idx == -1 {
		return helper.JsonError(c, fiber.StatusNotFound, "No result found for this student")
	}

	exam.ExamResults[idx].Misprints = append(exam.ExamResults[idx].Misprints, exammodel.Misprint{
		MisprintID: uuid.New(),
		ReportedBy: actorID,
		Issue:      req.Issue,
		ReportedAt: time.Now(),
	})

	if err := h.DB.Save(exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to report misprint")
	}
	return helper.JsonOK(c, "Misprint reported successfully", nil)
}

/* ==============================
   RESOLVE MISPRINT  PUT /api/exams/:examId/resolve-misprint/:misprintId
   Optionally rescores the disputed result.
============================== */

func (h *ExamHandler) ResolveMisprint(c *fiber.Ctx) error {
	exam, res := h.loadExam(c, "examId")
	if exam == nil {
		return res
	}
	if ok, resp := h.requireOwnership(c, exam, "Not authorized to resolve misprints for this exam"); !ok {
		return resp
	}

	misprintID, err := uuid.Parse(c.Params("misprintId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid misprint id")
	}

	var req examdto.MisprintResolveDTO
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
	found := false
	for ri := range exam.ExamResults {
		for mi := range exam.ExamResults[ri].Misprints {
			if exam.ExamResults[ri].Misprints[mi].MisprintID != misprintID {
				continue
			}
			m := &exam.ExamResults[ri].Misprints[mi]
			m.Resolved = true
			m.ResolvedBy = &actorID
			m.ResolvedAt = &now
			m.Resolution = req.Resolution

			if req.NewScore != nil {
				examservice.Rescore(&exam.ExamResults[ri], *req.NewScore, exam.ExamTotalMarks)
			}
			found = true
		}
	}
	if !found {
		return helper.JsonError(c, fiber.StatusNotFound, "Misprint not found")
	}

	if err := h.DB.Save(exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve misprint")
	}
	return helper.JsonOK(c, "Misprint resolved successfully", nil)
}

/* ==============================
   STUDENT RESULTS  GET /api/exams/student/:studentId
   Published results only; students may only read their own.
============================== */

func (h *ExamHandler) StudentResults(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	actor, err := authmw.ActorFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if !authz.CanReadStudentScoped(actor, studentID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to view these results")
	}

	var exams []exammodel.Exam
	if err := h.DB.
		Where("exam_results @> ?", `[{"student_id":"`+studentID.String()+`","published":true}]`).
		Order("exam_date DESC").
		Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student results")
	}

	results := make([]examdto.StudentExamResult, 0, len(exams))
	for _, exam := range exams {
		idx := exam.ResultFor(studentID)
		if idx == -1 || !exam.ExamResults[idx].Published {
			continue
		}
		results = append(results, examdto.StudentExamResult{
			ExamID:     exam.ExamID,
			Title:      exam.ExamTitle,
			ExamType:   exam.ExamType,
			Term:       exam.ExamTerm,
			Date:       exam.ExamDate,
			TotalMarks: exam.ExamTotalMarks,
			Result:     exam.ExamResults[idx],
		})
	}

	return helper.JsonOK(c, "Student results fetched", fiber.Map{
		"count":   len(results),
		"results": results,
	})
}
