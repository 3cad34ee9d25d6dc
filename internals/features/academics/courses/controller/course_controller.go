package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/features/academics/courses/dto"
	coursemodel "github.com/Davie-07/school-management-system/internals/features/academics/courses/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

type CourseHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{DB: db, Validate: validator.New()}
}

// List (GET /courses) — filters: department, status, q (name/code search)
func (h *CourseHandler) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&coursemodel.Course{})
	if v := c.Query("department"); v != "" {
		q = q.Where("course_department = ?", v)
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("course_status = ?", v)
	}
	if v := c.Query("q"); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(course_name) LIKE ? OR LOWER(course_code) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []coursemodel.Course
	if err := q.Order("course_name ASC").Limit(p.Limit).Offset(p.Offset).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", dto.ToCourseResponses(list), helper.BuildPagination(total, p))
}

// GetByID (GET /courses/:id)
func (h *CourseHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m coursemodel.Course
	if err := h.DB.First(&m, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var levels []coursemodel.Level
	if err := h.DB.Where("level_course_id = ?", id).Order("level_order ASC").Find(&levels).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", fiber.Map{
		"course": dto.ToCourseResponse(m),
		"levels": levels,
	})
}

// Create (POST /courses) — admin only (route-guarded)
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var in dto.CourseCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}
	actorID, err := authmw.UserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m := dto.CourseCreateDTOToModel(in, actorID)
	if err := h.DB.Create(&m).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusBadRequest, "A course with this name or code already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Course created successfully", dto.ToCourseResponse(m))
}

// Update (PUT /courses/:id) — admin only
func (h *CourseHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.CourseUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m coursemodel.Course
	if err := h.DB.First(&m, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	dto.ApplyCourseUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Course updated successfully", dto.ToCourseResponse(m))
}

// Delete (DELETE /courses/:id) — soft delete, admin only
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m coursemodel.Course
	if err := h.DB.First(&m, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Course deleted successfully", dto.ToCourseResponse(m))
}

// CreateLevel (POST /courses/:id/levels) — admin only
func (h *CourseHandler) CreateLevel(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.LevelCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	in.LevelCourseID = courseID
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := coursemodel.Level{
		LevelName:     in.LevelName,
		LevelCourseID: in.LevelCourseID,
		LevelOrder:    in.LevelOrder,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusBadRequest, "A level with this order already exists for the course")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Level created successfully", m)
}
