package handler

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/GowthamBk/student-management-api/internal/errors"
	"github.com/GowthamBk/student-management-api/internal/student/dto"
	"github.com/GowthamBk/student-management-api/internal/student/service"
)

type StudentHandler struct {
	studentService *service.StudentService
}

func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var input dto.StudentCreate
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidation(apperrors.MsgInvalidBody)
	}

	student, err := h.studentService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewStudentResponse(student))
}

func (h *StudentHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)
	search := c.Query("search")

	response, err := h.studentService.List(c.Context(), page, pageSize, search)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *StudentHandler) Get(c *fiber.Ctx) error {
	student, err := h.studentService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewStudentResponse(student))
}

func (h *StudentHandler) Update(c *fiber.Ctx) error {
	var input dto.StudentUpdate
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidation(apperrors.MsgInvalidBody)
	}

	student, err := h.studentService.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewStudentResponse(student))
}

func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	if err := h.studentService.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
