package api

import (
	"church/internal/auth"
	"church/internal/entity"
	"church/internal/model"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const departmentNotFound = "department not found"

func (h *HTTPHandler) ListDepartments(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AnyRole); !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	departments, err := h.repo.ListDepartments(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list departments")
		InternalError(c, "failed to load departments")
		return
	}

	response := entity.DepartmentListResponse{Departments: make([]entity.Department, 0, len(departments))}
	for idx := range departments {
		response.Departments = append(response.Departments, makeDepartment(&departments[idx]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *HTTPHandler) GetDepartment(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AnyRole); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeDepartmentNotFound, departmentNotFound)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	department, err := h.repo.GetDepartment(ctx, id)
	if err != nil {
		h.respondLoadError(c, err, ErrCodeDepartmentNotFound, departmentNotFound, "failed to load department")
		return
	}
	c.JSON(http.StatusOK, makeDepartment(department))
}

func (h *HTTPHandler) CreateDepartment(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AdminOnly); !ok {
		return
	}

	updates, ok := h.bindDepartment(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	department := &entity.DbDepartment{
		Name:        updates.Name,
		Description: updates.Description,
		LeaderID:    updates.LeaderID,
	}
	if err := h.repo.CreateDepartment(ctx, department); err != nil {
		logrus.WithError(err).Error("failed to create department")
		InternalError(c, "failed to create department")
		return
	}
	c.JSON(http.StatusCreated, makeDepartment(department))
}

func (h *HTTPHandler) UpdateDepartment(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AdminOnly); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeDepartmentNotFound, departmentNotFound)
	if !ok {
		return
	}

	updates, ok := h.bindDepartment(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.repo.GetDepartment(ctx, id); err != nil {
		h.respondLoadError(c, err, ErrCodeDepartmentNotFound, departmentNotFound, "failed to load department")
		return
	}
	if err := h.repo.UpdateDepartment(ctx, id, updates); err != nil {
		logrus.WithError(err).WithField("department_id", id).Error("failed to update department")
		InternalError(c, "failed to update department")
		return
	}

	updated, err := h.repo.GetDepartment(ctx, id)
	if err != nil {
		h.respondLoadError(c, err, ErrCodeDepartmentNotFound, departmentNotFound, "failed to load department")
		return
	}
	c.JSON(http.StatusOK, makeDepartment(updated))
}

// DeleteDepartment refuses while any member, active or not, still belongs to it.
func (h *HTTPHandler) DeleteDepartment(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AdminOnly); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeDepartmentNotFound, departmentNotFound)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.DeleteDepartment(ctx, id); err != nil {
		if errors.Is(err, model.ErrDepartmentInUse) {
			BadRequest(c, ErrCodeDepartmentInUse, "department still has members")
			return
		}
		h.respondLoadError(c, err, ErrCodeDepartmentNotFound, departmentNotFound, "failed to delete department")
		return
	}
	c.JSON(http.StatusOK, entity.MessageResponse{Message: "Department deleted"})
}

func (h *HTTPHandler) bindDepartment(c *gin.Context) (entity.DepartmentUpdates, bool) {
	var req entity.DepartmentRequest
	if !bindJSON(c, &req) {
		return entity.DepartmentUpdates{}, false
	}

	updates := entity.DepartmentUpdates{LeaderID: req.LeaderID}
	var ok bool
	if updates.Name, ok = requireText(c, "name", req.Name); !ok {
		return updates, false
	}
	if updates.Description, ok = requireText(c, "description", req.Description); !ok {
		return updates, false
	}

	if req.LeaderID != nil {
		ctx, cancel := requestContext(c)
		defer cancel()

		leader, err := h.repo.GetUserByID(ctx, *req.LeaderID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound), err == nil && !leader.IsActive:
			InvalidReference(c, "leader_id")
			return updates, false
		case err != nil:
			logrus.WithError(err).Error("failed to load department leader")
			InternalError(c, "failed to verify leader")
			return updates, false
		}
	}
	return updates, true
}
