package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"equip-repair-backend/controllers"
	asbhandler "equip-repair-backend/lib/ballots/asb"
	"equip-repair-backend/middleware"
	apimodels "equip-repair-backend/models/api"
	repairapimodels "equip-repair-backend/models/api/repair"
)

type assignmentApiController struct {
	controllers.BaseAPIController
}

func InitAssignmentApiRouters(app *fiber.App) {
	controller := assignmentApiController{}
	app.Route("assignment", func(router fiber.Router) {
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("sign", controller.sign)
			idRoute.Put("delegate", controller.delegate)
			idRoute.Put("approve_job", controller.approveJob)
			idRoute.Put("approve_job_by_lead", controller.approveJobByLead)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
		})
	})
}

// @Summary Chi tiết
// @Tags Phiếu giao việc
// @Description Chi tiết phiếu giao việc
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=repairapimodels.AssignmentBallotView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/{id} [get]
func (c *assignmentApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := asbhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy phiếu giao việc thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Ký
// @Tags Phiếu giao việc
// @Description Người giao việc ký phiếu
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/{id}/sign [put]
func (c *assignmentApiController) sign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = asbhandler.Instance.Sign(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ký phiếu thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Giao việc
// @Tags Phiếu giao việc
// @Description Chỉ định phó quản đốc và tổ trưởng thực hiện
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 repairapimodels.DelegateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/{id}/delegate [put]
func (c *assignmentApiController) delegate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload repairapimodels.DelegateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = asbhandler.Instance.Delegate(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Giao việc thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Xác nhận nhiệm vụ
// @Tags Phiếu giao việc
// @Description Phó quản đốc xác nhận nhiệm vụ
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/{id}/approve_job [put]
func (c *assignmentApiController) approveJob(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = asbhandler.Instance.ApproveJob(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Xác nhận nhiệm vụ thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Tổ trưởng xác nhận
// @Tags Phiếu giao việc
// @Description Tổ trưởng xác nhận nhiệm vụ
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/{id}/approve_job_by_lead [put]
func (c *assignmentApiController) approveJobByLead(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = asbhandler.Instance.ApproveJobByLead(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Xác nhận nhiệm vụ thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Phê duyệt
// @Tags Phiếu giao việc
// @Description Phê duyệt cuối cùng sau khi chuỗi xác nhận hoàn tất
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/{id}/approve [put]
func (c *assignmentApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = asbhandler.Instance.Approve(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Phê duyệt thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Từ chối
// @Tags Phiếu giao việc
// @Description Từ chối phiếu giao việc
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 repairapimodels.RejectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/{id}/reject [put]
func (c *assignmentApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload repairapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = asbhandler.Instance.Reject(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Từ chối phiếu thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
