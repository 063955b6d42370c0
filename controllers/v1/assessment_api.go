package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"equip-repair-backend/controllers"
	arbhandler "equip-repair-backend/lib/ballots/arb"
	qabhandler "equip-repair-backend/lib/ballots/qab"
	srbhandler "equip-repair-backend/lib/ballots/srb"
	"equip-repair-backend/middleware"
	apimodels "equip-repair-backend/models/api"
	repairapimodels "equip-repair-backend/models/api/repair"
)

type assessmentApiController struct {
	controllers.BaseAPIController
}

func InitAssessmentApiRouters(app *fiber.App) {
	controller := assessmentApiController{}
	app.Route("acceptance", func(router fiber.Router) {
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getAcceptance)
			idRoute.Put("sign", controller.signAcceptance)
		})
	})
	app.Route("quality_assessment", func(router fiber.Router) {
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getQuality)
			idRoute.Put("approve", controller.approveQuality)
			idRoute.Put("sign", controller.signQuality)
			idRoute.Put("final_approve", controller.finalApproveQuality)
			idRoute.Put("reject", controller.rejectQuality)
		})
	})
	app.Route("settlement", func(router fiber.Router) {
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getSettlement)
			idRoute.Put("sign", controller.signSettlement)
		})
	})
}

// @Summary Chi tiết
// @Tags Biên bản nghiệm thu
// @Description Chi tiết biên bản nghiệm thu
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=repairapimodels.AcceptanceBallotView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/acceptance/{id} [get]
func (c *assessmentApiController) getAcceptance(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := arbhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Ký
// @Tags Biên bản nghiệm thu
// @Description Ký biên bản nghiệm thu, kèm kết luận và ghi chú chạy thử
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 repairapimodels.AcceptanceSignData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/acceptance/{id}/sign [put]
func (c *assessmentApiController) signAcceptance(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload repairapimodels.AcceptanceSignData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = arbhandler.Instance.Sign(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ký biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Chi tiết
// @Tags Biên bản đánh giá chất lượng
// @Description Chi tiết biên bản đánh giá chất lượng
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=repairapimodels.QualityBallotView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/quality_assessment/{id} [get]
func (c *assessmentApiController) getQuality(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := qabhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Duyệt
// @Tags Biên bản đánh giá chất lượng
// @Description Duyệt biên bản và điều chỉnh hạng mục
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 repairapimodels.QualityItemsData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/quality_assessment/{id}/approve [put]
func (c *assessmentApiController) approveQuality(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload repairapimodels.QualityItemsData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = qabhandler.Instance.Approve(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Duyệt biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Ký
// @Tags Biên bản đánh giá chất lượng
// @Description Ký biên bản đánh giá chất lượng
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/quality_assessment/{id}/sign [put]
func (c *assessmentApiController) signQuality(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = qabhandler.Instance.Sign(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ký biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Phê duyệt cuối
// @Tags Biên bản đánh giá chất lượng
// @Description Phê duyệt cuối, yêu cầu đủ bốn chữ ký
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/quality_assessment/{id}/final_approve [put]
func (c *assessmentApiController) finalApproveQuality(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = qabhandler.Instance.FinalApprove(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Phê duyệt thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Từ chối
// @Tags Biên bản đánh giá chất lượng
// @Description Từ chối biên bản đánh giá chất lượng
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 repairapimodels.RejectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/quality_assessment/{id}/reject [put]
func (c *assessmentApiController) rejectQuality(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload repairapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = qabhandler.Instance.Reject(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Từ chối biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Chi tiết
// @Tags Biên bản quyết toán
// @Description Chi tiết biên bản quyết toán sửa chữa
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=repairapimodels.SettlementBallotView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settlement/{id} [get]
func (c *assessmentApiController) getSettlement(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := srbhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Ký
// @Tags Biên bản quyết toán
// @Description Ký biên bản quyết toán, chữ ký cuối sẽ đóng yêu cầu sửa chữa
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settlement/{id}/sign [put]
func (c *assessmentApiController) signSettlement(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = srbhandler.Instance.Sign(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ký biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
