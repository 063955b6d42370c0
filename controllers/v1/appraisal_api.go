package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"equip-repair-backend/controllers"
	dabhandler "equip-repair-backend/lib/ballots/dab"
	tabhandler "equip-repair-backend/lib/ballots/tab"
	"equip-repair-backend/middleware"
	apimodels "equip-repair-backend/models/api"
	repairapimodels "equip-repair-backend/models/api/repair"
)

type appraisalApiController struct {
	controllers.BaseAPIController
}

func InitAppraisalApiRouters(app *fiber.App) {
	controller := appraisalApiController{}
	app.Route("technical_appraisal", func(router fiber.Router) {
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getTechnical)
			idRoute.Put("sign", controller.signTechnical)
		})
	})
	app.Route("detail_appraisal", func(router fiber.Router) {
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getDetail)
			idRoute.Put("sign", controller.signDetail)
			idRoute.Put("items", controller.updateDetailItems)
		})
	})
}

// @Summary Chi tiết
// @Tags Biên bản giám định kỹ thuật
// @Description Chi tiết biên bản giám định kỹ thuật
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=repairapimodels.AppraisalBallotView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/technical_appraisal/{id} [get]
func (c *appraisalApiController) getTechnical(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := tabhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Ký
// @Tags Biên bản giám định kỹ thuật
// @Description Ký biên bản giám định kỹ thuật
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/technical_appraisal/{id}/sign [put]
func (c *appraisalApiController) signTechnical(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = tabhandler.Instance.Sign(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ký biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Chi tiết
// @Tags Biên bản giám định chi tiết
// @Description Chi tiết biên bản giám định chi tiết
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=repairapimodels.AppraisalBallotView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/detail_appraisal/{id} [get]
func (c *appraisalApiController) getDetail(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := dabhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Ký
// @Tags Biên bản giám định chi tiết
// @Description Ký biên bản giám định chi tiết
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/detail_appraisal/{id}/sign [put]
func (c *appraisalApiController) signDetail(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = dabhandler.Instance.Sign(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ký biên bản thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Cập nhật hạng mục
// @Tags Biên bản giám định chi tiết
// @Description Cập nhật hạng mục giám định
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 repairapimodels.AppraisalItemsData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/detail_appraisal/{id}/items [put]
func (c *appraisalApiController) updateDetailItems(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload repairapimodels.AppraisalItemsData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = dabhandler.Instance.UpdateItems(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Cập nhật hạng mục thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
