package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"equip-repair-backend/controllers"
	msbhandler "equip-repair-backend/lib/ballots/msb"
	"equip-repair-backend/middleware"
	apimodels "equip-repair-backend/models/api"
	repairapimodels "equip-repair-backend/models/api/repair"
)

type supplyBallotApiController struct {
	controllers.BaseAPIController
}

func InitSupplyBallotApiRouters(app *fiber.App) {
	controller := supplyBallotApiController{}
	app.Route("supply_ballot", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get("prepare/:equipment_id", controller.prepare)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("items", controller.updateItems)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("sign", controller.sign)
			idRoute.Put("sign_adjust", controller.signAdjust)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Tạo phiếu
// @Tags Phiếu cấp vật tư
// @Description Tạo phiếu cấp vật tư mới
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 repairapimodels.SupplyBallotCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/supply_ballot [post]
func (c *supplyBallotApiController) create(ctx *fiber.Ctx) error {
	var payload repairapimodels.SupplyBallotCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := msbhandler.Instance.Create(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Tạo phiếu cấp vật tư thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Danh sách
// @Tags Phiếu cấp vật tư
// @Description Danh sách phiếu cấp vật tư
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 repairapimodels.SupplyBallotFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]repairapimodels.SupplyBallotView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/supply_ballot/list [post]
func (c *supplyBallotApiController) list(ctx *fiber.Ctx) error {
	var filter repairapimodels.SupplyBallotFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := msbhandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy danh sách phiếu thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Chuẩn bị
// @Tags Phiếu cấp vật tư
// @Description Thông tin còn lại trước khi tạo phiếu bổ sung
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   equipment_id        path    string  true         "equipment ID"
// @Success 200 {object} apimodels.Response{data=repairapimodels.PrepareSupplyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/supply_ballot/prepare/{equipment_id} [get]
func (c *supplyBallotApiController) prepare(ctx *fiber.Ctx) error {
	equipmentID := ctx.Params("equipment_id")
	if equipmentID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("equipment id is required"))
	}
	view, err := msbhandler.Instance.Prepare(equipmentID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy thông tin chuẩn bị thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Chi tiết
// @Tags Phiếu cấp vật tư
// @Description Chi tiết phiếu cấp vật tư
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=repairapimodels.SupplyBallotView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/supply_ballot/{id} [get]
func (c *supplyBallotApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := msbhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy phiếu cấp vật tư thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Cập nhật vật tư
// @Tags Phiếu cấp vật tư
// @Description Cập nhật danh sách vật tư của phiếu
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 []repairapimodels.SupplyDetailData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/supply_ballot/{id}/items [put]
func (c *supplyBallotApiController) updateItems(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload []repairapimodels.SupplyDetailData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = msbhandler.Instance.UpdateItems(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Cập nhật vật tư thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Duyệt
// @Tags Phiếu cấp vật tư
// @Description Duyệt phiếu và điều chỉnh số lượng
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 repairapimodels.SupplyAdjustData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/supply_ballot/{id}/approve [put]
func (c *supplyBallotApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload repairapimodels.SupplyAdjustData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = msbhandler.Instance.Approve(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Duyệt phiếu thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Từ chối
// @Tags Phiếu cấp vật tư
// @Description Từ chối phiếu cấp vật tư
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 repairapimodels.RejectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/supply_ballot/{id}/reject [put]
func (c *supplyBallotApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload repairapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = msbhandler.Instance.Reject(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Từ chối phiếu thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Ký
// @Tags Phiếu cấp vật tư
// @Description Ký phiếu cấp vật tư
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/supply_ballot/{id}/sign [put]
func (c *supplyBallotApiController) sign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = msbhandler.Instance.Sign(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ký phiếu thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Ký và chốt số lượng
// @Tags Phiếu cấp vật tư
// @Description Thủ kho ký kèm số lượng thực cấp
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 repairapimodels.SupplyAdjustData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/supply_ballot/{id}/sign_adjust [put]
func (c *supplyBallotApiController) signAdjust(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload repairapimodels.SupplyAdjustData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = msbhandler.Instance.SignAndAdjustSupplies(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ký phiếu thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Xóa
// @Tags Phiếu cấp vật tư
// @Description Xóa phiếu nháp
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/supply_ballot/{id} [delete]
func (c *supplyBallotApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err = msbhandler.Instance.Delete(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Xóa phiếu thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
