package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"equip-repair-backend/controllers"
	repairrequesthandler "equip-repair-backend/lib/repair-request"
	apimodels "equip-repair-backend/models/api"
	repairapimodels "equip-repair-backend/models/api/repair"
)

type repairRequestApiController struct {
	controllers.BaseAPIController
}

func InitRepairRequestApiRouters(app *fiber.App) {
	controller := repairRequestApiController{}
	app.Route("repair_request", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("history", controller.history)
		router.Get("history/export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
		})
	})
}

// @Summary Danh sách
// @Tags Yêu cầu sửa chữa
// @Description Danh sách yêu cầu sửa chữa
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 repairapimodels.RepairRequestFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]repairapimodels.RepairRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/repair_request/list [post]
func (c *repairRequestApiController) list(ctx *fiber.Ctx) error {
	var filter repairapimodels.RepairRequestFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := repairrequesthandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy danh sách yêu cầu thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Chi tiết
// @Tags Yêu cầu sửa chữa
// @Description Chi tiết yêu cầu sửa chữa với các biên bản liên quan
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=repairapimodels.RepairRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/repair_request/{id} [get]
func (c *repairRequestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := repairrequesthandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy yêu cầu sửa chữa thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Lịch sử
// @Tags Yêu cầu sửa chữa
// @Description Lịch sử sửa chữa, lọc theo thiết bị nếu có
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   equipment_id        query   string  false        "equipment ID"
// @Success 200 {object} apimodels.Response{data=[]repairapimodels.RepairHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/repair_request/history [get]
func (c *repairRequestApiController) history(ctx *fiber.Ctx) error {
	list, err := repairrequesthandler.Instance.History(ctx.Query("equipment_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy lịch sử sửa chữa thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Xuất lịch sử
// @Tags Yêu cầu sửa chữa
// @Description Xuất lịch sử sửa chữa ra file xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   equipment_id        query   string  false        "equipment ID"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/repair_request/history/export [get]
func (c *repairRequestApiController) export(ctx *fiber.Ctx) error {
	buf, err := repairrequesthandler.Instance.Export(ctx.Query("equipment_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Xuất lịch sử thất bại")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="repair_history.xlsx"`)
	return ctx.Status(fiber.StatusOK).SendStream(buf)
}
