package dict

import (
	"github.com/gofiber/fiber/v2"

	"equip-repair-backend/controllers"
	positionprovider "equip-repair-backend/lib/dicts/position"
	apimodels "equip-repair-backend/models/api"
	dictapimodels "equip-repair-backend/models/api/dict"
)

type positionDictApiController struct {
	controllers.BaseAPIController
}

func InitPositionDictApiRouters(app *fiber.App) {
	controller := positionDictApiController{}
	app.Route("position", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Tạo chức vụ
// @Tags Danh mục. Chức vụ
// @Description Tạo chức vụ mới
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.PositionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/position [post]
func (c *positionDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.PositionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := positionprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Tạo chức vụ thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Danh sách
// @Tags Danh mục. Chức vụ
// @Description Danh sách chức vụ
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page                query   int     false        "page"
// @Param   limit               query   int     false        "limit"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dictapimodels.PositionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/position [get]
func (c *positionDictApiController) list(ctx *fiber.Ctx) error {
	list, rowCount, err := positionprovider.Instance.List(ctx.QueryInt("page"), ctx.QueryInt("limit"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy danh sách chức vụ thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Chi tiết
// @Tags Danh mục. Chức vụ
// @Description Thông tin chức vụ
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.PositionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/position/{id} [get]
func (c *positionDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := positionprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy chức vụ thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Cập nhật
// @Tags Danh mục. Chức vụ
// @Description Cập nhật chức vụ
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 dictapimodels.PositionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/position/{id} [put]
func (c *positionDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dictapimodels.PositionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = positionprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Cập nhật chức vụ thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Xóa
// @Tags Danh mục. Chức vụ
// @Description Xóa chức vụ
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/position/{id} [delete]
func (c *positionDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = positionprovider.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Xóa chức vụ thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
