package dict

import (
	"github.com/gofiber/fiber/v2"

	"equip-repair-backend/controllers"
	equipmentprovider "equip-repair-backend/lib/dicts/equipment"
	apimodels "equip-repair-backend/models/api"
	dictapimodels "equip-repair-backend/models/api/dict"
)

type equipmentDictApiController struct {
	controllers.BaseAPIController
}

func InitEquipmentDictApiRouters(app *fiber.App) {
	controller := equipmentDictApiController{}
	app.Route("equipment", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Tạo thiết bị
// @Tags Danh mục. Thiết bị
// @Description Tạo thiết bị mới
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.EquipmentData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/equipment [post]
func (c *equipmentDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.EquipmentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := equipmentprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Tạo thiết bị thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Danh sách
// @Tags Danh mục. Thiết bị
// @Description Danh sách thiết bị
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page                query   int     false        "page"
// @Param   limit               query   int     false        "limit"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dictapimodels.EquipmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/equipment [get]
func (c *equipmentDictApiController) list(ctx *fiber.Ctx) error {
	list, rowCount, err := equipmentprovider.Instance.List(ctx.QueryInt("page"), ctx.QueryInt("limit"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy danh sách thiết bị thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Chi tiết
// @Tags Danh mục. Thiết bị
// @Description Thông tin thiết bị
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.EquipmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/equipment/{id} [get]
func (c *equipmentDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := equipmentprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy thiết bị thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Cập nhật
// @Tags Danh mục. Thiết bị
// @Description Cập nhật thiết bị
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 dictapimodels.EquipmentData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/equipment/{id} [put]
func (c *equipmentDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dictapimodels.EquipmentData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = equipmentprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Cập nhật thiết bị thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Xóa
// @Tags Danh mục. Thiết bị
// @Description Xóa thiết bị
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/equipment/{id} [delete]
func (c *equipmentDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = equipmentprovider.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Xóa thiết bị thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
