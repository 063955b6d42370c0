package dict

import (
	"github.com/gofiber/fiber/v2"

	"equip-repair-backend/controllers"
	materialprovider "equip-repair-backend/lib/dicts/material"
	apimodels "equip-repair-backend/models/api"
	dictapimodels "equip-repair-backend/models/api/dict"
)

type materialDictApiController struct {
	controllers.BaseAPIController
}

func InitMaterialDictApiRouters(app *fiber.App) {
	controller := materialDictApiController{}
	app.Route("material", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Tạo vật tư
// @Tags Danh mục. Vật tư
// @Description Tạo vật tư mới
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.MaterialData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/material [post]
func (c *materialDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.MaterialData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := materialprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Tạo vật tư thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Danh sách
// @Tags Danh mục. Vật tư
// @Description Danh sách vật tư
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page                query   int     false        "page"
// @Param   limit               query   int     false        "limit"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dictapimodels.MaterialView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/material [get]
func (c *materialDictApiController) list(ctx *fiber.Ctx) error {
	list, rowCount, err := materialprovider.Instance.List(ctx.QueryInt("page"), ctx.QueryInt("limit"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy danh sách vật tư thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Chi tiết
// @Tags Danh mục. Vật tư
// @Description Thông tin vật tư
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.MaterialView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/material/{id} [get]
func (c *materialDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := materialprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy vật tư thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Cập nhật
// @Tags Danh mục. Vật tư
// @Description Cập nhật vật tư
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 dictapimodels.MaterialData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/material/{id} [put]
func (c *materialDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dictapimodels.MaterialData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = materialprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Cập nhật vật tư thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Xóa
// @Tags Danh mục. Vật tư
// @Description Xóa vật tư
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/material/{id} [delete]
func (c *materialDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = materialprovider.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Xóa vật tư thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
