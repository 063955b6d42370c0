package dict

import (
	"github.com/gofiber/fiber/v2"

	"equip-repair-backend/controllers"
	departmentprovider "equip-repair-backend/lib/dicts/department"
	apimodels "equip-repair-backend/models/api"
	dictapimodels "equip-repair-backend/models/api/dict"
)

type departmentDictApiController struct {
	controllers.BaseAPIController
}

func InitDepartmentDictApiRouters(app *fiber.App) {
	controller := departmentDictApiController{}
	app.Route("department", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Tạo phòng ban
// @Tags Danh mục. Phòng ban
// @Description Tạo phòng ban mới
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DepartmentData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department [post]
func (c *departmentDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.DepartmentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := departmentprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Tạo phòng ban thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Danh sách
// @Tags Danh mục. Phòng ban
// @Description Danh sách phòng ban
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page                query   int     false        "page"
// @Param   limit               query   int     false        "limit"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dictapimodels.DepartmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department [get]
func (c *departmentDictApiController) list(ctx *fiber.Ctx) error {
	list, rowCount, err := departmentprovider.Instance.List(ctx.QueryInt("page"), ctx.QueryInt("limit"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy danh sách phòng ban thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Chi tiết
// @Tags Danh mục. Phòng ban
// @Description Thông tin phòng ban
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DepartmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department/{id} [get]
func (c *departmentDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := departmentprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy phòng ban thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Cập nhật
// @Tags Danh mục. Phòng ban
// @Description Cập nhật phòng ban
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Param	body body	 dictapimodels.DepartmentData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department/{id} [put]
func (c *departmentDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dictapimodels.DepartmentData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = departmentprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Cập nhật phòng ban thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Xóa
// @Tags Danh mục. Phòng ban
// @Description Xóa phòng ban
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department/{id} [delete]
func (c *departmentDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = departmentprovider.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Xóa phòng ban thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
