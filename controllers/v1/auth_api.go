package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"equip-repair-backend/controllers"
	authhandler "equip-repair-backend/lib/auth"
	apimodels "equip-repair-backend/models/api"
	authapimodels "equip-repair-backend/models/api/auth"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
	})
}

// @Summary Đăng nhập
// @Tags Xác thực
// @Description Đăng nhập bằng tài khoản và mật khẩu
// @Param	body body	 authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := authhandler.Instance.Login(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Đăng nhập thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
