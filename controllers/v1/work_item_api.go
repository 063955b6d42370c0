package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"equip-repair-backend/controllers"
	workitemhandler "equip-repair-backend/lib/workitem"
	"equip-repair-backend/middleware"
	"equip-repair-backend/models"
	apimodels "equip-repair-backend/models/api"
)

type workItemApiController struct {
	controllers.BaseAPIController
}

func InitWorkItemApiRouters(app *fiber.App) {
	controller := workItemApiController{}
	app.Route("work_item", func(router fiber.Router) {
		router.Get("my", controller.my)
	})
}

// @Summary Công việc của tôi
// @Tags Công việc
// @Description Danh sách công việc của người dùng hiện tại
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status              query   string  false        "pending|done"
// @Success 200 {object} apimodels.Response{data=[]repairapimodels.WorkItemView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_item/my [get]
func (c *workItemApiController) my(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	var status *models.WorkItemStatus
	if value := ctx.Query("status"); value != "" {
		statusValue := models.WorkItemStatus(value)
		status = &statusValue
	}
	list, err := workitemhandler.Instance.ListMy(userID, status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Lấy danh sách công việc thất bại")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
