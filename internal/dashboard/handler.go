package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/realchief/RenderShotPanel/common"
	"github.com/realchief/RenderShotPanel/middleware"
)

type DashboardHandler struct {
	service DashboardServiceInterface
}

func NewDashboardHandler(s DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: s}
}

var _ DashboardHandlerInterface = (*DashboardHandler)(nil)

// Get returns the admin stats snapshot.
func (h *DashboardHandler) Get(c *gin.Context) {
	if !middleware.CurrentUser(c).IsSuperuser {
		c.Error(common.Errf(http.StatusForbidden, "dashboard is restricted to admin accounts"))
		return
	}

	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
