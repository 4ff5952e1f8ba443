package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/middleware"
)

type TicketHandler struct {
	service TicketServiceInterface
}

func NewTicketHandler(s TicketServiceInterface) *TicketHandler {
	return &TicketHandler{service: s}
}

var _ TicketHandlerInterface = (*TicketHandler)(nil)

func (h *TicketHandler) Create(c *gin.Context) {
	var req dto.TicketCreateRequest
	if !middleware.Bind(c, &req) {
		return
	}

	ticket, err := h.service.CreateTicket(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToTicketResponse(ticket, true))
}

func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.service.GetTicket(c.Request.Context(), middleware.CurrentUser(c), c.Param("number"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToTicketResponse(ticket, true))
}

func (h *TicketHandler) List(c *gin.Context) {
	tickets, err := h.service.ListTickets(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (h *TicketHandler) Reply(c *gin.Context) {
	var req dto.TicketReplyRequest
	if !middleware.Bind(c, &req) {
		return
	}

	ticket, err := h.service.Reply(c.Request.Context(), middleware.CurrentUser(c), c.Param("number"), req.Body)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToTicketResponse(ticket, true))
}

func (h *TicketHandler) SetStatus(c *gin.Context) {
	var req dto.TicketStatusRequest
	if !middleware.Bind(c, &req) {
		return
	}

	err := h.service.SetStatus(c.Request.Context(), middleware.CurrentUser(c), c.Param("number"), models.TicketStatus(req.Status))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
