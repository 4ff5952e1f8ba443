package ticket

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/internal/models"
)

// TicketRepoInterface defines the contract for ticket persistence.
type TicketRepoInterface interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	Save(ctx context.Context, ticket *models.Ticket) error
	GetByNumber(ctx context.Context, number string) (*models.Ticket, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Ticket, error)
	AddReply(ctx context.Context, reply *models.TicketReply) error
}

type TicketServiceInterface interface {
	CreateTicket(ctx context.Context, user *models.User, req *dto.TicketCreateRequest) (*models.Ticket, error)
	Reply(ctx context.Context, author *models.User, number, body string) (*models.Ticket, error)
	GetTicket(ctx context.Context, user *models.User, number string) (*models.Ticket, error)
	ListTickets(ctx context.Context, user *models.User) ([]dto.TicketResponse, error)
	SetStatus(ctx context.Context, admin *models.User, number string, status models.TicketStatus) error
}

type TicketHandlerInterface interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	Reply(c *gin.Context)
	SetStatus(c *gin.Context)
}
